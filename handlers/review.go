package handlers

import (
	"net/http"
	"server/models"
	"server/push"

	"github.com/gin-gonic/gin"
)

type ReviewCreateRequest struct {
	Author string `json:"author" binding:"required"`
	Rating int    `json:"rating" binding:"required"`
	Text   string `json:"text"`
}

type ReviewModerateRequest struct {
	Approved *bool `json:"approved"`
	Featured *bool `json:"featured"`
}

func ReviewList(c *gin.Context) {
	reviews, err := models.ApprovedReviews()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ReviewCreate accepts a visitor review; it stays hidden until approved
func ReviewCreate(c *gin.Context) {
	r := ReviewCreateRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	review, err := models.CreateReview(models.ReviewInput{
		Author: r.Author,
		Rating: r.Rating,
		Text:   r.Text,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	go push.NotifyAdmin(push.NotificationTypeReview, "New review", r.Author)
	c.JSON(http.StatusOK, review)
}

func AdminReviewList(c *gin.Context) {
	reviews, err := models.AllReviews()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func AdminReviewModerate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	r := ReviewModerateRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	review, err := models.ModerateReview(id, r.Approved, r.Featured)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func AdminReviewDelete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := models.DeleteReview(id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
