package handlers

import (
	"net/http"
	"server/models"
	"server/push"

	"github.com/gin-gonic/gin"
)

type InquiryCreateRequest struct {
	Name    string  `json:"name" binding:"required"`
	Phone   string  `json:"phone"`
	Message string  `json:"message" binding:"required"`
	AlbumID *uint64 `json:"album_id"`
}

type InquiryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func InquiryCreate(c *gin.Context) {
	r := InquiryCreateRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inquiry, err := models.CreateInquiry(models.InquiryInput{
		Name:    r.Name,
		Phone:   r.Phone,
		Message: r.Message,
		AlbumID: r.AlbumID,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	go push.NotifyAdmin(push.NotificationTypeInquiry, "New inquiry", r.Name)
	c.JSON(http.StatusOK, inquiry)
}

func AdminInquiryList(c *gin.Context) {
	inquiries, err := models.ListInquiries(c.Query("status"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

func AdminInquiryStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	r := InquiryStatusRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inquiry, err := models.SetInquiryStatus(id, r.Status)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiry)
}

func AdminInquiryDelete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := models.DeleteInquiry(id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func AdminInquiryUnreadCount(c *gin.Context) {
	count, err := models.UnreadInquiryCount()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}
