package handlers

import (
	"net/http"
	"server/models"

	"github.com/gin-gonic/gin"
)

type FAQSaveRequest struct {
	Question  *string `json:"question"`
	Answer    *string `json:"answer"`
	Published *bool   `json:"published"`
}

type FAQReorderRequest struct {
	FAQIDs []uint64 `json:"faq_ids" binding:"required"`
}

func FAQList(c *gin.Context) {
	faqs, err := models.PublishedFAQs()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, faqs)
}

func AdminFAQList(c *gin.Context) {
	faqs, err := models.AllFAQs()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, faqs)
}

func AdminFAQCreate(c *gin.Context) {
	r := FAQSaveRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	question, answer := "", ""
	if r.Question != nil {
		question = *r.Question
	}
	if r.Answer != nil {
		answer = *r.Answer
	}
	published := true
	if r.Published != nil {
		published = *r.Published
	}
	faq, err := models.CreateFAQ(question, answer, published)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, faq)
}

func AdminFAQUpdate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	r := FAQSaveRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	faq, err := models.UpdateFAQ(id, r.Question, r.Answer, r.Published)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, faq)
}

func AdminFAQDelete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := models.DeleteFAQ(id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func AdminFAQReorder(c *gin.Context) {
	r := FAQReorderRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	faqs, err := models.ReorderFAQs(r.FAQIDs)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, faqs)
}
