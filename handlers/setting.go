package handlers

import (
	"net/http"
	"server/models"

	"github.com/gin-gonic/gin"
)

type SettingSaveRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

// SettingList exposes only the public.* keys to the storefront
func SettingList(c *gin.Context) {
	settings, err := models.PublicSettings()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func AdminSettingList(c *gin.Context) {
	settings, err := models.AllSettings()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func AdminSettingSave(c *gin.Context) {
	r := SettingSaveRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := models.SetSetting(r.Key, r.Value); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
