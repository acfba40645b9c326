package handlers

import (
	"net/http"
	"server/auth"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

func AdminLogin(c *gin.Context) {
	r := LoginRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !auth.LoadSession(c).Login(r.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func AdminLogout(c *gin.Context) {
	auth.LoadSession(c).Logout()
	c.JSON(http.StatusOK, OKResponse)
}

func AdminStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"admin": auth.LoadSession(c).IsAdmin()})
}
