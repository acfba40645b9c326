package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router is a wrapper that rejects requests without an admin session
type Router struct {
	Base *gin.RouterGroup
}

func (cr *Router) baseExec(c *gin.Context, handler gin.HandlerFunc) {
	if !LoadSession(c).IsAdmin() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}
	handler(c)
}

func (cr *Router) GET(path string, handler gin.HandlerFunc) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) POST(path string, handler gin.HandlerFunc) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) PUT(path string, handler gin.HandlerFunc) {
	cr.Base.PUT(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) DELETE(path string, handler gin.HandlerFunc) {
	cr.Base.DELETE(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}
