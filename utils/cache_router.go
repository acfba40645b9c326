package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// CacheRouter sets the cache-control header for a route group. The API
// group runs with the zero value (no-cache); the uploads group serves
// immutable files and sets a long private max-age.
type CacheRouter struct {
	MaxAge int // seconds; zero or negative means no-cache
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cr.MaxAge > 0 {
			c.Header("cache-control", "private, max-age="+strconv.Itoa(cr.MaxAge))
		} else {
			c.Header("cache-control", "no-cache")
		}
		c.Next()
	}
}
