package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func cacheHeaderFor(t *testing.T, cr *CacheRouter) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", cr.Handler(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	return rec.Header().Get("cache-control")
}

func TestCacheRouterHeaders(t *testing.T) {
	tests := []struct {
		maxAge int
		want   string
	}{
		{0, "no-cache"},
		{-1, "no-cache"},
		{2592000, "private, max-age=2592000"},
	}
	for _, tt := range tests {
		if got := cacheHeaderFor(t, &CacheRouter{MaxAge: tt.maxAge}); got != tt.want {
			t.Errorf("MaxAge %d: cache-control = %q, want %q", tt.maxAge, got, tt.want)
		}
	}
}
