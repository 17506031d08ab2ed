package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(NewRateLimiter(2, time.Minute).Middleware())
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}

func TestRateLimiterPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(NewRateLimiter(1, time.Minute).Middleware())
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1"))
	// A different client has its own bucket.
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1"))
}

func TestCacheControl(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CacheControl(300))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "public, max-age=300", w.Header().Get("Cache-Control"))
}
