package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// CacheControl sets the Cache-Control header for responses whose
// payload only changes when the dataset file changes, such as the
// filter-options endpoint.
func CacheControl(maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAgeSeconds))
		c.Next()
	}
}
