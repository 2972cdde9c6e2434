// README: Shared-secret guard for the admin surface.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const adminKeyHeader = "X-Admin-Key"

// AdminKey rejects admin requests whose key header does not match the
// configured secret. With no secret configured the admin surface is
// disabled entirely.
func AdminKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin interface disabled"})
			return
		}
		if c.GetHeader(adminKeyHeader) != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin key"})
			return
		}
		c.Next()
	}
}
