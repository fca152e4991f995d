package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/pycourse/internal/dto"
	"github.com/rs/zerolog/log"
)

const AdminTokenHeader = "X-Admin-Token"

// RequireAdmin guards admin routes with a shared token. An empty token
// disables the admin API entirely.
func RequireAdmin(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("Admin API is disabled"))
			return
		}
		got := c.GetHeader(AdminTokenHeader)
		if got == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Missing admin token"))
			return
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			log.Warn().Str("ip", c.ClientIP()).Str("path", c.FullPath()).Msg("Rejected admin request with invalid token")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("Invalid admin token"))
			return
		}
		c.Next()
	}
}
