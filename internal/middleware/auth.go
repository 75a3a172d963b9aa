package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/service"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/response"
)

const (
	// AdminContextKey is the gin context key holding the authenticated admin.
	AdminContextKey = "admin"
	// adminTokenCookie is the fallback cookie for browser sessions.
	adminTokenCookie = "admin_token"
)

// RequireAdmin authenticates admin routes. The Authorization header
// takes precedence over the session cookie.
func RequireAdmin(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		admin, err := authService.GetAdminFromToken(c.Request.Context(), token)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(AdminContextKey, admin)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(adminTokenCookie); err == nil {
		return cookie
	}
	return ""
}
