package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/umojahub/umoja/backend/internal/access"
	"github.com/umojahub/umoja/backend/internal/services"
)

const AdminContextKey = "adminContext"

// AdminContext verifies the bearer token, loads the admin profile, and places
// the resolved scope context on the request. Handlers read it with
// GetAdminContext and pass it explicitly into services; no handler reaches
// back to the token.
func AdminContext(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		user, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(AdminContextKey, user.AdminContext())
		c.Next()
	}
}

// GetAdminContext retrieves the resolved admin context from the request.
func GetAdminContext(c *gin.Context) (access.AdminContext, bool) {
	if v, ok := c.Get(AdminContextKey); ok {
		if ctx, ok := v.(access.AdminContext); ok {
			return ctx, true
		}
	}
	return access.AdminContext{}, false
}
