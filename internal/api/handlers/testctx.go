package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/umojahub/umoja/backend/internal/access"
	"github.com/umojahub/umoja/backend/internal/api/middleware"
)

// WithAdminContext injects a pre-resolved admin context, standing in for the
// auth middleware in tests.
func WithAdminContext(ctx access.AdminContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.AdminContextKey, ctx)
		c.Next()
	}
}
