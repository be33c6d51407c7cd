package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/umojahub/umoja/backend/internal/access"
	"github.com/umojahub/umoja/backend/internal/api/middleware"
	"github.com/umojahub/umoja/backend/internal/services"
)

// AdminHandler exposes admin role management. All routes are super-admin
// gated inside the service.
type AdminHandler struct {
	service *services.AdminService
}

func NewAdminHandler(service *services.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type AssignRoleRequest struct {
	Role           string `json:"role" binding:"required"`
	Country        string `json:"country,omitempty"`
	Region         string `json:"region,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
}

func (h *AdminHandler) AssignRole(c *gin.Context) {
	ctx, ok := middleware.GetAdminContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.AssignRole(ctx, c.Param("id"), services.RoleAssignment{
		Role:           access.Role(req.Role),
		Country:        req.Country,
		Region:         req.Region,
		OrganizationID: req.OrganizationID,
	})
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) RevokeRole(c *gin.Context) {
	ctx, ok := middleware.GetAdminContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	user, err := h.service.RevokeRole(ctx, c.Param("id"))
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) SuspendUser(c *gin.Context) {
	ctx, ok := middleware.GetAdminContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	user, err := h.service.SuspendUser(ctx, c.Param("id"))
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func respondAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, services.ErrScopeDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "super admin required"})
	case errors.Is(err, services.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid admin role"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "admin operation failed"})
	}
}
