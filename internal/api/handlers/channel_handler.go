package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/umojahub/umoja/backend/internal/access"
	"github.com/umojahub/umoja/backend/internal/api/middleware"
	"github.com/umojahub/umoja/backend/internal/models"
	"github.com/umojahub/umoja/backend/internal/services"
)

// ChannelHandler manages delivery channel configuration. Super admins only.
type ChannelHandler struct {
	service *services.NotificationService
}

func NewChannelHandler(service *services.NotificationService) *ChannelHandler {
	return &ChannelHandler{service: service}
}

func (h *ChannelHandler) requireSuper(c *gin.Context) bool {
	ctx, ok := middleware.GetAdminContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return false
	}
	if !access.IsSuperAdmin(ctx.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "super admin required"})
		return false
	}
	return true
}

func (h *ChannelHandler) List(c *gin.Context) {
	if !h.requireSuper(c) {
		return
	}

	channels, err := h.service.ListChannels()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list channels"})
		return
	}
	c.JSON(http.StatusOK, channels)
}

type SaveChannelRequest struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required"`
	URL     string `json:"url" binding:"required"`
	Enabled *bool  `json:"enabled,omitempty"`
}

func (h *ChannelHandler) Save(c *gin.Context) {
	if !h.requireSuper(c) {
		return
	}

	var req SaveChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ch := models.DeliveryChannel{
		Name:    req.Name,
		Type:    req.Type,
		URL:     req.URL,
		Enabled: true,
	}
	if req.Enabled != nil {
		ch.Enabled = *req.Enabled
	}
	if err := h.service.SaveChannel(&ch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save channel"})
		return
	}
	c.JSON(http.StatusOK, ch)
}

func (h *ChannelHandler) Delete(c *gin.Context) {
	if !h.requireSuper(c) {
		return
	}

	if err := h.service.DeleteChannel(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete channel"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Channel deleted"})
}
