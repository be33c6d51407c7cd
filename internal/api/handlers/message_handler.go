package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/umojahub/umoja/backend/internal/access"
	"github.com/umojahub/umoja/backend/internal/api/middleware"
	"github.com/umojahub/umoja/backend/internal/models"
	"github.com/umojahub/umoja/backend/internal/services"
)

type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

type SendMessageRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Audience string `json:"audience" binding:"required"`

	TargetCountries     []string `json:"target_countries,omitempty"`
	TargetRegions       []string `json:"target_regions,omitempty"`
	TargetOrganizations []string `json:"target_organizations,omitempty"`
	TargetRoles         []string `json:"target_roles,omitempty"`
	DeliveryChannels    []string `json:"delivery_channels,omitempty"`

	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
}

// Send composes a broadcast. Network-wide audiences are gated to super
// admins before anything is stored.
func (h *MessageHandler) Send(c *gin.Context) {
	ctx, ok := middleware.GetAdminContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	audience := models.Audience(req.Audience)
	if audience == models.AudienceNetworkWide && !access.CanSendNetworkWideMessage(ctx) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only super admins may broadcast network-wide"})
		return
	}

	msg := models.AdminMessage{
		Title:               req.Title,
		Content:             req.Content,
		Audience:            audience,
		TargetCountries:     req.TargetCountries,
		TargetRegions:       req.TargetRegions,
		TargetOrganizations: req.TargetOrganizations,
		TargetRoles:         req.TargetRoles,
		DeliveryChannels:    req.DeliveryChannels,
		ScheduledFor:        req.ScheduledFor,
	}
	if err := h.service.Send(&msg, ctx); err != nil {
		if errors.Is(err, services.ErrUnknownAudience) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown audience"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// Inbox lists the caller's matched messages; ?unread=true narrows to unread.
func (h *MessageHandler) Inbox(c *gin.Context) {
	ctx, ok := middleware.GetAdminContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	recipient := models.Recipient{
		UserID:         ctx.UserID,
		Role:           ctx.Role,
		Country:        ctx.Country,
		Region:         ctx.Region,
		OrganizationID: ctx.OrganizationID,
	}

	var (
		messages []models.AdminMessage
		err      error
	)
	if c.Query("unread") == "true" {
		messages, err = h.service.UnreadMessagesForRecipient(recipient)
	} else {
		messages, err = h.service.MessagesForRecipient(recipient)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	ctx, ok := middleware.GetAdminContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	if err := h.service.MarkAsRead(c.Param("id"), ctx.UserID); err != nil {
		if errors.Is(err, services.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark message as read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
}

// Pending lists due scheduled messages. Super admin only; normally consumed
// by the dispatcher rather than a person.
func (h *MessageHandler) Pending(c *gin.Context) {
	ctx, ok := middleware.GetAdminContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	if !access.IsSuperAdmin(ctx.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "super admin required"})
		return
	}

	pending, err := h.service.PendingScheduled(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pending messages"})
		return
	}
	c.JSON(http.StatusOK, pending)
}

// TargetingOrganization lists organization-audience messages aimed at one org.
func (h *MessageHandler) TargetingOrganization(c *gin.Context) {
	ctx, ok := middleware.GetAdminContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	if !access.IsRegionalAdmin(ctx.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "regional admin or above required"})
		return
	}

	messages, err := h.service.ListTargetingOrganization(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}
