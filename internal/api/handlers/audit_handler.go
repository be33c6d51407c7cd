package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/umojahub/umoja/backend/internal/access"
	"github.com/umojahub/umoja/backend/internal/api/middleware"
	"github.com/umojahub/umoja/backend/internal/models"
	"github.com/umojahub/umoja/backend/internal/services"
)

type AuditHandler struct {
	service *services.AuditService
}

func NewAuditHandler(service *services.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// List returns audit entries filtered by query params, newest first.
// Visible to super and country admins.
func (h *AuditHandler) List(c *gin.Context) {
	ctx, ok := middleware.GetAdminContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	if !access.CanViewAuditLogs(ctx) {
		c.JSON(http.StatusForbidden, gin.H{"error": "audit access requires country admin or above"})
		return
	}

	q := services.AuditQuery{
		UserID:     c.Query("user_id"),
		Action:     models.AuditAction(c.Query("action")),
		TargetID:   c.Query("target_id"),
		TargetType: c.Query("target_type"),
	}
	if v := c.Query("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			q.Limit = limit
		}
	}
	if v := c.Query("from"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			q.From = &ts
		}
	}
	if v := c.Query("to"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			q.To = &ts
		}
	}

	entries, err := h.service.List(q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audit logs"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Critical returns recent entries from the critical-action allow-list.
func (h *AuditHandler) Critical(c *gin.Context) {
	ctx, ok := middleware.GetAdminContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	if !access.CanViewAuditLogs(ctx) {
		c.JSON(http.StatusForbidden, gin.H{"error": "audit access requires country admin or above"})
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.service.CriticalLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list critical audit logs"})
		return
	}
	c.JSON(http.StatusOK, entries)
}
