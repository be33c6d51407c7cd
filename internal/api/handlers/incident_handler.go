package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/umojahub/umoja/backend/internal/api/middleware"
	"github.com/umojahub/umoja/backend/internal/models"
	"github.com/umojahub/umoja/backend/internal/services"
)

type IncidentHandler struct {
	service *services.IncidentService
}

func NewIncidentHandler(service *services.IncidentService) *IncidentHandler {
	return &IncidentHandler{service: service}
}

func (h *IncidentHandler) List(c *gin.Context) {
	ctx, ok := middleware.GetAdminContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	incidents, err := h.service.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list incidents"})
		return
	}
	c.JSON(http.StatusOK, incidents)
}

func (h *IncidentHandler) Get(c *gin.Context) {
	ctx, ok := middleware.GetAdminContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	inc, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		respondIncidentError(c, err)
		return
	}
	c.JSON(http.StatusOK, inc)
}

type ReportIncidentRequest struct {
	OrganizationID string `json:"organization_id" binding:"required"`
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	Severity       string `json:"severity"`
}

func (h *IncidentHandler) Report(c *gin.Context) {
	ctx, ok := middleware.GetAdminContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req ReportIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inc := models.Incident{
		OrganizationID: req.OrganizationID,
		Title:          req.Title,
		Description:    req.Description,
		ReportedBy:     ctx.UserID,
	}
	if req.Severity != "" {
		inc.Severity = models.IncidentSeverity(req.Severity)
	}
	if err := h.service.Report(&inc); err != nil {
		respondIncidentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inc)
}

type AddNoteRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *IncidentHandler) AddNote(c *gin.Context) {
	ctx, ok := middleware.GetAdminContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.service.AddNote(ctx, c.Param("id"), req.Body)
	if err != nil {
		respondIncidentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (h *IncidentHandler) Resolve(c *gin.Context) {
	ctx, ok := middleware.GetAdminContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	inc, err := h.service.Resolve(ctx, c.Param("id"))
	if err != nil {
		respondIncidentError(c, err)
		return
	}
	c.JSON(http.StatusOK, inc)
}

func respondIncidentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrIncidentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
	case errors.Is(err, services.ErrOrganizationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
	case errors.Is(err, services.ErrScopeDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "action outside admin scope"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "incident operation failed"})
	}
}
