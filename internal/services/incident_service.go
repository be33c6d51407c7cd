package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/umojahub/umoja/backend/internal/access"
	"github.com/umojahub/umoja/backend/internal/metrics"
	"github.com/umojahub/umoja/backend/internal/models"
	"github.com/umojahub/umoja/backend/internal/query"
)

var ErrIncidentNotFound = errors.New("incident not found")

type IncidentService struct {
	db *gorm.DB
}

func NewIncidentService(db *gorm.DB) *IncidentService {
	return &IncidentService{db: db}
}

// Report files a new incident against an organization, denormalizing the
// org's country and region onto it for later scope checks.
func (s *IncidentService) Report(inc *models.Incident) error {
	var org models.Organization
	if err := s.db.First(&org, "id = ?", inc.OrganizationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationNotFound
		}
		return err
	}
	inc.Country = org.Country
	inc.Region = org.Region
	return s.db.Create(inc).Error
}

// List returns the incidents the context may view.
func (s *IncidentService) List(ctx access.AdminContext) ([]models.Incident, error) {
	filters, ok := scopeFilters(ctx)
	if !ok {
		return []models.Incident{}, nil
	}
	// Organization scope narrows on organization_id, not the row id.
	if scope := access.AdminScope(ctx); scope.Type == access.ScopeOrganization {
		filters = []query.Filter{query.Equals("organization_id", scope.Value)}
	}

	var incidents []models.Incident
	tx := query.Apply(s.db.Model(&models.Incident{}), filters...)
	if err := tx.Order("created_at desc").Find(&incidents).Error; err != nil {
		return nil, err
	}

	visible := make([]models.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if access.CanViewIncident(ctx, inc.Ref()) {
			visible = append(visible, inc)
		}
	}
	return visible, nil
}

// Get returns one incident with its notes if the context may view it.
func (s *IncidentService) Get(ctx access.AdminContext, id string) (*models.Incident, error) {
	var inc models.Incident
	if err := s.db.Preload("Notes", func(db *gorm.DB) *gorm.DB {
		return db.Order("incident_notes.created_at")
	}).First(&inc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncidentNotFound
		}
		return nil, err
	}

	metrics.IncPermissionCheck()
	if !access.CanViewIncident(ctx, inc.Ref()) {
		metrics.IncPermissionDenied()
		return nil, ErrScopeDenied
	}
	return &inc, nil
}

// AddNote appends a follow-up note. Each note is its own row, so the append
// is a single insert and concurrent notes never overwrite one another.
func (s *IncidentService) AddNote(ctx access.AdminContext, incidentID, body string) (*models.IncidentNote, error) {
	var inc models.Incident
	if err := s.db.First(&inc, "id = ?", incidentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncidentNotFound
		}
		return nil, err
	}

	metrics.IncPermissionCheck()
	if !access.CanViewIncident(ctx, inc.Ref()) {
		metrics.IncPermissionDenied()
		return nil, ErrScopeDenied
	}

	note := models.IncidentNote{
		IncidentID: incidentID,
		AuthorID:   ctx.UserID,
		AuthorName: ctx.UserName,
		Body:       body,
	}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// Resolve closes an incident. Only admins above the organization tier may
// resolve; organization admins can view and annotate but not close.
func (s *IncidentService) Resolve(ctx access.AdminContext, id string) (*models.Incident, error) {
	var inc models.Incident
	if err := s.db.First(&inc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncidentNotFound
		}
		return nil, err
	}

	metrics.IncPermissionCheck()
	if !access.IsRegionalAdmin(ctx.Role) || !access.CanViewIncident(ctx, inc.Ref()) {
		metrics.IncPermissionDenied()
		return nil, ErrScopeDenied
	}

	inc.Status = models.IncidentStatusResolved
	if err := s.db.Save(&inc).Error; err != nil {
		return nil, err
	}
	return &inc, nil
}
