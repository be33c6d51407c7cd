package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/umojahub/umoja/backend/internal/access"
	"github.com/umojahub/umoja/backend/internal/metrics"
	"github.com/umojahub/umoja/backend/internal/models"
	"github.com/umojahub/umoja/backend/internal/query"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrScopeDenied          = errors.New("action outside admin scope")
)

type OrganizationService struct {
	db    *gorm.DB
	audit *AuditService
}

func NewOrganizationService(db *gorm.DB, audit *AuditService) *OrganizationService {
	return &OrganizationService{db: db, audit: audit}
}

// scopeFilters narrows a query to the context's admin scope. An empty-valued
// organization scope (the fail-closed default) matches nothing.
func scopeFilters(ctx access.AdminContext) ([]query.Filter, bool) {
	scope := access.AdminScope(ctx)
	switch scope.Type {
	case access.ScopeGlobal:
		return nil, true
	case access.ScopeCountry:
		return []query.Filter{query.Equals("country", scope.Value)}, true
	case access.ScopeRegion:
		return []query.Filter{query.Equals("region", scope.Value)}, true
	case access.ScopeOrganization:
		if scope.Value == "" {
			return nil, false
		}
		return []query.Filter{query.Equals("id", scope.Value)}, true
	}
	return nil, false
}

// List returns the organizations the context may view. The storage-side
// narrowing and the in-memory containment check apply the same rule; the
// second pass keeps the service honest if records carry stale scope fields.
func (s *OrganizationService) List(ctx access.AdminContext) ([]models.Organization, error) {
	filters, ok := scopeFilters(ctx)
	if !ok {
		return []models.Organization{}, nil
	}

	var orgs []models.Organization
	tx := query.Apply(s.db.Model(&models.Organization{}), filters...)
	if err := tx.Order("name").Find(&orgs).Error; err != nil {
		return nil, err
	}

	visible := make([]models.Organization, 0, len(orgs))
	for _, org := range orgs {
		if access.CanViewOrganization(ctx, org.Ref()) {
			visible = append(visible, org)
		}
	}
	return visible, nil
}

// Get returns one organization if the context may view it.
func (s *OrganizationService) Get(ctx access.AdminContext, id string) (*models.Organization, error) {
	var org models.Organization
	if err := s.db.First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}

	metrics.IncPermissionCheck()
	if !access.CanViewOrganization(ctx, org.Ref()) {
		metrics.IncPermissionDenied()
		return nil, ErrScopeDenied
	}
	return &org, nil
}

// OrganizationUpdate carries the fields an admin may change on an org record.
type OrganizationUpdate struct {
	Name         *string
	ContactEmail *string
	MemberCount  *int
}

// Update modifies an organization record and audits the change.
func (s *OrganizationService) Update(ctx access.AdminContext, id string, upd OrganizationUpdate) (*models.Organization, error) {
	org, err := s.fetchManaged(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		org.Name = *upd.Name
	}
	if upd.ContactEmail != nil {
		org.ContactEmail = *upd.ContactEmail
	}
	if upd.MemberCount != nil {
		org.MemberCount = *upd.MemberCount
	}
	if err := s.db.Save(org).Error; err != nil {
		return nil, err
	}

	s.auditOrg(ctx, models.ActionOrganizationUpdated, org)
	return org, nil
}

// Suspend marks an organization suspended and audits the action.
func (s *OrganizationService) Suspend(ctx access.AdminContext, id string) (*models.Organization, error) {
	return s.setStatus(ctx, id, models.OrganizationStatusSuspended, models.ActionOrganizationSuspended)
}

// Reactivate returns a suspended organization to active and audits the action.
func (s *OrganizationService) Reactivate(ctx access.AdminContext, id string) (*models.Organization, error) {
	return s.setStatus(ctx, id, models.OrganizationStatusActive, models.ActionOrganizationReactivated)
}

func (s *OrganizationService) setStatus(ctx access.AdminContext, id string, status models.OrganizationStatus, action models.AuditAction) (*models.Organization, error) {
	org, err := s.fetchManaged(ctx, id)
	if err != nil {
		return nil, err
	}

	org.Status = status
	if err := s.db.Save(org).Error; err != nil {
		return nil, err
	}

	s.auditOrg(ctx, action, org)
	return org, nil
}

// ApproveCompliance marks an organization's compliance approved. The same
// containment rule as viewing applies; organization admins cannot approve
// their own org.
func (s *OrganizationService) ApproveCompliance(ctx access.AdminContext, id string) (*models.Organization, error) {
	var org models.Organization
	if err := s.db.First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}

	metrics.IncPermissionCheck()
	if !access.CanApproveCompliance(ctx, org.Ref()) {
		metrics.IncPermissionDenied()
		return nil, ErrScopeDenied
	}

	now := time.Now()
	org.ComplianceApproved = true
	org.ComplianceApprovedBy = ctx.UserID
	org.ComplianceApprovedAt = &now
	if err := s.db.Save(&org).Error; err != nil {
		return nil, err
	}

	s.auditOrg(ctx, models.ActionComplianceApproved, &org)
	return &org, nil
}

func (s *OrganizationService) fetchManaged(ctx access.AdminContext, id string) (*models.Organization, error) {
	var org models.Organization
	if err := s.db.First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}

	metrics.IncPermissionCheck()
	if !access.CanManageOrganization(ctx, org.Ref()) {
		metrics.IncPermissionDenied()
		return nil, ErrScopeDenied
	}
	return &org, nil
}

func (s *OrganizationService) auditOrg(ctx access.AdminContext, action models.AuditAction, org *models.Organization) {
	_ = s.audit.LogContextAction(ctx, action, &AuditTarget{
		ID:   org.ID,
		Type: "organization",
		Name: org.Name,
	})
}
