package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/umojahub/umoja/backend/internal/access"
	"github.com/umojahub/umoja/backend/internal/metrics"
	"github.com/umojahub/umoja/backend/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid admin role")
)

// AdminService manages admin role assignments. Every change is audited.
type AdminService struct {
	db    *gorm.DB
	audit *AuditService
}

func NewAdminService(db *gorm.DB, audit *AuditService) *AdminService {
	return &AdminService{db: db, audit: audit}
}

// RoleAssignment carries the new role and its scope field.
type RoleAssignment struct {
	Role           access.Role
	Country        string
	Region         string
	OrganizationID string
}

// AssignRole sets a user's admin tier and scope. Super admins only.
func (s *AdminService) AssignRole(ctx access.AdminContext, userID string, assign RoleAssignment) (*models.User, error) {
	metrics.IncPermissionCheck()
	if !access.CanManageAdminRoles(ctx) {
		metrics.IncPermissionDenied()
		return nil, ErrScopeDenied
	}
	if !access.Valid(assign.Role) {
		return nil, ErrInvalidRole
	}

	user, err := s.fetch(userID)
	if err != nil {
		return nil, err
	}

	user.Role = string(assign.Role)
	user.Country = assign.Country
	user.Region = assign.Region
	user.OrganizationID = assign.OrganizationID
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}

	_ = s.audit.LogContextAction(ctx, models.ActionAdminRoleAssigned, &AuditTarget{
		ID: user.ID, Type: "user", Name: user.Name, Metadata: string(assign.Role),
	})
	return user, nil
}

// RevokeRole demotes a user to the lowest tier with no scope. Super admins only.
func (s *AdminService) RevokeRole(ctx access.AdminContext, userID string) (*models.User, error) {
	metrics.IncPermissionCheck()
	if !access.CanManageAdminRoles(ctx) {
		metrics.IncPermissionDenied()
		return nil, ErrScopeDenied
	}

	user, err := s.fetch(userID)
	if err != nil {
		return nil, err
	}

	user.Role = string(access.RoleOrganizationAdmin)
	user.Country = ""
	user.Region = ""
	user.OrganizationID = ""
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}

	_ = s.audit.LogContextAction(ctx, models.ActionAdminRoleRevoked, &AuditTarget{
		ID: user.ID, Type: "user", Name: user.Name,
	})
	return user, nil
}

// SuspendUser blocks a user from logging in. Super admins only.
func (s *AdminService) SuspendUser(ctx access.AdminContext, userID string) (*models.User, error) {
	metrics.IncPermissionCheck()
	if !access.CanManageAdminRoles(ctx) {
		metrics.IncPermissionDenied()
		return nil, ErrScopeDenied
	}

	user, err := s.fetch(userID)
	if err != nil {
		return nil, err
	}

	user.Suspended = true
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}

	_ = s.audit.LogContextAction(ctx, models.ActionUserSuspended, &AuditTarget{
		ID: user.ID, Type: "user", Name: user.Name,
	})
	return user, nil
}

func (s *AdminService) fetch(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
