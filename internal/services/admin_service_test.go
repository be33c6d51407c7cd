package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/umojahub/umoja/backend/internal/access"
	"github.com/umojahub/umoja/backend/internal/models"
)

func setupAdminService(t *testing.T) (*AdminService, *gorm.DB, models.User) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.AuditLog{}))

	user := models.User{Email: "target@example.com", Name: "Target", Role: string(access.RoleOrganizationAdmin)}
	require.NoError(t, db.Create(&user).Error)
	return NewAdminService(db, NewAuditService(db)), db, user
}

var superCtx = access.AdminContext{UserID: "admin-1", UserName: "Asha", Role: access.RoleSuperAdmin}

func TestAdminService_AssignRole(t *testing.T) {
	svc, db, user := setupAdminService(t)

	updated, err := svc.AssignRole(superCtx, user.ID, RoleAssignment{Role: access.RoleCountryAdmin, Country: "Kenya"})
	require.NoError(t, err)
	assert.Equal(t, string(access.RoleCountryAdmin), updated.Role)
	assert.Equal(t, "Kenya", updated.Country)

	var audit models.AuditLog
	require.NoError(t, db.First(&audit, "action = ?", models.ActionAdminRoleAssigned).Error)
	assert.Equal(t, user.ID, audit.TargetID)
}

func TestAdminService_AssignRole_Gates(t *testing.T) {
	svc, _, user := setupAdminService(t)

	// Only super admins manage roles.
	country := access.AdminContext{UserID: "u9", Role: access.RoleCountryAdmin, Country: "Kenya"}
	_, err := svc.AssignRole(country, user.ID, RoleAssignment{Role: access.RoleRegionalAdmin, Region: "Coast"})
	assert.ErrorIs(t, err, ErrScopeDenied)

	_, err = svc.AssignRole(superCtx, user.ID, RoleAssignment{Role: "warlord"})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.AssignRole(superCtx, "missing", RoleAssignment{Role: access.RoleCountryAdmin})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdminService_RevokeRole(t *testing.T) {
	svc, db, user := setupAdminService(t)

	_, err := svc.AssignRole(superCtx, user.ID, RoleAssignment{Role: access.RoleCountryAdmin, Country: "Kenya"})
	require.NoError(t, err)

	revoked, err := svc.RevokeRole(superCtx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, string(access.RoleOrganizationAdmin), revoked.Role)
	assert.Empty(t, revoked.Country)

	var count int64
	db.Model(&models.AuditLog{}).Where("action = ?", models.ActionAdminRoleRevoked).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAdminService_SuspendUser(t *testing.T) {
	svc, db, user := setupAdminService(t)

	suspended, err := svc.SuspendUser(superCtx, user.ID)
	require.NoError(t, err)
	assert.True(t, suspended.Suspended)

	var audit models.AuditLog
	require.NoError(t, db.First(&audit, "action = ?", models.ActionUserSuspended).Error)
	assert.Equal(t, user.ID, audit.TargetID)
}
