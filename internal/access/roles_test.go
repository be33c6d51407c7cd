package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRolePredicates_AtLeastSemantics(t *testing.T) {
	// A super admin satisfies every tier check simultaneously.
	for _, role := range []Role{RoleSuperAdmin, RoleLegacyAdmin} {
		assert.True(t, IsSuperAdmin(role), "role %s", role)
		assert.True(t, IsCountryAdmin(role), "role %s", role)
		assert.True(t, IsRegionalAdmin(role), "role %s", role)
		assert.True(t, IsOrganizationAdmin(role), "role %s", role)
	}

	assert.False(t, IsSuperAdmin(RoleCountryAdmin))
	assert.True(t, IsCountryAdmin(RoleCountryAdmin))
	assert.True(t, IsRegionalAdmin(RoleCountryAdmin))
	assert.True(t, IsOrganizationAdmin(RoleCountryAdmin))

	assert.False(t, IsCountryAdmin(RoleRegionalAdmin))
	assert.True(t, IsRegionalAdmin(RoleRegionalAdmin))
	assert.True(t, IsOrganizationAdmin(RoleRegionalAdmin))

	assert.False(t, IsRegionalAdmin(RoleOrganizationAdmin))
	assert.True(t, IsOrganizationAdmin(RoleOrganizationAdmin))
}

func TestRolePredicates_UnknownRole(t *testing.T) {
	for _, role := range []Role{"", "mentor", "viewer"} {
		assert.False(t, IsSuperAdmin(role))
		assert.False(t, IsCountryAdmin(role))
		assert.False(t, IsRegionalAdmin(role))
		assert.False(t, IsOrganizationAdmin(role))
		assert.False(t, Valid(role))
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(RoleSuperAdmin))
	assert.True(t, Valid(RoleLegacyAdmin))
	assert.True(t, Valid(RoleCountryAdmin))
	assert.True(t, Valid(RoleRegionalAdmin))
	assert.True(t, Valid(RoleOrganizationAdmin))
}
