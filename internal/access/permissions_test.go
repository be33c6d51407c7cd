package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	kenyaOrg = OrganizationRef{ID: "o1", Country: "Kenya", Region: "Nairobi"}
	usaOrg   = OrganizationRef{ID: "o2", Country: "USA", Region: "Midwest"}
)

func TestCanViewOrganization(t *testing.T) {
	tests := []struct {
		name string
		ctx  AdminContext
		org  OrganizationRef
		want bool
	}{
		{"super sees everything", AdminContext{Role: RoleSuperAdmin}, usaOrg, true},
		{"legacy admin alias sees everything", AdminContext{Role: RoleLegacyAdmin}, usaOrg, true},
		{"country admin same country", AdminContext{Role: RoleCountryAdmin, Country: "Kenya"}, kenyaOrg, true},
		{"country admin other country", AdminContext{Role: RoleCountryAdmin, Country: "Kenya"}, usaOrg, false},
		{"country admin missing country", AdminContext{Role: RoleCountryAdmin}, kenyaOrg, false},
		{"country admin vs org missing country", AdminContext{Role: RoleCountryAdmin, Country: "Kenya"}, OrganizationRef{ID: "o3"}, false},
		{"regional admin same region", AdminContext{Role: RoleRegionalAdmin, Region: "Nairobi"}, kenyaOrg, true},
		{"regional admin other region", AdminContext{Role: RoleRegionalAdmin, Region: "Coast"}, kenyaOrg, false},
		{"org admin own org", AdminContext{Role: RoleOrganizationAdmin, OrganizationID: "o1"}, kenyaOrg, true},
		{"org admin other org", AdminContext{Role: RoleOrganizationAdmin, OrganizationID: "o1"}, usaOrg, false},
		{"org admin missing org id", AdminContext{Role: RoleOrganizationAdmin}, kenyaOrg, false},
		{"unknown role", AdminContext{Role: "mentor", Country: "Kenya"}, kenyaOrg, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanViewOrganization(tt.ctx, tt.org))
		})
	}
}

func TestCanManageOrganization_OrgAdminNeverManages(t *testing.T) {
	// Organization admins may view but never manage their own org record.
	ctx := AdminContext{Role: RoleOrganizationAdmin, OrganizationID: "o1"}
	assert.True(t, CanViewOrganization(ctx, kenyaOrg))
	assert.False(t, CanManageOrganization(ctx, kenyaOrg))
	assert.False(t, CanManageOrganization(ctx, usaOrg))
}

func TestCanManageOrganization_UpperTiers(t *testing.T) {
	assert.True(t, CanManageOrganization(AdminContext{Role: RoleSuperAdmin}, kenyaOrg))
	assert.True(t, CanManageOrganization(AdminContext{Role: RoleCountryAdmin, Country: "Kenya"}, kenyaOrg))
	assert.False(t, CanManageOrganization(AdminContext{Role: RoleCountryAdmin, Country: "Kenya"}, usaOrg))
	assert.True(t, CanManageOrganization(AdminContext{Role: RoleRegionalAdmin, Region: "Nairobi"}, kenyaOrg))
	assert.False(t, CanManageOrganization(AdminContext{Role: RoleRegionalAdmin, Region: "Coast"}, kenyaOrg))
}

func TestCanApproveCompliance_ScopeContainment(t *testing.T) {
	assert.True(t, CanApproveCompliance(AdminContext{Role: RoleSuperAdmin}, usaOrg))
	assert.True(t, CanApproveCompliance(AdminContext{Role: RoleCountryAdmin, Country: "Kenya"}, kenyaOrg))
	assert.False(t, CanApproveCompliance(AdminContext{Role: RoleCountryAdmin, Country: "Kenya"}, usaOrg))
	assert.False(t, CanApproveCompliance(AdminContext{Role: RoleRegionalAdmin, Region: "Coast"}, kenyaOrg))
	assert.False(t, CanApproveCompliance(AdminContext{Role: RoleOrganizationAdmin, OrganizationID: "o1"}, kenyaOrg))
}

func TestCanViewIncident(t *testing.T) {
	inc := IncidentRef{OrganizationID: "o1", Country: "Kenya", Region: "Nairobi"}

	assert.True(t, CanViewIncident(AdminContext{Role: RoleSuperAdmin}, inc))
	assert.True(t, CanViewIncident(AdminContext{Role: RoleCountryAdmin, Country: "Kenya"}, inc))
	assert.False(t, CanViewIncident(AdminContext{Role: RoleCountryAdmin, Country: "USA"}, inc))
	assert.True(t, CanViewIncident(AdminContext{Role: RoleRegionalAdmin, Region: "Nairobi"}, inc))
	assert.False(t, CanViewIncident(AdminContext{Role: RoleRegionalAdmin, Region: "Coast"}, inc))
	assert.True(t, CanViewIncident(AdminContext{Role: RoleOrganizationAdmin, OrganizationID: "o1"}, inc))
	assert.False(t, CanViewIncident(AdminContext{Role: RoleOrganizationAdmin, OrganizationID: "o2"}, inc))
	assert.False(t, CanViewIncident(AdminContext{Role: RoleOrganizationAdmin}, inc))
}

func TestSuperOnlyPredicates(t *testing.T) {
	assert.True(t, CanManageAdminRoles(AdminContext{Role: RoleSuperAdmin}))
	assert.True(t, CanManageAdminRoles(AdminContext{Role: RoleLegacyAdmin}))
	assert.False(t, CanManageAdminRoles(AdminContext{Role: RoleCountryAdmin}))

	assert.True(t, CanSendNetworkWideMessage(AdminContext{Role: RoleSuperAdmin}))
	assert.False(t, CanSendNetworkWideMessage(AdminContext{Role: RoleRegionalAdmin}))
}

func TestCanViewAuditLogs(t *testing.T) {
	assert.True(t, CanViewAuditLogs(AdminContext{Role: RoleSuperAdmin}))
	assert.True(t, CanViewAuditLogs(AdminContext{Role: RoleCountryAdmin}))
	assert.False(t, CanViewAuditLogs(AdminContext{Role: RoleRegionalAdmin}))
	assert.False(t, CanViewAuditLogs(AdminContext{Role: RoleOrganizationAdmin}))
}
