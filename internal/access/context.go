package access

// Role is an admin privilege tier. Tiers form a total order:
// super_admin > country_admin > regional_admin > organization_admin.
type Role string

const (
	RoleSuperAdmin        Role = "super_admin"
	RoleCountryAdmin      Role = "country_admin"
	RoleRegionalAdmin     Role = "regional_admin"
	RoleOrganizationAdmin Role = "organization_admin"

	// RoleLegacyAdmin is an alias for super_admin kept for profiles created
	// before the tiered hierarchy existed.
	RoleLegacyAdmin Role = "admin"
)

// AdminContext is the normalized caller scope resolved from a user profile.
// It is built per request and passed explicitly; there is no ambient
// current-user state anywhere in this package.
type AdminContext struct {
	UserID         string
	UserName       string
	Role           Role
	Country        string
	Region         string
	OrganizationID string

	ManagedCountries     []string
	ManagedRegions       []string
	ManagedOrganizations []string
}

// OrganizationRef is the minimal organization shape needed for containment
// checks. Country and Region are denormalized onto it by the caller; this
// package never reaches into storage.
type OrganizationRef struct {
	ID      string
	Country string
	Region  string
}

// IncidentRef carries the denormalized fields needed to decide incident
// visibility.
type IncidentRef struct {
	OrganizationID string
	Country        string
	Region         string
}

// canonical collapses the legacy alias so the evaluator can switch on a
// single spelling per tier.
func canonical(r Role) Role {
	if r == RoleLegacyAdmin {
		return RoleSuperAdmin
	}
	return r
}

// IsSuperAdmin reports whether the role is at least super_admin.
func IsSuperAdmin(r Role) bool {
	return canonical(r) == RoleSuperAdmin
}

// IsCountryAdmin reports whether the role is at least country_admin.
func IsCountryAdmin(r Role) bool {
	return canonical(r) == RoleCountryAdmin || IsSuperAdmin(r)
}

// IsRegionalAdmin reports whether the role is at least regional_admin.
func IsRegionalAdmin(r Role) bool {
	return canonical(r) == RoleRegionalAdmin || IsCountryAdmin(r)
}

// IsOrganizationAdmin reports whether the role is at least organization_admin.
// Every valid admin tier satisfies this check.
func IsOrganizationAdmin(r Role) bool {
	return canonical(r) == RoleOrganizationAdmin || IsRegionalAdmin(r)
}

// Valid reports whether the role names a known tier.
func Valid(r Role) bool {
	switch canonical(r) {
	case RoleSuperAdmin, RoleCountryAdmin, RoleRegionalAdmin, RoleOrganizationAdmin:
		return true
	}
	return false
}
