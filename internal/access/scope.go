package access

// ScopeType names the single hierarchy dimension a context is authorized to
// act within.
type ScopeType string

const (
	ScopeGlobal       ScopeType = "global"
	ScopeCountry      ScopeType = "country"
	ScopeRegion       ScopeType = "region"
	ScopeOrganization ScopeType = "organization"
)

// Scope is the canonical query scope derived from an AdminContext. Value is
// empty for global scope, and also empty when the role's matching field was
// absent on the profile — an empty organization scope matches nothing, which
// is the fail-closed default.
type Scope struct {
	Type  ScopeType `json:"type"`
	Value string    `json:"value,omitempty"`
}

// AdminScope derives the query scope for a context. A super admin is global
// regardless of any other populated field.
func AdminScope(ctx AdminContext) Scope {
	switch canonical(ctx.Role) {
	case RoleSuperAdmin:
		return Scope{Type: ScopeGlobal}
	case RoleCountryAdmin:
		if ctx.Country != "" {
			return Scope{Type: ScopeCountry, Value: ctx.Country}
		}
	case RoleRegionalAdmin:
		if ctx.Region != "" {
			return Scope{Type: ScopeRegion, Value: ctx.Region}
		}
	case RoleOrganizationAdmin:
		if ctx.OrganizationID != "" {
			return Scope{Type: ScopeOrganization, Value: ctx.OrganizationID}
		}
	}
	return Scope{Type: ScopeOrganization}
}

// FilterOrganizationsByScope keeps the organizations the context may view.
// It applies exactly the containment rule of CanViewOrganization, so the two
// can never drift apart.
func FilterOrganizationsByScope(ctx AdminContext, orgs []OrganizationRef) []OrganizationRef {
	out := make([]OrganizationRef, 0, len(orgs))
	for _, org := range orgs {
		if CanViewOrganization(ctx, org) {
			out = append(out, org)
		}
	}
	return out
}
