package access

// Permission predicates are pure and never return errors. A context with a
// missing or malformed scope field resolves to false (fail-closed) rather
// than panicking or guessing.

// CanViewOrganization reports whether the context may read the given
// organization record.
func CanViewOrganization(ctx AdminContext, org OrganizationRef) bool {
	switch canonical(ctx.Role) {
	case RoleSuperAdmin:
		return true
	case RoleCountryAdmin:
		return ctx.Country != "" && ctx.Country == org.Country
	case RoleRegionalAdmin:
		return ctx.Region != "" && ctx.Region == org.Region
	case RoleOrganizationAdmin:
		return ctx.OrganizationID != "" && ctx.OrganizationID == org.ID
	default:
		return false
	}
}

// CanManageOrganization reports whether the context may modify the given
// organization record. Organization admins may view but never manage their
// own org record through this path; the asymmetry is intentional.
func CanManageOrganization(ctx AdminContext, org OrganizationRef) bool {
	switch canonical(ctx.Role) {
	case RoleSuperAdmin:
		return true
	case RoleCountryAdmin:
		return ctx.Country != "" && ctx.Country == org.Country
	case RoleRegionalAdmin:
		return ctx.Region != "" && ctx.Region == org.Region
	default:
		return false
	}
}

// CanApproveCompliance reports whether the context may approve the given
// organization's compliance status. Country and regional admins are held to
// the same containment rule as CanViewOrganization; callers must supply the
// organization's denormalized country and region.
func CanApproveCompliance(ctx AdminContext, org OrganizationRef) bool {
	switch canonical(ctx.Role) {
	case RoleSuperAdmin:
		return true
	case RoleCountryAdmin:
		return ctx.Country != "" && ctx.Country == org.Country
	case RoleRegionalAdmin:
		return ctx.Region != "" && ctx.Region == org.Region
	default:
		return false
	}
}

// CanViewIncident reports whether the context may read the given incident.
// The incident carries denormalized country/region so containment can be
// checked without a cross-collection join.
func CanViewIncident(ctx AdminContext, inc IncidentRef) bool {
	switch canonical(ctx.Role) {
	case RoleSuperAdmin:
		return true
	case RoleCountryAdmin:
		return ctx.Country != "" && ctx.Country == inc.Country
	case RoleRegionalAdmin:
		return ctx.Region != "" && ctx.Region == inc.Region
	case RoleOrganizationAdmin:
		return ctx.OrganizationID != "" && ctx.OrganizationID == inc.OrganizationID
	default:
		return false
	}
}

// CanManageAdminRoles reports whether the context may assign or revoke admin
// roles. Super admins only.
func CanManageAdminRoles(ctx AdminContext) bool {
	return IsSuperAdmin(ctx.Role)
}

// CanSendNetworkWideMessage reports whether the context may broadcast to the
// whole network. Super admins only.
func CanSendNetworkWideMessage(ctx AdminContext) bool {
	return IsSuperAdmin(ctx.Role)
}

// CanViewAuditLogs reports whether the context may read the audit trail.
func CanViewAuditLogs(ctx AdminContext) bool {
	return IsCountryAdmin(ctx.Role)
}
