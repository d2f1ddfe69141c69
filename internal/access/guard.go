// Package access decides which routes a pending company account may reach.
//
// A company-role user whose company record has not been confirmed by the
// secretariat is "pending": navigation is limited to a fixed allow-list until
// the record is confirmed. Users without the company role are never
// restricted, whatever the confirmation flag says.
package access

import (
	"secretariat/api/internal/models"
	"secretariat/api/internal/routes"
)

// pendingAllowList is the fixed set of routes a pending account keeps.
// The companies Param pattern is matched against the user's own company id,
// so a pending account sees its own company detail page and nobody else's.
var pendingAllowList = []routes.Pattern{
	{Kind: routes.Prefix, Path: routes.Dashboard},
	{Kind: routes.Prefix, Path: routes.Profile},
	{Kind: routes.Static, Path: routes.Companies},
	{Kind: routes.Static, Path: routes.CompanyCreate},
	{Kind: routes.Param, Path: routes.Companies + "/:id"},
}

// Restriction is the guard's decision input for one user, computed once the
// confirmation lookup has resolved. It is pure with respect to its fields.
type Restriction struct {
	Pending   bool
	CompanyID string
}

// ForUser derives the restriction state from the current user and the
// confirmation flag of their company. Callers that could not determine the
// flag must pass confirmed=false (fail closed).
func ForUser(user *models.User, confirmed bool) Restriction {
	if user == nil || !user.HasRole(models.RoleCompany) {
		return Restriction{}
	}
	companyID := ""
	if user.CompanyID != nil {
		companyID = *user.CompanyID
	}
	return Restriction{
		Pending:   !confirmed,
		CompanyID: companyID,
	}
}

// Allowed reports whether navigation to path is permitted. Unrestricted
// accounts may go anywhere.
func (r Restriction) Allowed(path string) bool {
	if !r.Pending {
		return true
	}
	for _, pattern := range pendingAllowList {
		if pattern.Matches(path, r.CompanyID) {
			return true
		}
	}
	return false
}
