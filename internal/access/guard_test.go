package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"secretariat/api/internal/models"
)

func companyUser(companyID string) *models.User {
	return &models.User{
		ID:        "u1",
		Roles:     []models.Role{models.RoleCompany},
		CompanyID: &companyID,
	}
}

func TestForUserOnlyRestrictsCompanyRole(t *testing.T) {
	secretariat := &models.User{ID: "u2", Roles: []models.Role{models.RoleSecretariat}}
	assert.False(t, ForUser(secretariat, false).Pending, "non-company roles are never pending")

	assert.False(t, ForUser(nil, false).Pending)

	assert.True(t, ForUser(companyUser("c1"), false).Pending)
	assert.False(t, ForUser(companyUser("c1"), true).Pending)
}

func TestPendingAllowList(t *testing.T) {
	r := ForUser(companyUser("c1"), false)

	allowed := []string{
		"/dashboard",
		"/dashboard/stats",
		"/profile",
		"/profile/sessions",
		"/companies",
		"/companies/create",
		"/companies/c1",
	}
	for _, path := range allowed {
		assert.True(t, r.Allowed(path), "expected %s allowed while pending", path)
	}

	blocked := []string{
		"/collaborators",
		"/dimonas",
		"/documents",
		"/notifications",
		"/admin",
		"/companies/c2",       // someone else's company
		"/companies/c1/stats", // nested under own company is still blocked
		"/dashboard-v2",
	}
	for _, path := range blocked {
		assert.False(t, r.Allowed(path), "expected %s blocked while pending", path)
	}
}

func TestConfirmedAccountUnrestricted(t *testing.T) {
	r := ForUser(companyUser("c1"), true)

	for _, path := range []string{"/collaborators", "/dimonas", "/admin", "/companies/c2"} {
		assert.True(t, r.Allowed(path))
	}
}
