package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"secretariat/api/internal/models"
)

type staticResolver struct {
	confirmed map[string]bool
	calls     int
}

func (r *staticResolver) IsConfirmed(_ context.Context, companyID string) bool {
	r.calls++
	return r.confirmed[companyID]
}

func pendingTestRouter(user models.User, resolver ConfirmationResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set("current_user", user)
	})
	engine.Use(PendingAccount("/api/v1", resolver))
	engine.NoRoute(func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func get(t *testing.T, engine *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func pendingUser(companyID string) models.User {
	return models.User{
		ID:        "u1",
		Roles:     []models.Role{models.RoleCompany},
		CompanyID: &companyID,
	}
}

func TestPendingAccountRedirectsBlockedRoutes(t *testing.T) {
	resolver := &staticResolver{confirmed: map[string]bool{}}
	engine := pendingTestRouter(pendingUser("c1"), resolver)

	rec := get(t, engine, "/api/v1/dimonas")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/api/v1/dashboard", rec.Header().Get("Location"))

	rec = get(t, engine, "/api/v1/collaborators")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
}

func TestPendingAccountAllowsListedRoutes(t *testing.T) {
	resolver := &staticResolver{confirmed: map[string]bool{}}
	engine := pendingTestRouter(pendingUser("c1"), resolver)

	for _, path := range []string{
		"/api/v1/dashboard",
		"/api/v1/profile",
		"/api/v1/profile/sessions",
		"/api/v1/companies",
		"/api/v1/companies/create",
		"/api/v1/companies/c1",
	} {
		rec := get(t, engine, path)
		assert.Equal(t, http.StatusOK, rec.Code, "expected %s to pass", path)
	}

	rec := get(t, engine, "/api/v1/companies/c2")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code, "another company's record stays blocked")
}

func TestPendingAccountConfirmedCompanyUnrestricted(t *testing.T) {
	resolver := &staticResolver{confirmed: map[string]bool{"c1": true}}
	engine := pendingTestRouter(pendingUser("c1"), resolver)

	rec := get(t, engine, "/api/v1/dimonas")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPendingAccountSkipsLookupForOtherRoles(t *testing.T) {
	resolver := &staticResolver{confirmed: map[string]bool{}}
	secretariat := models.User{ID: "u2", Roles: []models.Role{models.RoleSecretariat}}
	engine := pendingTestRouter(secretariat, resolver)

	rec := get(t, engine, "/api/v1/dimonas")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, resolver.calls, "no confirmation lookup for non-company roles")
}

func TestPendingAccountFailsClosedWithoutCompany(t *testing.T) {
	resolver := &staticResolver{confirmed: map[string]bool{}}
	user := models.User{ID: "u3", Roles: []models.Role{models.RoleCompany}}
	engine := pendingTestRouter(user, resolver)

	rec := get(t, engine, "/api/v1/dimonas")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Zero(t, resolver.calls, "no lookup without a company id")
}

func TestPendingAccountRejectsMissingUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(PendingAccount("/api/v1", &staticResolver{}))
	engine.NoRoute(func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := get(t, engine, "/api/v1/dashboard")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
