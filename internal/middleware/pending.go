package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"secretariat/api/internal/access"
	"secretariat/api/internal/models"
	"secretariat/api/internal/routes"
)

// ConfirmationResolver reports whether a company record has been confirmed.
// Implementations must fail closed: when the flag cannot be determined the
// answer is false and the restriction applies.
type ConfirmationResolver interface {
	IsConfirmed(ctx context.Context, companyID string) bool
}

// PendingAccount blocks restricted routes for company accounts whose company
// record is not confirmed yet. Blocked navigations are redirected to the
// dashboard; this is expected flow control, not an error, so no error body
// is returned. The decision is recomputed on every request.
func PendingAccount(apiPrefix string, resolver ConfirmationResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		// The lookup only happens for company-role users; everyone else is
		// unrestricted whatever the flag would say.
		confirmed := true
		if user.HasRole(models.RoleCompany) {
			confirmed = false
			if user.CompanyID != nil {
				confirmed = resolver.IsConfirmed(c.Request.Context(), *user.CompanyID)
			}
		}

		restriction := access.ForUser(&user, confirmed)
		path := logicalPath(apiPrefix, c.Request.URL.Path)
		if restriction.Allowed(path) {
			c.Next()
			return
		}

		c.Redirect(http.StatusTemporaryRedirect, apiPrefix+routes.Dashboard)
		c.Abort()
	}
}

// logicalPath strips the API prefix so guard matching happens on the same
// route paths the front end navigates with.
func logicalPath(apiPrefix, requestPath string) string {
	path := strings.TrimPrefix(requestPath, apiPrefix)
	return routes.Normalize(path)
}
