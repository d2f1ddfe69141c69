package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"secretariat/api/internal/models"
)

// RequireRoles gates a subtree on role membership. It sits inside the
// pending-account gate so a pending company account is redirected before
// this check ever runs.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		for _, role := range roles {
			if user.HasRole(role) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}
