package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"secretariat/api/internal/middleware"
	"secretariat/api/internal/models"
)

// Dashboard serves the landing-page aggregates. Secretariat and admin users
// get the portfolio-wide view; company users get figures for their own
// company only.
func (h HandlerSet) Dashboard(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if user.HasRole(models.RoleSecretariat) || user.HasRole(models.RoleAdmin) {
		result, err := h.statsService.Global(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"stats": result})
		return
	}

	if user.CompanyID == nil {
		c.JSON(http.StatusOK, gin.H{"stats": gin.H{}})
		return
	}

	result, err := h.statsService.ForCompany(c.Request.Context(), *user.CompanyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": result})
}
