package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"secretariat/api/internal/models"
	"secretariat/api/internal/repository"
)

func (h HandlerSet) AdminListUsers(c *gin.Context) {
	limit, offset := pagination(c)
	users, err := h.users.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, toUserResponse(user))
	}
	c.JSON(http.StatusOK, gin.H{"users": resp})
}

type setUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h HandlerSet) AdminSetUserStatus(c *gin.Context) {
	var req setUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.AccountStatus(req.Status)
	valid := false
	for _, s := range models.AccountStatuses() {
		if s == status {
			valid = true
			break
		}
	}
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_account_status"})
		return
	}

	id := c.Param("id")
	if err := h.users.UpdateAccountStatus(c.Request.Context(), id, status); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}
