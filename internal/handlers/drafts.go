package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"secretariat/api/internal/middleware"
)

type saveDraftRequest struct {
	Value string `json:"value"`
}

func (h HandlerSet) GetDraftNote(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	value, updatedAt, err := h.draftStore.Load(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"value": value, "updatedAt": updatedAt})
}

// SaveDraftNote acknowledges immediately; the store coalesces rapid saves
// and persists the last value once input pauses.
func (h HandlerSet) SaveDraftNote(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req saveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.draftStore.Save(user.ID, req.Value)
	c.Status(http.StatusAccepted)
}

func (h HandlerSet) ClearDraftNote(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.draftStore.Clear(c.Request.Context(), user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
