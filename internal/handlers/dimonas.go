package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"secretariat/api/internal/middleware"
	"secretariat/api/internal/models"
	"secretariat/api/internal/repository"
	"secretariat/api/internal/service"
)

type createDimonaRequest struct {
	CompanyID      string     `json:"companyId" binding:"required"`
	CollaboratorID string     `json:"collaboratorId" binding:"required"`
	Type           string     `json:"type" binding:"required"`
	NationalNumber string     `json:"nationalNumber"`
	PeriodStart    time.Time  `json:"periodStart" binding:"required"`
	PeriodEnd      *time.Time `json:"periodEnd"`
}

type dimonaResponse struct {
	ID             string       `json:"id"`
	CompanyID      string       `json:"companyId"`
	CollaboratorID string       `json:"collaboratorId"`
	Type           string       `json:"type"`
	TypeBadge      models.Badge `json:"typeBadge"`
	Status         string       `json:"status"`
	StatusBadge    models.Badge `json:"statusBadge"`
	PeriodStart    time.Time    `json:"periodStart"`
	PeriodEnd      *time.Time   `json:"periodEnd,omitempty"`
	ONSSReference  string       `json:"onssReference,omitempty"`
	StatusReason   string       `json:"statusReason,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

func toDimonaResponse(dimona models.Dimona) dimonaResponse {
	return dimonaResponse{
		ID:             dimona.ID,
		CompanyID:      dimona.CompanyID,
		CollaboratorID: dimona.CollaboratorID,
		Type:           string(dimona.Type),
		TypeBadge:      models.DimonaTypeBadge(dimona.Type),
		Status:         string(dimona.Status),
		StatusBadge:    models.DimonaStatusBadge(dimona.Status),
		PeriodStart:    dimona.PeriodStart,
		PeriodEnd:      dimona.PeriodEnd,
		ONSSReference:  dimona.ONSSReference,
		StatusReason:   dimona.StatusReason,
		CreatedAt:      dimona.CreatedAt,
		UpdatedAt:      dimona.UpdatedAt,
	}
}

func toDimonaResponses(dimonas []models.Dimona) []dimonaResponse {
	resp := make([]dimonaResponse, 0, len(dimonas))
	for _, dimona := range dimonas {
		resp = append(resp, toDimonaResponse(dimona))
	}
	return resp
}

func (h HandlerSet) ListDimonas(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if !user.HasRole(models.RoleSecretariat) && !user.HasRole(models.RoleAdmin) {
		if user.CompanyID == nil {
			c.JSON(http.StatusOK, gin.H{"dimonas": []dimonaResponse{}})
			return
		}
		dimonas, err := h.dimonas.ListByCompany(c.Request.Context(), *user.CompanyID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"dimonas": toDimonaResponses(dimonas)})
		return
	}

	if status := c.Query("status"); status != "" {
		dimonas, err := h.dimonas.ListByStatus(c.Request.Context(), models.DimonaStatus(status))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"dimonas": toDimonaResponses(dimonas)})
		return
	}

	limit, offset := pagination(c)
	dimonas, err := h.dimonas.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dimonas": toDimonaResponses(dimonas)})
}

func (h HandlerSet) CreateDimona(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createDimonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !canAccessCompany(user, req.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	dimona, err := h.dimonaService.Create(c.Request.Context(), service.CreateDimonaInput{
		CompanyID:      req.CompanyID,
		CollaboratorID: req.CollaboratorID,
		Type:           models.DimonaType(req.Type),
		NationalNumber: req.NationalNumber,
		PeriodStart:    req.PeriodStart,
		PeriodEnd:      req.PeriodEnd,
	})
	if err != nil {
		c.JSON(validationStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"dimona": toDimonaResponse(dimona)})
}

func (h HandlerSet) GetDimona(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	dimona, err := h.dimonas.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrDimonaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dimona_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !canAccessCompany(user, dimona.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dimona": toDimonaResponse(dimona)})
}

type dimonaTransitionRequest struct {
	Reason        string `json:"reason"`
	ONSSReference string `json:"onssReference"`
}

func (h HandlerSet) ConfirmDimona(c *gin.Context) {
	h.transitionDimona(c, func(id string, req dimonaTransitionRequest) (models.Dimona, error) {
		return h.dimonaService.Confirm(c.Request.Context(), id, req.Reason)
	})
}

func (h HandlerSet) SendDimona(c *gin.Context) {
	h.transitionDimona(c, func(id string, req dimonaTransitionRequest) (models.Dimona, error) {
		return h.dimonaService.SendToONSS(c.Request.Context(), id, req.Reason)
	})
}

func (h HandlerSet) AcceptDimona(c *gin.Context) {
	h.transitionDimona(c, func(id string, req dimonaTransitionRequest) (models.Dimona, error) {
		return h.dimonaService.MarkAccepted(c.Request.Context(), id, req.ONSSReference, req.Reason)
	})
}

func (h HandlerSet) RejectDimona(c *gin.Context) {
	h.transitionDimona(c, func(id string, req dimonaTransitionRequest) (models.Dimona, error) {
		return h.dimonaService.MarkRejected(c.Request.Context(), id, req.Reason)
	})
}

func (h HandlerSet) ResendDimona(c *gin.Context) {
	h.transitionDimona(c, func(id string, req dimonaTransitionRequest) (models.Dimona, error) {
		return h.dimonaService.Resend(c.Request.Context(), id, req.Reason)
	})
}

// transitionDimona shares the access check and error mapping across the five
// workflow endpoints. Illegal moves come back as 409s so clients can tell a
// stale view from a broken request.
func (h HandlerSet) transitionDimona(c *gin.Context, apply func(id string, req dimonaTransitionRequest) (models.Dimona, error)) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id := c.Param("id")
	dimona, err := h.dimonas.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrDimonaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dimona_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !canAccessCompany(user, dimona.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var req dimonaTransitionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	updated, err := apply(id, req)
	if err != nil {
		if errors.Is(err, service.ErrIllegalTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dimona": toDimonaResponse(updated)})
}
