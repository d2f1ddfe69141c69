package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"secretariat/api/internal/ids"
	"secretariat/api/internal/middleware"
	"secretariat/api/internal/models"
	"secretariat/api/internal/repository"
	"secretariat/api/internal/validate"
)

type collaboratorRequest struct {
	CompanyID      string     `json:"companyId" binding:"required"`
	FirstName      string     `json:"firstName" binding:"required"`
	LastName       string     `json:"lastName" binding:"required"`
	NationalNumber string     `json:"nationalNumber" binding:"required"`
	Type           string     `json:"type" binding:"required"`
	JobFunction    string     `json:"jobFunction"`
	EntryDate      time.Time  `json:"entryDate" binding:"required"`
	ExitDate       *time.Time `json:"exitDate"`
}

type collaboratorResponse struct {
	ID             string     `json:"id"`
	CompanyID      string     `json:"companyId"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	NationalNumber string     `json:"nationalNumber"`
	Type           string     `json:"type"`
	JobFunction    string     `json:"jobFunction"`
	EntryDate      time.Time  `json:"entryDate"`
	ExitDate       *time.Time `json:"exitDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func toCollaboratorResponse(collaborator models.Collaborator) collaboratorResponse {
	return collaboratorResponse{
		ID:             collaborator.ID,
		CompanyID:      collaborator.CompanyID,
		FirstName:      collaborator.FirstName,
		LastName:       collaborator.LastName,
		NationalNumber: collaborator.NationalNumber,
		Type:           string(collaborator.Type),
		JobFunction:    collaborator.JobFunction,
		EntryDate:      collaborator.EntryDate,
		ExitDate:       collaborator.ExitDate,
		CreatedAt:      collaborator.CreatedAt,
	}
}

func toCollaboratorResponses(collaborators []models.Collaborator) []collaboratorResponse {
	resp := make([]collaboratorResponse, 0, len(collaborators))
	for _, collaborator := range collaborators {
		resp = append(resp, toCollaboratorResponse(collaborator))
	}
	return resp
}

func parseCollaboratorType(value string) (models.CollaboratorType, bool) {
	for _, t := range models.CollaboratorTypes() {
		if string(t) == value {
			return t, true
		}
	}
	return "", false
}

func (h HandlerSet) ListCollaborators(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if !user.HasRole(models.RoleSecretariat) && !user.HasRole(models.RoleAdmin) {
		if user.CompanyID == nil {
			c.JSON(http.StatusOK, gin.H{"collaborators": []collaboratorResponse{}})
			return
		}
		collaborators, err := h.collaborators.ListByCompany(c.Request.Context(), *user.CompanyID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"collaborators": toCollaboratorResponses(collaborators)})
		return
	}

	limit, offset := pagination(c)
	collaborators, err := h.collaborators.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"collaborators": toCollaboratorResponses(collaborators)})
}

func (h HandlerSet) CreateCollaborator(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req collaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !canAccessCompany(user, req.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	collaboratorType, ok := parseCollaboratorType(req.Type)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_collaborator_type"})
		return
	}

	if err := validate.NationalNumber(req.NationalNumber); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collaborator := models.Collaborator{
		ID:             ids.New(),
		CompanyID:      req.CompanyID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		NationalNumber: req.NationalNumber,
		Type:           collaboratorType,
		JobFunction:    req.JobFunction,
		EntryDate:      req.EntryDate,
		ExitDate:       req.ExitDate,
	}

	if err := h.collaborators.Create(c.Request.Context(), collaborator); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	created, err := h.collaborators.GetByID(c.Request.Context(), collaborator.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"collaborator": toCollaboratorResponse(created)})
}

func (h HandlerSet) GetCollaborator(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	collaborator, err := h.collaborators.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrCollaboratorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "collaborator_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !canAccessCompany(user, collaborator.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"collaborator": toCollaboratorResponse(collaborator)})
}

func (h HandlerSet) UpdateCollaborator(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	collaborator, err := h.collaborators.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrCollaboratorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "collaborator_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !canAccessCompany(user, collaborator.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var req collaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collaboratorType, ok := parseCollaboratorType(req.Type)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_collaborator_type"})
		return
	}

	if err := validate.NationalNumber(req.NationalNumber); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collaborator.FirstName = req.FirstName
	collaborator.LastName = req.LastName
	collaborator.NationalNumber = req.NationalNumber
	collaborator.Type = collaboratorType
	collaborator.JobFunction = req.JobFunction
	collaborator.EntryDate = req.EntryDate
	collaborator.ExitDate = req.ExitDate

	if err := h.collaborators.Update(c.Request.Context(), collaborator); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.collaborators.GetByID(c.Request.Context(), collaborator.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"collaborator": toCollaboratorResponse(updated)})
}

func (h HandlerSet) DeleteCollaborator(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	collaborator, err := h.collaborators.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrCollaboratorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "collaborator_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !canAccessCompany(user, collaborator.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	if err := h.collaborators.Delete(c.Request.Context(), collaborator.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
