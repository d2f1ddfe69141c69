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

type requestDocumentRequest struct {
	CompanyID string `json:"companyId" binding:"required"`
	Kind      string `json:"kind" binding:"required"`
	DimonaID  string `json:"dimonaId"`
	SubjectID string `json:"subjectId"`
}

type documentResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toDocumentResponse(document models.Document) documentResponse {
	return documentResponse{
		ID:        document.ID,
		CompanyID: document.CompanyID,
		Kind:      string(document.Kind),
		Status:    string(document.Status),
		CreatedAt: document.CreatedAt,
		UpdatedAt: document.UpdatedAt,
	}
}

func (h HandlerSet) RequestDocument(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req requestDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !canAccessCompany(user, req.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	document, err := h.documentService.Request(c.Request.Context(), service.RequestDocumentInput{
		CompanyID:   req.CompanyID,
		RequesterID: user.ID,
		Kind:        models.DocumentKind(req.Kind),
		DimonaID:    req.DimonaID,
		SubjectID:   req.SubjectID,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"document": toDocumentResponse(document)})
}

func (h HandlerSet) GetDocument(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	document, err := h.documentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !canAccessCompany(user, document.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": toDocumentResponse(document)})
}

func (h HandlerSet) DownloadDocument(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id := c.Param("id")
	document, err := h.documentService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !canAccessCompany(user, document.CompanyID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	if document.Status != models.DocumentStatusReady {
		c.JSON(http.StatusConflict, gin.H{"error": "document_not_ready"})
		return
	}

	url, err := h.documentService.DownloadURL(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h HandlerSet) ListCompanyDocuments(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id := c.Param("id")
	if !canAccessCompany(user, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	documents, err := h.documentService.ListByCompany(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]documentResponse, 0, len(documents))
	for _, document := range documents {
		resp = append(resp, toDocumentResponse(document))
	}
	c.JSON(http.StatusOK, gin.H{"documents": resp})
}
