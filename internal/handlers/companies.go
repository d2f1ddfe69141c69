package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"secretariat/api/internal/middleware"
	"secretariat/api/internal/models"
	"secretariat/api/internal/repository"
	"secretariat/api/internal/service"
	"secretariat/api/internal/validate"
)

type companyRequest struct {
	Name       string `json:"name" binding:"required"`
	BCENumber  string `json:"bceNumber" binding:"required"`
	ONSSNumber string `json:"onssNumber"`
	VATNumber  string `json:"vatNumber"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

type companyResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	BCENumber  string    `json:"bceNumber"`
	ONSSNumber string    `json:"onssNumber"`
	VATNumber  string    `json:"vatNumber"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	PostalCode string    `json:"postalCode"`
	Confirmed  bool      `json:"confirmed"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toCompanyResponse(company models.Company) companyResponse {
	return companyResponse{
		ID:         company.ID,
		Name:       company.Name,
		BCENumber:  company.BCENumber,
		ONSSNumber: company.ONSSNumber,
		VATNumber:  company.VATNumber,
		Address:    company.Address,
		City:       company.City,
		PostalCode: company.PostalCode,
		Confirmed:  company.Confirmed,
		CreatedAt:  company.CreatedAt,
	}
}

func (h HandlerSet) ListCompanies(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	// Company accounts only ever see their own record.
	if !user.HasRole(models.RoleSecretariat) && !user.HasRole(models.RoleAdmin) {
		if user.CompanyID == nil {
			c.JSON(http.StatusOK, gin.H{"companies": []companyResponse{}})
			return
		}
		company, err := h.companies.GetByID(c.Request.Context(), *user.CompanyID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"companies": []companyResponse{toCompanyResponse(company)}})
		return
	}

	limit, offset := pagination(c)
	companies, err := h.companies.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]companyResponse, 0, len(companies))
	for _, company := range companies {
		resp = append(resp, toCompanyResponse(company))
	}
	c.JSON(http.StatusOK, gin.H{"companies": resp})
}

func (h HandlerSet) CreateCompany(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), service.CompanyInput{
		Name:       req.Name,
		BCENumber:  req.BCENumber,
		ONSSNumber: req.ONSSNumber,
		VATNumber:  req.VATNumber,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		c.JSON(validationStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"company": toCompanyResponse(company)})
}

func (h HandlerSet) GetCompany(c *gin.Context) {
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

	company, err := h.companies.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "company_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": toCompanyResponse(company)})
}

func (h HandlerSet) UpdateCompany(c *gin.Context) {
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

	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), id, service.CompanyInput{
		Name:       req.Name,
		BCENumber:  req.BCENumber,
		ONSSNumber: req.ONSSNumber,
		VATNumber:  req.VATNumber,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "company_not_found"})
			return
		}
		c.JSON(validationStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": toCompanyResponse(company)})
}

func (h HandlerSet) ConfirmCompany(c *gin.Context) {
	id := c.Param("id")
	if err := h.companyService.Confirm(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "company_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h HandlerSet) CompanyStats(c *gin.Context) {
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

	result, err := h.statsService.ForCompany(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": result})
}

func (h HandlerSet) ListCompanyCollaborators(c *gin.Context) {
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

	collaborators, err := h.collaborators.ListByCompany(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"collaborators": toCollaboratorResponses(collaborators)})
}

func (h HandlerSet) ListCompanyDimonas(c *gin.Context) {
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

	dimonas, err := h.dimonas.ListByCompany(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dimonas": toDimonaResponses(dimonas)})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 50
	offset = 0

	if perPage := c.Query("perPage"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}
	if page := c.Query("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 1 {
			offset = (v - 1) * limit
		}
	}
	return limit, offset
}

// validationStatus distinguishes local validation failures from everything
// else so malformed identifiers come back as 400s.
func validationStatus(err error) int {
	switch {
	case errors.Is(err, validate.ErrInvalidBCENumber),
		errors.Is(err, validate.ErrInvalidONSSNumber),
		errors.Is(err, validate.ErrInvalidVATNumber),
		errors.Is(err, validate.ErrInvalidNationalNumber):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
