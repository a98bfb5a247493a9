package handlers

import (
	"net/http"

	"invoicesflow/internal/services"
	"invoicesflow/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CompanyHandler holds dependencies for company operations.
type CompanyHandler struct {
	service   services.CompanyService
	validator *validator.Validate
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(service services.CompanyService, validate *validator.Validate) *CompanyHandler {
	return &CompanyHandler{service: service, validator: validate}
}

func (h *CompanyHandler) List(c *gin.Context) {
	var req dto.ListEntitiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	items, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "ListCompanies", err)
		return
	}
	respondListView(c, items, companySearchFields, companyActive)
}

func (h *CompanyHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID format"})
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "GetCompanyByID", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	item, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "CreateCompany", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID format"})
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ID = id
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	item, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "UpdateCompany", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID format"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, "DeleteCompany", err)
		return
	}
	c.Status(http.StatusNoContent)
}
