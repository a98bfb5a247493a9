package handlers

import (
	"net/http"

	"invoicesflow/internal/services"
	"invoicesflow/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ManagerHandler holds dependencies for manager operations.
type ManagerHandler struct {
	service   services.ManagerService
	validator *validator.Validate
}

// NewManagerHandler creates a new ManagerHandler.
func NewManagerHandler(service services.ManagerService, validate *validator.Validate) *ManagerHandler {
	return &ManagerHandler{service: service, validator: validate}
}

func (h *ManagerHandler) List(c *gin.Context) {
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
		respondServiceError(c, "ListManagers", err)
		return
	}
	respondListView(c, items, managerSearchFields, managerActive)
}

func (h *ManagerHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid manager ID format"})
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "GetManagerByID", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ManagerHandler) Create(c *gin.Context) {
	var req dto.CreateManagerRequest
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
		respondServiceError(c, "CreateManager", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ManagerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid manager ID format"})
		return
	}

	var req dto.UpdateManagerRequest
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
		respondServiceError(c, "UpdateManager", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ManagerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid manager ID format"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, "DeleteManager", err)
		return
	}
	c.Status(http.StatusNoContent)
}
