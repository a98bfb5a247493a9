package handlers

import (
	"net/http"

	"invoicesflow/internal/services"
	"invoicesflow/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// JobTypeHandler holds dependencies for job type operations.
type JobTypeHandler struct {
	service   services.JobTypeService
	validator *validator.Validate
}

// NewJobTypeHandler creates a new JobTypeHandler.
func NewJobTypeHandler(service services.JobTypeService, validate *validator.Validate) *JobTypeHandler {
	return &JobTypeHandler{service: service, validator: validate}
}

func (h *JobTypeHandler) List(c *gin.Context) {
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
		respondServiceError(c, "ListJobTypes", err)
		return
	}
	respondListView(c, items, jobTypeSearchFields, jobTypeActive)
}

func (h *JobTypeHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job type ID format"})
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "GetJobTypeByID", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *JobTypeHandler) Create(c *gin.Context) {
	var req dto.CreateJobTypeRequest
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
		respondServiceError(c, "CreateJobType", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *JobTypeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job type ID format"})
		return
	}

	var req dto.UpdateJobTypeRequest
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
		respondServiceError(c, "UpdateJobType", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *JobTypeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job type ID format"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, "DeleteJobType", err)
		return
	}
	c.Status(http.StatusNoContent)
}
