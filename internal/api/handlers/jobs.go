package handlers

import (
	"log"
	"net/http"

	"invoicesflow/internal/api/middleware"
	"invoicesflow/internal/services"
	"invoicesflow/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// JobHandler holds dependencies for job operations.
type JobHandler struct {
	jobService services.JobService
	validator  *validator.Validate
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService services.JobService, validate *validator.Validate) *JobHandler {
	return &JobHandler{jobService: jobService, validator: validate}
}

// CreateJob creates a job in draft status.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "CreateJob", err)
		return
	}
	c.JSON(http.StatusCreated, MapJobModelToJobResponse(job))
}

// GetJobByID retrieves a single job.
func (h *JobHandler) GetJobByID(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	job, err := h.jobService.GetJob(c.Request.Context(), jobID)
	if err != nil {
		respondServiceError(c, "GetJobByID", err)
		return
	}
	c.JSON(http.StatusOK, MapJobModelToJobResponse(job))
}

// ListJobs lists jobs with exact-match filters.
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}
	if req.Limit <= 0 {
		req.Limit = 50
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	jobs, err := h.jobService.ListJobs(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "ListJobs", err)
		return
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, MapJobModelToJobResponse(&jobs[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// ListActiveJobs returns every job whose status is neither draft nor paid.
// Exposed to the document pipeline behind the API key.
func (h *JobHandler) ListActiveJobs(c *gin.Context) {
	jobs, err := h.jobService.ListActiveJobs(c.Request.Context())
	if err != nil {
		respondServiceError(c, "ListActiveJobs", err)
		return
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, MapJobModelToJobResponse(&jobs[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetJobByInvoiceReference looks a job up by its INV- reference. Exposed to
// the document pipeline behind the API key.
func (h *JobHandler) GetJobByInvoiceReference(c *gin.Context) {
	ref := c.Param("ref")
	if ref == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invoice reference required"})
		return
	}

	job, err := h.jobService.GetJobByInvoiceReference(c.Request.Context(), ref)
	if err != nil {
		respondServiceError(c, "GetJobByInvoiceReference", err)
		return
	}
	c.JSON(http.StatusOK, MapJobModelToJobResponse(job))
}

// UpdateJob partially updates a job. Status and tokens cannot be changed
// through this endpoint.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ID = jobID
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "UpdateJob", err)
		return
	}
	c.JSON(http.StatusOK, MapJobModelToJobResponse(job))
}

// DeleteJob hard-deletes a job.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), jobID); err != nil {
		respondServiceError(c, "DeleteJob", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestInvoice moves a draft/active job to pending_invoice and notifies the
// automation service so it can email the provider link.
func (h *JobHandler) RequestInvoice(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("RequestInvoice: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	job, err := h.jobService.RequestInvoice(c.Request.Context(), jobID, userID)
	if err != nil {
		respondServiceError(c, "RequestInvoice", err)
		return
	}
	c.JSON(http.StatusOK, MapJobModelToJobResponse(job))
}

// ApproveJob moves pending_validation to pending_payment and issues the
// payment token.
func (h *JobHandler) ApproveJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	job, err := h.jobService.ApproveJob(c.Request.Context(), jobID)
	if err != nil {
		respondServiceError(c, "ApproveJob", err)
		return
	}
	c.JSON(http.StatusOK, MapJobModelToJobResponse(job))
}
