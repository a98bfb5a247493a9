package handlers

import (
	"errors"
	"log"
	"net/http"

	"invoicesflow/internal/services"
	"invoicesflow/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// PublicHandler serves the token-gated endpoints. No session auth: the token
// in the body is the sole credential, and every rejection looks the same.
type PublicHandler struct {
	jobService services.JobService
	validator  *validator.Validate
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(jobService services.JobService, validate *validator.Validate) *PublicHandler {
	return &PublicHandler{jobService: jobService, validator: validate}
}

// ConfirmPayment marks a pending_payment job as paid when the payment token
// matches.
func (h *PublicHandler) ConfirmPayment(c *gin.Context) {
	var req dto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ConfirmPaymentResponse{Error: "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ConfirmPaymentResponse{Error: "Invalid jobId or token"})
		return
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ConfirmPaymentResponse{Error: "Invalid jobId or token"})
		return
	}

	_, err = h.jobService.ConfirmPayment(c.Request.Context(), jobID, req.Token)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, dto.ConfirmPaymentResponse{Error: "Invalid or expired token"})
			return
		}
		log.Printf("ConfirmPayment: unexpected error for job %s: %v", jobID, err)
		c.JSON(http.StatusInternalServerError, dto.ConfirmPaymentResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.ConfirmPaymentResponse{Success: true, Message: "Payment confirmed"})
}

// ValidateJobToken checks a provider token before the invoice upload form is
// shown. A token presented after the due date demotes the job and reports
// expired.
func (h *PublicHandler) ValidateJobToken(c *gin.Context) {
	var req dto.ValidateJobTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid jobId or token"})
		return
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid jobId or token"})
		return
	}

	job, expired, err := h.jobService.ValidateJobToken(c.Request.Context(), jobID, req.Token)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, dto.ValidateJobTokenResponse{Valid: false})
			return
		}
		log.Printf("ValidateJobToken: unexpected error for job %s: %v", jobID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if expired {
		c.JSON(http.StatusOK, dto.ValidateJobTokenResponse{Valid: false, Expired: true})
		return
	}

	view := MapJobModelToPublicJobResponse(job)
	c.JSON(http.StatusOK, dto.ValidateJobTokenResponse{Valid: true, Job: &view})
}

// SubmitInvoice is the tokenized provider upload: pending_invoice moves to
// pending_validation and the document URL is stored.
func (h *PublicHandler) SubmitInvoice(c *gin.Context) {
	var req dto.SubmitInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid jobId or token"})
		return
	}

	job, err := h.jobService.SubmitInvoice(c.Request.Context(), jobID, req.Token, req.InvoiceURL)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		log.Printf("SubmitInvoice: unexpected error for job %s: %v", jobID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	view := MapJobModelToPublicJobResponse(job)
	c.JSON(http.StatusOK, dto.InvoiceReceivedResponse{Message: "Invoice received", Job: &view})
}

// InvoiceReceived records a submitted invoice looked up by invoice reference.
// Used by the document pipeline, which never holds the public token.
func (h *PublicHandler) InvoiceReceived(c *gin.Context) {
	var req dto.InvoiceReceivedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	job, err := h.jobService.InvoiceReceived(c.Request.Context(), req.InvoiceReference, req.InvoiceURL)
	if err != nil {
		respondServiceError(c, "InvoiceReceived", err)
		return
	}

	view := MapJobModelToPublicJobResponse(job)
	c.JSON(http.StatusOK, dto.InvoiceReceivedResponse{Message: "Invoice received", Job: &view})
}

// DocumentUploaderWebhook forwards the uploader payload to the automation
// webhook. All four fields are required; forwarding failure is a 502.
func (h *PublicHandler) DocumentUploaderWebhook(c *gin.Context) {
	var req dto.DocumentUploadedWebhook
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	if err := h.jobService.ForwardDocumentUpload(c.Request.Context(), &req); err != nil {
		log.Printf("DocumentUploaderWebhook: forward failed for job %s: %v", req.JobID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to forward document event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Forwarded"})
}
