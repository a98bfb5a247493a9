package handlers

import (
	"log"
	"net/http"

	"invoicesflow/internal/api/middleware"
	"invoicesflow/internal/services"
	"invoicesflow/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// InvitationHandler holds dependencies for invitation operations.
type InvitationHandler struct {
	invitationService services.InvitationService
	validator         *validator.Validate
}

// NewInvitationHandler creates a new InvitationHandler.
func NewInvitationHandler(invitationService services.InvitationService, validate *validator.Validate) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService, validator: validate}
}

// Send creates a pending invitation and hands the signup link to the mail
// webhook.
func (h *InvitationHandler) Send(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("SendInvitation: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SendInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.CreatedBy = userID
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	inv, err := h.invitationService.Send(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "SendInvitation", err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// Accept consumes a pending invitation token and provisions the invited
// account. Unauthenticated: the token is the credential.
func (h *InvitationHandler) Accept(c *gin.Context) {
	var req dto.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	user, err := h.invitationService.Accept(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "AcceptInvitation", err)
		return
	}
	c.JSON(http.StatusCreated, MapUserModelToUserResponse(user))
}
