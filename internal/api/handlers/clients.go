package handlers

import (
	"net/http"

	"invoicesflow/internal/services"
	"invoicesflow/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ClientHandler holds dependencies for client operations.
type ClientHandler struct {
	service   services.ClientService
	validator *validator.Validate
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(service services.ClientService, validate *validator.Validate) *ClientHandler {
	return &ClientHandler{service: service, validator: validate}
}

func (h *ClientHandler) List(c *gin.Context) {
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
		respondServiceError(c, "ListClients", err)
		return
	}
	respondListView(c, items, clientSearchFields, clientActive)
}

func (h *ClientHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID format"})
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "GetClientByID", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
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
		respondServiceError(c, "CreateClient", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID format"})
		return
	}

	var req dto.UpdateClientRequest
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
		respondServiceError(c, "UpdateClient", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID format"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, "DeleteClient", err)
		return
	}
	c.Status(http.StatusNoContent)
}
