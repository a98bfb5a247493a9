package handlers

import (
	"net/http"

	"invoicesflow/internal/services"
	"invoicesflow/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CampaignHandler holds dependencies for campaign operations.
type CampaignHandler struct {
	service   services.CampaignService
	validator *validator.Validate
}

// NewCampaignHandler creates a new CampaignHandler.
func NewCampaignHandler(service services.CampaignService, validate *validator.Validate) *CampaignHandler {
	return &CampaignHandler{service: service, validator: validate}
}

func (h *CampaignHandler) List(c *gin.Context) {
	// Optional client_id narrows the list to one client's campaigns.
	if clientIDStr := c.Query("client_id"); clientIDStr != "" {
		clientID, err := uuid.Parse(clientIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client_id format"})
			return
		}
		items, err := h.service.ListByClient(c.Request.Context(), clientID)
		if err != nil {
			respondServiceError(c, "ListCampaignsByClient", err)
			return
		}
		c.JSON(http.StatusOK, items)
		return
	}

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
		respondServiceError(c, "ListCampaigns", err)
		return
	}
	respondListView(c, items, campaignSearchFields, campaignActive)
}

func (h *CampaignHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID format"})
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "GetCampaignByID", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CampaignHandler) Create(c *gin.Context) {
	var req dto.CreateCampaignRequest
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
		respondServiceError(c, "CreateCampaign", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CampaignHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID format"})
		return
	}

	var req dto.UpdateCampaignRequest
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
		respondServiceError(c, "UpdateCampaign", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CampaignHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID format"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, "DeleteCampaign", err)
		return
	}
	c.Status(http.StatusNoContent)
}
