package handlers

import (
	"net/http"

	"invoicesflow/internal/services"
	"invoicesflow/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// SettingHandler holds dependencies for settings operations.
type SettingHandler struct {
	settingService services.SettingService
	validator      *validator.Validate
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(settingService services.SettingService, validate *validator.Validate) *SettingHandler {
	return &SettingHandler{settingService: settingService, validator: validate}
}

// Get returns a setting by name.
func (h *SettingHandler) Get(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Setting name required"})
		return
	}

	setting, err := h.settingService.Get(c.Request.Context(), name)
	if err != nil {
		respondServiceError(c, "GetSetting", err)
		return
	}
	c.JSON(http.StatusOK, setting)
}

// Upsert writes a setting value by name.
func (h *SettingHandler) Upsert(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Setting name required"})
		return
	}

	var req dto.UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	setting, err := h.settingService.Upsert(c.Request.Context(), name, req.Value)
	if err != nil {
		respondServiceError(c, "UpsertSetting", err)
		return
	}
	c.JSON(http.StatusOK, setting)
}

// StorageDirectory returns the document storage directory identifier shared
// with the document pipeline. Empty string when never configured.
func (h *SettingHandler) StorageDirectory(c *gin.Context) {
	dir, err := h.settingService.StorageDirectory(c.Request.Context())
	if err != nil {
		respondServiceError(c, "StorageDirectory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"directory": dir})
}
