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

// UserHandler holds dependencies for user operations.
type UserHandler struct {
	userService services.UserService
	validator   *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{userService: userService, validator: validate}
}

// CreateUser provisions a new staff account: identity, profile and role rows.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "CreateUser", err)
		return
	}
	c.JSON(http.StatusCreated, MapUserModelToUserResponse(user))
}

// Login authenticates a staff user and returns a signed bearer token.
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	user, token, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "Login", err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: MapUserModelToUserResponse(user)})
}

// Me returns the authenticated user's own record.
func (h *UserHandler) Me(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Me: Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, "Me", err)
		return
	}
	c.JSON(http.StatusOK, MapUserModelToUserResponse(user))
}
