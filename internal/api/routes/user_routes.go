package routes

import (
	"invoicesflow/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers auth, user provisioning and invitation routes.
func RegisterUserRoutes(
	rg *gin.RouterGroup,
	userHandler *handlers.UserHandler,
	invitationHandler *handlers.InvitationHandler,
	authMiddleware gin.HandlerFunc,
	adminOnly gin.HandlerFunc,
) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", userHandler.Login)
	}

	users := rg.Group("/users")
	{
		users.GET("/me", authMiddleware, userHandler.Me)
		users.POST("/", authMiddleware, adminOnly, userHandler.CreateUser)
	}

	invitations := rg.Group("/invitations")
	{
		invitations.POST("/", authMiddleware, adminOnly, invitationHandler.Send)
		// Accepting is unauthenticated: the emailed token is the credential.
		invitations.POST("/accept", invitationHandler.Accept)
	}
}
