package routes

import (
	"invoicesflow/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterEntityRoutes registers CRUD routes for the six reference entities.
func RegisterEntityRoutes(
	rg *gin.RouterGroup,
	clientHandler *handlers.ClientHandler,
	campaignHandler *handlers.CampaignHandler,
	providerHandler *handlers.ProviderHandler,
	managerHandler *handlers.ManagerHandler,
	companyHandler *handlers.CompanyHandler,
	jobTypeHandler *handlers.JobTypeHandler,
	authMiddleware gin.HandlerFunc,
) {
	clients := rg.Group("/clients")
	clients.Use(authMiddleware)
	{
		clients.GET("/", clientHandler.List)
		clients.POST("/", clientHandler.Create)
		clients.GET("/:id", clientHandler.GetByID)
		clients.PATCH("/:id", clientHandler.Update)
		clients.DELETE("/:id", clientHandler.Delete)
	}

	campaigns := rg.Group("/campaigns")
	campaigns.Use(authMiddleware)
	{
		campaigns.GET("/", campaignHandler.List)
		campaigns.POST("/", campaignHandler.Create)
		campaigns.GET("/:id", campaignHandler.GetByID)
		campaigns.PATCH("/:id", campaignHandler.Update)
		campaigns.DELETE("/:id", campaignHandler.Delete)
	}

	providers := rg.Group("/providers")
	providers.Use(authMiddleware)
	{
		providers.GET("/", providerHandler.List)
		providers.POST("/", providerHandler.Create)
		providers.GET("/:id", providerHandler.GetByID)
		providers.PATCH("/:id", providerHandler.Update)
		providers.DELETE("/:id", providerHandler.Delete)
	}

	managers := rg.Group("/managers")
	managers.Use(authMiddleware)
	{
		managers.GET("/", managerHandler.List)
		managers.POST("/", managerHandler.Create)
		managers.GET("/:id", managerHandler.GetByID)
		managers.PATCH("/:id", managerHandler.Update)
		managers.DELETE("/:id", managerHandler.Delete)
	}

	companies := rg.Group("/companies")
	companies.Use(authMiddleware)
	{
		companies.GET("/", companyHandler.List)
		companies.POST("/", companyHandler.Create)
		companies.GET("/:id", companyHandler.GetByID)
		companies.PATCH("/:id", companyHandler.Update)
		companies.DELETE("/:id", companyHandler.Delete)
	}

	jobTypes := rg.Group("/job-types")
	jobTypes.Use(authMiddleware)
	{
		jobTypes.GET("/", jobTypeHandler.List)
		jobTypes.POST("/", jobTypeHandler.Create)
		jobTypes.GET("/:id", jobTypeHandler.GetByID)
		jobTypes.PATCH("/:id", jobTypeHandler.Update)
		jobTypes.DELETE("/:id", jobTypeHandler.Delete)
	}
}
