package routes

import (
	"invoicesflow/internal/api/handlers"
	"invoicesflow/internal/api/middleware"
	"invoicesflow/internal/app"
	"invoicesflow/internal/models"
	"invoicesflow/internal/services"
	"invoicesflow/internal/storage/cache"
	"invoicesflow/internal/storage/postgres"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires repositories, services and handlers and mounts every
// route group.
func RegisterRoutes(router *gin.Engine, app *app.Application) {

	apiV1 := router.Group("/api/v1")

	// Repositories
	jobRepo := postgres.NewJobRepo(app.DBPool)
	clientRepo := postgres.NewClientRepo(app.DBPool)
	campaignRepo := postgres.NewCampaignRepo(app.DBPool)
	providerRepo := postgres.NewProviderRepo(app.DBPool)
	managerRepo := postgres.NewManagerRepo(app.DBPool)
	companyRepo := postgres.NewCompanyRepo(app.DBPool)
	jobTypeRepo := postgres.NewJobTypeRepo(app.DBPool)
	settingRepo := postgres.NewSettingRepo(app.DBPool)
	userRepo := postgres.NewUserRepo(app.DBPool)
	invitationRepo := postgres.NewInvitationRepo(app.DBPool)

	// Shared infrastructure
	jobCache := cache.New(app.RedisClient, app.Config.Redis.TTL)
	notifier := services.NewWebhookNotifier(app.Config.Notify.WebhookURL, app.Config.Notify.InvitationURL)

	// Services
	jobService := services.NewJobService(jobRepo, userRepo, jobCache, notifier)
	clientService := services.NewClientService(clientRepo, jobCache)
	campaignService := services.NewCampaignService(campaignRepo, jobCache)
	providerService := services.NewProviderService(providerRepo, jobCache)
	managerService := services.NewManagerService(managerRepo, jobCache)
	companyService := services.NewCompanyService(companyRepo, jobCache)
	jobTypeService := services.NewJobTypeService(jobTypeRepo, jobCache)
	settingService := services.NewSettingService(settingRepo)
	userService := services.NewUserService(userRepo, app.Config.JWT.Secret, app.Config.JWT.Expiration)
	invitationService := services.NewInvitationService(invitationRepo, userService, notifier, app.Config.Notify.InviteBaseURL)

	// Handlers
	jobHandler := handlers.NewJobHandler(jobService, app.Validator)
	publicHandler := handlers.NewPublicHandler(jobService, app.Validator)
	clientHandler := handlers.NewClientHandler(clientService, app.Validator)
	campaignHandler := handlers.NewCampaignHandler(campaignService, app.Validator)
	providerHandler := handlers.NewProviderHandler(providerService, app.Validator)
	managerHandler := handlers.NewManagerHandler(managerService, app.Validator)
	companyHandler := handlers.NewCompanyHandler(companyService, app.Validator)
	jobTypeHandler := handlers.NewJobTypeHandler(jobTypeService, app.Validator)
	settingHandler := handlers.NewSettingHandler(settingService, app.Validator)
	userHandler := handlers.NewUserHandler(userService, app.Validator)
	invitationHandler := handlers.NewInvitationHandler(invitationService, app.Validator)

	// Middleware
	authMiddleware := middleware.JWTAuthMiddleware(app.Config.JWT.Secret)
	adminOnly := middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin)
	apiKeyMiddleware := middleware.APIKeyMiddleware(app.Config.APIKey)

	RegisterPublicRoutes(apiV1, publicHandler)
	RegisterJobRoutes(apiV1, jobHandler, authMiddleware, adminOnly, apiKeyMiddleware)
	RegisterEntityRoutes(apiV1, clientHandler, campaignHandler, providerHandler, managerHandler, companyHandler, jobTypeHandler, authMiddleware)
	RegisterSettingRoutes(apiV1, settingHandler, authMiddleware, apiKeyMiddleware)
	RegisterUserRoutes(apiV1, userHandler, invitationHandler, authMiddleware, adminOnly)

	apiV1.GET("/modal-state", handlers.ModalState)

	router.GET("/health", handlers.HealthCheck)
}
