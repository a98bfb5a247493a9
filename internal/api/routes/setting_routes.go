package routes

import (
	"invoicesflow/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterSettingRoutes registers the settings endpoints. The storage
// directory read is additionally exposed to the document pipeline behind the
// API key.
func RegisterSettingRoutes(
	rg *gin.RouterGroup,
	settingHandler *handlers.SettingHandler,
	authMiddleware gin.HandlerFunc,
	apiKeyMiddleware gin.HandlerFunc,
) {
	settings := rg.Group("/settings")
	settings.Use(authMiddleware)
	{
		settings.GET("/storage-directory", settingHandler.StorageDirectory)
		settings.GET("/:name", settingHandler.Get)
		settings.PUT("/:name", settingHandler.Upsert)
	}

	pipeline := rg.Group("/pipeline/settings")
	pipeline.Use(apiKeyMiddleware)
	{
		pipeline.GET("/storage-directory", settingHandler.StorageDirectory)
	}
}
