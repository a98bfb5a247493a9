package routes

import (
	"invoicesflow/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers staff job CRUD, the workflow transitions, and
// the API-key reads used by the document pipeline.
func RegisterJobRoutes(
	rg *gin.RouterGroup,
	jobHandler *handlers.JobHandler,
	authMiddleware gin.HandlerFunc,
	adminOnly gin.HandlerFunc,
	apiKeyMiddleware gin.HandlerFunc,
) {
	// Machine-to-machine reads come first so /jobs/active is not shadowed by
	// the :id route.
	pipeline := rg.Group("/jobs")
	pipeline.Use(apiKeyMiddleware)
	{
		pipeline.GET("/active", jobHandler.ListActiveJobs)
		pipeline.GET("/by-invoice-reference/:ref", jobHandler.GetJobByInvoiceReference)
	}

	jobs := rg.Group("/jobs")
	jobs.Use(authMiddleware)
	{
		jobs.GET("/", jobHandler.ListJobs)
		jobs.POST("/", jobHandler.CreateJob)
		jobs.GET("/:id", jobHandler.GetJobByID)
		jobs.PATCH("/:id", jobHandler.UpdateJob)
		jobs.DELETE("/:id", jobHandler.DeleteJob)

		// The role claim gate is a fast path; RequestInvoice re-checks the
		// role table before transitioning.
		jobs.POST("/:id/request-invoice", adminOnly, jobHandler.RequestInvoice)
		jobs.POST("/:id/approve", adminOnly, jobHandler.ApproveJob)
	}
}
