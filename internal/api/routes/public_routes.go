package routes

import (
	"invoicesflow/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registers the token-gated endpoints. No session auth:
// the token in the body is the only credential.
func RegisterPublicRoutes(rg *gin.RouterGroup, publicHandler *handlers.PublicHandler) {
	public := rg.Group("/public")
	{
		public.POST("/confirm-payment", publicHandler.ConfirmPayment)
		public.POST("/validate-job-token", publicHandler.ValidateJobToken)
		public.POST("/submit-invoice", publicHandler.SubmitInvoice)
		public.POST("/invoice-received", publicHandler.InvoiceReceived)
		public.POST("/job-document-uploader-webhook", publicHandler.DocumentUploaderWebhook)
	}
}
