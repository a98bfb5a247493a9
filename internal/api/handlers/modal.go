package handlers

import (
	"net/http"

	"invoicesflow/internal/modal"

	"github.com/gin-gonic/gin"
)

// ModalState decodes the modal query parameters carried on the request URL
// and returns the parsed state. The SPA and emailed deep links share this
// parser so both agree on what a given URL opens.
func ModalState(c *gin.Context) {
	state := modal.Parse(c.Request.URL.Query())
	c.JSON(http.StatusOK, state)
}
