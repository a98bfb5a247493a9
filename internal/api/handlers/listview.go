package handlers

import (
	"net/http"
	"strconv"

	"invoicesflow/internal/listing"
	"invoicesflow/internal/models"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 20

// respondListView applies the optional in-memory list-view parameters
// (search, status_filter, page, page_size) on top of a repository result and
// writes the response. Without any of them the raw slice is returned, so
// plain API consumers keep the flat shape.
func respondListView[T any](c *gin.Context, items []T, fields func(T) []string, active func(T) bool) {
	search := c.Query("search")
	status := c.DefaultQuery("status_filter", listing.StatusAll)
	pageStr := c.Query("page")

	if search == "" && pageStr == "" && status == listing.StatusAll {
		c.JSON(http.StatusOK, items)
		return
	}

	filtered := listing.Filter(items, search, status, fields, active)
	if pageStr == "" {
		c.JSON(http.StatusOK, filtered)
		return
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return
	}
	pageSize := defaultPageSize
	if sizeStr := c.Query("page_size"); sizeStr != "" {
		pageSize, err = strconv.Atoi(sizeStr)
		if err != nil || pageSize < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page_size parameter"})
			return
		}
	}

	c.JSON(http.StatusOK, listing.Paginate(filtered, page, pageSize))
}

// Per-entity search fields, matching what the list views expose.

func clientSearchFields(x models.Client) []string {
	return []string{x.Name, x.Email, x.ID.String()}
}
func clientActive(x models.Client) bool { return x.Active }

func campaignSearchFields(x models.Campaign) []string {
	return []string{x.Name, x.ID.String()}
}
func campaignActive(x models.Campaign) bool { return x.Active }

func providerSearchFields(x models.Provider) []string {
	return []string{x.Name, x.Email, x.ID.String()}
}
func providerActive(x models.Provider) bool { return x.Active }

func managerSearchFields(x models.Manager) []string {
	return []string{x.Name, x.Email, x.ID.String()}
}
func managerActive(x models.Manager) bool { return x.Active }

func companySearchFields(x models.Company) []string {
	return []string{x.Name, x.ID.String()}
}
func companyActive(x models.Company) bool { return x.Active }

func jobTypeSearchFields(x models.JobType) []string {
	return []string{x.Name, x.ID.String()}
}
func jobTypeActive(x models.JobType) bool { return x.Active }
