package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/fitness-center/internal/service"
)

// CatalogHandler serves the public pages. None of its routes need a token.
type CatalogHandler struct {
	catalog service.CatalogService
}

func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GetData godoc
// @Summary Fetch one entity's records
// @Description Reads trainers, meal-plans, schedules or memberships from the first data source that answers.
// @Tags Catalog
// @Produce json
// @Param type query string true "trainers | meal-plans | schedules | memberships"
// @Success 200 {object} gin.H "{data: [...]}"
// @Failure 500 {object} gin.H "Invalid data type requested / Failed to fetch data"
// @Router /api/data [get]
func (h *CatalogHandler) GetData(c *gin.Context) {
	data, err := h.catalog.Data(c.Request.Context(), c.Query("type"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownDataType) {
			abortWithError(c, http.StatusInternalServerError, "Invalid data type requested")
			return
		}
		log.Printf("ERROR: /api/data type=%q: %v", c.Query("type"), err)
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch data")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// The page handlers below never fail the request: when no store answers
// they serve the built-in records, flagged with fallback and the error.

func (h *CatalogHandler) ListTrainers(c *gin.Context) {
	trainers, err := h.catalog.Trainers(c.Request.Context())
	if err != nil {
		respondFallback(c, "trainers", h.catalog.FallbackTrainers(), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": trainers})
}

func (h *CatalogHandler) ListMemberships(c *gin.Context) {
	plans, err := h.catalog.Memberships(c.Request.Context())
	if err != nil {
		respondFallback(c, "memberships", h.catalog.FallbackMemberships(), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plans})
}

// ListMealPlans accepts an optional ?category= filter.
func (h *CatalogHandler) ListMealPlans(c *gin.Context) {
	category := c.Query("category")
	plans, err := h.catalog.MealPlans(c.Request.Context(), category)
	if err != nil {
		respondFallback(c, "meal plans", h.catalog.FallbackMealPlans(category), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plans})
}

func (h *CatalogHandler) ListSchedules(c *gin.Context) {
	schedules, err := h.catalog.Schedules(c.Request.Context())
	if err != nil {
		respondFallback(c, "schedules", h.catalog.FallbackSchedules(), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": schedules})
}

func respondFallback(c *gin.Context, what string, data any, err error) {
	log.Printf("WARN: Serving built-in %s: %v", what, err)
	c.JSON(http.StatusOK, gin.H{
		"data":     data,
		"fallback": true,
		"error":    "Failed to load " + what + ", showing default data",
	})
}
