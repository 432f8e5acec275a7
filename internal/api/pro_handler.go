package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/fitness-center/internal/calc"
	"alcyxob/fitness-center/internal/service"
)

// ProHandler serves the Pro Trainer tools that need no account.
type ProHandler struct {
	catalog service.CatalogService
}

func NewProHandler(catalog service.CatalogService) *ProHandler {
	return &ProHandler{catalog: catalog}
}

// ComputeBMI godoc
// @Summary Compute body mass index
// @Tags Pro
// @Accept json
// @Produce json
// @Param input body calc.BMIInput true "Measurements as typed into the form"
// @Success 200 {object} calc.BMIResult
// @Failure 400 {object} gin.H "Missing or non-positive measurements"
// @Router /pro/bmi [post]
func (h *ProHandler) ComputeBMI(c *gin.Context) {
	var in calc.BMIInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	res, err := calc.ComputeBMI(in)
	if err != nil {
		respondError(c, "compute BMI", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Timetable returns the week, Monday first, with each day's classes.
func (h *ProHandler) Timetable(c *gin.Context) {
	days, err := h.catalog.Timetable(c.Request.Context())
	if err != nil {
		respondError(c, "load the timetable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": days})
}
