package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/fitness-center/internal/service"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService // nil when the document store is disabled
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

func (h *ExerciseHandler) available(c *gin.Context) bool {
	if h.exerciseService == nil {
		abortWithError(c, http.StatusServiceUnavailable, "Exercise logging is not available")
		return false
	}
	return true
}

// ListOptions returns the exercises the logger offers, per category.
func (h *ExerciseHandler) ListOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": service.ExerciseCatalog})
}

// LogExercise godoc
// @Summary Log an exercise in today's workout
// @Description Strength entries need sets and reps; other categories need a duration.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body service.ExerciseForm true "Exercise as typed into the logger"
// @Success 201 {object} domain.ExerciseLog
// @Failure 400 {object} gin.H "Validation error"
// @Router /pro/exercises [post]
func (h *ExerciseHandler) LogExercise(c *gin.Context) {
	if !h.available(c) {
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	var form service.ExerciseForm
	if err := c.ShouldBindJSON(&form); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	entry, err := h.exerciseService.Log(c.Request.Context(), userID, form)
	if err != nil {
		respondError(c, "log the exercise", err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetHistory returns the caller's workouts, newest first.
func (h *ExerciseHandler) GetHistory(c *gin.Context) {
	if !h.available(c) {
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	workouts, err := h.exerciseService.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "load workout history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": workouts})
}

// DeleteEntry removes one logged exercise.
func (h *ExerciseHandler) DeleteEntry(c *gin.Context) {
	if !h.available(c) {
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	if err := h.exerciseService.DeleteEntry(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, "delete the exercise", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteWorkout removes every exercise logged on :date (YYYY-MM-DD).
func (h *ExerciseHandler) DeleteWorkout(c *gin.Context) {
	if !h.available(c) {
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	if err := h.exerciseService.DeleteWorkout(c.Request.Context(), userID, c.Param("date")); err != nil {
		respondError(c, "delete the workout", err)
		return
	}
	c.Status(http.StatusNoContent)
}
