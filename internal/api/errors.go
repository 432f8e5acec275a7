package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/fitness-center/internal/calc"
	"alcyxob/fitness-center/internal/repository"
	"alcyxob/fitness-center/internal/service"
	"alcyxob/fitness-center/internal/storage"
)

// statusFor maps service and repository errors to HTTP status codes.
func statusFor(err error) int {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConfirmationRequired):
		return http.StatusPreconditionRequired
	case errors.Is(err, service.ErrSubmitInProgress),
		errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrWorkoutNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAuthenticationFailed),
		errors.Is(err, service.ErrSessionClosed):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrInvalidID),
		errors.Is(err, calc.ErrInvalidMeasurement),
		errors.Is(err, calc.ErrUnsupportedUnits),
		errors.Is(err, calc.ErrUnsupportedCurrency),
		errors.Is(err, storage.ErrUnsupportedFolder),
		errors.Is(err, storage.ErrUnsupportedContentType):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNoData):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": msg}. Validation failures also list the
// invalid fields. Internal errors are logged and not echoed.
func respondError(c *gin.Context, op string, err error) {
	code := statusFor(err)
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(code, gin.H{"error": err.Error(), "fields": verr.Errors})
	case code == http.StatusInternalServerError:
		log.Printf("ERROR: %s: %v", op, err)
		abortWithError(c, code, "An unexpected error occurred while trying to "+op)
	default:
		if code == http.StatusServiceUnavailable {
			log.Printf("WARN: %s: %v", op, err)
		}
		abortWithError(c, code, err.Error())
	}
}
