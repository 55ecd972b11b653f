package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusForError maps ledger error kinds to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrInvalidType):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConcurrentModification),
		errors.Is(err, apperrors.ErrAlreadyApplied),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidStatus),
		errors.Is(err, apperrors.ErrInvalidStatusTransition),
		errors.Is(err, apperrors.ErrGracePeriodNotElapsed),
		errors.Is(err, apperrors.ErrFeatureDisabled),
		errors.Is(err, apperrors.ErrZeroFee):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes the error response for err. Business errors carry their message;
// anything unrecognised is logged and reported with the generic fallback message only.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}

// requireUser returns the authenticated user, writing a 401 when there is none.
func requireUser(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
