package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/allisson/keywhiz-core/internal/crypto/domain"
	apperrors "github.com/allisson/keywhiz-core/internal/errors"
)

// HandleErrorGin maps domain errors to HTTP status codes and writes an
// appropriate JSON response on a gin.Context, mirroring HandleError except
// that ErrForbidden is written as 404 not_found rather than 403.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorResponse = ErrorResponse{Error: "not_found", Message: "The requested resource was not found"}

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		errorResponse = ErrorResponse{Error: "conflict", Message: "A conflict occurred with existing data"}

	case apperrors.Is(err, cryptoDomain.ErrCryptoIntegrity):
		// Never a 4xx: an AEAD tag/AAD mismatch means tampered or corrupted
		// ciphertext, not a malformed request. Always alert-worthy.
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{Error: "internal_error", Message: "An internal error occurred"}
		if logger != nil {
			logger.Error("crypto integrity check failed", slog.Any("error", err))
		}
		c.JSON(statusCode, errorResponse)
		return

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		errorResponse = ErrorResponse{Error: "invalid_input", Message: err.Error()}

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errorResponse = ErrorResponse{Error: "unauthorized", Message: "Authentication is required"}

	case apperrors.Is(err, apperrors.ErrForbidden):
		// Forbidden is rewritten to not_found at the boundary to avoid
		// confirming a secret or group's existence to an unauthorized caller.
		statusCode = http.StatusNotFound
		errorResponse = ErrorResponse{Error: "not_found", Message: "The requested resource was not found"}

	default:
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{Error: "internal_error", Message: "An internal error occurred"}
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleValidationErrorGin writes a 400 Bad Request JSON response for
// validation errors on a gin.Context.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: err.Error()})
}
