package handlers

import (
	"net/http"

	apperrors "concept-graph/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps domain error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsInvalidInput(err):
		return http.StatusBadRequest
	case apperrors.IsMalformedGraph(err):
		return http.StatusUnprocessableEntity
	case apperrors.IsNotAdmin(err):
		return http.StatusForbidden
	case apperrors.IsNoSelection(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondWithDomainError maps a domain error to a status and returns its
// message to the client. Only unexpected (500) errors are logged as errors.
func respondWithDomainError(c *gin.Context, err error, logger *zap.Logger, fields ...zap.Field) {
	status := statusFor(err)
	if status == http.StatusInternalServerError && logger != nil {
		fields = append(fields, zap.Error(err))
		logger.Error("Request failed", fields...)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondWithClientError returns a client error (no logging needed for validation errors)
func respondWithClientError(c *gin.Context, statusCode int, userMessage string) {
	c.JSON(statusCode, gin.H{"error": userMessage})
}
