package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sonobay/sonobay-indexer/internal/logger"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeConflict         ErrorCode = "conflict"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnindexable      ErrorCode = "unindexable"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeServiceError  ErrorCode = "service_error"
)

// APIError represents a structured API error
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error APIError `json:"error"`
}

func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...string) {
	c.JSON(statusCode, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: message,
			Details: strings.Join(details, ", "),
		},
	})
}

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, ErrCodeBadRequest, message, details...)
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusNotFound, ErrCodeNotFound, message, details...)
}

func respondConflict(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusConflict, ErrCodeConflict, message, details...)
}

// respondUnprocessable responds when a token exists on chain but cannot be indexed
func respondUnprocessable(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusUnprocessableEntity, ErrCodeUnindexable, message, details...)
}

// respondInternalError responds with an internal server error and logs the cause
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.ErrorCtx(c.Request.Context(), err, fields...)
	respondWithError(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// respondServiceError responds when an upstream dependency failed
func respondServiceError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.ErrorCtx(c.Request.Context(), err, fields...)
	respondWithError(c, http.StatusBadGateway, ErrCodeServiceError, message, err.Error())
}
