package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"

	// Service errors
	ErrCodeInternalError = "INTERNAL_ERROR"

	// Shift domain errors
	ErrCodeTemplateNotFound        = "TEMPLATE_NOT_FOUND"
	ErrCodeShiftTypeNotFound       = "SHIFT_TYPE_NOT_FOUND"
	ErrCodeTemplateVersionNotFound = "TEMPLATE_VERSION_NOT_FOUND"
	ErrCodeInvalidShiftType        = "INVALID_SHIFT_TYPE"
	ErrCodeDuplicateDate           = "DUPLICATE_DATE"
	ErrCodeNoValidVersionForDate   = "NO_VALID_VERSION_FOR_DATE"
	ErrCodeMaxShiftTypesExceeded   = "MAX_SHIFT_TYPES_EXCEEDED"
	ErrCodeDuplicateName           = "DUPLICATE_NAME"
	ErrCodeInUse                   = "IN_USE"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// NotFound sends a 404 response with a domain-specific code
func NotFound(c *gin.Context, code, message string) {
	if code == "" {
		code = ErrCodeNotFound
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(code, message))
}

// NotFoundWithDetails sends a 404 response with a domain code and details
func NotFoundWithDetails(c *gin.Context, code, message string, details interface{}) {
	RespondWithError(c, http.StatusNotFound, NewAPIErrorWithDetails(code, message, details))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// BadRequestWithCode sends a 400 response with a domain code and details
func BadRequestWithCode(c *gin.Context, code, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(code, message, details))
}

// Conflict sends a 409 response with a domain-specific code
func Conflict(c *gin.Context, code, message string) {
	if code == "" {
		code = ErrCodeConflict
	}
	RespondWithError(c, http.StatusConflict, NewAPIError(code, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}
