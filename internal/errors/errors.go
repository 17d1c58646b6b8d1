package errors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError describes one rejected field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors represents multiple validation errors
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Error codes shared by the API and the problem type mapping
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeNotFound          = "NOT_FOUND"
	CodeViewNotFound      = "VIEW_NOT_FOUND"
	CodeSummaryNotFound   = "SUMMARY_NOT_FOUND"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeRateLimit         = "RATE_LIMIT_EXCEEDED"
	CodeDatasetNotLoaded  = "DATASET_NOT_LOADED"
	CodeExportFailed      = "EXPORT_FAILED"
	CodeRenderFailed      = "RENDER_FAILED"
	CodeInternal          = "INTERNAL_SERVER_ERROR"
)

// Predefined error types for common scenarios
var (
	// 400 Bad Request
	ErrInvalidRequest   = New(http.StatusBadRequest, CodeInvalidRequest, "Invalid request format")
	ErrValidationFailed = New(http.StatusBadRequest, CodeValidationFailed, "Request validation failed")

	// 404 Not Found
	ErrNotFound = New(http.StatusNotFound, CodeNotFound, "Resource not found")

	// 429 Too Many Requests
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, CodeRateLimit, "Rate limit exceeded")

	// 500 Internal Server Error
	ErrInternalServer = New(http.StatusInternalServerError, CodeInternal, "Internal server error")

	// 503 Service Unavailable
	ErrDatasetNotLoaded = New(http.StatusServiceUnavailable, CodeDatasetNotLoaded, "Dataset has not been loaded")
)

// ErrValidation creates a validation error with field details
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeValidationFailed, "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// NewValidationErrors creates validation errors from multiple fields
func NewValidationErrors(errs []ValidationError) *APIError {
	return NewWithDetails(
		http.StatusBadRequest,
		CodeValidationFailed,
		"Request validation failed",
		ValidationErrors{Errors: errs},
	)
}

// NotFoundError creates a not found error with details
func NotFoundError(resource string) *APIError {
	return NewWithDetails(http.StatusNotFound, CodeNotFound, fmt.Sprintf("%s not found", resource), resource)
}

// ViewNotFoundError reports a dashboard view that does not exist, listing the valid ones
func ViewNotFoundError(view string, available []string) *APIError {
	return NewWithDetails(
		http.StatusNotFound,
		CodeViewNotFound,
		fmt.Sprintf("view %q not found", view),
		map[string]interface{}{"available": available},
	)
}

// SummaryNotFoundError reports an export of an unknown summary table
func SummaryNotFoundError(summary string, available []string) *APIError {
	return NewWithDetails(
		http.StatusNotFound,
		CodeSummaryNotFound,
		fmt.Sprintf("summary %q not found", summary),
		map[string]interface{}{"available": available},
	)
}

// UnsupportedFormatError reports an export format outside the supported set
func UnsupportedFormatError(format string, supported []string) *APIError {
	return NewWithDetails(
		http.StatusBadRequest,
		CodeUnsupportedFormat,
		fmt.Sprintf("unsupported export format %q (supported: %s)", format, strings.Join(supported, ", ")),
		map[string]interface{}{"supported": supported},
	)
}

// ExportError wraps a failure while writing an export
func ExportError(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, CodeExportFailed, "Failed to export summary", err.Error())
}

// RenderError wraps a failure while building a dashboard view
func RenderError(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, CodeRenderFailed, "Failed to render view", err.Error())
}

// NewInternalError creates a simple internal server error
func NewInternalError(message string) *APIError {
	return New(http.StatusInternalServerError, CodeInternal, message)
}
