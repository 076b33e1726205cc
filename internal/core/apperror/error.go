// Package apperror provides structured error handling for the scan core.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors (5xx)
	CodeInternal = "INTERNAL_ERROR"
	CodeDatabase = "DATABASE_ERROR"
	CodeTimeout  = "TIMEOUT_ERROR"

	// Validation errors (400)
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"

	// Scan pipeline rejections (422). All recoverable, none terminate a session.
	CodeEmptyCode         = "EMPTY_CODE"
	CodeAlreadySold       = "ALREADY_SOLD"
	CodeDuplicateInDraft  = "DUPLICATE_IN_DRAFT"
	CodeCodeNotFound      = "CODE_NOT_FOUND"
	CodeDeviceUnavailable = "DEVICE_UNAVAILABLE"
	CodeLookupFailed      = "LOOKUP_FAILED"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"

	// Conflict (409)
	CodeConflict = "CONFLICT"
)

// AppError is the standard error type for the platform.
// It implements error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (scanned code, line index, etc.)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewEmptyCode creates an error for empty/whitespace-only scan input
func NewEmptyCode() *AppError {
	return &AppError{
		Code:       CodeEmptyCode,
		Message:    "Scanned code is empty",
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewAlreadySold creates an error for a code recorded as sold store-wide
func NewAlreadySold(code string) *AppError {
	return &AppError{
		Code:       CodeAlreadySold,
		Message:    fmt.Sprintf("Code %s is already sold", code),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"code": code},
	}
}

// NewDuplicateInDraft creates an error for a code already present in the draft
func NewDuplicateInDraft(code string) *AppError {
	return &AppError{
		Code:       CodeDuplicateInDraft,
		Message:    fmt.Sprintf("Code %s is already in this sale", code),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"code": code},
	}
}

// NewCodeNotFound creates an error for a code matching no product record
func NewCodeNotFound(code string) *AppError {
	return &AppError{
		Code:       CodeCodeNotFound,
		Message:    fmt.Sprintf("No product matches code %s", code),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"code": code},
	}
}

// NewDeviceUnavailable creates an error for a capture device that could not be
// acquired. Fatal causes (permission denied, no device) are not retried.
func NewDeviceUnavailable(reason string) *AppError {
	return &AppError{
		Code:       CodeDeviceUnavailable,
		Message:    "Scanner device unavailable, use manual entry",
		HTTPStatus: http.StatusServiceUnavailable,
		Details:    map[string]any{"reason": reason},
	}
}

// NewLookupFailed creates an error for a collaborator query failure.
// The affected scan is treated as failed resolution (no partial mutation).
func NewLookupFailed(err error) *AppError {
	return &AppError{
		Code:       CodeLookupFailed,
		Message:    "Product lookup failed",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewConflict creates a conflict error (409)
func NewConflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// CodeOf returns the machine code of an error, or CodeInternal for plain errors.
func CodeOf(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return CodeInternal
}

// IsNotFound checks if error is CodeNotFound or CodeCodeNotFound
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeNotFound || appErr.Code == CodeCodeNotFound
	}
	return false
}
