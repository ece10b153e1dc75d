// Package errors defines the application-level error taxonomy shared by the
// usecase and delivery layers.
package errors

import (
	"net/http"

	"tapcard/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy of the error carrying detailed information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Card-related errors
	ErrCardNotFound = NewBaseError(
		http.StatusNotFound,
		"CARD_NOT_FOUND",
		"The requested card does not exist",
		"",
	)

	ErrCardAlreadyExists = NewBaseError(
		http.StatusConflict,
		"CARD_ALREADY_EXISTS",
		"You can only create one digital business card",
		"",
	)

	// ErrCardForbidden is deliberately opaque: it reveals neither whether the
	// card exists nor why access was denied.
	ErrCardForbidden = NewBaseError(
		http.StatusForbidden,
		"CARD_FORBIDDEN",
		"You do not have access to this card",
		"",
	)

	ErrSlugConflict = NewBaseError(
		http.StatusConflict,
		"SLUG_CONFLICT",
		"Could not allocate a unique card address, please retry",
		"",
	)

	// Child-resource errors
	ErrChildNotFound = NewBaseError(
		http.StatusNotFound,
		"CHILD_NOT_FOUND",
		"The requested card item does not exist",
		"",
	)

	ErrLeadNotFound = NewBaseError(
		http.StatusNotFound,
		"LEAD_NOT_FOUND",
		"The requested lead does not exist",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Storage-related errors
	ErrStorageFailed = NewBaseError(
		http.StatusInternalServerError,
		"STORAGE_FAILED",
		"Failed to store the uploaded file",
		"",
	)
)

// NewDatabaseExecuteError wraps an unexpected persistence failure as a generic
// internal error; the underlying cause stays in Details for logs only.
func NewDatabaseExecuteError(err error, message string) *BaseError {
	return NewBaseError(
		http.StatusInternalServerError,
		"DATABASE_ERROR",
		message,
		err.Error(),
	)
}

// NewValidationError reports a field-level validation failure.
func NewValidationError(details string) *BaseError {
	return ErrValidationFailed.WithDetails(details)
}
