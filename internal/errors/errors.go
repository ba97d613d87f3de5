package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is an application-specific error type
type AppError struct {
	Code    string
	Message string
	Cause   error
	// Details carries structured context, e.g. the identity of a colliding entity
	Details map[string]any
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails returns a copy of the error carrying the given details
func (e *AppError) WithDetails(details map[string]any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// HTTPStatus maps the error code to a response status
func (e *AppError) HTTPStatus() int {
	return StatusForCode(e.Code)
}

// creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// creates a new AppError with a formatted message
func Newf(code, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// wraps an error with a code and message
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// NotFound is shorthand for a NOT_FOUND error about the named resource
func NotFound(resource string) *AppError {
	return New(CodeNotFound, resource+" not found")
}

// Validation is shorthand for a VALIDATION_ERROR
func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// Error code constants
const (
	CodeInternal   = "INTERNAL_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
	CodeConflict   = "CONFLICT"         // Resource already exists (UNIQUE violation)
	CodeDependency = "DEPENDENCY_ERROR" // Foreign key constraint violation
)

// StatusForCode returns the HTTP status used for an error code
func StatusForCode(code string) int {
	switch code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound, CodeDependency:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// As extracts the first AppError in the chain
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError in the chain, or CodeInternal
func CodeOf(err error) string {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code
func HasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}
