package apperrors

import (
	"net/http"
	"strings"
)

// AppError is a domain error that carries the HTTP status it should be
// reported with. Services return it instead of formatting responses.
type AppError struct {
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError builds an AppError with an explicit status code.
func NewAppError(message string, statusCode int) *AppError {
	return &AppError{Message: message, StatusCode: statusCode}
}

// NewNotFound builds a 404 AppError.
func NewNotFound(message string) *AppError {
	return &AppError{Message: message, StatusCode: http.StatusNotFound}
}

// NewBadRequest builds a 400 AppError.
func NewBadRequest(message string) *AppError {
	return &AppError{Message: message, StatusCode: http.StatusBadRequest}
}

// ValidationError collects one message per violated field constraint.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// Add appends a field violation message.
func (e *ValidationError) Add(message string) {
	e.Violations = append(e.Violations, message)
}

// HasViolations reports whether any constraint was violated.
func (e *ValidationError) HasViolations() bool {
	return len(e.Violations) > 0
}

// OrNil returns the error itself when violations were collected, nil otherwise.
// Callers build up a ValidationError and return v.OrNil() so an empty one
// never escapes as a non-nil error.
func (e *ValidationError) OrNil() error {
	if e.HasViolations() {
		return e
	}
	return nil
}
