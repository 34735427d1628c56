// Package apperrors defines the error kinds the workflows can fail with.
// Every error carries the HTTP status and a machine-readable code; the
// Fiber error handler renders them as {"error": {"code": ..., "message": ...}}.
package apperrors

import (
	"errors"
	"net/http"
)

// Error codes exposed in error response bodies.
const (
	CodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	CodeNotFound             = "NOT_FOUND"
	CodeStorageIO            = "STORAGE_IO_ERROR"
	CodeStorage              = "STORAGE_ERROR"
)

// Error is an application error with an HTTP status attached.
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UnsupportedMediaType rejects a disallowed upload media type (415).
// Raised before any side effect occurs.
func UnsupportedMediaType(message string) *Error {
	return &Error{
		Status:  http.StatusUnsupportedMediaType,
		Code:    CodeUnsupportedMediaType,
		Message: message,
	}
}

// NotFound reports an unknown file_id (404).
func NotFound(message string) *Error {
	return &Error{
		Status:  http.StatusNotFound,
		Code:    CodeNotFound,
		Message: message,
	}
}

// StorageIO reports a filesystem write/delete failure (500, retryable).
func StorageIO(message string, err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeStorageIO,
		Message: message,
		Err:     err,
	}
}

// Storage reports a database connectivity or statement failure (500, retryable).
func Storage(message string, err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeStorage,
		Message: message,
		Err:     err,
	}
}

// From extracts an *Error from err, or wraps it as a generic storage error.
// Used by the HTTP boundary to translate workflow failures.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Storage("internal error", err)
}
