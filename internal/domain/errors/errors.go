package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrConflict      = errors.New("conflict")
	ErrUpstream      = errors.New("upstream failure")
	ErrConfiguration = errors.New("missing configuration")
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the sentinel so errors.Is works through AppError.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "NOT_FOUND", message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "BAD_REQUEST", message, ErrInvalidInput)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, "CONFLICT", message, ErrConflict)
}

// Upstream wraps a failure reported by an external provider (email API).
func Upstream(message string, status int) *AppError {
	return NewAppError(http.StatusBadGateway, "UPSTREAM_ERROR", message,
		fmt.Errorf("%w: provider responded %d", ErrUpstream, status))
}

// Configuration reports a required setting that is missing at invocation time.
func Configuration(setting string) *AppError {
	return NewAppError(http.StatusInternalServerError, "CONFIGURATION_ERROR", "Missing "+setting+" app setting", ErrConfiguration)
}

// InternalError keeps the underlying driver message so operators can diagnose
// storage failures from the response body.
func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "", err)
}

// AsAppError converts any error to an AppError, defaulting to 500.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, "NOT_FOUND", err.Error(), err)
	case errors.Is(err, ErrInvalidInput):
		return NewAppError(http.StatusBadRequest, "BAD_REQUEST", err.Error(), err)
	case errors.Is(err, ErrConflict), errors.Is(err, ErrAlreadyExists):
		return NewAppError(http.StatusConflict, "CONFLICT", err.Error(), err)
	}
	return InternalError(err)
}
