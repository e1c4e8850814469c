// Package errors provides application-level error types and utilities.
// It defines the error taxonomy surfaced by the API: validation, conflict,
// authorization, not-found, and store-level failures.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation         ErrorType = "validation_error"
	ErrorTypeNotFound           ErrorType = "not_found"
	ErrorTypeConflict           ErrorType = "conflict"
	ErrorTypeUnauthorized       ErrorType = "unauthorized"
	ErrorTypeSessionInvalidated ErrorType = "session_invalidated"
	ErrorTypeForbidden          ErrorType = "forbidden"
	ErrorTypeStoreUnavailable   ErrorType = "store_unavailable"
	ErrorTypeStoreIntegrity     ErrorType = "store_integrity"
	ErrorTypeInternal           ErrorType = "internal_error"
	ErrorTypeBadRequest         ErrorType = "bad_request"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newError(t ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    t,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newError(ErrorTypeConflict, http.StatusConflict, message, details)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

// NewSessionInvalidatedError creates an unauthorized error whose type tells
// the client to force a re-login rather than retry.
func NewSessionInvalidatedError(message string, details ...string) *AppError {
	return newError(ErrorTypeSessionInvalidated, http.StatusUnauthorized, message, details)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string, details ...string) *AppError {
	return newError(ErrorTypeForbidden, http.StatusForbidden, message, details)
}

// NewStoreUnavailableError creates an error for connection or timeout
// failures against the durable store.
func NewStoreUnavailableError(message string, details ...string) *AppError {
	return newError(ErrorTypeStoreUnavailable, http.StatusServiceUnavailable, message, details)
}

// NewStoreIntegrityError creates an error for constraint violations not
// otherwise classified. code carries the nearest HTTP-equivalent class.
func NewStoreIntegrityError(code int, message string, details ...string) *AppError {
	return newError(ErrorTypeStoreIntegrity, code, message, details)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return newError(ErrorTypeBadRequest, http.StatusBadRequest, message, details)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool { return isType(err, ErrorTypeConflict) }

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool { return isType(err, ErrorTypeNotFound) }

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool { return isType(err, ErrorTypeValidation) }

// IsSessionInvalidatedError checks if the error signals a dead session
func IsSessionInvalidatedError(err error) bool { return isType(err, ErrorTypeSessionInvalidated) }

// IsStoreUnavailableError checks if the error is a store availability failure
func IsStoreUnavailableError(err error) bool { return isType(err, ErrorTypeStoreUnavailable) }
