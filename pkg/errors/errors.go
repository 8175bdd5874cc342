package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"
	// ErrorTypeValidation indicates an aggregate failed domain validation
	ErrorTypeValidation ErrorType = "VALIDATION"
	// ErrorTypePersistence indicates a storage/transaction failure
	ErrorTypePersistence ErrorType = "PERSISTENCE"
	// ErrorTypeArgument indicates invalid caller input
	ErrorTypeArgument ErrorType = "ARGUMENT"
	// ErrorTypeConflict indicates a conflict
	ErrorTypeConflict ErrorType = "CONFLICT"
	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	// Details carries field-level validation messages when Type is VALIDATION
	Details []string
	Err     error
}

// Error returns the error message
func (e *AppError) Error() string {
	switch {
	case len(e.Details) > 0:
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Message, strings.Join(e.Details, "; "))
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new application error
func New(errorType ErrorType, message string) error {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

// Wrap wraps an error with an application error
func Wrap(errorType ErrorType, message string, err error) error {
	return &AppError{
		Type:    errorType,
		Message: message,
		Err:     err,
	}
}

// NotFound creates a not found error
func NotFound(message string) error {
	return New(ErrorTypeNotFound, message)
}

// Validation creates a validation error carrying the aggregate's messages
func Validation(message string, details []string) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Details: details,
	}
}

// Persistence wraps a storage error
func Persistence(message string, err error) error {
	return Wrap(ErrorTypePersistence, message, err)
}

// Argument creates an invalid-argument error
func Argument(message string) error {
	return New(ErrorTypeArgument, message)
}

// Conflict creates a conflict error
func Conflict(message string) error {
	return New(ErrorTypeConflict, message)
}

// Internal creates an internal error
func Internal(message string) error {
	return New(ErrorTypeInternal, message)
}

// Details returns the field-level messages of a validation error, if any
func Details(err error) []string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Details
	}
	return nil
}

func isType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsPersistence checks if an error is a persistence error
func IsPersistence(err error) bool {
	return isType(err, ErrorTypePersistence)
}

// IsArgument checks if an error is an invalid-argument error
func IsArgument(err error) bool {
	return isType(err, ErrorTypeArgument)
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	return isType(err, ErrorTypeConflict)
}

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool {
	return isType(err, ErrorTypeInternal)
}

// IsDuplicateError checks if an error is a duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "duplicate entry")
}
