// Package errors provides structured error handling for the library system.
package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents specific error codes
type ErrorCode string

const (
	// Authentication/Authorization errors
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUnauthenticated    ErrorCode = "UNAUTHENTICATED"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Validation errors
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"

	// Resource errors
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// System errors
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
	ErrCodeConfigError   ErrorCode = "CONFIG_ERROR"
)

// LibraryError represents a structured error in the library system
type LibraryError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *LibraryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *LibraryError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *LibraryError) WithDetail(key string, value interface{}) *LibraryError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new library error
func New(code ErrorCode, message string) *LibraryError {
	return &LibraryError{
		Code:    code,
		Message: message,
	}
}

// NewWithCause creates a new library error wrapping a cause
func NewWithCause(code ErrorCode, message string, cause error) *LibraryError {
	return &LibraryError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Authentication/Authorization error constructors

func NewInvalidCredentialsError() *LibraryError {
	return New(ErrCodeInvalidCredentials, "invalid username or password")
}

func NewUnauthenticatedError(message string) *LibraryError {
	return New(ErrCodeUnauthenticated, message)
}

func NewForbiddenError(message string) *LibraryError {
	return New(ErrCodeForbidden, message)
}

func NewTokenExpiredError() *LibraryError {
	return New(ErrCodeTokenExpired, "session token has expired")
}

func NewInvalidTokenError() *LibraryError {
	return New(ErrCodeInvalidToken, "invalid session token")
}

// Resource error constructors

func NewNotFoundError(resource string) *LibraryError {
	return New(ErrCodeNotFound,
		fmt.Sprintf("%s not found", resource)).WithDetail("resource", resource)
}

// System error constructors

func NewInternalError(message string) *LibraryError {
	return New(ErrCodeInternal, message)
}

func NewInternalErrorWithCause(message string, cause error) *LibraryError {
	return NewWithCause(ErrCodeInternal, message, cause)
}

func NewDatabaseError(message string, cause error) *LibraryError {
	return NewWithCause(ErrCodeDatabaseError, message, cause)
}

func NewConfigError(message string) *LibraryError {
	return New(ErrCodeConfigError, message)
}

// FieldError describes a single violated validation rule
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every violated rule of one request so the
// caller can display all of them at once rather than just the first.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("[%s] %s", ErrCodeValidation, strings.Join(messages, "; "))
}

// Add appends a violated rule to the list
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors returns true if any rule was violated
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ToError returns the ValidationError as an error if it has entries, otherwise nil
func (e *ValidationError) ToError() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// NewValidationError creates an empty validation error collector
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make([]FieldError, 0)}
}

// IsLibraryError checks if an error is a LibraryError
func IsLibraryError(err error) bool {
	_, ok := err.(*LibraryError)
	return ok
}

// GetLibraryError extracts a LibraryError from an error
func GetLibraryError(err error) *LibraryError {
	if libErr, ok := err.(*LibraryError); ok {
		return libErr
	}
	return nil
}

// GetValidationError extracts a ValidationError from an error
func GetValidationError(err error) *ValidationError {
	if valErr, ok := err.(*ValidationError); ok {
		return valErr
	}
	return nil
}
