// Package errors provides structured application errors with HTTP status
// mapping for the API layer.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInternal         ErrorCode = "INTERNAL_ERROR"

	CodeRecipeNotFound     ErrorCode = "RECIPE_NOT_FOUND"
	CodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	CodeNotOwner           ErrorCode = "NOT_OWNER"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUserAlreadyExists  ErrorCode = "USER_ALREADY_EXISTS"
	CodeAIUnavailable      ErrorCode = "AI_UNAVAILABLE"
)

// AppError is an application error carrying a code and an optional cause.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode maps the error code to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeInvalidCredentials:
		return http.StatusUnauthorized
	case CodeForbidden, CodeNotOwner:
		return http.StatusForbidden
	case CodeNotFound, CodeRecipeNotFound, CodeUserNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeUserAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WithCause attaches a cause error.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// New creates an application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewBadRequest creates a bad request error.
func NewBadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

// NewUnauthorized creates an unauthorized error.
func NewUnauthorized(message string) *AppError {
	if message == "" {
		message = "Unauthorized"
	}
	return New(CodeUnauthorized, message)
}

// NewRecipeNotFound creates a recipe not found error.
func NewRecipeNotFound(recipeID string) *AppError {
	return New(CodeRecipeNotFound, "Recipe not found")
}

// NewNotOwner creates an ownership violation error.
func NewNotOwner() *AppError {
	return New(CodeNotOwner, "Not authorized")
}

// NewInvalidCredentials creates an invalid credentials error.
func NewInvalidCredentials() *AppError {
	return New(CodeInvalidCredentials, "Invalid username or password")
}

// NewUserAlreadyExists creates a duplicate user error.
func NewUserAlreadyExists(field string) *AppError {
	return New(CodeUserAlreadyExists, fmt.Sprintf("A user with this %s already exists", field))
}

// NewInternal creates an internal error.
func NewInternal(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return New(CodeInternal, message)
}

// Wrap converts err into an AppError, preserving an existing one.
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternal(message).WithCause(err)
}

// Is reports whether err carries the given error code.
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the code from an error, defaulting to internal.
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}
