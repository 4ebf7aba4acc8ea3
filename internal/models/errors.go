package models

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError.
const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// FieldErrors maps a field path to the messages describing why it failed validation.
type FieldErrors map[string][]string

// Add appends a message for field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Empty reports whether no field failed.
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// ErrorResponse is the envelope for validation and not-found failures.
type ErrorResponse struct {
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Status  int
	Message string
	// Fields holds the field-keyed detail of a validation failure. It is either
	// FieldErrors or a map of named FieldErrors groups (e.g. "params", "query").
	Fields any
	Err    error
	Stack  []byte
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError builds a 404 error with a plain message such as "User not found".
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Status:  http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewValidationError builds a 400 error without field detail.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

// NewFieldValidationError builds a 400 error carrying field-level detail.
func NewFieldValidationError(message string, fields any) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Status:  http.StatusBadRequest,
		Message: message,
		Fields:  fields,
	}
}

// NewInternalError wraps an unexpected failure. The stack is captured so the
// fallback responder can expose it outside production.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Status:  http.StatusInternalServerError,
		Message: "Internal Server Error",
		Err:     err,
		Stack:   debug.Stack(),
	}
}

// IsNotFound reports whether err is (or wraps) a not-found AppError.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == CodeNotFound
}

// RespondWithError writes the envelope for an expected failure (validation or not found).
// Anything else is returned to Fiber so the fallback error handler deals with it.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Code == CodeInternal {
		return err
	}

	status := appErr.Status
	if status == 0 {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(ErrorResponse{
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}
