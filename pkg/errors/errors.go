// Package errors defines the application error codes the HTTP layer
// translates into responses.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/quickbite/order-service/domain/shared"
)

type ErrorCode string

const (
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	CodeUnsupportedValue ErrorCode = "UNSUPPORTED_ARGUMENT_VALUE"
	CodeMinimumResources ErrorCode = "MINIMUM_RESOURCES_NOT_REACHED"
	CodeResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"
	CodeIntegration      ErrorCode = "INTEGRATION_ERROR"
)

// AppError carries a stable code for clients and the wrapped cause for
// the logs.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode maps the code to the status the handler should emit.
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation, CodeUnsupportedValue, CodeMinimumResources:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound, CodeResourceNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeIntegration:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// FromDomainError translates a domain failure into the application
// error the handlers render. Unknown errors come back as internal so
// nothing leaks to clients by accident.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	message := err.Error()
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}

	switch {
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeResourceNotFound, message)
	case errors.Is(err, shared.ErrUnsupportedValue):
		return Wrap(err, CodeUnsupportedValue, message)
	case errors.Is(err, shared.ErrMinimumResources):
		return Wrap(err, CodeMinimumResources, message)
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, message)
	case errors.Is(err, shared.ErrIntegration):
		return Wrap(err, CodeIntegration, message)
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}

// Is reports whether err carries the given application code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
