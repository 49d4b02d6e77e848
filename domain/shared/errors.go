/*
Package shared holds the building blocks the order and collaborator
subdomains have in common: the Money value object, domain errors, domain
events, pagination primitives and the unit-of-work contract.

Error design:
 1. Sentinel errors support errors.Is() checks without string matching.
 2. DomainError captures the call stack at construction time and formats
    it lazily, so logs point at the origin without paying the formatting
    cost on the happy path.
 3. Domain errors carry no transport concepts; HTTP mapping lives in the
    api layer.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Sentinel errors classified by errors.Is().
var (
	// ErrNotFound marks a missing resource.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedValue marks an argument outside its enumerated set.
	ErrUnsupportedValue = errors.New("unsupported argument value")

	// ErrMinimumResources marks a request lacking required inputs.
	ErrMinimumResources = errors.New("minimum resources not reached")

	// ErrInvalidInput marks a failed input validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIntegration marks a failed call to an external collaborator
	// (catalog, payment, status, queue or database).
	ErrIntegration = errors.New("integration failure")
)

// DomainError is a structured error carrying business context and the
// stack captured at the point of creation.
type DomainError struct {
	// Err is the underlying sentinel, for errors.Is().
	Err error

	// Entity names the aggregate or resource involved ("Order", "Combo").
	Entity string

	// Message is the human-readable description.
	Message string

	// Fields optionally names the offending request fields.
	Fields []string

	// Cause is the wrapped collaborator error, when any.
	Cause error

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes both the sentinel and the original cause to
// errors.Is() / errors.As().
func (e *DomainError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// Stack formats the captured frames on demand.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// WithStack records the origin stack on an error built outside this
// package. skip counts frames as in CaptureStack, plus one for
// WithStack itself.
func (e *DomainError) WithStack(skip int) *DomainError {
	e.stack = CaptureStack(skip)
	return e
}

// Stacker is implemented by errors that carry an origin stack; the api
// layer uses it when logging failures.
type Stacker interface {
	Stack() []string
}

// CaptureStack records the current call stack. skip is the number of
// frames to drop (normally 3: Callers, CaptureStack, the constructor).
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders captured frames, filtering runtime internals and
// keeping at most 10 frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewNotFoundError builds a "resource not found" error for an entity.
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewUnsupportedValueError builds an "unsupported argument value" error.
func NewUnsupportedValueError(entity string) error {
	return &DomainError{
		Err:     ErrUnsupportedValue,
		Entity:  entity,
		Message: "unsupported argument value for " + entity,
		stack:   CaptureStack(3),
	}
}

// NewMinimumResourcesError builds a "minimum resources not reached"
// error naming the missing fields.
func NewMinimumResourcesError(entity string, fields ...string) error {
	msg := "minimum resources not reached for " + entity
	if len(fields) > 0 {
		msg += ": missing " + strings.Join(fields, ", ")
	}
	return &DomainError{
		Err:     ErrMinimumResources,
		Entity:  entity,
		Message: msg,
		Fields:  fields,
		stack:   CaptureStack(3),
	}
}

// NewValidationError builds a field-level validation error.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Message: reason,
		Fields:  []string{field},
		stack:   CaptureStack(3),
	}
}

// NewIntegrationError wraps a collaborator failure, preserving the
// original cause for diagnostics.
func NewIntegrationError(collaborator string, cause error) error {
	return &DomainError{
		Err:     ErrIntegration,
		Entity:  collaborator,
		Message: collaborator + " call failed: " + cause.Error(),
		Cause:   cause,
		stack:   CaptureStack(3),
	}
}
