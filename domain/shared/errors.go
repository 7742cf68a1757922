/*
Package shared holds the value objects and error primitives used by every
subdomain.

Error design:
 1. Sentinel errors classify failures for errors.Is() checks.
 2. DomainError captures the call stack at creation and formats it lazily,
    so logs can point at the failure site without paying for formatting on
    the happy path.
 3. Domain errors carry no transport concepts; HTTP mapping lives in the
    API layer.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Sentinel errors classifying every domain failure kind.
var (
	// ErrNotFound marks a missing resource. Always recoverable by the
	// caller (carts are created on miss).
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput marks a validation failure, raised before any state
	// is mutated.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBusinessRule marks a violated business rule (insufficient stock,
	// circular category reference).
	ErrBusinessRule = errors.New("business rule violation")

	// ErrConflict is reserved for concurrent modification conflicts; the
	// current core never raises it.
	ErrConflict = errors.New("conflict")
)

// DomainError is a structured domain failure with a captured stack.
type DomainError struct {
	// Err is the sentinel this error unwraps to.
	Err error

	// Entity names the aggregate or value object the failure belongs to.
	Entity string

	// Field optionally names the offending field for validation errors.
	Field string

	// Message is the human-readable description.
	Message string

	// Details carries contextual data for business-rule failures, such as
	// requested vs. available quantity.
	Details map[string]any

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap supports errors.Is() against the sentinel.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured stack on demand.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// Stacker is implemented by errors that can report where they were created.
// The API layer uses it to log the failure site.
type Stacker interface {
	Stack() []string
}

// CaptureStack records the current call stack. skip is usually 3: Callers,
// CaptureStack and the constructor itself.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders stack frames as strings, filtering runtime internals
// and keeping at most 10 frames.
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

// NewNotFoundError creates a "not found" error for the given entity and id.
func NewNotFoundError(entity, id string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: fmt.Sprintf("%s with ID '%s' not found", entity, id),
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a validation error identifying the offending
// field.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewBusinessRuleError creates a business-rule error carrying contextual
// details the caller can turn into an actionable message.
func NewBusinessRuleError(entity, message string, details map[string]any) error {
	return &DomainError{
		Err:     ErrBusinessRule,
		Entity:  entity,
		Message: message,
		Details: details,
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a conflict error.
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}
