// Package errors defines the application-level error model: stable error
// codes for API clients plus the mapping from domain errors to codes.
// Domain packages never import this; translation happens at the boundary
// and HTTP status mapping stays in the api layer.
package errors

import (
	"errors"
	"fmt"

	"shopcore/domain/cart"
	"shopcore/domain/catalog"
	"shopcore/domain/shared"
)

type ErrorCode string

const (
	// Generic codes.
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	// Business codes.
	CodeCartNotFound        ErrorCode = "CART_NOT_FOUND"
	CodeCartItemNotFound    ErrorCode = "CART_ITEM_NOT_FOUND"
	CodeQuantityOutOfRange  ErrorCode = "QUANTITY_OUT_OF_RANGE"
	CodeProductNotAvailable ErrorCode = "PRODUCT_NOT_AVAILABLE"
	CodeProductNotFound     ErrorCode = "PRODUCT_NOT_FOUND"
	CodeCategoryNotFound    ErrorCode = "CATEGORY_NOT_FOUND"
	CodeInsufficientStock   ErrorCode = "INSUFFICIENT_STOCK"
	CodeCircularReference   ErrorCode = "CIRCULAR_REFERENCE"
)

// AppError is the outward error shape: a stable code, a human-readable
// message, optional structured details, and the wrapped cause.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
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

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
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

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// detailer is satisfied by domain errors that carry structured context.
type detailer interface {
	Details() map[string]any
}

// FromDomainError translates a domain error into an AppError by sentinel
// identity, carrying over structured details when present. Unknown errors
// map to an internal error so no raw message leaks to clients.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	code := classify(err)
	mapped := Wrap(err, code, err.Error())
	if code == CodeInternal {
		mapped.Message = "internal server error"
	}

	var d detailer
	if errors.As(err, &d) {
		mapped.Details = d.Details()
	}
	return mapped
}

func classify(err error) ErrorCode {
	switch {
	case errors.Is(err, cart.ErrCartNotFound):
		return CodeCartNotFound
	case errors.Is(err, cart.ErrItemNotFound):
		return CodeCartItemNotFound
	case errors.Is(err, cart.ErrQuantityOutOfRange):
		return CodeQuantityOutOfRange
	case errors.Is(err, cart.ErrProductNotAvailable):
		return CodeProductNotAvailable
	case errors.Is(err, cart.ErrInvalidSessionID):
		return CodeValidation
	case errors.Is(err, catalog.ErrProductNotFound):
		return CodeProductNotFound
	case errors.Is(err, catalog.ErrCategoryNotFound):
		return CodeCategoryNotFound
	case errors.Is(err, catalog.ErrInsufficientStock):
		return CodeInsufficientStock
	case errors.Is(err, catalog.ErrInvalidQuantity):
		return CodeValidation
	case errors.Is(err, catalog.ErrInvalidName):
		return CodeValidation
	case errors.Is(err, catalog.ErrSelfReference), errors.Is(err, catalog.ErrCircularReference):
		return CodeCircularReference
	case errors.Is(err, shared.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, shared.ErrInvalidInput):
		return CodeValidation
	case errors.Is(err, shared.ErrBusinessRule):
		return CodeConflict
	case errors.Is(err, shared.ErrConflict):
		return CodeConflict
	default:
		return CodeInternal
	}
}
