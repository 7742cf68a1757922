package cart

import (
	"errors"
	"fmt"

	"shopcore/domain/shared"
)

// Cart subdomain sentinel errors, for errors.Is() checks.
var (
	// ErrCartNotFound no cart exists for the session.
	ErrCartNotFound = errors.New("cart not found")

	// ErrItemNotFound the cart has no item with the given id.
	ErrItemNotFound = errors.New("cart item not found")

	// ErrQuantityOutOfRange a quantity fell outside [MinQuantity, MaxQuantity].
	ErrQuantityOutOfRange = errors.New("quantity out of range")

	// ErrInvalidSessionID the session id is blank.
	ErrInvalidSessionID = errors.New("invalid session id")

	// ErrProductNotAvailable the product is missing or its stock cannot
	// cover the requested quantity.
	ErrProductNotAvailable = errors.New("product not available")
)

// NewCartNotFoundError creates a cart-not-found error (with stack).
func NewCartNotFoundError(sessionID string) error {
	return &cartDomainError{
		sentinel: ErrCartNotFound,
		message:  fmt.Sprintf("cart with session ID '%s' not found", sessionID),
		stack:    shared.CaptureStack(3),
	}
}

// NewItemNotFoundError creates a cart-item-not-found error (with stack).
func NewItemNotFoundError(itemID string) error {
	return &cartDomainError{
		sentinel: ErrItemNotFound,
		message:  fmt.Sprintf("item with ID '%s' not found in cart", itemID),
		stack:    shared.CaptureStack(3),
	}
}

// NewQuantityOutOfRangeError creates a quantity validation error.
func NewQuantityOutOfRangeError(reason string) error {
	return &cartDomainError{
		sentinel: ErrQuantityOutOfRange,
		message:  reason,
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidSessionIDError creates a blank-session-id validation error.
func NewInvalidSessionIDError() error {
	return &cartDomainError{
		sentinel: ErrInvalidSessionID,
		message:  "session ID cannot be empty",
		stack:    shared.CaptureStack(3),
	}
}

// NewProductNotAvailableError creates a business-rule error carrying the
// requested and available quantities so callers can present both.
func NewProductNotAvailableError(productID string, requested, available int) error {
	return &cartDomainError{
		sentinel: ErrProductNotAvailable,
		message: fmt.Sprintf("product '%s' not available. Requested: %d, Available: %d",
			productID, requested, available),
		details: map[string]any{
			"product_id":         productID,
			"requested_quantity": requested,
			"available_stock":    available,
		},
		stack: shared.CaptureStack(3),
	}
}

// cartDomainError implements error, Unwrap and shared.Stacker.
type cartDomainError struct {
	sentinel error
	message  string
	details  map[string]any
	stack    []uintptr
}

// Details returns contextual data for business-rule failures, nil otherwise.
func (e *cartDomainError) Details() map[string]any { return e.details }

func (e *cartDomainError) Error() string { return e.message }

func (e *cartDomainError) Unwrap() error { return e.sentinel }

// Stack implements shared.Stacker.
func (e *cartDomainError) Stack() []string {
	return shared.FormatStack(e.stack)
}
