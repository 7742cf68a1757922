package catalog

import (
	"errors"
	"fmt"

	"shopcore/domain/shared"
)

// Catalog subdomain sentinel errors, for errors.Is() checks.
var (
	// ErrProductNotFound no product exists for the given id.
	ErrProductNotFound = errors.New("product not found")

	// ErrCategoryNotFound no category exists for the given id.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInsufficientStock a stock reduction exceeds the available stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidQuantity a stock adjustment quantity is out of range.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInvalidName an entity name is blank or too long.
	ErrInvalidName = errors.New("invalid name")

	// ErrSelfReference a category was added as its own child.
	ErrSelfReference = errors.New("category cannot be its own child")

	// ErrCircularReference an attachment would close a cycle in the
	// category hierarchy.
	ErrCircularReference = errors.New("circular reference in category hierarchy")
)

// NewProductNotFoundError creates a product-not-found error (with stack).
func NewProductNotFoundError(productID string) error {
	return &catalogDomainError{
		sentinel: ErrProductNotFound,
		message:  fmt.Sprintf("product with ID '%s' not found", productID),
		stack:    shared.CaptureStack(3),
	}
}

// NewCategoryNotFoundError creates a category-not-found error (with stack).
func NewCategoryNotFoundError(categoryID string) error {
	return &catalogDomainError{
		sentinel: ErrCategoryNotFound,
		message:  fmt.Sprintf("category with ID '%s' not found", categoryID),
		stack:    shared.CaptureStack(3),
	}
}

// NewInsufficientStockError creates a business-rule error carrying the
// requested and available quantities.
func NewInsufficientStockError(productID string, requested, available int) error {
	return &catalogDomainError{
		sentinel: ErrInsufficientStock,
		message: fmt.Sprintf("insufficient stock for product '%s'. Requested: %d, Available: %d",
			productID, requested, available),
		details: map[string]any{
			"product_id":         productID,
			"requested_quantity": requested,
			"available_stock":    available,
		},
		stack: shared.CaptureStack(3),
	}
}

// NewInvalidQuantityError creates a quantity validation error.
func NewInvalidQuantityError(reason string) error {
	return &catalogDomainError{
		sentinel: ErrInvalidQuantity,
		message:  reason,
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidNameError creates a name validation error.
func NewInvalidNameError(entity, reason string) error {
	return &catalogDomainError{
		sentinel: ErrInvalidName,
		message:  fmt.Sprintf("%s: %s", entity, reason),
		stack:    shared.CaptureStack(3),
	}
}

// NewSelfReferenceError creates a self-parenting error.
func NewSelfReferenceError(categoryID string) error {
	return &catalogDomainError{
		sentinel: ErrSelfReference,
		message:  "cannot add category as its own child",
		details:  map[string]any{"category_id": categoryID},
		stack:    shared.CaptureStack(3),
	}
}

// NewCircularReferenceError creates a hierarchy-cycle error carrying the
// offending identifiers.
func NewCircularReferenceError(parentID, childID string) error {
	return &catalogDomainError{
		sentinel: ErrCircularReference,
		message:  "adding child creates circular reference",
		details:  map[string]any{"parent_id": parentID, "child_id": childID},
		stack:    shared.CaptureStack(3),
	}
}

// catalogDomainError implements error, Unwrap and shared.Stacker.
type catalogDomainError struct {
	sentinel error
	message  string
	details  map[string]any
	stack    []uintptr
}

func (e *catalogDomainError) Error() string { return e.message }

func (e *catalogDomainError) Unwrap() error { return e.sentinel }

// Details returns contextual data for business-rule failures, nil otherwise.
func (e *catalogDomainError) Details() map[string]any { return e.details }

// Stack implements shared.Stacker.
func (e *catalogDomainError) Stack() []string {
	return shared.FormatStack(e.stack)
}
