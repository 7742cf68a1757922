package catalog

import "fmt"

// Catalog quantity bounds. Stock adjustments and availability checks work
// in these units; the cart has its own, much tighter Quantity.
const (
	MinQuantity = 1
	MaxQuantity = 1_000_000
)

// Quantity is an immutable bounded catalog quantity in
// [MinQuantity, MaxQuantity].
type Quantity struct {
	value int
}

// NewQuantity validates and wraps a catalog quantity.
func NewQuantity(value int) (Quantity, error) {
	if value < MinQuantity {
		return Quantity{}, NewInvalidQuantityError(
			fmt.Sprintf("quantity must be at least %d", MinQuantity))
	}
	if value > MaxQuantity {
		return Quantity{}, NewInvalidQuantityError(
			fmt.Sprintf("quantity cannot exceed %d", MaxQuantity))
	}
	return Quantity{value: value}, nil
}

// Int returns the quantity as a plain integer.
func (q Quantity) Int() int { return q.value }

// Add returns the checked sum; the result is re-validated, never clamped.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	return NewQuantity(q.value + other.value)
}

// Sub returns the checked difference.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	return NewQuantity(q.value - other.value)
}
