package cart

import "fmt"

// Cart line quantity bounds. Carts are deliberately tighter than the
// catalog: nobody orders a million units from a guest session.
const (
	MinQuantity = 1
	MaxQuantity = 100
)

// Quantity is an immutable bounded cart quantity in [MinQuantity, MaxQuantity].
type Quantity struct {
	value int
}

// NewQuantity validates and wraps a cart quantity.
func NewQuantity(value int) (Quantity, error) {
	if value < MinQuantity {
		return Quantity{}, NewQuantityOutOfRangeError(
			fmt.Sprintf("quantity must be at least %d", MinQuantity))
	}
	if value > MaxQuantity {
		return Quantity{}, NewQuantityOutOfRangeError(
			fmt.Sprintf("quantity cannot exceed %d", MaxQuantity))
	}
	return Quantity{value: value}, nil
}

// Int returns the quantity as a plain integer.
func (q Quantity) Int() int { return q.value }

// Add returns the checked sum. The result is re-validated and the call
// fails rather than clamping; Cart.Merge is the only place that caps.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	return NewQuantity(q.value + other.value)
}

// Sub returns the checked difference.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	return NewQuantity(q.value - other.value)
}
