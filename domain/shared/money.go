package shared

import (
	"fmt"
	"math"
)

// Money is an immutable amount-plus-currency value object.
// The amount is stored in integer minor units (cents) so arithmetic is
// exact; Amount() converts to major units only at the presentation edge.
type Money struct {
	cents    int64
	currency string
}

// NewMoney creates a Money value. The amount must be non-negative and the
// currency a 3-letter code.
func NewMoney(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, NewValidationError("money", "amount", "amount cannot be negative")
	}
	if len(currency) != 3 {
		return Money{}, NewValidationError("money", "currency", "currency must be a valid 3-letter code")
	}
	return Money{cents: cents, currency: currency}, nil
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 { return m.cents }

// Currency returns the 3-letter currency code.
func (m Money) Currency() string { return m.currency }

// Amount returns the amount in major units.
func (m Money) Amount() float64 {
	return float64(m.cents) / 100
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.cents == 0 }

// Add returns the sum of two Money values of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, NewValidationError("money", "currency",
			fmt.Sprintf("cannot add %s to %s", other.currency, m.currency))
	}
	return Money{cents: m.cents + other.cents, currency: m.currency}, nil
}

// Multiply returns the amount multiplied by a non-negative factor, failing
// on overflow.
func (m Money) Multiply(factor int) (Money, error) {
	if factor < 0 {
		return Money{}, NewValidationError("money", "factor", "factor cannot be negative")
	}
	if factor != 0 && m.cents > math.MaxInt64/int64(factor) {
		return Money{}, NewValidationError("money", "amount", "amount overflow")
	}
	return Money{cents: m.cents * int64(factor), currency: m.currency}, nil
}

// Equals reports value equality.
func (m Money) Equals(other Money) bool {
	return m.cents == other.cents && m.currency == other.currency
}

// String implements fmt.Stringer, e.g. "29.97 USD".
func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.Amount(), m.currency)
}

// Price is a Money that additionally forbids a zero amount. Products carry
// a Price; carts freeze it into plain minor units at add time.
type Price struct {
	Money
}

// NewPriceFromCents creates a Price from integer minor units.
func NewPriceFromCents(cents int64, currency string) (Price, error) {
	m, err := NewMoney(cents, currency)
	if err != nil {
		return Price{}, err
	}
	if m.IsZero() {
		return Price{}, NewValidationError("price", "amount", "price cannot be zero")
	}
	return Price{Money: m}, nil
}

// NewPriceFromFloat creates a Price from major units, rounding to the
// nearest cent (19.997 becomes 20.00).
func NewPriceFromFloat(amount float64, currency string) (Price, error) {
	if amount < 0 {
		return Price{}, NewValidationError("price", "amount", "amount cannot be negative")
	}
	return NewPriceFromCents(int64(math.Round(amount*100)), currency)
}
