package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyValidation(t *testing.T) {
	m, err := NewMoney(2997, "USD")
	require.NoError(t, err)
	assert.Equal(t, int64(2997), m.Cents())
	assert.InDelta(t, 29.97, m.Amount(), 1e-9)
	assert.Equal(t, "USD", m.Currency())

	_, err = NewMoney(-1, "USD")
	assert.ErrorIs(t, err, ErrInvalidInput)

	for _, currency := range []string{"", "US", "USDX"} {
		_, err = NewMoney(100, currency)
		assert.ErrorIs(t, err, ErrInvalidInput, "currency %q", currency)
	}

	zero, err := NewMoney(0, "USD")
	require.NoError(t, err, "Money permits zero, Price does not")
	assert.True(t, zero.IsZero())
}

func TestMoneyArithmetic(t *testing.T) {
	a, _ := NewMoney(1000, "USD")
	b, _ := NewMoney(250, "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(1250), sum.Cents())

	eur, _ := NewMoney(100, "EUR")
	_, err = a.Add(eur)
	assert.ErrorIs(t, err, ErrInvalidInput)

	product, err := b.Multiply(4)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), product.Cents())

	_, err = b.Multiply(-1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.True(t, a.Equals(product))
}

func TestPriceForbidsZero(t *testing.T) {
	_, err := NewPriceFromCents(0, "USD")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewPriceFromFloat(0, "USD")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewPriceFromCents(-100, "USD")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPriceRoundTrips(t *testing.T) {
	// Integer cents round-trip to major units exactly.
	p, err := NewPriceFromCents(2997, "USD")
	require.NoError(t, err)
	assert.InDelta(t, 29.97, p.Amount(), 1e-9)
	assert.Equal(t, "29.97 USD", p.String())

	// Floats round to the nearest cent.
	p, err = NewPriceFromFloat(19.997, "USD")
	require.NoError(t, err)
	assert.Equal(t, int64(2000), p.Cents())
	assert.InDelta(t, 20.00, p.Amount(), 1e-9)

	p, err = NewPriceFromFloat(29.99, "USD")
	require.NoError(t, err)
	assert.Equal(t, int64(2999), p.Cents())
}

func TestDomainErrorStack(t *testing.T) {
	err := NewBusinessRuleError("product", "insufficient stock", map[string]any{
		"requested_quantity": 10,
		"available_stock":    5,
	})

	assert.ErrorIs(t, err, ErrBusinessRule)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 10, domainErr.Details["requested_quantity"])
	assert.NotEmpty(t, domainErr.Stack(), "stack is captured at creation")
}
