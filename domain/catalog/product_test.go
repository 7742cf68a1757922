package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcore/domain/shared"
)

func testPrice(t *testing.T) shared.Price {
	t.Helper()
	p, err := shared.NewPriceFromFloat(29.99, "USD")
	require.NoError(t, err)
	return p
}

func TestNewProductValidation(t *testing.T) {
	p, err := NewProduct("Widget", "A widget.", testPrice(t), "cat-1", 5)
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name())
	assert.Equal(t, 5, p.Stock())
	assert.Empty(t, p.ID())

	_, err = NewProduct("  ", "desc", testPrice(t), "", 5)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NewProduct(strings.Repeat("x", 256), "desc", testPrice(t), "", 5)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NewProduct("Widget", strings.Repeat("x", 5001), testPrice(t), "", 5)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = NewProduct("Widget", "desc", testPrice(t), "", -1)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestIsAvailable(t *testing.T) {
	p, err := NewProduct("Widget", "", testPrice(t), "", 5)
	require.NoError(t, err)

	assert.True(t, p.IsAvailable(1))
	assert.True(t, p.IsAvailable(5))
	assert.False(t, p.IsAvailable(6))

	empty, err := NewProduct("Widget", "", testPrice(t), "", 0)
	require.NoError(t, err)
	assert.False(t, empty.IsAvailable(1))
}

func TestReduceStock(t *testing.T) {
	p, err := NewProduct("Widget", "", testPrice(t), "", 5)
	require.NoError(t, err)

	require.NoError(t, p.ReduceStock(3))
	assert.Equal(t, 2, p.Stock())

	err = p.ReduceStock(3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 2, p.Stock(), "failed reduction must not change stock")

	err = p.ReduceStock(0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	err = p.ReduceStock(-1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestIncreaseStock(t *testing.T) {
	p, err := NewProduct("Widget", "", testPrice(t), "", 0)
	require.NoError(t, err)

	require.NoError(t, p.IncreaseStock(10))
	assert.Equal(t, 10, p.Stock())

	err = p.IncreaseStock(0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, 10, p.Stock())
}

func TestCatalogQuantityBounds(t *testing.T) {
	_, err := NewQuantity(0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	q, err := NewQuantity(1_000_000)
	require.NoError(t, err)
	assert.Equal(t, 1_000_000, q.Int())

	_, err = NewQuantity(1_000_001)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	one, err := NewQuantity(1)
	require.NoError(t, err)
	_, err = q.Add(one)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}
