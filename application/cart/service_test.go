package cart_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcart "shopcore/application/cart"
	"shopcore/domain/cart"
	"shopcore/domain/catalog"
	"shopcore/domain/shared"
	"shopcore/infrastructure/persistence/memory"
)

type fixture struct {
	service  *appcart.Service
	carts    *memory.CartRepository
	products *memory.ProductRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	carts := memory.NewCartRepository()
	products := memory.NewProductRepository()
	return &fixture{
		service:  appcart.NewService(carts, products),
		carts:    carts,
		products: products,
	}
}

func (f *fixture) seedProduct(t *testing.T, name string, cents int64, stock int) *catalog.Product {
	t.Helper()
	price, err := shared.NewPriceFromCents(cents, "USD")
	require.NoError(t, err)
	p, err := catalog.NewProduct(name, "", price, "", stock)
	require.NoError(t, err)
	return f.products.Seed(p)
}

func TestGetCartCreatesOnFirstAccess(t *testing.T) {
	f := newFixture(t)

	dto, err := f.service.GetCart(context.Background(), "session-1")
	require.NoError(t, err)

	assert.NotEmpty(t, dto.ID)
	assert.Equal(t, "session-1", dto.SessionID)
	assert.Empty(t, dto.Items)
	assert.Zero(t, dto.Total)

	again, err := f.service.GetCart(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, dto.ID, again.ID)
}

func TestAddItemHappyPath(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, "Wireless Mouse", 2999, 10)

	dto, err := f.service.AddItem(context.Background(), appcart.AddItemCommand{
		SessionID: "session-1",
		ProductID: product.ID(),
		Quantity:  2,
	})
	require.NoError(t, err)

	require.Len(t, dto.Items, 1)
	assert.NotEmpty(t, dto.Items[0].ID)
	assert.Equal(t, product.ID(), dto.Items[0].ProductID)
	assert.Equal(t, 2, dto.Items[0].Quantity)
	assert.InDelta(t, 29.99, dto.Items[0].PriceAtAdd, 1e-9)
	assert.InDelta(t, 59.98, dto.Total, 1e-9)
}

func TestAddItemFreezesPriceAtAddTime(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, "Keyboard", 4999, 10)

	_, err := f.service.AddItem(context.Background(), appcart.AddItemCommand{
		SessionID: "session-1",
		ProductID: product.ID(),
		Quantity:  1,
	})
	require.NoError(t, err)

	// Reprice the product; the cart line must keep the old price.
	newPrice, err := shared.NewPriceFromCents(5999, "USD")
	require.NoError(t, err)
	f.products.Seed(catalog.RebuildProductFromDTO(catalog.ProductReconstructionDTO{
		ID:    product.ID(),
		Name:  product.Name(),
		Price: newPrice,
		Stock: product.Stock(),
	}))

	dto, err := f.service.GetCart(context.Background(), "session-1")
	require.NoError(t, err)
	assert.InDelta(t, 49.99, dto.Items[0].PriceAtAdd, 1e-9)
}

func TestAddItemUnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.AddItem(context.Background(), appcart.AddItemCommand{
		SessionID: "session-1",
		ProductID: "missing",
		Quantity:  3,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, cart.ErrProductNotAvailable)

	var domainErr interface{ Details() map[string]any }
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 3, domainErr.Details()["requested_quantity"])
	assert.Equal(t, 0, domainErr.Details()["available_stock"])
}

func TestAddItemInsufficientStock(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, "Limited Item", 1000, 2)

	_, err := f.service.AddItem(context.Background(), appcart.AddItemCommand{
		SessionID: "session-1",
		ProductID: product.ID(),
		Quantity:  5,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, cart.ErrProductNotAvailable)

	var domainErr interface{ Details() map[string]any }
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 5, domainErr.Details()["requested_quantity"])
	assert.Equal(t, 2, domainErr.Details()["available_stock"])
}

func TestAddItemMergesExistingLine(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, "Mug", 799, 100)

	for i := 0; i < 2; i++ {
		_, err := f.service.AddItem(context.Background(), appcart.AddItemCommand{
			SessionID: "session-1",
			ProductID: product.ID(),
			Quantity:  4,
		})
		require.NoError(t, err)
	}

	dto, err := f.service.GetCart(context.Background(), "session-1")
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, 8, dto.Items[0].Quantity)
	assert.Equal(t, 8, dto.ItemCount)
}

func TestUpdateQuantity(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, "Notebook", 1299, 50)

	added, err := f.service.AddItem(context.Background(), appcart.AddItemCommand{
		SessionID: "session-1",
		ProductID: product.ID(),
		Quantity:  1,
	})
	require.NoError(t, err)

	dto, err := f.service.UpdateQuantity(context.Background(), appcart.UpdateQuantityCommand{
		SessionID: "session-1",
		ItemID:    added.Items[0].ID,
		Quantity:  7,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, dto.Items[0].Quantity)
}

func TestUpdateQuantityUnknownItem(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.GetCart(context.Background(), "session-1")
	require.NoError(t, err)

	_, err = f.service.UpdateQuantity(context.Background(), appcart.UpdateQuantityCommand{
		SessionID: "session-1",
		ItemID:    "missing",
		Quantity:  2,
	})
	assert.ErrorIs(t, err, cart.ErrItemNotFound)
}

func TestUpdateQuantityMissingCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.UpdateQuantity(context.Background(), appcart.UpdateQuantityCommand{
		SessionID: "ghost",
		ItemID:    "whatever",
		Quantity:  2,
	})
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}

func TestRemoveItem(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, "Pen", 199, 50)

	added, err := f.service.AddItem(context.Background(), appcart.AddItemCommand{
		SessionID: "session-1",
		ProductID: product.ID(),
		Quantity:  1,
	})
	require.NoError(t, err)

	dto, err := f.service.RemoveItem(context.Background(), appcart.RemoveItemCommand{
		SessionID: "session-1",
		ItemID:    added.Items[0].ID,
	})
	require.NoError(t, err)
	assert.Empty(t, dto.Items)
}

func TestClearCart(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, "Pen", 199, 50)

	_, err := f.service.AddItem(context.Background(), appcart.AddItemCommand{
		SessionID: "session-1",
		ProductID: product.ID(),
		Quantity:  3,
	})
	require.NoError(t, err)

	dto, err := f.service.ClearCart(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Empty(t, dto.Items)
	assert.Zero(t, dto.Total)

	// The cart itself survives a clear.
	again, err := f.service.GetCart(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, dto.ID, again.ID)
}

func TestMergeCarts(t *testing.T) {
	f := newFixture(t)
	shared1 := f.seedProduct(t, "Shared", 1000, 200)
	guestOnly := f.seedProduct(t, "Guest Only", 500, 200)

	_, err := f.service.AddItem(context.Background(), appcart.AddItemCommand{
		SessionID: "user-1", ProductID: shared1.ID(), Quantity: 3,
	})
	require.NoError(t, err)
	_, err = f.service.AddItem(context.Background(), appcart.AddItemCommand{
		SessionID: "guest-1", ProductID: shared1.ID(), Quantity: 2,
	})
	require.NoError(t, err)
	_, err = f.service.AddItem(context.Background(), appcart.AddItemCommand{
		SessionID: "guest-1", ProductID: guestOnly.ID(), Quantity: 1,
	})
	require.NoError(t, err)

	dto, err := f.service.MergeCarts(context.Background(), appcart.MergeCommand{
		SessionID:       "user-1",
		SourceSessionID: "guest-1",
	})
	require.NoError(t, err)

	require.Len(t, dto.Items, 2)
	byProduct := map[string]int{}
	for _, item := range dto.Items {
		byProduct[item.ProductID] = item.Quantity
	}
	assert.Equal(t, 5, byProduct[shared1.ID()])
	assert.Equal(t, 1, byProduct[guestOnly.ID()])

	// Source cart is emptied, not deleted.
	source, err := f.service.GetCart(context.Background(), "guest-1")
	require.NoError(t, err)
	assert.Empty(t, source.Items)
}

func TestMergeCartsCreatesTargetOnMiss(t *testing.T) {
	f := newFixture(t)
	product := f.seedProduct(t, "Only In Guest", 1500, 10)

	_, err := f.service.AddItem(context.Background(), appcart.AddItemCommand{
		SessionID: "guest-1", ProductID: product.ID(), Quantity: 2,
	})
	require.NoError(t, err)

	dto, err := f.service.MergeCarts(context.Background(), appcart.MergeCommand{
		SessionID:       "user-1",
		SourceSessionID: "guest-1",
	})
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, 2, dto.Items[0].Quantity)
}

func TestMergeCartsMissingSource(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.MergeCarts(context.Background(), appcart.MergeCommand{
		SessionID:       "user-1",
		SourceSessionID: "ghost",
	})
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}

func TestDeleteCart(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.GetCart(context.Background(), "session-1")
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteCart(context.Background(), "session-1"))

	err = f.service.DeleteCart(context.Background(), "session-1")
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}
