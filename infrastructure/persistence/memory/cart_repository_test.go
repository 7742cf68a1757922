package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcore/domain/cart"
	"shopcore/domain/shared"
)

func mustPrice(t *testing.T, cents int64) shared.Price {
	t.Helper()
	price, err := shared.NewPriceFromCents(cents, "USD")
	require.NoError(t, err)
	return price
}

func TestCartRepositorySaveAssignsIDs(t *testing.T) {
	repo := NewCartRepository()

	c, err := cart.NewCart("session-1")
	require.NoError(t, err)
	_, err = c.AddItem("product-1", 2, mustPrice(t, 2999))
	require.NoError(t, err)

	saved, err := repo.Save(context.Background(), c)
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID())
	require.Len(t, saved.Items(), 1)
	assert.NotEmpty(t, saved.Items()[0].ID())
	assert.Equal(t, saved.ID(), saved.Items()[0].CartID())

	// Ids are stable across saves.
	again, err := repo.Save(context.Background(), saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID(), again.ID())
	assert.Equal(t, saved.Items()[0].ID(), again.Items()[0].ID())
}

func TestCartRepositorySaveReplacesItems(t *testing.T) {
	repo := NewCartRepository()

	c, err := cart.NewCart("session-1")
	require.NoError(t, err)
	_, err = c.AddItem("product-1", 2, mustPrice(t, 1000))
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), c)
	require.NoError(t, err)

	saved.Clear()
	_, err = saved.AddItem("product-2", 1, mustPrice(t, 500))
	require.NoError(t, err)
	resaved, err := repo.Save(context.Background(), saved)
	require.NoError(t, err)

	loaded, err := repo.GetBySessionID(context.Background(), "session-1")
	require.NoError(t, err)
	require.Len(t, loaded.Items(), 1)
	assert.Equal(t, "product-2", loaded.Items()[0].ProductID())
	assert.Equal(t, resaved.ID(), loaded.ID())
}

func TestCartRepositoryGetBySessionIDMiss(t *testing.T) {
	repo := NewCartRepository()

	_, err := repo.GetBySessionID(context.Background(), "ghost")
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}

func TestCartRepositorySnapshotsAreIsolated(t *testing.T) {
	repo := NewCartRepository()

	c, err := cart.NewCart("session-1")
	require.NoError(t, err)
	_, err = c.AddItem("product-1", 2, mustPrice(t, 1000))
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), c)
	require.NoError(t, err)

	// In-place item mutations on a returned aggregate must not leak into
	// the store before Save: the stored snapshot and the aggregate must
	// not share item backing arrays.
	itemID := saved.Items()[0].ID()
	_, err = saved.UpdateItemQuantity(itemID, 99)
	require.NoError(t, err)

	loaded, err := repo.GetBySessionID(context.Background(), "session-1")
	require.NoError(t, err)
	require.Len(t, loaded.Items(), 1)
	assert.Equal(t, 2, loaded.Items()[0].Quantity())

	// Same for slice-replacing mutations.
	loaded.Clear()

	reloaded, err := repo.GetBySessionID(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Len(t, reloaded.Items(), 1)
}

func TestCartRepositoryDelete(t *testing.T) {
	repo := NewCartRepository()

	c, err := cart.NewCart("session-1")
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), c)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), saved.ID()))

	_, err = repo.GetBySessionID(context.Background(), "session-1")
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), saved.ID()), cart.ErrCartNotFound)
}

func TestCartRepositoryItemOperations(t *testing.T) {
	repo := NewCartRepository()

	c, err := cart.NewCart("session-1")
	require.NoError(t, err)
	_, err = c.AddItem("product-1", 2, mustPrice(t, 1000))
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), c)
	require.NoError(t, err)
	itemID := saved.Items()[0].ID()

	item, err := repo.GetItemByID(context.Background(), itemID)
	require.NoError(t, err)
	assert.Equal(t, "product-1", item.ProductID())

	require.NoError(t, repo.DeleteItem(context.Background(), itemID))

	_, err = repo.GetItemByID(context.Background(), itemID)
	assert.ErrorIs(t, err, cart.ErrItemNotFound)

	loaded, err := repo.GetBySessionID(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Items())
}
