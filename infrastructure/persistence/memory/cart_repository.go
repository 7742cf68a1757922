/*
Package memory provides map-backed repository implementations guarded by
RWMutexes. They satisfy the same ports as the mysql package and back the
application-layer tests plus local development without a database.
*/
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"shopcore/domain/cart"
)

// CartRepository keeps cart snapshots in memory. Save stores a deep copy
// of the aggregate, so callers can keep mutating their instance without
// leaking changes into the store.
type CartRepository struct {
	mu        sync.RWMutex
	carts     map[string]cart.ReconstructionDTO // cart id -> snapshot
	bySession map[string]string                 // session id -> cart id
}

// NewCartRepository creates an empty in-memory cart store.
func NewCartRepository() *CartRepository {
	return &CartRepository{
		carts:     make(map[string]cart.ReconstructionDTO),
		bySession: make(map[string]string),
	}
}

var _ cart.Repository = (*CartRepository)(nil)

// GetBySessionID returns the cart for a session, ErrCartNotFound on miss.
func (r *CartRepository) GetBySessionID(ctx context.Context, sessionID string) (*cart.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cartID, ok := r.bySession[sessionID]
	if !ok {
		return nil, cart.NewCartNotFoundError(sessionID)
	}
	snapshot := r.carts[cartID]
	return cart.RebuildFromDTO(snapshot), nil
}

// Save persists the aggregate, assigning ids to the cart and any new
// items, and replaces the stored item set wholesale. Returns the cart as
// persisted.
func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) (*cart.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cartID := c.ID()
	if cartID == "" {
		cartID = uuid.NewString()
	}

	items := make([]cart.CartItem, 0, len(c.Items()))
	for _, item := range c.Items() {
		itemID := item.ID()
		if itemID == "" {
			itemID = uuid.NewString()
		}
		items = append(items, cart.RebuildItemFromDTO(cart.ItemReconstructionDTO{
			ID:         itemID,
			CartID:     cartID,
			ProductID:  item.ProductID(),
			Quantity:   item.Quantity(),
			PriceAtAdd: item.PriceAtAdd(),
			Currency:   item.Currency(),
			CreatedAt:  item.CreatedAt(),
		}))
	}

	snapshot := cart.ReconstructionDTO{
		ID:        cartID,
		SessionID: c.SessionID(),
		Items:     items,
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
	r.carts[cartID] = snapshot
	r.bySession[c.SessionID()] = cartID

	return cart.RebuildFromDTO(snapshot), nil
}

// Delete removes a cart and its items, ErrCartNotFound on miss.
func (r *CartRepository) Delete(ctx context.Context, cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot, ok := r.carts[cartID]
	if !ok {
		return cart.NewCartNotFoundError(cartID)
	}
	delete(r.carts, cartID)
	delete(r.bySession, snapshot.SessionID)
	return nil
}

// GetItemByID returns a single cart item, ErrItemNotFound on miss.
func (r *CartRepository) GetItemByID(ctx context.Context, itemID string) (*cart.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, snapshot := range r.carts {
		for _, item := range snapshot.Items {
			if item.ID() == itemID {
				found := item
				return &found, nil
			}
		}
	}
	return nil, cart.NewItemNotFoundError(itemID)
}

// DeleteItem removes a single item from whichever cart owns it.
func (r *CartRepository) DeleteItem(ctx context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for cartID, snapshot := range r.carts {
		for i, item := range snapshot.Items {
			if item.ID() == itemID {
				snapshot.Items = append(snapshot.Items[:i], snapshot.Items[i+1:]...)
				r.carts[cartID] = snapshot
				return nil
			}
		}
	}
	return cart.NewItemNotFoundError(itemID)
}
