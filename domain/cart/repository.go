package cart

import "context"

// Repository is the cart persistence port. The aggregate is loaded and
// saved as one unit; Save replaces the full item set on update and assigns
// identifiers on first save.
type Repository interface {
	// GetBySessionID loads the cart for a session, failing with
	// ErrCartNotFound if none exists.
	GetBySessionID(ctx context.Context, sessionID string) (*Cart, error)

	// Save persists the whole aggregate (create or update) and returns it
	// with identifiers assigned.
	Save(ctx context.Context, c *Cart) (*Cart, error)

	// Delete removes a cart and all its items.
	Delete(ctx context.Context, cartID string) error

	// GetItemByID looks up a single item by id, failing with
	// ErrItemNotFound if absent.
	GetItemByID(ctx context.Context, itemID string) (*CartItem, error)

	// DeleteItem removes a single item by id.
	DeleteItem(ctx context.Context, itemID string) error
}
