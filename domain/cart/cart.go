/*
Package cart is the shopping cart subdomain.

Cart is the aggregate root: every CartItem is owned by exactly one Cart and
is only reachable through it. All fields are private; mutation goes through
aggregate methods that validate before touching state, so a failed call
never leaves a partial update behind.

Prices are frozen at add time: an item stores the integer minor units and
currency it was added with, never a live Product reference, so later price
or stock changes do not retroactively alter carts.
*/
package cart

import (
	"strings"
	"time"

	"shopcore/domain/shared"
)

// Cart aggregate root for one guest session.
// Invariant: at most one item per product id; updatedAt is refreshed on
// every successful mutation.
type Cart struct {
	id        string
	sessionID string
	items     []CartItem
	createdAt time.Time
	updatedAt time.Time
}

// CartItem is one product line inside a Cart. It has no life cycle of its
// own: identity is assigned by the repository on first save and item ids
// are only meaningful within their owning cart.
type CartItem struct {
	id         string
	cartID     string
	productID  string
	quantity   Quantity
	priceAtAdd int64 // minor units, frozen at add time
	currency   string
	createdAt  time.Time
}

// NewCart creates an empty cart for a session. The id stays unset until the
// repository assigns one on first save.
func NewCart(sessionID string) (*Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, NewInvalidSessionIDError()
	}

	now := time.Now().UTC()
	return &Cart{
		sessionID: sessionID,
		items:     []CartItem{},
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ============================================================================
// Reconstruction - for repository use only
// ============================================================================

// ReconstructionDTO rebuilds a Cart from persistence. Repository layer only;
// it bypasses factory validation on purpose.
type ReconstructionDTO struct {
	ID        string
	SessionID string
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RebuildFromDTO reconstructs a Cart aggregate from persisted state. The
// item slice is copied so the aggregate never shares a backing array with
// whatever the repository keeps around.
func RebuildFromDTO(dto ReconstructionDTO) *Cart {
	items := make([]CartItem, len(dto.Items))
	copy(items, dto.Items)
	return &Cart{
		id:        dto.ID,
		sessionID: dto.SessionID,
		items:     items,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
	}
}

// ItemReconstructionDTO rebuilds a CartItem from persistence.
type ItemReconstructionDTO struct {
	ID         string
	CartID     string
	ProductID  string
	Quantity   int
	PriceAtAdd int64
	Currency   string
	CreatedAt  time.Time
}

// RebuildItemFromDTO reconstructs a CartItem from persisted state.
func RebuildItemFromDTO(dto ItemReconstructionDTO) CartItem {
	return CartItem{
		id:         dto.ID,
		cartID:     dto.CartID,
		productID:  dto.ProductID,
		quantity:   Quantity{value: dto.Quantity},
		priceAtAdd: dto.PriceAtAdd,
		currency:   dto.Currency,
		createdAt:  dto.CreatedAt,
	}
}

// ============================================================================
// Aggregate behavior
// ============================================================================

// AddItem adds a product to the cart, freezing the given price in minor
// units. If a line for the product already exists its quantity is increased;
// a result above MaxQuantity fails with ErrQuantityOutOfRange and leaves the
// cart unchanged. Returns a copy of the affected item.
func (c *Cart) AddItem(productID string, quantity int, price shared.Price) (CartItem, error) {
	qty, err := NewQuantity(quantity)
	if err != nil {
		return CartItem{}, err
	}

	if existing := c.findItem(productID); existing != nil {
		merged, err := existing.quantity.Add(qty)
		if err != nil {
			return CartItem{}, err
		}
		existing.quantity = merged
		c.updatedAt = time.Now().UTC()
		return *existing, nil
	}

	item := CartItem{
		cartID:     c.id,
		productID:  productID,
		quantity:   qty,
		priceAtAdd: price.Cents(),
		currency:   price.Currency(),
		createdAt:  time.Now().UTC(),
	}
	c.items = append(c.items, item)
	c.updatedAt = time.Now().UTC()
	return item, nil
}

// RemoveItem deletes the item with the given id, failing with
// ErrItemNotFound if absent.
func (c *Cart) RemoveItem(itemID string) error {
	for i, item := range c.items {
		if item.id == itemID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.updatedAt = time.Now().UTC()
			return nil
		}
	}
	return NewItemNotFoundError(itemID)
}

// UpdateItemQuantity sets a new quantity on an existing item. Bounds
// validation is delegated to the Quantity type; both lookups and validation
// happen before any state changes.
func (c *Cart) UpdateItemQuantity(itemID string, quantity int) (CartItem, error) {
	item := c.findItemByID(itemID)
	if item == nil {
		return CartItem{}, NewItemNotFoundError(itemID)
	}

	qty, err := NewQuantity(quantity)
	if err != nil {
		return CartItem{}, err
	}

	item.quantity = qty
	c.updatedAt = time.Now().UTC()
	return *item, nil
}

// Clear removes every item. Idempotent.
func (c *Cart) Clear() {
	c.items = []CartItem{}
	c.updatedAt = time.Now().UTC()
}

// Merge folds another cart's items into this one. Matching products sum
// their quantities and cap at MaxQuantity instead of failing: merge
// reconciles two carts opportunistically (guest cart into an authenticated
// one) and must never reject. This cart's frozen price wins on conflict;
// copied lines take new, unset identity.
func (c *Cart) Merge(other *Cart) {
	for _, otherItem := range other.items {
		if existing := c.findItem(otherItem.productID); existing != nil {
			sum := existing.quantity.value + otherItem.quantity.value
			if sum > MaxQuantity {
				sum = MaxQuantity
			}
			existing.quantity = Quantity{value: sum}
			continue
		}

		c.items = append(c.items, CartItem{
			cartID:     c.id,
			productID:  otherItem.productID,
			quantity:   otherItem.quantity,
			priceAtAdd: otherItem.priceAtAdd,
			currency:   otherItem.currency,
			createdAt:  time.Now().UTC(),
		})
	}
	c.updatedAt = time.Now().UTC()
}

// Total returns the cart total in major units: the sum over items of the
// frozen unit price times quantity, converted from minor units once at the
// end so the arithmetic stays integer-exact.
func (c *Cart) Total() float64 {
	var cents int64
	for _, item := range c.items {
		cents += item.SubtotalCents()
	}
	return float64(cents) / 100
}

// ItemCount returns the sum of quantities across all lines, not the number
// of lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.quantity.value
	}
	return count
}

func (c *Cart) findItem(productID string) *CartItem {
	for i := range c.items {
		if c.items[i].productID == productID {
			return &c.items[i]
		}
	}
	return nil
}

func (c *Cart) findItemByID(itemID string) *CartItem {
	for i := range c.items {
		if c.items[i].id == itemID {
			return &c.items[i]
		}
	}
	return nil
}

// ============================================================================
// Getters
// ============================================================================

func (c *Cart) ID() string        { return c.id }
func (c *Cart) SessionID() string { return c.sessionID }

// Items returns a copy of the item list; callers cannot mutate the
// aggregate through it.
func (c *Cart) Items() []CartItem {
	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) CreatedAt() time.Time { return c.createdAt }
func (c *Cart) UpdatedAt() time.Time { return c.updatedAt }

// CartItem getters.

func (item CartItem) ID() string        { return item.id }
func (item CartItem) CartID() string    { return item.cartID }
func (item CartItem) ProductID() string { return item.productID }
func (item CartItem) Quantity() int     { return item.quantity.value }

// PriceAtAdd returns the frozen unit price in minor units.
func (item CartItem) PriceAtAdd() int64 { return item.priceAtAdd }

// UnitPrice returns the frozen unit price in major units.
func (item CartItem) UnitPrice() float64 { return float64(item.priceAtAdd) / 100 }

func (item CartItem) Currency() string     { return item.currency }
func (item CartItem) CreatedAt() time.Time { return item.createdAt }

// SubtotalCents returns price times quantity in minor units.
func (item CartItem) SubtotalCents() int64 {
	return item.priceAtAdd * int64(item.quantity.value)
}

// Subtotal returns price times quantity in major units.
func (item CartItem) Subtotal() float64 {
	return float64(item.SubtotalCents()) / 100
}
