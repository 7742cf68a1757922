package cart

import "shopcore/domain/cart"

// AddItemCommand adds a product to a session's cart.
type AddItemCommand struct {
	SessionID string `json:"session_id" binding:"required"`
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=100"`
}

// UpdateQuantityCommand sets a new quantity on a cart item.
type UpdateQuantityCommand struct {
	SessionID string `json:"session_id" binding:"required"`
	ItemID    string `json:"item_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=100"`
}

// RemoveItemCommand removes one item from a session's cart.
type RemoveItemCommand struct {
	SessionID string `json:"session_id" binding:"required"`
	ItemID    string `json:"item_id" binding:"required"`
}

// MergeCommand folds the source session's cart into the target session's.
type MergeCommand struct {
	SessionID       string `json:"session_id" binding:"required"`
	SourceSessionID string `json:"source_session_id" binding:"required"`
}

// CartItemDTO is the outward projection of one cart line.
type CartItemDTO struct {
	ID         string  `json:"id"`
	ProductID  string  `json:"product_id"`
	Quantity   int     `json:"quantity"`
	PriceAtAdd float64 `json:"price_at_add"` // unit price in major units
	Currency   string  `json:"currency"`
	Subtotal   float64 `json:"subtotal"`
}

// CartDTO is the outward projection of a cart aggregate.
type CartDTO struct {
	ID        string        `json:"id"`
	SessionID string        `json:"session_id"`
	Items     []CartItemDTO `json:"items"`
	Total     float64       `json:"total"`
	ItemCount int           `json:"item_count"`
}

func toDTO(c *cart.Cart) *CartDTO {
	items := make([]CartItemDTO, len(c.Items()))
	for i, item := range c.Items() {
		items[i] = CartItemDTO{
			ID:         item.ID(),
			ProductID:  item.ProductID(),
			Quantity:   item.Quantity(),
			PriceAtAdd: item.UnitPrice(),
			Currency:   item.Currency(),
			Subtotal:   item.Subtotal(),
		}
	}

	return &CartDTO{
		ID:        c.ID(),
		SessionID: c.SessionID(),
		Items:     items,
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}
