// Package po holds the persistence objects that map aggregates onto mysql
// tables. POs carry gorm tags only; domain rules stay in the domain layer
// and rehydration goes through the ReconstructionDTOs.
package po

import (
	"time"

	"shopcore/domain/cart"
)

type CartPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	SessionID string    `gorm:"uniqueIndex;size:128;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CartPO) TableName() string {
	return "carts"
}

type CartItemPO struct {
	ID         string    `gorm:"primaryKey;size:64"`
	CartID     string    `gorm:"index;size:64;not null"`
	ProductID  string    `gorm:"size:64;not null"`
	Quantity   int       `gorm:"not null"`
	PriceAtAdd int64     `gorm:"not null"` // minor units frozen at add time
	Currency   string    `gorm:"size:3;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (CartItemPO) TableName() string {
	return "cart_items"
}

func FromCartDomain(c *cart.Cart) (*CartPO, []*CartItemPO) {
	cartPO := &CartPO{
		ID:        c.ID(),
		SessionID: c.SessionID(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}

	items := c.Items()
	itemPOs := make([]*CartItemPO, 0, len(items))
	for _, item := range items {
		itemPOs = append(itemPOs, &CartItemPO{
			ID:         item.ID(),
			CartID:     c.ID(),
			ProductID:  item.ProductID(),
			Quantity:   item.Quantity(),
			PriceAtAdd: item.PriceAtAdd(),
			Currency:   item.Currency(),
			CreatedAt:  item.CreatedAt(),
		})
	}
	return cartPO, itemPOs
}

func (po *CartPO) ToDomain(itemPOs []CartItemPO) *cart.Cart {
	items := make([]cart.CartItem, 0, len(itemPOs))
	for _, itemPO := range itemPOs {
		items = append(items, itemPO.ToDomain())
	}
	return cart.RebuildFromDTO(cart.ReconstructionDTO{
		ID:        po.ID,
		SessionID: po.SessionID,
		Items:     items,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	})
}

func (po CartItemPO) ToDomain() cart.CartItem {
	return cart.RebuildItemFromDTO(cart.ItemReconstructionDTO{
		ID:         po.ID,
		CartID:     po.CartID,
		ProductID:  po.ProductID,
		Quantity:   po.Quantity,
		PriceAtAdd: po.PriceAtAdd,
		Currency:   po.Currency,
		CreatedAt:  po.CreatedAt,
	})
}
