package mysql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shopcore/domain/cart"
	"shopcore/infrastructure/persistence/mysql/po"
)

// CartRepository persists cart aggregates over two tables. Save replaces
// the item set wholesale inside one transaction, so the stored rows always
// mirror the in-memory aggregate and item-level diffing never drifts.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

var _ cart.Repository = (*CartRepository)(nil)

func (r *CartRepository) GetBySessionID(ctx context.Context, sessionID string) (*cart.Cart, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var cartPO po.CartPO
	result := r.db.WithContext(ctx).First(&cartPO, "session_id = ?", sessionID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, cart.NewCartNotFoundError(sessionID)
		}
		return nil, result.Error
	}

	var itemPOs []po.CartItemPO
	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartPO.ID).
		Order("created_at").
		Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	return cartPO.ToDomain(itemPOs), nil
}

// Save upserts the cart row and replaces its items. Ids are assigned here
// for the cart and for any item the aggregate added since the last save.
func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) (*cart.Cart, error) {
	cartID := c.ID()
	isNew := cartID == ""
	if isNew {
		cartID = uuid.NewString()
	}

	cartPO, itemPOs := po.FromCartDomain(c)
	cartPO.ID = cartID
	persistedItems := make([]po.CartItemPO, 0, len(itemPOs))
	for _, itemPO := range itemPOs {
		if itemPO.ID == "" {
			itemPO.ID = uuid.NewString()
		}
		itemPO.CartID = cartID
		persistedItems = append(persistedItems, *itemPO)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if isNew {
			if err := tx.Create(cartPO).Error; err != nil {
				return err
			}
		} else {
			result := tx.Model(&po.CartPO{}).
				Where("id = ?", cartID).
				Update("updated_at", cartPO.UpdatedAt)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return cart.NewCartNotFoundError(c.SessionID())
			}
		}

		if err := tx.Where("cart_id = ?", cartID).Delete(&po.CartItemPO{}).Error; err != nil {
			return err
		}
		if len(persistedItems) == 0 {
			return nil
		}
		return tx.Create(&persistedItems).Error
	})
	if err != nil {
		return nil, err
	}

	return cartPO.ToDomain(persistedItems), nil
}

func (r *CartRepository) Delete(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&po.CartItemPO{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", cartID).Delete(&po.CartPO{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return cart.NewCartNotFoundError(cartID)
		}
		return nil
	})
}

func (r *CartRepository) GetItemByID(ctx context.Context, itemID string) (*cart.CartItem, error) {
	var itemPO po.CartItemPO
	result := r.db.WithContext(ctx).First(&itemPO, "id = ?", itemID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, cart.NewItemNotFoundError(itemID)
		}
		return nil, result.Error
	}
	item := itemPO.ToDomain()
	return &item, nil
}

func (r *CartRepository) DeleteItem(ctx context.Context, itemID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", itemID).Delete(&po.CartItemPO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return cart.NewItemNotFoundError(itemID)
	}
	return nil
}
