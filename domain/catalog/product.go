/*
Package catalog is the product catalog subdomain: products and the acyclic
category hierarchy they are organized into.

Entities follow the same shape as the cart aggregate: private fields,
validating factories, ReconstructionDTOs for the repository layer, and
read-only getters.
*/
package catalog

import (
	"strings"
	"time"

	"shopcore/domain/shared"
)

// Product name and description limits.
const (
	MinNameLength        = 1
	MaxNameLength        = 255
	MaxDescriptionLength = 5000
)

// Product is a read-mostly catalog entity. Carts never hold a live Product
// pointer, only its id plus a frozen price snapshot.
type Product struct {
	id          string
	name        string
	description string
	price       shared.Price
	categoryID  string // weak reference; empty means uncategorized
	stock       int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewProduct creates a validated Product. The id stays unset until the
// repository assigns one.
func NewProduct(name, description string, price shared.Price, categoryID string, stock int) (*Product, error) {
	if len(strings.TrimSpace(name)) < MinNameLength {
		return nil, NewInvalidNameError("product", "name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return nil, NewInvalidNameError("product", "name cannot exceed 255 characters")
	}
	if len(description) > MaxDescriptionLength {
		return nil, shared.NewValidationError("product", "description",
			"description cannot exceed 5000 characters")
	}
	if stock < 0 {
		return nil, shared.NewValidationError("product", "stock", "stock cannot be negative")
	}

	now := time.Now().UTC()
	return &Product{
		name:        name,
		description: description,
		price:       price,
		categoryID:  categoryID,
		stock:       stock,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ProductReconstructionDTO rebuilds a Product from persistence. Repository
// layer only.
type ProductReconstructionDTO struct {
	ID          string
	Name        string
	Description string
	Price       shared.Price
	CategoryID  string
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RebuildProductFromDTO reconstructs a Product from persisted state.
func RebuildProductFromDTO(dto ProductReconstructionDTO) *Product {
	return &Product{
		id:          dto.ID,
		name:        dto.Name,
		description: dto.Description,
		price:       dto.Price,
		categoryID:  dto.CategoryID,
		stock:       dto.Stock,
		createdAt:   dto.CreatedAt,
		updatedAt:   dto.UpdatedAt,
	}
}

// IsAvailable reports whether the requested quantity can be fulfilled.
// Pure: no side effects.
func (p *Product) IsAvailable(requested int) bool {
	return p.stock >= requested
}

// ReduceStock decreases stock, failing with ErrInvalidQuantity for a
// non-positive amount and ErrInsufficientStock when the reduction exceeds
// what is available. Invoked by order-fulfillment flows, not the cart.
func (p *Product) ReduceStock(quantity int) error {
	if _, err := NewQuantity(quantity); err != nil {
		return err
	}
	if !p.IsAvailable(quantity) {
		return NewInsufficientStockError(p.id, quantity, p.stock)
	}

	p.stock -= quantity
	p.updatedAt = time.Now().UTC()
	return nil
}

// IncreaseStock raises stock by a positive amount.
func (p *Product) IncreaseStock(quantity int) error {
	if _, err := NewQuantity(quantity); err != nil {
		return err
	}

	p.stock += quantity
	p.updatedAt = time.Now().UTC()
	return nil
}

// Getters.

func (p *Product) ID() string            { return p.id }
func (p *Product) Name() string          { return p.name }
func (p *Product) Description() string   { return p.description }
func (p *Product) Price() shared.Price   { return p.price }
func (p *Product) CategoryID() string    { return p.categoryID }
func (p *Product) Stock() int            { return p.stock }
func (p *Product) CreatedAt() time.Time  { return p.createdAt }
func (p *Product) UpdatedAt() time.Time  { return p.updatedAt }
