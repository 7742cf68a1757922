package po

import (
	"time"

	"shopcore/domain/catalog"
	"shopcore/domain/shared"
)

type ProductPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	Name        string    `gorm:"size:255;not null;index"`
	Description string    `gorm:"type:text"`
	PriceCents  int64     `gorm:"not null"`
	Currency    string    `gorm:"size:3;not null"`
	CategoryID  string    `gorm:"index;size:64"`
	Stock       int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (ProductPO) TableName() string {
	return "products"
}

func FromProductDomain(p *catalog.Product) *ProductPO {
	return &ProductPO{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		PriceCents:  p.Price().Cents(),
		Currency:    p.Price().Currency(),
		CategoryID:  p.CategoryID(),
		Stock:       p.Stock(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func (po *ProductPO) ToDomain() (*catalog.Product, error) {
	price, err := shared.NewPriceFromCents(po.PriceCents, po.Currency)
	if err != nil {
		return nil, err
	}
	return catalog.RebuildProductFromDTO(catalog.ProductReconstructionDTO{
		ID:          po.ID,
		Name:        po.Name,
		Description: po.Description,
		Price:       price,
		CategoryID:  po.CategoryID,
		Stock:       po.Stock,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}), nil
}
