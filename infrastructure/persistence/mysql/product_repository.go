package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"shopcore/domain/catalog"
	"shopcore/infrastructure/persistence/mysql/po"
)

// ProductRepository answers catalog product queries from mysql.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

var _ catalog.ProductRepository = (*ProductRepository)(nil)

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var productPO po.ProductPO
	result := r.db.WithContext(ctx).First(&productPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, catalog.NewProductNotFoundError(id)
		}
		return nil, result.Error
	}
	return productPO.ToDomain()
}

func (r *ProductRepository) GetAll(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, error) {
	db := applyProductFilter(r.db.WithContext(ctx), filter)

	var productPOs []po.ProductPO
	if err := db.Order("name").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&productPOs).Error; err != nil {
		return nil, err
	}
	return toProducts(productPOs)
}

func (r *ProductRepository) Search(ctx context.Context, query string, limit, offset int) ([]*catalog.Product, error) {
	return r.GetAll(ctx, catalog.ProductFilter{Query: query, Limit: limit, Offset: offset})
}

func (r *ProductRepository) Count(ctx context.Context, filter catalog.ProductFilter) (int64, error) {
	var count int64
	db := applyProductFilter(r.db.WithContext(ctx), filter).Model(&po.ProductPO{})
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyProductFilter(db *gorm.DB, filter catalog.ProductFilter) *gorm.DB {
	if filter.CategoryID != "" {
		db = db.Where("category_id = ?", filter.CategoryID)
	}
	if filter.InStock {
		db = db.Where("stock > 0")
	}
	if filter.PriceMin > 0 {
		db = db.Where("price_cents >= ?", filter.PriceMin)
	}
	if filter.PriceMax > 0 {
		db = db.Where("price_cents <= ?", filter.PriceMax)
	}
	if query := strings.TrimSpace(filter.Query); query != "" {
		pattern := "%" + query + "%"
		db = db.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	return db
}

func toProducts(productPOs []po.ProductPO) ([]*catalog.Product, error) {
	products := make([]*catalog.Product, 0, len(productPOs))
	for i := range productPOs {
		p, err := productPOs[i].ToDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}
