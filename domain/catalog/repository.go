package catalog

import "context"

// ProductFilter narrows GetAll/Count queries. Zero values mean "no filter";
// pagination clamping happens at the application layer, repositories trust
// their inputs.
type ProductFilter struct {
	CategoryID string
	Query      string
	PriceMin   int64 // minor units; 0 = unset
	PriceMax   int64 // minor units; 0 = unset
	InStock    bool
	Limit      int
	Offset     int
}

// ProductRepository is the product lookup port.
type ProductRepository interface {
	// GetByID loads one product, failing with ErrProductNotFound if absent.
	GetByID(ctx context.Context, productID string) (*Product, error)

	// GetAll lists products matching the filter, ordered by name so
	// pagination stays stable.
	GetAll(ctx context.Context, filter ProductFilter) ([]*Product, error)

	// Search matches the query against name and description.
	Search(ctx context.Context, query string, limit, offset int) ([]*Product, error)

	// Count returns the number of products matching the filter, ignoring
	// pagination.
	Count(ctx context.Context, filter ProductFilter) (int64, error)
}

// CategoryRepository is the category lookup port.
type CategoryRepository interface {
	// GetByID loads one category, failing with ErrCategoryNotFound if
	// absent.
	GetByID(ctx context.Context, categoryID string) (*Category, error)

	// GetAll lists categories with plain pagination.
	GetAll(ctx context.Context, limit, offset int) ([]*Category, error)

	// GetTree returns only root categories, children populated recursively.
	GetTree(ctx context.Context) ([]*Category, error)

	// GetChildren lists the direct children of a parent.
	GetChildren(ctx context.Context, parentID string) ([]*Category, error)
}
