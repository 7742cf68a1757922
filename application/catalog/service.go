// Package catalog exposes the read-side use cases of the catalog
// subdomain: product lookup, filtered listing, search, and the category
// hierarchy views.
package catalog

import (
	"context"
	"math"
	"strings"

	"shopcore/domain/catalog"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
	minSearchLength = 2
)

// ProductService answers product queries.
type ProductService struct {
	products catalog.ProductRepository
}

// NewProductService creates a product query service.
func NewProductService(products catalog.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// GetProduct returns a single product by id.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*ProductDTO, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toProductDTO(p)
	return &dto, nil
}

// ListProducts returns a filtered, paginated product listing. Out of
// range paging values are clamped rather than rejected.
func (s *ProductService) ListProducts(ctx context.Context, query ListProductsQuery) (*ProductListDTO, error) {
	limit, offset := clampPage(query.Limit, query.Offset)

	filter := catalog.ProductFilter{
		CategoryID: query.CategoryID,
		Query:      strings.TrimSpace(query.Query),
		PriceMin:   toCents(query.PriceMin),
		PriceMax:   toCents(query.PriceMax),
		InStock:    query.InStock,
		Limit:      limit,
		Offset:     offset,
	}

	products, err := s.products.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ProductListDTO{
		Items:  toProductDTOs(products),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

// SearchProducts runs a free-text search over product names and
// descriptions. Queries shorter than two characters after trimming
// return an empty result instead of an error.
func (s *ProductService) SearchProducts(ctx context.Context, query SearchQuery) (*ProductListDTO, error) {
	limit, offset := clampPage(query.Limit, query.Offset)

	term := strings.TrimSpace(query.Query)
	if len(term) < minSearchLength {
		return &ProductListDTO{Items: []ProductDTO{}, Limit: limit, Offset: offset}, nil
	}

	products, err := s.products.Search(ctx, term, limit, offset)
	if err != nil {
		return nil, err
	}

	return &ProductListDTO{
		Items:  toProductDTOs(products),
		Total:  int64(len(products)),
		Limit:  limit,
		Offset: offset,
	}, nil
}

// CategoryService answers category queries.
type CategoryService struct {
	categories catalog.CategoryRepository
}

// NewCategoryService creates a category query service.
func NewCategoryService(categories catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// GetCategory returns a single category by id.
func (s *CategoryService) GetCategory(ctx context.Context, id string) (*CategoryDTO, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toCategoryDTO(c)
	return &dto, nil
}

// ListCategories returns a flat, paginated category listing.
func (s *CategoryService) ListCategories(ctx context.Context, limit, offset int) ([]CategoryDTO, error) {
	limit, offset = clampPage(limit, offset)

	categories, err := s.categories.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, toCategoryDTO(c))
	}
	return dtos, nil
}

// GetCategoryTree returns every root category with its descendants fully
// loaded.
func (s *CategoryService) GetCategoryTree(ctx context.Context) ([]CategoryTreeDTO, error) {
	roots, err := s.categories.GetTree(ctx)
	if err != nil {
		return nil, err
	}

	tree := make([]CategoryTreeDTO, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, toCategoryTreeDTO(root))
	}
	return tree, nil
}

// GetChildren returns the direct children of a category. The parent must
// exist; an empty child list is a valid answer.
func (s *CategoryService) GetChildren(ctx context.Context, parentID string) ([]CategoryDTO, error) {
	if _, err := s.categories.GetByID(ctx, parentID); err != nil {
		return nil, err
	}

	children, err := s.categories.GetChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}

	dtos := make([]CategoryDTO, 0, len(children))
	for _, c := range children {
		dtos = append(dtos, toCategoryDTO(c))
	}
	return dtos, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func toCents(amount float64) int64 {
	if amount <= 0 {
		return 0
	}
	return int64(math.Round(amount * 100))
}
