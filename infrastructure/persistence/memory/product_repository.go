package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"shopcore/domain/catalog"
)

// productRecord is the stored form of a product; prices are kept as minor
// units plus currency, matching the sql schema.
type productRecord struct {
	dto catalog.ProductReconstructionDTO
}

// ProductRepository keeps products in memory.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]productRecord
}

// NewProductRepository creates an empty in-memory product store.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]productRecord)}
}

var _ catalog.ProductRepository = (*ProductRepository)(nil)

// Seed stores a product directly, assigning an id when unset. Test and
// local-development helper; not part of the port.
func (r *ProductRepository) Seed(p *catalog.Product) *catalog.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := p.ID()
	if id == "" {
		id = uuid.NewString()
	}
	dto := catalog.ProductReconstructionDTO{
		ID:          id,
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		CategoryID:  p.CategoryID(),
		Stock:       p.Stock(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
	r.products[id] = productRecord{dto: dto}
	return catalog.RebuildProductFromDTO(dto)
}

// GetByID returns a product, ErrProductNotFound on miss.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.products[id]
	if !ok {
		return nil, catalog.NewProductNotFoundError(id)
	}
	return catalog.RebuildProductFromDTO(record.dto), nil
}

// GetAll returns products matching the filter, ordered by name for
// stable pagination.
func (r *ProductRepository) GetAll(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, error) {
	r.mu.RLock()
	matched := r.match(filter)
	r.mu.RUnlock()

	start := filter.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if filter.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}

	products := make([]*catalog.Product, 0, end-start)
	for _, dto := range matched[start:end] {
		products = append(products, catalog.RebuildProductFromDTO(dto))
	}
	return products, nil
}

// Search matches the query against product names and descriptions,
// case-insensitively.
func (r *ProductRepository) Search(ctx context.Context, query string, limit, offset int) ([]*catalog.Product, error) {
	return r.GetAll(ctx, catalog.ProductFilter{Query: query, Limit: limit, Offset: offset})
}

// Count returns how many products match the filter, ignoring pagination.
func (r *ProductRepository) Count(ctx context.Context, filter catalog.ProductFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.match(filter))), nil
}

// match applies every filter except pagination. Callers hold the lock.
func (r *ProductRepository) match(filter catalog.ProductFilter) []catalog.ProductReconstructionDTO {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	var matched []catalog.ProductReconstructionDTO
	for _, record := range r.products {
		dto := record.dto
		if filter.CategoryID != "" && dto.CategoryID != filter.CategoryID {
			continue
		}
		if filter.InStock && dto.Stock <= 0 {
			continue
		}
		if filter.PriceMin > 0 && dto.Price.Cents() < filter.PriceMin {
			continue
		}
		if filter.PriceMax > 0 && dto.Price.Cents() > filter.PriceMax {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(dto.Name), query) &&
			!strings.Contains(strings.ToLower(dto.Description), query) {
			continue
		}
		matched = append(matched, dto)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched
}
