package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"shopcore/domain/catalog"
)

// categoryRecord stores one category row; the child lists are derived
// from ParentID on read rather than stored.
type categoryRecord struct {
	dto catalog.CategoryReconstructionDTO
}

// CategoryRepository keeps categories in memory. Reads materialize
// descendants to full depth so cycle checks on the returned aggregates
// see the complete subtree.
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]categoryRecord
}

// NewCategoryRepository creates an empty in-memory category store.
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[string]categoryRecord)}
}

var _ catalog.CategoryRepository = (*CategoryRepository)(nil)

// Seed stores a category directly, assigning an id when unset. Test and
// local-development helper; not part of the port.
func (r *CategoryRepository) Seed(c *catalog.Category) *catalog.Category {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := c.ID()
	if id == "" {
		id = uuid.NewString()
	}
	dto := catalog.CategoryReconstructionDTO{
		ID:        id,
		Name:      c.Name(),
		ParentID:  c.ParentID(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
	r.categories[id] = categoryRecord{dto: dto}
	return catalog.RebuildCategoryFromDTO(dto)
}

// GetByID returns a category with its descendants loaded to full depth,
// ErrCategoryNotFound on miss.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.categories[id]
	if !ok {
		return nil, catalog.NewCategoryNotFoundError(id)
	}
	return r.build(record.dto), nil
}

// GetAll returns a flat, name-ordered page of categories without
// children loaded.
func (r *CategoryRepository) GetAll(ctx context.Context, limit, offset int) ([]*catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dtos := make([]catalog.CategoryReconstructionDTO, 0, len(r.categories))
	for _, record := range r.categories {
		dtos = append(dtos, record.dto)
	}
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].Name < dtos[j].Name })

	start := offset
	if start > len(dtos) {
		start = len(dtos)
	}
	end := start + limit
	if limit <= 0 || end > len(dtos) {
		end = len(dtos)
	}

	categories := make([]*catalog.Category, 0, end-start)
	for _, dto := range dtos[start:end] {
		categories = append(categories, catalog.RebuildCategoryFromDTO(dto))
	}
	return categories, nil
}

// GetTree returns every root category with descendants loaded to full
// depth.
func (r *CategoryRepository) GetTree(ctx context.Context) ([]*catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var roots []*catalog.Category
	for _, record := range r.sorted() {
		if record.ParentID == "" {
			roots = append(roots, r.build(record))
		}
	}
	return roots, nil
}

// GetChildren returns the direct children of a category, without
// grandchildren loaded.
func (r *CategoryRepository) GetChildren(ctx context.Context, parentID string) ([]*catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var children []*catalog.Category
	for _, record := range r.sorted() {
		if record.ParentID == parentID {
			children = append(children, catalog.RebuildCategoryFromDTO(record))
		}
	}
	return children, nil
}

// build materializes a category with its full subtree. Callers hold the
// lock.
func (r *CategoryRepository) build(dto catalog.CategoryReconstructionDTO) *catalog.Category {
	var children []*catalog.Category
	for _, record := range r.sorted() {
		if record.ParentID == dto.ID {
			children = append(children, r.build(record))
		}
	}
	dto.Children = children
	return catalog.RebuildCategoryFromDTO(dto)
}

// sorted returns all records ordered by name. Callers hold the lock.
func (r *CategoryRepository) sorted() []catalog.CategoryReconstructionDTO {
	dtos := make([]catalog.CategoryReconstructionDTO, 0, len(r.categories))
	for _, record := range r.categories {
		dtos = append(dtos, record.dto)
	}
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].Name < dtos[j].Name })
	return dtos
}
