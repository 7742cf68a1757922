package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopcore/domain/catalog"
	"shopcore/infrastructure/persistence/mysql/po"
)

// CategoryRepository answers category hierarchy queries from mysql.
// Tree-shaped reads load all rows in a single query and assemble the
// hierarchy in memory; recursing with per-level queries would issue one
// round trip per node.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

var _ catalog.CategoryRepository = (*CategoryRepository)(nil)

// GetByID returns a category with its descendants loaded to full depth,
// so AddChild cycle checks on the result see the complete subtree.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*catalog.Category, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var categoryPO po.CategoryPO
	result := r.db.WithContext(ctx).First(&categoryPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, catalog.NewCategoryNotFoundError(id)
		}
		return nil, result.Error
	}

	byParent, err := r.loadChildIndex(ctx)
	if err != nil {
		return nil, err
	}
	return assemble(categoryPO, byParent), nil
}

func (r *CategoryRepository) GetAll(ctx context.Context, limit, offset int) ([]*catalog.Category, error) {
	var categoryPOs []po.CategoryPO
	if err := r.db.WithContext(ctx).
		Order("name").
		Limit(limit).
		Offset(offset).
		Find(&categoryPOs).Error; err != nil {
		return nil, err
	}

	categories := make([]*catalog.Category, 0, len(categoryPOs))
	for i := range categoryPOs {
		categories = append(categories, categoryPOs[i].ToDomain(nil))
	}
	return categories, nil
}

func (r *CategoryRepository) GetTree(ctx context.Context) ([]*catalog.Category, error) {
	byParent, err := r.loadChildIndex(ctx)
	if err != nil {
		return nil, err
	}

	var roots []*catalog.Category
	for _, categoryPO := range byParent[""] {
		roots = append(roots, assemble(categoryPO, byParent))
	}
	return roots, nil
}

func (r *CategoryRepository) GetChildren(ctx context.Context, parentID string) ([]*catalog.Category, error) {
	var categoryPOs []po.CategoryPO
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("name").
		Find(&categoryPOs).Error; err != nil {
		return nil, err
	}

	children := make([]*catalog.Category, 0, len(categoryPOs))
	for i := range categoryPOs {
		children = append(children, categoryPOs[i].ToDomain(nil))
	}
	return children, nil
}

// loadChildIndex fetches every category once and groups rows by parent id.
func (r *CategoryRepository) loadChildIndex(ctx context.Context) (map[string][]po.CategoryPO, error) {
	var categoryPOs []po.CategoryPO
	if err := r.db.WithContext(ctx).Order("name").Find(&categoryPOs).Error; err != nil {
		return nil, err
	}

	byParent := make(map[string][]po.CategoryPO, len(categoryPOs))
	for _, categoryPO := range categoryPOs {
		byParent[categoryPO.ParentID] = append(byParent[categoryPO.ParentID], categoryPO)
	}
	return byParent, nil
}

func assemble(categoryPO po.CategoryPO, byParent map[string][]po.CategoryPO) *catalog.Category {
	var children []*catalog.Category
	for _, childPO := range byParent[categoryPO.ID] {
		children = append(children, assemble(childPO, byParent))
	}
	return categoryPO.ToDomain(children)
}
