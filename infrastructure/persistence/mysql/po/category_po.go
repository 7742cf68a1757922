package po

import (
	"time"

	"shopcore/domain/catalog"
)

type CategoryPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"size:100;not null;index"`
	ParentID  string    `gorm:"index;size:64"` // empty string marks a root
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CategoryPO) TableName() string {
	return "categories"
}

func FromCategoryDomain(c *catalog.Category) *CategoryPO {
	return &CategoryPO{
		ID:        c.ID(),
		Name:      c.Name(),
		ParentID:  c.ParentID(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

// ToDomain rebuilds a bare node; the repository attaches children.
func (po *CategoryPO) ToDomain(children []*catalog.Category) *catalog.Category {
	return catalog.RebuildCategoryFromDTO(catalog.CategoryReconstructionDTO{
		ID:        po.ID,
		Name:      po.Name,
		ParentID:  po.ParentID,
		Children:  children,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	})
}
