package catalog

import (
	"shopcore/domain/catalog"
)

// ListProductsQuery carries the optional filters for a catalog listing.
// Zero values mean "no filter"; Limit and Offset are clamped by the
// service before they reach the repository.
type ListProductsQuery struct {
	CategoryID string  `form:"category_id"`
	Query      string  `form:"q"`
	PriceMin   float64 `form:"price_min"`
	PriceMax   float64 `form:"price_max"`
	InStock    bool    `form:"in_stock"`
	Limit      int     `form:"limit"`
	Offset     int     `form:"offset"`
}

// SearchQuery carries a free-text product search.
type SearchQuery struct {
	Query  string `form:"q" binding:"required"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// ProductDTO is the read model for a single product.
type ProductDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	CategoryID  string  `json:"category_id,omitempty"`
	Stock       int     `json:"stock"`
	InStock     bool    `json:"in_stock"`
}

// ProductListDTO is a paginated product listing.
type ProductListDTO struct {
	Items  []ProductDTO `json:"items"`
	Total  int64        `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// CategoryDTO is the flat read model for a category.
type CategoryDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
	IsRoot   bool   `json:"is_root"`
}

// CategoryTreeDTO is the recursive read model used by the tree endpoint.
type CategoryTreeDTO struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	ParentID string            `json:"parent_id,omitempty"`
	Children []CategoryTreeDTO `json:"children"`
}

func toProductDTO(p *catalog.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price().Amount(),
		Currency:    p.Price().Currency(),
		CategoryID:  p.CategoryID(),
		Stock:       p.Stock(),
		InStock:     p.Stock() > 0,
	}
}

func toProductDTOs(products []*catalog.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, toProductDTO(p))
	}
	return dtos
}

func toCategoryDTO(c *catalog.Category) CategoryDTO {
	return CategoryDTO{
		ID:       c.ID(),
		Name:     c.Name(),
		ParentID: c.ParentID(),
		IsRoot:   c.IsRoot(),
	}
}

func toCategoryTreeDTO(c *catalog.Category) CategoryTreeDTO {
	node := CategoryTreeDTO{
		ID:       c.ID(),
		Name:     c.Name(),
		ParentID: c.ParentID(),
		Children: make([]CategoryTreeDTO, 0, len(c.Children())),
	}
	for _, child := range c.Children() {
		node.Children = append(node.Children, toCategoryTreeDTO(child))
	}
	return node
}
