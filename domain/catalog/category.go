package catalog

import (
	"strings"
	"time"
)

// Category name limits.
const (
	MinCategoryNameLength = 1
	MaxCategoryNameLength = 100
)

// Category is a tree node in the catalog hierarchy. Nodes reference their
// parent by id, not by pointer; children are materialized on demand by the
// repository, so cycle detection walks ids rather than owning pointers.
//
// Invariant: no category is ever its own ancestor, including after failed
// AddChild calls.
type Category struct {
	id        string
	name      string
	parentID  string // empty for roots
	children  []*Category
	createdAt time.Time
	updatedAt time.Time
}

// NewCategory creates a validated root Category. The id stays unset until
// the repository assigns one.
func NewCategory(name string) (*Category, error) {
	if len(strings.TrimSpace(name)) < MinCategoryNameLength {
		return nil, NewInvalidNameError("category", "name cannot be empty")
	}
	if len(name) > MaxCategoryNameLength {
		return nil, NewInvalidNameError("category", "name cannot exceed 100 characters")
	}

	now := time.Now().UTC()
	return &Category{
		name:      name,
		children:  []*Category{},
		createdAt: now,
		updatedAt: now,
	}, nil
}

// CategoryReconstructionDTO rebuilds a Category from persistence.
// Repository layer only.
type CategoryReconstructionDTO struct {
	ID        string
	Name      string
	ParentID  string
	Children  []*Category
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RebuildCategoryFromDTO reconstructs a Category from persisted state.
func RebuildCategoryFromDTO(dto CategoryReconstructionDTO) *Category {
	children := dto.Children
	if children == nil {
		children = []*Category{}
	}
	return &Category{
		id:        dto.ID,
		name:      dto.Name,
		parentID:  dto.ParentID,
		children:  children,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
	}
}

// AddChild attaches a child to this category, atomically: the child is
// speculatively appended and re-parented, then the hierarchy is re-checked
// for cycles. Detection needs the new edge to exist before traversal can
// see it, so a rejected attach is reverted in full - no intermediate state
// survives a failed call.
//
// Cycle safety assumes repository-assigned ids: categories that were never
// saved have no id to match against, so linking two fresh nodes into a loop
// is not detected.
func (c *Category) AddChild(child *Category) error {
	if child == c || (c.id != "" && child.id == c.id) {
		return NewSelfReferenceError(c.id)
	}

	previousParent := child.parentID
	c.children = append(c.children, child)
	child.parentID = c.id

	if c.createsCircularReference() {
		c.children = c.children[:len(c.children)-1]
		child.parentID = previousParent
		return NewCircularReferenceError(c.id, child.id)
	}

	c.updatedAt = time.Now().UTC()
	return nil
}

// createsCircularReference reports whether this category became reachable
// from its own subtree: its parent id appears among its descendants. The
// walk keeps a visited set because the speculative edge under test may have
// already closed a loop. Only materialized children are inspected; callers
// must load the subtree to the depth they need checked, and detection relies
// on persisted ids, so nodes with unset ids are not protected.
func (c *Category) createsCircularReference() bool {
	if c.parentID == "" || c.id == "" {
		return false
	}

	visited := map[*Category]bool{c: true}
	stack := append([]*Category{}, c.children...)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[node] {
			continue
		}
		visited[node] = true

		if node.id == c.parentID {
			return true
		}
		stack = append(stack, node.children...)
	}
	return false
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool { return c.parentID == "" }

// Getters.

func (c *Category) ID() string       { return c.id }
func (c *Category) Name() string     { return c.name }
func (c *Category) ParentID() string { return c.parentID }

// Children returns a copy of the child list.
func (c *Category) Children() []*Category {
	children := make([]*Category, len(c.children))
	copy(children, c.children)
	return children
}

func (c *Category) CreatedAt() time.Time { return c.createdAt }
func (c *Category) UpdatedAt() time.Time { return c.updatedAt }
