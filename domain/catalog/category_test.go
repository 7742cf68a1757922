package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rebuiltCategory(id, name, parentID string) *Category {
	return RebuildCategoryFromDTO(CategoryReconstructionDTO{
		ID:       id,
		Name:     name,
		ParentID: parentID,
	})
}

func TestNewCategoryValidatesName(t *testing.T) {
	c, err := NewCategory("Electronics")
	require.NoError(t, err)
	assert.Equal(t, "Electronics", c.Name())
	assert.True(t, c.IsRoot())
	assert.Empty(t, c.ID())

	for _, name := range []string{"", "   "} {
		_, err = NewCategory(name)
		assert.ErrorIs(t, err, ErrInvalidName)
	}

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}
	_, err = NewCategory(string(long))
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestAddChildSetsParent(t *testing.T) {
	parent := rebuiltCategory("cat-1", "Electronics", "")
	child := rebuiltCategory("cat-2", "Laptops", "")

	require.NoError(t, parent.AddChild(child))

	assert.Equal(t, "cat-1", child.ParentID())
	require.Len(t, parent.Children(), 1)
	assert.Equal(t, "cat-2", parent.Children()[0].ID())
}

func TestAddChildRejectsSelf(t *testing.T) {
	c := rebuiltCategory("cat-1", "Electronics", "")

	err := c.AddChild(c)
	assert.ErrorIs(t, err, ErrSelfReference)
	assert.Empty(t, c.Children())
	assert.Empty(t, c.ParentID())
}

func TestAddChildRejectsCycleAndReverts(t *testing.T) {
	electronics := rebuiltCategory("cat-1", "Electronics", "")
	laptops := rebuiltCategory("cat-2", "Laptops", "")
	require.NoError(t, electronics.AddChild(laptops))

	// Closing the loop must fail and leave the tree exactly as before.
	err := laptops.AddChild(electronics)
	assert.ErrorIs(t, err, ErrCircularReference)

	assert.Empty(t, laptops.Children(), "rejected child must be detached")
	assert.Empty(t, electronics.ParentID(), "rejected child's parent link must be cleared")
	assert.Equal(t, "cat-1", laptops.ParentID())
	require.Len(t, electronics.Children(), 1)
	assert.Equal(t, "cat-2", electronics.Children()[0].ID())
}

func TestAddChildRejectsDeepCycle(t *testing.T) {
	a := rebuiltCategory("cat-a", "A", "")
	b := rebuiltCategory("cat-b", "B", "")
	c := rebuiltCategory("cat-c", "C", "")
	require.NoError(t, a.AddChild(b))
	require.NoError(t, b.AddChild(c))

	err := c.AddChild(a)
	assert.ErrorIs(t, err, ErrCircularReference)
	assert.Empty(t, c.Children())
	assert.Empty(t, a.ParentID())
}

func TestAddChildAllowsReattachingSubtrees(t *testing.T) {
	electronics := rebuiltCategory("cat-1", "Electronics", "")
	computers := rebuiltCategory("cat-2", "Computers", "")
	accessories := rebuiltCategory("cat-3", "Accessories", "")

	require.NoError(t, electronics.AddChild(computers))
	require.NoError(t, electronics.AddChild(accessories))
	require.NoError(t, computers.AddChild(rebuiltCategory("cat-4", "Laptops", "")))

	assert.Len(t, electronics.Children(), 2)
	assert.Len(t, computers.Children(), 1)
}
