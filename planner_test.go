package treelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treelist/treelist.go/pkg/constants"
	"github.com/treelist/treelist.go/pkg/models"
)

func TestInsertBase(t *testing.T) {
	ix := sampleIndex()

	assert.Equal(t, 0, insertBase(ix, "a", PositionTop))
	assert.Equal(t, 2, insertBase(ix, "a", PositionBottom))
	assert.Equal(t, 0, insertBase(ix, "c", PositionBottom))
}

func TestResolveMoveTopBottom(t *testing.T) {
	ix := sampleIndex()

	parent, idx, err := resolveMove(ix, "c", "", ToTop())
	require.NoError(t, err)
	assert.Equal(t, "a", parent)
	assert.Equal(t, 0, idx)

	// Bottom among siblings excluding the moved node itself.
	parent, idx, err = resolveMove(ix, "b", "", ToBottom())
	require.NoError(t, err)
	assert.Equal(t, "a", parent)
	assert.Equal(t, 1, idx)
}

func TestResolveMoveIndexClamped(t *testing.T) {
	ix := sampleIndex()

	_, idx, err := resolveMove(ix, "e", RootID, ToIndex(99))
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, idx, err = resolveMove(ix, "e", RootID, ToIndex(-3))
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestResolveMoveBeforeAfter(t *testing.T) {
	ix := sampleIndex()

	parent, idx, err := resolveMove(ix, "c", "", Before("b"))
	require.NoError(t, err)
	assert.Equal(t, "a", parent)
	assert.Equal(t, 0, idx)

	parent, idx, err = resolveMove(ix, "c", "", After("b"))
	require.NoError(t, err)
	assert.Equal(t, "a", parent)
	assert.Equal(t, 1, idx)

	// Cross-parent move anchored on a child of the explicit parent.
	parent, idx, err = resolveMove(ix, "e", "a", After("c"))
	require.NoError(t, err)
	assert.Equal(t, "a", parent)
	assert.Equal(t, 2, idx)
}

func TestResolveMoveAnchorNotAChild(t *testing.T) {
	ix := sampleIndex()

	// "d" exists but is not a child of "a".
	_, _, err := resolveMove(ix, "c", "a", Before("d"))
	require.ErrorIs(t, err, constants.ErrTargetNotFound)
	require.ErrorIs(t, err, constants.ErrNotFound)
}

func TestResolveMoveUnknownNode(t *testing.T) {
	ix := sampleIndex()

	_, _, err := resolveMove(ix, "ghost", "", ToTop())
	require.ErrorIs(t, err, constants.ErrNotFound)

	_, _, err = resolveMove(ix, "c", "ghost", ToTop())
	require.ErrorIs(t, err, constants.ErrNotFound)
}

func TestResolveMoveOrphanDefaultsToRoot(t *testing.T) {
	ix := buildIndex(
		models.Node{ID: RootID, Children: []string{"a"}},
		models.Node{ID: "a"},
		models.Node{ID: "orphan"},
	)

	parent, idx, err := resolveMove(ix, "orphan", "", ToBottom())
	require.NoError(t, err)
	assert.Equal(t, RootID, parent)
	assert.Equal(t, 1, idx)
}

func TestPlanRestructure(t *testing.T) {
	ix := sampleIndex()

	changes, err := planRestructure(ix, []Relocation{
		{NodeID: "d", ParentID: "c", Index: 0},
		{NodeID: "e", Index: 1}, // keeps current parent (root)
	})
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, models.ActionMove, changes[0].Action)
	assert.Equal(t, "c", changes[0].ParentID)
	assert.Equal(t, RootID, changes[1].ParentID)
}

func TestPlanRestructureUnknownIDFailsWhole(t *testing.T) {
	ix := sampleIndex()

	changes, err := planRestructure(ix, []Relocation{
		{NodeID: "d", ParentID: "c", Index: 0},
		{NodeID: "ghost", ParentID: "c", Index: 1},
	})
	require.ErrorIs(t, err, constants.ErrNotFound)
	assert.Nil(t, changes)
}

func TestAncestorPath(t *testing.T) {
	ix := sampleIndex()

	path, err := ancestorPath(ix, "d")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, path)

	path, err = ancestorPath(ix, "a")
	require.NoError(t, err)
	assert.Empty(t, path)

	_, err = ancestorPath(ix, "ghost")
	require.ErrorIs(t, err, constants.ErrNotFound)
}

func TestAncestorPathCycle(t *testing.T) {
	ix := buildIndex(
		models.Node{ID: RootID},
		models.Node{ID: "a", Children: []string{"b"}},
		models.Node{ID: "b", Children: []string{"a"}},
	)

	_, err := ancestorPath(ix, "a")
	require.ErrorIs(t, err, constants.ErrCyclicDocument)
}

func TestCollectDescendants(t *testing.T) {
	ix := sampleIndex()

	out, err := collectDescendants(ix, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d", "c"}, out) // pre-order, parent before children

	out, err = collectDescendants(ix, "c")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = collectDescendants(ix, "ghost")
	require.ErrorIs(t, err, constants.ErrNotFound)
}

func TestCollectDescendantsSkipsDangling(t *testing.T) {
	ix := buildIndex(
		models.Node{ID: RootID, Children: []string{"a"}},
		models.Node{ID: "a", Children: []string{"ghost", "b"}},
		models.Node{ID: "b"},
	)

	out, err := collectDescendants(ix, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, out)
}

func TestCollectDescendantsCycle(t *testing.T) {
	ix := buildIndex(
		models.Node{ID: RootID, Children: []string{"a"}},
		models.Node{ID: "a", Children: []string{"b"}},
		models.Node{ID: "b", Children: []string{"a"}},
	)

	_, err := collectDescendants(ix, "a")
	require.ErrorIs(t, err, constants.ErrCyclicDocument)
}

func TestMaterializeTree(t *testing.T) {
	ix := sampleIndex()

	roots, err := materializeTree(ix, RootID)
	require.NoError(t, err)
	require.Len(t, roots, 2)

	a := roots[0]
	assert.Equal(t, "a", a.Node.ID)
	assert.Equal(t, 0, a.Depth)
	require.Len(t, a.Children, 2)
	assert.Equal(t, "b", a.Children[0].Node.ID)
	assert.Equal(t, 1, a.Children[0].Depth)
	require.Len(t, a.Children[0].Children, 1)
	assert.Equal(t, 2, a.Children[0].Children[0].Depth)

	assert.Equal(t, "e", roots[1].Node.ID)
	assert.Empty(t, roots[1].Children)
}

func TestFlattenItems(t *testing.T) {
	entries := flattenItems([]Item{
		{Content: "A", Children: []Item{{Content: "B"}, {Content: "C"}}},
		{Content: "D"},
	})

	require.Len(t, entries, 4)
	assert.Equal(t, "A", entries[0].item.Content)
	assert.Equal(t, -1, entries[0].parent)
	assert.Equal(t, "B", entries[1].item.Content)
	assert.Equal(t, 0, entries[1].parent)
	assert.Equal(t, "C", entries[2].item.Content)
	assert.Equal(t, 0, entries[2].parent)
	assert.Equal(t, "D", entries[3].item.Content)
	assert.Equal(t, -1, entries[3].parent)
}
