package treelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treelist/treelist.go/pkg/models"
)

func buildIndex(nodes ...models.Node) *DocumentIndex {
	return NewDocumentIndex(&models.Document{Nodes: nodes, Version: 1})
}

// sampleIndex builds:
//
//	root
//	├── a
//	│   ├── b
//	│   │   └── d
//	│   └── c
//	└── e (checked)
func sampleIndex() *DocumentIndex {
	return buildIndex(
		models.Node{ID: RootID, Children: []string{"a", "e"}},
		models.Node{ID: "a", Content: "alpha", Children: []string{"b", "c"}},
		models.Node{ID: "b", Content: "beta", Children: []string{"d"}},
		models.Node{ID: "c", Content: "gamma"},
		models.Node{ID: "d", Content: "delta"},
		models.Node{ID: "e", Content: "epsilon", Checked: true},
	)
}

func TestIndexLookup(t *testing.T) {
	ix := sampleIndex()

	n, ok := ix.Node("a")
	require.True(t, ok)
	assert.Equal(t, "alpha", n.Content)

	_, ok = ix.Node("nope")
	assert.False(t, ok)
	assert.True(t, ix.Has("d"))
	assert.Equal(t, 6, ix.Len())
}

func TestIndexChildren(t *testing.T) {
	ix := sampleIndex()

	assert.Equal(t, []string{"b", "c"}, ix.Children("a"))
	assert.Empty(t, ix.Children("c"))
	assert.Empty(t, ix.Children("unknown"))
}

func TestIndexParent(t *testing.T) {
	ix := sampleIndex()

	p, ok := ix.Parent("d")
	require.True(t, ok)
	assert.Equal(t, "b", p)

	p, ok = ix.Parent("a")
	require.True(t, ok)
	assert.Equal(t, RootID, p)

	_, ok = ix.Parent(RootID)
	assert.False(t, ok)

	_, ok = ix.Parent("unknown")
	assert.False(t, ok)
}

func TestIndexParentOfDanglingChild(t *testing.T) {
	// "ghost" appears in a children list without resolving to a node,
	// as happens with client-truncated reads. Reverse lookup still finds
	// its owner; node lookup reports it absent.
	ix := buildIndex(
		models.Node{ID: RootID, Children: []string{"a"}},
		models.Node{ID: "a", Children: []string{"ghost"}},
	)

	p, ok := ix.Parent("ghost")
	require.True(t, ok)
	assert.Equal(t, "a", p)
	assert.False(t, ix.Has("ghost"))
}
