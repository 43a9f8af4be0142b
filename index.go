package treelist

import (
	"github.com/treelist/treelist.go/pkg/constants"
	"github.com/treelist/treelist.go/pkg/models"
)

// DocumentIndex is an id-to-node lookup over one document snapshot. It is
// built in a single linear pass and discarded with the operation that made
// it; sharing one across operations would reintroduce the staleness the
// per-operation read exists to bound.
//
// The data model stores no parent pointers, so Parent is a derived query
// answered from a reverse index over every children list. The reverse index
// is built lazily on the first Parent call and costs one pass over all
// nodes; it is valid only for this snapshot.
type DocumentIndex struct {
	nodes   map[string]models.Node
	parents map[string]string
}

func NewDocumentIndex(doc *models.Document) *DocumentIndex {
	ix := &DocumentIndex{nodes: make(map[string]models.Node, len(doc.Nodes))}
	for _, n := range doc.Nodes {
		ix.nodes[n.ID] = n
	}
	return ix
}

// Node returns the node for id, or false if the snapshot has none.
func (ix *DocumentIndex) Node(id string) (models.Node, bool) {
	n, ok := ix.nodes[id]
	return n, ok
}

func (ix *DocumentIndex) Has(id string) bool {
	_, ok := ix.nodes[id]
	return ok
}

// Children returns the ordered child ids of id, or nil when the node is
// absent or childless. Ids in the list are not guaranteed to resolve;
// clients truncate reads, so dangling ids are tolerated rather than
// treated as corruption.
func (ix *DocumentIndex) Children(id string) []string {
	n, ok := ix.nodes[id]
	if !ok {
		return nil
	}
	return n.Children
}

// Parent returns the id of the node whose children list contains id. The
// root, and any node no children list mentions, reports false.
func (ix *DocumentIndex) Parent(id string) (string, bool) {
	if ix.parents == nil {
		ix.parents = make(map[string]string, len(ix.nodes))
		for ownerID, n := range ix.nodes {
			for _, c := range n.Children {
				ix.parents[c] = ownerID
			}
		}
	}
	p, ok := ix.parents[id]
	return p, ok
}

// Len returns the number of nodes in the snapshot, root included.
func (ix *DocumentIndex) Len() int {
	return len(ix.nodes)
}

// RootID is re-exported for convenience; see constants.RootID.
const RootID = constants.RootID
