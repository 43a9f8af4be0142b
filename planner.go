package treelist

import (
	"fmt"

	"github.com/treelist/treelist.go/pkg/constants"
	"github.com/treelist/treelist.go/pkg/models"
)

// The planning functions below translate tree-shaped intents into the flat,
// index-addressed changes the store accepts. They all operate on one
// DocumentIndex snapshot and follow validate-then-act: anything checkable
// client-side fails before a single change is emitted, because the store
// offers no rollback.

// insertBase computes the index of the first item of a contiguous batch
// insert under parentID. Item i of the batch lands at base+i, which places
// the whole batch in request order in one round trip.
func insertBase(ix *DocumentIndex, parentID string, pos Position) int {
	if pos == PositionTop {
		return 0
	}
	return len(ix.Children(parentID))
}

// resolveMove turns a MoveTarget into a concrete (parent, index) pair. When
// parentID is empty the node's current parent is discovered via reverse
// lookup, defaulting to root when no owner is found. Indices are computed
// against the sibling list with the moved node filtered out, matching the
// store's detach-then-insert move semantics.
func resolveMove(ix *DocumentIndex, nodeID, parentID string, target MoveTarget) (string, int, error) {
	if !ix.Has(nodeID) {
		return "", 0, fmt.Errorf("%w: %q", constants.ErrNotFound, nodeID)
	}

	parent := parentID
	if parent == "" {
		if p, ok := ix.Parent(nodeID); ok {
			parent = p
		} else {
			parent = constants.RootID
		}
	} else if parent != constants.RootID && !ix.Has(parent) {
		return "", 0, fmt.Errorf("%w: parent %q", constants.ErrNotFound, parent)
	}

	siblings := make([]string, 0, len(ix.Children(parent)))
	for _, c := range ix.Children(parent) {
		if c != nodeID {
			siblings = append(siblings, c)
		}
	}

	switch target.Kind {
	case MoveTop:
		return parent, 0, nil
	case MoveBottom:
		return parent, len(siblings), nil
	case MoveToIndex:
		i := target.Index
		if i < 0 {
			i = 0
		}
		if i > len(siblings) {
			i = len(siblings)
		}
		return parent, i, nil
	case MoveBefore, MoveAfter:
		for i, c := range siblings {
			if c == target.Anchor {
				if target.Kind == MoveAfter {
					i++
				}
				return parent, i, nil
			}
		}
		return "", 0, fmt.Errorf("%w: %q under %q", constants.ErrTargetNotFound, target.Anchor, parent)
	default:
		return "", 0, fmt.Errorf("%w: unknown move kind %d", constants.ErrInvalidArgument, target.Kind)
	}
}

// planRestructure validates a batch of relocations against the snapshot and
// emits one move change per entry, in the given order. The first unknown
// node or parent id fails the whole batch before any change is produced.
func planRestructure(ix *DocumentIndex, moves []Relocation) ([]models.Change, error) {
	for _, m := range moves {
		if !ix.Has(m.NodeID) {
			return nil, fmt.Errorf("%w: %q", constants.ErrNotFound, m.NodeID)
		}
		if m.ParentID != "" && m.ParentID != constants.RootID && !ix.Has(m.ParentID) {
			return nil, fmt.Errorf("%w: parent %q", constants.ErrNotFound, m.ParentID)
		}
	}

	changes := make([]models.Change, 0, len(moves))
	for _, m := range moves {
		parent := m.ParentID
		if parent == "" {
			if p, ok := ix.Parent(m.NodeID); ok {
				parent = p
			} else {
				parent = constants.RootID
			}
		}
		changes = append(changes, models.Change{
			Action:   models.ActionMove,
			NodeID:   m.NodeID,
			ParentID: parent,
			Index:    m.Index,
		})
	}
	return changes, nil
}

// ancestorPath walks parent links from id up to the root and returns the
// chain ordered topmost ancestor first, immediate parent last. The root and
// the node itself are excluded, so a node at depth D yields D entries.
func ancestorPath(ix *DocumentIndex, id string) ([]string, error) {
	if !ix.Has(id) {
		return nil, fmt.Errorf("%w: %q", constants.ErrNotFound, id)
	}

	var path []string
	cur := id
	for steps := 0; ; steps++ {
		if steps > ix.Len() {
			return nil, fmt.Errorf("%w: ancestor walk from %q", constants.ErrCyclicDocument, id)
		}
		p, ok := ix.Parent(cur)
		if !ok || p == constants.RootID {
			break
		}
		path = append(path, p)
		cur = p
	}

	// Collected bottom-up; callers want root-ward order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// collectDescendants returns every node reachable from id, pre-order and
// depth-first (parent before children), excluding id itself. Dangling child
// ids are skipped. The children graph is supposed to be acyclic; a visited
// node seen twice is a data-integrity fault and fails the walk.
func collectDescendants(ix *DocumentIndex, id string) ([]string, error) {
	if !ix.Has(id) {
		return nil, fmt.Errorf("%w: %q", constants.ErrNotFound, id)
	}

	visited := map[string]bool{id: true}
	var out []string
	var walk func(string) error
	walk = func(cur string) error {
		for _, c := range ix.Children(cur) {
			if !ix.Has(c) {
				continue
			}
			if visited[c] {
				return fmt.Errorf("%w: %q revisited", constants.ErrCyclicDocument, c)
			}
			visited[c] = true
			out = append(out, c)
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(id); err != nil {
		return nil, err
	}
	return out, nil
}

// materializeTree builds the nested view of the snapshot under startID.
// The direct children of the root sit at depth 0.
func materializeTree(ix *DocumentIndex, startID string) ([]*TreeNode, error) {
	if startID != constants.RootID && !ix.Has(startID) {
		return nil, fmt.Errorf("%w: %q", constants.ErrNotFound, startID)
	}

	visited := map[string]bool{startID: true}
	var build func(id string, depth int) ([]*TreeNode, error)
	build = func(id string, depth int) ([]*TreeNode, error) {
		var out []*TreeNode
		for _, c := range ix.Children(id) {
			n, ok := ix.Node(c)
			if !ok {
				continue
			}
			if visited[c] {
				return nil, fmt.Errorf("%w: %q revisited", constants.ErrCyclicDocument, c)
			}
			visited[c] = true
			children, err := build(c, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, &TreeNode{Node: n, Depth: depth, Children: children})
		}
		return out, nil
	}
	return build(startID, 0)
}
