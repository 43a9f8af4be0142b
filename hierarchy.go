package treelist

import (
	"context"
	"fmt"

	"github.com/treelist/treelist.go/pkg/constants"
	"github.com/treelist/treelist.go/pkg/models"
)

// flatEntry is one node of a flattened intent tree: the item itself plus
// the flat-list index of its intended parent, -1 for top-level entries.
type flatEntry struct {
	item   Item
	parent int
}

// flattenItems lays the intent trees out pre-order. The resulting order is
// the creation order, and entry order among same-parent entries is the
// intended left-to-right sibling order.
func flattenItems(items []Item) []flatEntry {
	var out []flatEntry
	var walk func(it Item, parent int)
	walk = func(it Item, parent int) {
		idx := len(out)
		out = append(out, flatEntry{item: it, parent: parent})
		for _, child := range it.Children {
			walk(child, idx)
		}
	}
	for _, it := range items {
		walk(it, -1)
	}
	return out
}

// CreateHierarchy creates a whole multi-level hierarchy in two round trips
// regardless of depth. The store cannot create a node under a chosen
// parent atomically with its content, so phase one batch-inserts every
// flattened entry as a direct child of the root, and phase two batch-moves
// each non-top-level entry to its true parent. Sibling positions are
// computed from the flattened list alone, so no second read is needed.
//
// Returns the created ids of the top-level entries, in input order. If the
// store reports fewer created ids than requested the operation aborts with
// ErrCountMismatch before any restructuring: moving nodes with a truncated
// id list would silently corrupt the structure.
func (c *Client) CreateHierarchy(ctx context.Context, fileID string, items []Item) ([]string, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty hierarchy", constants.ErrInvalidArgument)
	}
	entries := flattenItems(items)

	var roots []string
	err := c.withDocument(ctx, fileID, func(ix *DocumentIndex) error {
		base := insertBase(ix, constants.RootID, PositionBottom)
		inserts := make([]models.Change, 0, len(entries))
		for i, e := range entries {
			inserts = append(inserts, insertChange(constants.RootID, base+i, e.item))
		}

		res, err := c.store.EditDocument(ctx, fileID, inserts)
		if err != nil {
			return err
		}
		if err := checkEditResult(res, len(inserts), len(inserts)); err != nil {
			return err
		}
		ids := res.NewNodeIDs

		// The Nth created id corresponds to the Nth flattened entry;
		// everything below depends on that correspondence.
		var moves []models.Change
		for i, e := range entries {
			if e.parent < 0 {
				continue
			}
			pos := 0
			for j := 0; j < i; j++ {
				if entries[j].parent == e.parent {
					pos++
				}
			}
			moves = append(moves, models.Change{
				Action:   models.ActionMove,
				NodeID:   ids[i],
				ParentID: ids[e.parent],
				Index:    pos,
			})
		}
		if len(moves) > 0 {
			mres, err := c.store.EditDocument(ctx, fileID, moves)
			if err != nil {
				return err
			}
			if err := checkEditResult(mres, len(moves), 0); err != nil {
				return err
			}
		}

		for i, e := range entries {
			if e.parent < 0 {
				roots = append(roots, ids[i])
			}
		}
		c.log.Debug("hierarchy created",
			"file", fileID, "entries", len(entries), "roots", len(roots))
		return nil
	})
	return roots, err
}
