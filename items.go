package treelist

import (
	"context"
	"fmt"

	"github.com/treelist/treelist.go/pkg/constants"
	"github.com/treelist/treelist.go/pkg/models"
)

// GetDocument fetches one whole document snapshot.
func (c *Client) GetDocument(ctx context.Context, fileID string) (*models.Document, error) {
	var doc *models.Document
	err := c.ser.Do(fileID, func() error {
		var err error
		doc, err = c.store.ReadDocument(ctx, fileID)
		return err
	})
	return doc, err
}

// GetNode fetches one node from a fresh snapshot.
func (c *Client) GetNode(ctx context.Context, fileID, nodeID string) (models.Node, error) {
	var node models.Node
	err := c.withDocument(ctx, fileID, func(ix *DocumentIndex) error {
		n, ok := ix.Node(nodeID)
		if !ok {
			return fmt.Errorf("%w: %q", constants.ErrNotFound, nodeID)
		}
		node = n
		return nil
	})
	return node, err
}

// GetTree returns the document as a nested structure, one TreeNode per item
// with its depth annotated. The root's direct children sit at depth 0.
func (c *Client) GetTree(ctx context.Context, fileID string) ([]*TreeNode, error) {
	var roots []*TreeNode
	err := c.withDocument(ctx, fileID, func(ix *DocumentIndex) error {
		var err error
		roots, err = materializeTree(ix, constants.RootID)
		return err
	})
	return roots, err
}

// AddItems inserts items as new children of parentID (root when empty), at
// the top or bottom of the existing children. The whole batch lands
// contiguously and in input order in one round trip; the returned ids are
// in input order too.
//
// Items must be flat here; use CreateHierarchy for nested intents.
func (c *Client) AddItems(ctx context.Context, fileID, parentID string, pos Position, items []Item) ([]string, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty item batch", constants.ErrInvalidArgument)
	}
	for i, it := range items {
		if len(it.Children) > 0 {
			return nil, fmt.Errorf("%w: item %d has children, use CreateHierarchy", constants.ErrInvalidArgument, i)
		}
	}
	if parentID == "" {
		parentID = constants.RootID
	}

	var ids []string
	err := c.withDocument(ctx, fileID, func(ix *DocumentIndex) error {
		if parentID != constants.RootID && !ix.Has(parentID) {
			return fmt.Errorf("%w: parent %q", constants.ErrNotFound, parentID)
		}

		base := insertBase(ix, parentID, pos)
		changes := make([]models.Change, 0, len(items))
		for offset, it := range items {
			changes = append(changes, insertChange(parentID, base+offset, it))
		}

		res, err := c.store.EditDocument(ctx, fileID, changes)
		if err != nil {
			return err
		}
		if err := checkEditResult(res, len(changes), len(changes)); err != nil {
			return err
		}
		ids = res.NewNodeIDs
		c.log.Debug("items added", "file", fileID, "parent", parentID, "count", len(ids))
		return nil
	})
	return ids, err
}

// EditItem applies a partial update to one node.
func (c *Client) EditItem(ctx context.Context, fileID, nodeID string, patch NodePatch) error {
	if patch.empty() {
		return fmt.Errorf("%w: empty patch", constants.ErrInvalidArgument)
	}
	return c.withDocument(ctx, fileID, func(ix *DocumentIndex) error {
		if !ix.Has(nodeID) {
			return fmt.Errorf("%w: %q", constants.ErrNotFound, nodeID)
		}
		res, err := c.store.EditDocument(ctx, fileID, []models.Change{{
			Action:   models.ActionEdit,
			NodeID:   nodeID,
			Content:  patch.Content,
			Note:     patch.Note,
			Checked:  patch.Checked,
			Checkbox: patch.Checkbox,
			Heading:  patch.Heading,
			Color:    patch.Color,
		}})
		if err != nil {
			return err
		}
		return checkEditResult(res, 1, 0)
	})
}

// CheckItem sets a node's checked state.
func (c *Client) CheckItem(ctx context.Context, fileID, nodeID string, checked bool) error {
	return c.EditItem(ctx, fileID, nodeID, NodePatch{Checked: &checked})
}

// MoveItem relocates one node. The target resolves against the current
// children of the destination parent; parentID may be empty to keep the
// node's current parent (root when the snapshot shows no owner). A
// before/after anchor that is not a current child of the resolved parent
// fails with ErrNotFound and issues no edit.
func (c *Client) MoveItem(ctx context.Context, fileID, nodeID, parentID string, target MoveTarget) error {
	return c.withDocument(ctx, fileID, func(ix *DocumentIndex) error {
		parent, index, err := resolveMove(ix, nodeID, parentID, target)
		if err != nil {
			return err
		}
		res, err := c.store.EditDocument(ctx, fileID, []models.Change{{
			Action:   models.ActionMove,
			NodeID:   nodeID,
			ParentID: parent,
			Index:    index,
		}})
		if err != nil {
			return err
		}
		return checkEditResult(res, 1, 0)
	})
}

// RemoveItems deletes the given nodes (and, server-side, their subtrees).
// Every id is validated against the snapshot before any delete is issued.
func (c *Client) RemoveItems(ctx context.Context, fileID string, nodeIDs ...string) error {
	if len(nodeIDs) == 0 {
		return fmt.Errorf("%w: empty delete batch", constants.ErrInvalidArgument)
	}
	return c.withDocument(ctx, fileID, func(ix *DocumentIndex) error {
		changes := make([]models.Change, 0, len(nodeIDs))
		for _, id := range nodeIDs {
			if !ix.Has(id) {
				return fmt.Errorf("%w: %q", constants.ErrNotFound, id)
			}
			changes = append(changes, models.Change{Action: models.ActionDelete, NodeID: id})
		}
		res, err := c.store.EditDocument(ctx, fileID, changes)
		if err != nil {
			return err
		}
		return checkEditResult(res, len(changes), 0)
	})
}

// Restructure applies a batch of relocations in order. The batch is either
// fully valid against the snapshot or not submitted at all.
func (c *Client) Restructure(ctx context.Context, fileID string, moves []Relocation) error {
	if len(moves) == 0 {
		return fmt.Errorf("%w: empty restructure batch", constants.ErrInvalidArgument)
	}
	return c.withDocument(ctx, fileID, func(ix *DocumentIndex) error {
		changes, err := planRestructure(ix, moves)
		if err != nil {
			return err
		}
		res, err := c.store.EditDocument(ctx, fileID, changes)
		if err != nil {
			return err
		}
		return checkEditResult(res, len(changes), 0)
	})
}

// Ancestors returns the node's ancestor chain ordered topmost first,
// immediate parent last, excluding the root and the node itself.
func (c *Client) Ancestors(ctx context.Context, fileID, nodeID string) ([]string, error) {
	var path []string
	err := c.withDocument(ctx, fileID, func(ix *DocumentIndex) error {
		var err error
		path, err = ancestorPath(ix, nodeID)
		return err
	})
	return path, err
}

// Descendants returns every node reachable from nodeID, pre-order.
func (c *Client) Descendants(ctx context.Context, fileID, nodeID string) ([]string, error) {
	var out []string
	err := c.withDocument(ctx, fileID, func(ix *DocumentIndex) error {
		var err error
		out, err = collectDescendants(ix, nodeID)
		return err
	})
	return out, err
}

// ClearChecked deletes every checked child of parentID (root when empty)
// and reports how many were removed. Unchecked children are untouched.
// With nothing to clear, no edit call is made.
func (c *Client) ClearChecked(ctx context.Context, fileID, parentID string) (int, error) {
	if parentID == "" {
		parentID = constants.RootID
	}
	cleared := 0
	err := c.withDocument(ctx, fileID, func(ix *DocumentIndex) error {
		if parentID != constants.RootID && !ix.Has(parentID) {
			return fmt.Errorf("%w: parent %q", constants.ErrNotFound, parentID)
		}
		var changes []models.Change
		for _, id := range ix.Children(parentID) {
			n, ok := ix.Node(id)
			if ok && n.Checked {
				changes = append(changes, models.Change{Action: models.ActionDelete, NodeID: id})
			}
		}
		if len(changes) == 0 {
			return nil
		}
		res, err := c.store.EditDocument(ctx, fileID, changes)
		if err != nil {
			return err
		}
		if err := checkEditResult(res, len(changes), 0); err != nil {
			return err
		}
		cleared = len(changes)
		c.log.Info("checked items cleared", "file", fileID, "parent", parentID, "count", cleared)
		return nil
	})
	return cleared, err
}

func insertChange(parentID string, index int, it Item) models.Change {
	ch := models.Change{
		Action:   models.ActionInsert,
		ParentID: parentID,
		Index:    index,
		Content:  &it.Content,
	}
	if it.Note != "" {
		ch.Note = &it.Note
	}
	if it.Checked {
		ch.Checked = &it.Checked
	}
	if it.Checkbox {
		ch.Checkbox = &it.Checkbox
	}
	if it.Heading != 0 {
		ch.Heading = &it.Heading
	}
	if it.Color != 0 {
		ch.Color = &it.Color
	}
	return ch
}
