package treelist

import "github.com/treelist/treelist.go/pkg/models"

// Position selects where a batch of new items lands among its parent's
// existing children.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
)

type MoveKind int

const (
	MoveTop MoveKind = iota
	MoveBottom
	MoveToIndex
	MoveBefore
	MoveAfter
)

// MoveTarget describes where a node should end up among the siblings of
// its (resolved) parent. Build one with the constructor matching the kind.
type MoveTarget struct {
	Kind   MoveKind
	Index  int
	Anchor string
}

func ToTop() MoveTarget             { return MoveTarget{Kind: MoveTop} }
func ToBottom() MoveTarget          { return MoveTarget{Kind: MoveBottom} }
func ToIndex(i int) MoveTarget      { return MoveTarget{Kind: MoveToIndex, Index: i} }
func Before(nodeID string) MoveTarget { return MoveTarget{Kind: MoveBefore, Anchor: nodeID} }
func After(nodeID string) MoveTarget  { return MoveTarget{Kind: MoveAfter, Anchor: nodeID} }

// Item is the intent for one new node. Children are only honored by
// CreateHierarchy; AddItems rejects nested items.
type Item struct {
	Content  string
	Note     string
	Checked  bool
	Checkbox bool
	Heading  int
	Color    int
	Children []Item
}

// NodePatch is a partial update of one node; nil fields are left untouched.
type NodePatch struct {
	Content  *string
	Note     *string
	Checked  *bool
	Checkbox *bool
	Heading  *int
	Color    *int
}

func (p NodePatch) empty() bool {
	return p.Content == nil && p.Note == nil && p.Checked == nil &&
		p.Checkbox == nil && p.Heading == nil && p.Color == nil
}

// Relocation is one entry of a restructure batch: move NodeID under
// ParentID at Index. An empty ParentID keeps the node's current parent
// (root when no owner is found in the snapshot).
type Relocation struct {
	NodeID   string
	ParentID string
	Index    int
}

// TreeNode is one node of a materialized hierarchical view. Depth counts
// from the root's direct children, which sit at depth 0.
type TreeNode struct {
	Node     models.Node
	Depth    int
	Children []*TreeNode
}
