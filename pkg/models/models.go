// Package models defines the wire-level data model shared by the client and
// the remote document store: nodes, document snapshots, file descriptors,
// and the typed batch edit operations the store accepts.
package models

// Node is one item in a remote document. Children holds the identifiers of
// the node's ordered children; the nodes themselves live in the same flat
// snapshot. The root node has the well-known identifier "root".
type Node struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Note     string   `json:"note,omitempty"`
	Checked  bool     `json:"checked,omitempty"`
	Checkbox bool     `json:"checkbox,omitempty"`
	Heading  int      `json:"heading,omitempty"`
	Color    int      `json:"color,omitempty"`
	Children []string `json:"children,omitempty"`
}

// Document is one whole-document read: an unordered flat list of nodes plus
// a monotonic version counter. There is no incremental sync; every read
// returns the full node list.
type Document struct {
	Nodes   []Node `json:"nodes"`
	Version int64  `json:"version"`
}

type FileType string

const (
	FileTypeDocument FileType = "document"
	FileTypeFolder   FileType = "folder"
)

// ListDescriptor describes one entry in the account's flat file list.
type ListDescriptor struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Type  FileType `json:"type"`
}

type ChangeAction string

const (
	ActionInsert ChangeAction = "insert"
	ActionEdit   ChangeAction = "edit"
	ActionMove   ChangeAction = "move"
	ActionDelete ChangeAction = "delete"
)

// Change is one typed document edit. Changes are only ever submitted in
// batches; the store applies a batch in order, server-side.
//
// Which fields are read depends on Action: insert uses ParentID, Index and
// the content fields; edit uses NodeID and whichever content fields are
// non-nil; move uses NodeID, ParentID and Index; delete uses NodeID only.
type Change struct {
	Action   ChangeAction `json:"action"`
	NodeID   string       `json:"node_id,omitempty"`
	ParentID string       `json:"parent_id,omitempty"`
	Index    int          `json:"index"`
	Content  *string      `json:"content,omitempty"`
	Note     *string      `json:"note,omitempty"`
	Checked  *bool        `json:"checked,omitempty"`
	Checkbox *bool        `json:"checkbox,omitempty"`
	Heading  *int         `json:"heading,omitempty"`
	Color    *int         `json:"color,omitempty"`
}

// EditResult is the store's response to a document edit batch. NewNodeIDs
// holds the identifiers assigned to insert changes, order-correlated with
// the inserts in the request. Results holds one boolean per submitted
// change.
type EditResult struct {
	NewNodeIDs []string `json:"new_node_ids"`
	Results    []bool   `json:"results"`
}

type FileAction string

const (
	FileActionCreate FileAction = "create"
	FileActionEdit   FileAction = "edit"
	FileActionMove   FileAction = "move"
)

// FileChange is one typed edit of the file list itself (creating, renaming
// or moving documents and folders).
type FileChange struct {
	Action   FileAction `json:"action"`
	Type     FileType   `json:"type,omitempty"`
	FileID   string     `json:"file_id,omitempty"`
	ParentID string     `json:"parent_id,omitempty"`
	Index    int        `json:"index"`
	Title    string     `json:"title,omitempty"`
}

// FileEditResult mirrors EditResult for file-list edits.
type FileEditResult struct {
	CreatedIDs []string `json:"created_ids"`
	Results    []bool   `json:"results"`
}
