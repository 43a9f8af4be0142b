// Package mock provides an in-memory Store for tests. It applies edit
// batches with the same order and index semantics as the real service
// (moves are detach-then-insert) and offers a few failure-injection knobs
// for exercising the client's error paths.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/treelist/treelist.go/pkg/constants"
	"github.com/treelist/treelist.go/pkg/models"
)

type document struct {
	nodes   map[string]*models.Node
	version int64
}

type Store struct {
	mu     sync.Mutex
	files  []models.ListDescriptor
	docs   map[string]*document
	nextID int

	// Calls counts invocations per method name, for asserting that a
	// failed validation issued no store call.
	Calls map[string]int

	// TruncateNewIDs drops the last N identifiers from EditDocument
	// results, simulating a store that applied fewer inserts than asked.
	TruncateNewIDs int

	// FileCreateFailures makes that many EditFiles calls fail with a
	// transient-looking message before succeeding.
	FileCreateFailures int

	// Err, when set, is returned by every call.
	Err error
}

func NewStore() *Store {
	return &Store{
		docs:  make(map[string]*document),
		Calls: make(map[string]int),
	}
}

// AddDocument registers an empty document with a root node and returns its id.
func (s *Store) AddDocument(title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID("f")
	s.files = append(s.files, models.ListDescriptor{ID: id, Title: title, Type: models.FileTypeDocument})
	s.docs[id] = &document{
		nodes: map[string]*models.Node{
			constants.RootID: {ID: constants.RootID},
		},
	}
	return id
}

// AddFolder registers a folder descriptor and returns its id.
func (s *Store) AddFolder(title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID("fold")
	s.files = append(s.files, models.ListDescriptor{ID: id, Title: title, Type: models.FileTypeFolder})
	return id
}

// Seed replaces a document's nodes wholesale. The root node is added if the
// given set lacks one.
func (s *Store) Seed(fileID string, nodes []models.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.docs[fileID]
	doc.nodes = make(map[string]*models.Node, len(nodes)+1)
	for i := range nodes {
		n := nodes[i]
		doc.nodes[n.ID] = &n
	}
	if _, ok := doc.nodes[constants.RootID]; !ok {
		doc.nodes[constants.RootID] = &models.Node{ID: constants.RootID}
	}
}

// NodeSnapshot returns a copy of one stored node, for assertions.
func (s *Store) NodeSnapshot(fileID, nodeID string) (models.Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[fileID]
	if !ok {
		return models.Node{}, false
	}
	n, ok := doc.nodes[nodeID]
	if !ok {
		return models.Node{}, false
	}
	out := *n
	out.Children = append([]string(nil), n.Children...)
	return out, true
}

func (s *Store) ListFiles(ctx context.Context) ([]models.ListDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["ListFiles"]++
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]models.ListDescriptor(nil), s.files...), nil
}

func (s *Store) EditFiles(ctx context.Context, changes []models.FileChange) (*models.FileEditResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["EditFiles"]++
	if s.Err != nil {
		return nil, s.Err
	}
	if s.FileCreateFailures > 0 {
		s.FileCreateFailures--
		return nil, fmt.Errorf("rate limit exceeded, try again later")
	}

	res := &models.FileEditResult{}
	for _, ch := range changes {
		switch ch.Action {
		case models.FileActionCreate:
			prefix := "f"
			if ch.Type == models.FileTypeFolder {
				prefix = "fold"
			}
			id := s.newID(prefix)
			s.files = append(s.files, models.ListDescriptor{ID: id, Title: ch.Title, Type: ch.Type})
			if ch.Type != models.FileTypeFolder {
				s.docs[id] = &document{
					nodes: map[string]*models.Node{
						constants.RootID: {ID: constants.RootID},
					},
				}
			}
			res.CreatedIDs = append(res.CreatedIDs, id)
			res.Results = append(res.Results, true)
		case models.FileActionEdit:
			ok := false
			for i := range s.files {
				if s.files[i].ID == ch.FileID {
					s.files[i].Title = ch.Title
					ok = true
				}
			}
			res.Results = append(res.Results, ok)
		default:
			res.Results = append(res.Results, false)
		}
	}
	return res, nil
}

func (s *Store) ReadDocument(ctx context.Context, fileID string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["ReadDocument"]++
	if s.Err != nil {
		return nil, s.Err
	}
	doc, ok := s.docs[fileID]
	if !ok {
		return nil, fmt.Errorf("unknown file %q", fileID)
	}
	out := &models.Document{Version: doc.version}
	for _, n := range doc.nodes {
		cp := *n
		cp.Children = append([]string(nil), n.Children...)
		out.Nodes = append(out.Nodes, cp)
	}
	return out, nil
}

func (s *Store) EditDocument(ctx context.Context, fileID string, changes []models.Change) (*models.EditResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["EditDocument"]++
	if s.Err != nil {
		return nil, s.Err
	}
	doc, ok := s.docs[fileID]
	if !ok {
		return nil, fmt.Errorf("unknown file %q", fileID)
	}

	res := &models.EditResult{}
	for _, ch := range changes {
		switch ch.Action {
		case models.ActionInsert:
			id := s.newID("n")
			n := &models.Node{ID: id}
			applyPatch(n, ch)
			doc.nodes[id] = n
			doc.attach(id, ch.ParentID, ch.Index)
			res.NewNodeIDs = append(res.NewNodeIDs, id)
			res.Results = append(res.Results, true)
		case models.ActionEdit:
			n, ok := doc.nodes[ch.NodeID]
			if ok {
				applyPatch(n, ch)
			}
			res.Results = append(res.Results, ok)
		case models.ActionMove:
			_, ok := doc.nodes[ch.NodeID]
			if ok {
				doc.detach(ch.NodeID)
				doc.attach(ch.NodeID, ch.ParentID, ch.Index)
			}
			res.Results = append(res.Results, ok)
		case models.ActionDelete:
			_, ok := doc.nodes[ch.NodeID]
			if ok {
				doc.detach(ch.NodeID)
				doc.drop(ch.NodeID)
			}
			res.Results = append(res.Results, ok)
		default:
			res.Results = append(res.Results, false)
		}
	}
	doc.version++

	if s.TruncateNewIDs > 0 && len(res.NewNodeIDs) >= s.TruncateNewIDs {
		res.NewNodeIDs = res.NewNodeIDs[:len(res.NewNodeIDs)-s.TruncateNewIDs]
	}
	return res, nil
}

func (s *Store) newID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s%04d", prefix, s.nextID)
}

func applyPatch(n *models.Node, ch models.Change) {
	if ch.Content != nil {
		n.Content = *ch.Content
	}
	if ch.Note != nil {
		n.Note = *ch.Note
	}
	if ch.Checked != nil {
		n.Checked = *ch.Checked
	}
	if ch.Checkbox != nil {
		n.Checkbox = *ch.Checkbox
	}
	if ch.Heading != nil {
		n.Heading = *ch.Heading
	}
	if ch.Color != nil {
		n.Color = *ch.Color
	}
}

func (d *document) attach(id, parentID string, index int) {
	parent, ok := d.nodes[parentID]
	if !ok {
		parent = d.nodes[constants.RootID]
	}
	if index < 0 {
		index = 0
	}
	if index > len(parent.Children) {
		index = len(parent.Children)
	}
	parent.Children = append(parent.Children, "")
	copy(parent.Children[index+1:], parent.Children[index:])
	parent.Children[index] = id
}

func (d *document) detach(id string) {
	for _, n := range d.nodes {
		for i, c := range n.Children {
			if c == id {
				n.Children = append(n.Children[:i], n.Children[i+1:]...)
				return
			}
		}
	}
}

// drop removes a node and its whole subtree from the arena.
func (d *document) drop(id string) {
	n, ok := d.nodes[id]
	if !ok {
		return
	}
	for _, c := range n.Children {
		d.drop(c)
	}
	delete(d.nodes, id)
}
