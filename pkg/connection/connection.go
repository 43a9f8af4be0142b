// Package connection defines the remote document store capability the SDK
// is built on, plus the default HTTP implementation of it.
//
// The store exposes exactly four calls: a flat file list, batched file
// edits, a whole-document read, and a batched document edit. Implementations
// are expected to retry transient failures internally and surface a single
// terminal success or failure per call; the SDK core issues no retries of
// its own on this interface.
package connection

import (
	"context"

	"github.com/treelist/treelist.go/pkg/models"
)

// Store is the remote document store capability.
type Store interface {
	// ListFiles returns the account's documents and folders as a flat list.
	ListFiles(ctx context.Context) ([]models.ListDescriptor, error)

	// EditFiles applies a batch of file-list changes. CreatedIDs in the
	// result are order-correlated with the create changes in the batch.
	EditFiles(ctx context.Context, changes []models.FileChange) (*models.FileEditResult, error)

	// ReadDocument fetches one document in full: its flat node list and
	// version counter. There is no incremental read.
	ReadDocument(ctx context.Context, fileID string) (*models.Document, error)

	// EditDocument applies a batch of document changes in order.
	// NewNodeIDs in the result are order-correlated with the insert
	// changes in the batch.
	EditDocument(ctx context.Context, fileID string, changes []models.Change) (*models.EditResult, error)
}

// APIError is a terminal error reported by the remote service itself, as
// opposed to a transport failure.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "remote store error: " + e.Code
	}
	return "remote store error " + e.Code + ": " + e.Message
}
