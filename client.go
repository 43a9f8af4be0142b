package treelist

import (
	"context"
	"fmt"

	"github.com/treelist/treelist.go/pkg/connection"
	"github.com/treelist/treelist.go/pkg/constants"
	"github.com/treelist/treelist.go/pkg/logger"
	"github.com/treelist/treelist.go/pkg/models"
	"github.com/treelist/treelist.go/pkg/serializer"
)

// Client exposes the high-level document operations. Every operation on a
// document runs serialized under that document's key: read the snapshot,
// plan one batch of changes against it, submit the batch. Operations on
// different documents run concurrently.
type Client struct {
	store connection.Store
	ser   *serializer.Keyed
	log   logger.Logger
}

func New(store connection.Store) *Client {
	return &Client{
		store: store,
		ser:   serializer.New(),
		log:   logger.Nop(),
	}
}

func (c *Client) WithLogger(l logger.Logger) *Client {
	c.log = l
	return c
}

// withDocument admits the operation under the document key, takes a fresh
// snapshot, and hands the operation its private index. The key is released
// whether op succeeds or fails; a failed operation never starves the queue
// behind it.
func (c *Client) withDocument(ctx context.Context, fileID string, op func(ix *DocumentIndex) error) error {
	return c.ser.Do(fileID, func() error {
		doc, err := c.store.ReadDocument(ctx, fileID)
		if err != nil {
			return err
		}
		return op(NewDocumentIndex(doc))
	})
}

// checkEditResult cross-validates a batch edit response: the store must
// have returned one id per requested insert and accepted every change.
// Anything short of that signals partial application, which is fatal to
// the operation since no repair is possible.
func checkEditResult(res *models.EditResult, requested, inserts int) error {
	if len(res.NewNodeIDs) != inserts {
		return fmt.Errorf("%w: %d inserts requested, %d ids returned",
			constants.ErrCountMismatch, inserts, len(res.NewNodeIDs))
	}
	if len(res.Results) != requested {
		return fmt.Errorf("%w: %d changes submitted, %d results returned",
			constants.ErrCountMismatch, requested, len(res.Results))
	}
	for i, ok := range res.Results {
		if !ok {
			return fmt.Errorf("%w: change %d rejected by store", constants.ErrCountMismatch, i)
		}
	}
	return nil
}

func checkFileEditResult(res *models.FileEditResult, requested, creates int) error {
	if len(res.CreatedIDs) != creates {
		return fmt.Errorf("%w: %d creates requested, %d ids returned",
			constants.ErrCountMismatch, creates, len(res.CreatedIDs))
	}
	if len(res.Results) != requested {
		return fmt.Errorf("%w: %d changes submitted, %d results returned",
			constants.ErrCountMismatch, requested, len(res.Results))
	}
	for i, ok := range res.Results {
		if !ok {
			return fmt.Errorf("%w: change %d rejected by store", constants.ErrCountMismatch, i)
		}
	}
	return nil
}
