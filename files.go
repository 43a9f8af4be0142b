package treelist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/treelist/treelist.go/pkg/constants"
	"github.com/treelist/treelist.go/pkg/models"
)

// fileListKey serializes file-list mutations. The account's file list is a
// single shared resource, so edits to it get one well-known key the same
// way each document gets its id.
const fileListKey = "~files"

const (
	createAttempts = 3
	createBackoff  = 500 * time.Millisecond
)

// ListFiles returns the account's documents and folders as a flat list.
func (c *Client) ListFiles(ctx context.Context) ([]models.ListDescriptor, error) {
	return c.store.ListFiles(ctx)
}

// FindFolder looks up a folder by exact title. Returns ErrNotFound when no
// folder with that title exists.
func (c *Client) FindFolder(ctx context.Context, title string) (*models.ListDescriptor, error) {
	files, err := c.store.ListFiles(ctx)
	if err != nil {
		return nil, err
	}
	for i := range files {
		if files[i].Type == models.FileTypeFolder && files[i].Title == title {
			return &files[i], nil
		}
	}
	return nil, fmt.Errorf("%w: folder %q", constants.ErrNotFound, title)
}

// CreateDocument creates a new document titled title inside folderID (the
// account root when empty) and returns its id. Creation is retried a small
// fixed number of times with linear backoff, but only when the failure
// looks transient; terminal errors surface immediately.
func (c *Client) CreateDocument(ctx context.Context, title, folderID string) (string, error) {
	if err := validateTitle(title); err != nil {
		return "", err
	}

	var id string
	err := c.ser.Do(fileListKey, func() error {
		change := models.FileChange{
			Action:   models.FileActionCreate,
			Type:     models.FileTypeDocument,
			ParentID: folderID,
			Index:    0,
			Title:    title,
		}

		var lastErr error
		for attempt := 0; attempt < createAttempts; attempt++ {
			if attempt > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(time.Duration(attempt) * createBackoff):
				}
				c.log.Warn("retrying document creation",
					"title", title, "attempt", attempt+1, "error", lastErr.Error())
			}

			res, err := c.store.EditFiles(ctx, []models.FileChange{change})
			if err != nil {
				if !looksTransient(err) {
					return err
				}
				lastErr = err
				continue
			}
			if err := checkFileEditResult(res, 1, 1); err != nil {
				return err
			}
			id = res.CreatedIDs[0]
			return nil
		}
		return lastErr
	})
	return id, err
}

// RenameFile retitles a document or folder.
func (c *Client) RenameFile(ctx context.Context, fileID, title string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	return c.ser.Do(fileListKey, func() error {
		res, err := c.store.EditFiles(ctx, []models.FileChange{{
			Action: models.FileActionEdit,
			FileID: fileID,
			Title:  title,
		}})
		if err != nil {
			return err
		}
		return checkFileEditResult(res, 1, 0)
	})
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: empty title", constants.ErrInvalidArgument)
	}
	if len(title) > constants.MaxTitleLength {
		return fmt.Errorf("%w: title longer than %d bytes", constants.ErrInvalidArgument, constants.MaxTitleLength)
	}
	return nil
}

// looksTransient reports whether an error is worth one more create attempt.
// The transport already retries rate limits and 5xx internally, so by the
// time an error gets here only explicitly transient-looking failures
// qualify.
func looksTransient(err error) bool {
	if errors.Is(err, constants.ErrTransient) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, hint := range []string{"rate limit", "try again", "temporar", "timeout", "too many requests"} {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}
