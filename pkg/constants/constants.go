package constants

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrNotFound        = errors.New("node not found in document")
	ErrTargetNotFound  = fmt.Errorf("move target is not a child of the resolved parent: %w", ErrNotFound)
	ErrInvalidArgument = errors.New("invalid argument")
	ErrCountMismatch   = errors.New("store returned fewer results than requested")
	ErrTransient       = errors.New("transient remote failure")
	ErrCyclicDocument  = errors.New("cyclic children graph in document")
)

var (
	ErrNoBaseURL = errors.New("base url not set")
	ErrNoToken   = errors.New("token not set")
)

// RootID is the well-known identifier of the document root node. Its
// children are the document's top-level items.
const RootID = "root"

// MaxTitleLength bounds file and folder titles accepted by the client.
const MaxTitleLength = 512
