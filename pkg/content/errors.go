package content

import "errors"

var (
	// ErrNotFound indicates the requested content file does not exist.
	ErrNotFound = errors.New("content not found")
	// ErrEmptyPath indicates an empty content path was provided.
	ErrEmptyPath = errors.New("content path must not be empty")
	// ErrInvalidPath indicates the content path contains a traversal segment.
	ErrInvalidPath = errors.New("content path contains invalid segment")
)
