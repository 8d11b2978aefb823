package conversations

import "errors"

// ErrNotFound indicates no conversation matched the query.
var ErrNotFound = errors.New("conversation not found")
