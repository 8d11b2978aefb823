package artifacts

import "errors"

// ErrNotFound indicates no generated prompt matched the query.
var ErrNotFound = errors.New("generated prompt not found")
