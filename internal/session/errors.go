package session

import "errors"

// ErrNoSession indicates an operation received a binding without a session id.
var ErrNoSession = errors.New("binding has no session id")
