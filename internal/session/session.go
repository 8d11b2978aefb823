// Package session coordinates conversation state for the chat loop.
// The manager owns no mutable conversation state of its own: every operation
// takes and returns a Binding, the value that ties a session to the
// conversation it is currently writing to.
package session

import "github.com/google/uuid"

// Binding identifies the conversation a session is writing to.
// The zero value means "no conversation yet"; operations that need one will
// establish it and return the updated binding.
type Binding struct {
	SessionID      string
	ConversationID int64
}

// Bound reports whether the binding references a conversation.
func (b Binding) Bound() bool {
	return b.SessionID != "" && b.ConversationID != 0
}

// NewSessionID returns a short random session identifier.
func NewSessionID() string {
	return uuid.NewString()[:8]
}
