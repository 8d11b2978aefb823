package conversations

import "context"

// System defines the public contract for conversation operations.
type System interface {
	// Create starts a new active conversation for the session. Any other
	// active conversation the session holds is completed in the same
	// transaction, so a session never ends up with two active rows.
	Create(ctx context.Context, sessionID string, agentName *string) (*Conversation, error)
	// End marks the conversation completed and stamps ended_at. Ending an
	// already-completed conversation refreshes ended_at; an unknown id
	// returns ErrNotFound.
	End(ctx context.Context, id int64) error
	// Active returns the session's active conversation, or ErrNotFound.
	// If multiple active rows exist the greatest id wins.
	Active(ctx context.Context, sessionID string) (*Conversation, error)
	// AddMessage appends a message. The conversation id is not checked
	// against the conversations table; references are declarative only.
	AddMessage(ctx context.Context, conversationID int64, role Role, content string) (*Message, error)
	// Messages returns the conversation's messages in insertion order.
	// A positive limit caps the result to the first limit messages, the
	// oldest ones; zero or negative returns everything.
	Messages(ctx context.Context, conversationID int64, limit int) ([]Message, error)
}
