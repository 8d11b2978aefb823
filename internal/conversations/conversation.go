// Package conversations implements chat session persistence.
// A conversation groups the messages of one exchange; a session may hold many
// conversations over time but at most one active conversation at once.
package conversations

import "time"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Conversation lifecycle states.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Conversation represents one chat exchange within a session.
type Conversation struct {
	ID        int64
	SessionID string
	StartedAt time.Time
	EndedAt   *time.Time
	AgentName *string
	Status    string
}

// Message is a single utterance in a conversation. Messages are append-only
// and insertion order is the conversation order.
type Message struct {
	ID             int64
	ConversationID int64
	Role           Role
	Content        string
	Timestamp      time.Time
}
