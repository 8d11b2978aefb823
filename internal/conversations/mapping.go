package conversations

import (
	"database/sql"

	"github.com/alephdao/agent-builder/pkg/database"
	"github.com/alephdao/agent-builder/pkg/query"
	"github.com/alephdao/agent-builder/pkg/repository"
)

var conversationProjection = query.
	NewProjectionMap("conversations", "c").
	Project("id", "ID").
	Project("session_id", "SessionID").
	Project("started_at", "StartedAt").
	Project("ended_at", "EndedAt").
	Project("agent_name", "AgentName").
	Project("status", "Status")

var messageProjection = query.
	NewProjectionMap("messages", "m").
	Project("id", "ID").
	Project("conversation_id", "ConversationID").
	Project("role", "Role").
	Project("content", "Content").
	Project("timestamp", "Timestamp")

// Greatest id wins when more than one active row exists for a session.
var activeSort = []query.SortField{
	{Field: "ID", Descending: true},
}

var messageSort = []query.SortField{
	{Field: "ID"},
}

func scanConversation(s repository.Scanner) (Conversation, error) {
	var (
		c         Conversation
		startedAt string
		endedAt   sql.NullString
	)

	err := s.Scan(
		&c.ID,
		&c.SessionID,
		&startedAt,
		&endedAt,
		&c.AgentName,
		&c.Status,
	)
	if err != nil {
		return c, err
	}

	if c.StartedAt, err = database.ParseTimestamp(startedAt); err != nil {
		return c, err
	}
	if c.EndedAt, err = database.ParseNullTimestamp(endedAt); err != nil {
		return c, err
	}

	return c, nil
}

func scanMessage(s repository.Scanner) (Message, error) {
	var (
		m         Message
		timestamp string
	)

	err := s.Scan(
		&m.ID,
		&m.ConversationID,
		&m.Role,
		&m.Content,
		&timestamp,
	)
	if err != nil {
		return m, err
	}

	if m.Timestamp, err = database.ParseTimestamp(timestamp); err != nil {
		return m, err
	}

	return m, nil
}
