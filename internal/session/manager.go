package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alephdao/agent-builder/internal/artifacts"
	"github.com/alephdao/agent-builder/internal/conversations"
	"github.com/alephdao/agent-builder/internal/documents"
)

// Manager coordinates conversations, the reference catalog, and generated
// prompt artifacts on behalf of the chat loop.
type Manager struct {
	conversations conversations.System
	documents     documents.System
	artifacts     artifacts.System
	logger        *slog.Logger
}

// New creates a session manager over the given domain systems.
func New(
	conv conversations.System,
	docs documents.System,
	arts artifacts.System,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		conversations: conv,
		documents:     docs,
		artifacts:     arts,
		logger:        logger.With("system", "session"),
	}
}

// Ensure returns a binding to the session's active conversation, creating
// one when none exists. Calling it again without an intervening StartNew
// yields the same conversation id.
func (m *Manager) Ensure(ctx context.Context, sessionID string) (Binding, error) {
	if sessionID == "" {
		return Binding{}, ErrNoSession
	}

	c, err := m.conversations.Active(ctx, sessionID)
	switch {
	case err == nil:
		m.logger.Info("conversation adopted", "session", sessionID, "conversation", c.ID)
		return Binding{SessionID: sessionID, ConversationID: c.ID}, nil
	case errors.Is(err, conversations.ErrNotFound):
		created, err := m.conversations.Create(ctx, sessionID, nil)
		if err != nil {
			return Binding{}, err
		}
		return Binding{SessionID: sessionID, ConversationID: created.ID}, nil
	default:
		return Binding{}, err
	}
}

// StartNew ends the bound conversation and starts a fresh one for the same
// session. A stale binding whose conversation no longer exists is tolerated;
// the fresh conversation is created either way.
func (m *Manager) StartNew(ctx context.Context, b Binding, agentName *string) (Binding, error) {
	if b.SessionID == "" {
		return Binding{}, ErrNoSession
	}

	if b.ConversationID != 0 {
		if err := m.conversations.End(ctx, b.ConversationID); err != nil && !errors.Is(err, conversations.ErrNotFound) {
			return Binding{}, err
		}
	}

	c, err := m.conversations.Create(ctx, b.SessionID, agentName)
	if err != nil {
		return Binding{}, err
	}

	return Binding{SessionID: b.SessionID, ConversationID: c.ID}, nil
}

// AddMessage appends a message to the bound conversation. A binding without
// a conversation is healed by ensuring one first; the binding the message
// actually attached to is returned.
func (m *Manager) AddMessage(ctx context.Context, b Binding, role conversations.Role, content string) (Binding, error) {
	if b.SessionID == "" {
		return b, ErrNoSession
	}

	if b.ConversationID == 0 {
		healed, err := m.Ensure(ctx, b.SessionID)
		if err != nil {
			return b, err
		}
		b = healed
	}

	if _, err := m.conversations.AddMessage(ctx, b.ConversationID, role, content); err != nil {
		return b, err
	}

	return b, nil
}

// Messages returns the bound conversation's history in insertion order.
// An unbound binding yields an empty slice, never an error.
func (m *Manager) Messages(ctx context.Context, b Binding, limit int) ([]conversations.Message, error) {
	if b.ConversationID == 0 {
		return []conversations.Message{}, nil
	}
	return m.conversations.Messages(ctx, b.ConversationID, limit)
}

// Transcript renders the conversation history as "User:"/"Assistant:" lines
// in chronological order for inclusion in an agent prompt. An empty history
// yields an empty string.
func (m *Manager) Transcript(ctx context.Context, b Binding, limit int) (string, error) {
	msgs, err := m.Messages(ctx, b, limit)
	if err != nil {
		return "", err
	}
	if len(msgs) == 0 {
		return "", nil
	}

	lines := make([]string, len(msgs))
	for i, msg := range msgs {
		label := "Assistant"
		if msg.Role == conversations.RoleUser {
			label = "User"
		}
		lines[i] = fmt.Sprintf("%s: %s", label, msg.Content)
	}

	return strings.Join(lines, "\n"), nil
}

// References lists catalogued reference prompts, optionally by category.
func (m *Manager) References(ctx context.Context, category *string) ([]documents.Document, error) {
	return m.documents.List(ctx, documents.Filters{Category: category})
}

// Reference returns the catalogued document with the given name, or
// documents.ErrNotFound.
func (m *Manager) Reference(ctx context.Context, name string) (*documents.Document, error) {
	return m.documents.Find(ctx, name)
}

// AddReference registers a new reference prompt in the catalog.
func (m *Manager) AddReference(ctx context.Context, cmd documents.CreateCommand) (*documents.Document, error) {
	return m.documents.Create(ctx, cmd)
}

// ReferenceContent reads a reference prompt's text from its local path.
func (m *Manager) ReferenceContent(ctx context.Context, name string) (string, error) {
	return m.documents.ReadContent(ctx, name)
}

// SaveArtifact persists a generated prompt, attributing it to the bound
// conversation when one exists.
func (m *Manager) SaveArtifact(ctx context.Context, b Binding, name, content string, metadata *string) (*artifacts.GeneratedPrompt, error) {
	cmd := artifacts.SaveCommand{
		Name:     name,
		Content:  content,
		Metadata: metadata,
	}

	if b.ConversationID != 0 {
		id := b.ConversationID
		cmd.ConversationID = &id
	}

	return m.artifacts.Save(ctx, cmd)
}
