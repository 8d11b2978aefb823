package conversations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alephdao/agent-builder/pkg/database"
	"github.com/alephdao/agent-builder/pkg/query"
	"github.com/alephdao/agent-builder/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a conversation repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "conversations"),
	}
}

func (r *repo) Create(ctx context.Context, sessionID string, agentName *string) (*Conversation, error) {
	now := database.Timestamp(time.Now())

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Conversation, error) {
		_, err := tx.ExecContext(
			ctx,
			"UPDATE conversations SET status = ?, ended_at = ? WHERE session_id = ? AND status = ?",
			StatusCompleted, now, sessionID, StatusActive,
		)
		if err != nil {
			return Conversation{}, fmt.Errorf("complete previous conversations: %w", err)
		}

		q := `
			INSERT INTO conversations (session_id, started_at, agent_name, status)
			VALUES (?, ?, ?, ?)
			RETURNING id, session_id, started_at, ended_at, agent_name, status`

		args := []any{sessionID, now, agentName, StatusActive}
		return repository.QueryOne(ctx, tx, q, args, scanConversation)
	})

	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	r.logger.Info("conversation started", "id", c.ID, "session", sessionID)
	return &c, nil
}

func (r *repo) End(ctx context.Context, id int64) error {
	now := database.Timestamp(time.Now())

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE conversations SET status = ?, ended_at = ? WHERE id = ?",
			StatusCompleted, now, id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("end conversation: %w", err)
	}

	r.logger.Info("conversation ended", "id", id)
	return nil
}

func (r *repo) Active(ctx context.Context, sessionID string) (*Conversation, error) {
	q, args := query.
		NewBuilder(conversationProjection, activeSort...).
		WhereEquals("SessionID", sessionID).
		WhereEquals("Status", StatusActive).
		BuildSingleOrNull()

	c, err := repository.QueryOne(ctx, r.db, q, args, scanConversation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query active conversation: %w", err)
	}
	return &c, nil
}

func (r *repo) AddMessage(ctx context.Context, conversationID int64, role Role, content string) (*Message, error) {
	q := `
		INSERT INTO messages (conversation_id, role, content, timestamp)
		VALUES (?, ?, ?, ?)
		RETURNING id, conversation_id, role, content, timestamp`

	args := []any{conversationID, role, content, database.Timestamp(time.Now())}

	m, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Message, error) {
		return repository.QueryOne(ctx, tx, q, args, scanMessage)
	})

	if err != nil {
		return nil, fmt.Errorf("add message: %w", err)
	}

	r.logger.Info("message appended", "id", m.ID, "conversation", conversationID, "role", role)
	return &m, nil
}

func (r *repo) Messages(ctx context.Context, conversationID int64, limit int) ([]Message, error) {
	q, args := query.
		NewBuilder(messageProjection, messageSort...).
		WhereEquals("ConversationID", conversationID).
		BuildLimited(limit)

	msgs, err := repository.QueryMany(ctx, r.db, q, args, scanMessage)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	return msgs, nil
}
