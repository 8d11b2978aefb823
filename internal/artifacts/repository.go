package artifacts

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

// New creates an artifact repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "artifacts"),
	}
}

func (r *repo) Save(ctx context.Context, cmd SaveCommand) (*GeneratedPrompt, error) {
	q := `
		INSERT INTO generated_prompts (conversation_id, name, content, metadata, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, conversation_id, name, content, metadata, created_at`

	args := []any{
		cmd.ConversationID,
		cmd.Name,
		cmd.Content,
		cmd.Metadata,
		database.Timestamp(time.Now()),
	}

	g, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (GeneratedPrompt, error) {
		return repository.QueryOne(ctx, tx, q, args, scanArtifact)
	})

	if err != nil {
		return nil, fmt.Errorf("save generated prompt: %w", err)
	}

	r.logger.Info("generated prompt saved", "id", g.ID, "name", g.Name)
	return &g, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*GeneratedPrompt, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	g, err := repository.QueryOne(ctx, r.db, q, args, scanArtifact)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query generated prompt: %w", err)
	}
	return &g, nil
}

func (r *repo) List(ctx context.Context) ([]GeneratedPrompt, error) {
	q, args := query.NewBuilder(projection, defaultSort...).Build()

	prompts, err := repository.QueryMany(ctx, r.db, q, args, scanArtifact)
	if err != nil {
		return nil, fmt.Errorf("query generated prompts: %w", err)
	}
	return prompts, nil
}
