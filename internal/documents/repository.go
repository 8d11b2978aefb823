package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alephdao/agent-builder/pkg/content"
	"github.com/alephdao/agent-builder/pkg/database"
	"github.com/alephdao/agent-builder/pkg/query"
	"github.com/alephdao/agent-builder/pkg/repository"
)

type repo struct {
	db      *sql.DB
	content content.System
	logger  *slog.Logger
}

// New creates a document repository implementing the System interface.
func New(db *sql.DB, store content.System, logger *slog.Logger) System {
	return &repo{
		db:      db,
		content: store,
		logger:  logger.With("system", "documents"),
	}
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Document, error) {
	now := database.Timestamp(time.Now())

	q := `
		INSERT INTO prompt_documents (name, description, source_url, local_path, category, priority, source_updated_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, name, description, source_url, local_path, category, priority, source_updated_at, created_at, updated_at`

	args := []any{
		cmd.Name,
		cmd.Description,
		cmd.SourceURL,
		cmd.LocalPath,
		cmd.Category,
		cmd.Priority,
		cmd.SourceUpdatedAt,
		now,
		now,
	}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, args, scanDocument)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document registered", "id", d.ID, "name", d.Name, "priority", d.Priority)
	return &d, nil
}

func (r *repo) Find(ctx context.Context, name string) (*Document, error) {
	q, args := query.NewBuilder(projection).BuildSingle("Name", name)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) List(ctx context.Context, filters Filters) ([]Document, error) {
	if filters.Category != nil && *filters.Category == "" {
		filters.Category = nil
	}

	sort := catalogSort
	if filters.Category != nil {
		sort = categorySort
	}

	qb := query.NewBuilder(projection, sort...)
	filters.Apply(qb)

	q, args := qb.Build()
	docs, err := repository.QueryMany(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	return docs, nil
}

func (r *repo) Update(ctx context.Context, name string, cmd UpdateCommand) (bool, error) {
	if cmd.Empty() {
		return false, nil
	}

	set := make([]string, 0, 7)
	args := make([]any, 0, 8)

	assign := func(column string, value any) {
		set = append(set, column+" = ?")
		args = append(args, value)
	}

	if cmd.Description != nil {
		assign("description", *cmd.Description)
	}
	if cmd.SourceURL != nil {
		assign("source_url", *cmd.SourceURL)
	}
	if cmd.LocalPath != nil {
		assign("local_path", *cmd.LocalPath)
	}
	if cmd.Category != nil {
		assign("category", *cmd.Category)
	}
	if cmd.Priority != nil {
		assign("priority", *cmd.Priority)
	}
	if cmd.SourceUpdatedAt != nil {
		assign("source_updated_at", *cmd.SourceUpdatedAt)
	}
	assign("updated_at", database.Timestamp(time.Now()))
	args = append(args, name)

	q := fmt.Sprintf(
		"UPDATE prompt_documents SET %s WHERE name = ?",
		strings.Join(set, ", "),
	)

	count, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int64, error) {
		return repository.ExecCount(ctx, tx, q, args...)
	})

	if err != nil {
		return false, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	if count == 0 {
		return false, nil
	}

	r.logger.Info("document updated", "name", name)
	return true, nil
}

func (r *repo) Delete(ctx context.Context, name string) (bool, error) {
	count, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int64, error) {
		return repository.ExecCount(
			ctx, tx,
			"DELETE FROM prompt_documents WHERE name = ?",
			name,
		)
	})

	if err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}
	if count == 0 {
		return false, nil
	}

	r.logger.Info("document deleted", "name", name)
	return true, nil
}

func (r *repo) ReadContent(ctx context.Context, name string) (string, error) {
	doc, err := r.Find(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNoContent
		}
		return "", err
	}

	if doc.LocalPath == nil || *doc.LocalPath == "" {
		return "", ErrNoContent
	}

	text, err := r.content.Read(*doc.LocalPath)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) || errors.Is(err, content.ErrEmptyPath) {
			return "", ErrNoContent
		}
		return "", fmt.Errorf("read document content: %w", err)
	}

	return text, nil
}

func (r *repo) Count(ctx context.Context) (int, error) {
	q, args := query.NewBuilder(projection).BuildCount()

	var total int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return total, nil
}
