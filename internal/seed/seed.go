package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/alephdao/agent-builder/internal/documents"
	"github.com/alephdao/agent-builder/pkg/content"
)

// Result summarizes a seed run.
type Result struct {
	Added   int
	Skipped int
	Total   int
}

// Runner registers catalog records whose source files exist on disk.
type Runner struct {
	documents documents.System
	content   content.System
	logger    *slog.Logger
}

// NewRunner creates a seed runner over the given stores.
func NewRunner(docs documents.System, files content.System, logger *slog.Logger) *Runner {
	return &Runner{
		documents: docs,
		content:   files,
		logger:    logger.With("system", "seed"),
	}
}

// Run checks every record's source file concurrently, then registers the
// records that are present and not already in the catalog. Re-running is
// safe: existing names and missing files are skipped, never overwritten.
func (r *Runner) Run(ctx context.Context, records []Record) (*Result, error) {
	present := make([]bool, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(records)))

	for i := range records {
		i := i
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			rec := records[i]
			ok, err := r.content.Exists(rec.LocalPath)
			if err != nil {
				r.logger.Warn("source check failed", "name", rec.Name, "error", err)
				return nil
			}

			present[i] = ok
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("check seed sources: %w", err)
	}

	result := &Result{}
	for i, rec := range records {
		if !present[i] {
			r.logger.Info("skipped seed record", "name", rec.Name, "reason", "file not found", "path", rec.LocalPath)
			result.Skipped++
			continue
		}

		if _, err := r.documents.Find(ctx, rec.Name); err == nil {
			r.logger.Info("skipped seed record", "name", rec.Name, "reason", "already registered")
			result.Skipped++
			continue
		} else if !errors.Is(err, documents.ErrNotFound) {
			return nil, fmt.Errorf("check existing document %s: %w", rec.Name, err)
		}

		if _, err := r.documents.Create(ctx, rec.command()); err != nil {
			return nil, fmt.Errorf("seed document %s: %w", rec.Name, err)
		}

		r.logger.Info("seeded document", "name", rec.Name, "category", rec.Category, "priority", rec.Priority)
		result.Added++
	}

	total, err := r.documents.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	result.Total = total

	r.logger.Info("seed complete", "added", result.Added, "skipped", result.Skipped, "total", total)
	return result, nil
}

func (r Record) command() documents.CreateCommand {
	return documents.CreateCommand{
		Name:            r.Name,
		Description:     optional(r.Description),
		SourceURL:       optional(r.SourceURL),
		LocalPath:       optional(r.LocalPath),
		Category:        optional(r.Category),
		Priority:        r.Priority,
		SourceUpdatedAt: optional(r.SourceUpdatedAt),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// workerCount caps existence checks at the CPU count while never dropping
// below one worker.
func workerCount(recordCount int) int {
	return max(min(runtime.NumCPU(), recordCount), 1)
}
