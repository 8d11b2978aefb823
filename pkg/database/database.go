// Package database provides SQLite connection management with lifecycle coordination.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/alephdao/agent-builder/pkg/lifecycle"
)

// System manages the database connection and lifecycle coordination.
type System interface {
	// Connection returns the underlying database handle.
	Connection() *sql.DB
	// Start registers startup and shutdown hooks with the lifecycle coordinator.
	// The startup hook pings the database and ensures the schema exists.
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	conn        *sql.DB
	logger      *slog.Logger
	path        string
	connTimeout time.Duration
}

// New creates a database system with the given configuration.
// It ensures the parent directory of the database file exists and opens
// the handle, but defers schema initialization until Start is called.
// The connection pool is capped at a single connection; all writes are
// serialized through it.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &database{
		conn:        db,
		logger:      logger.With("system", "database"),
		path:        cfg.Path,
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database", "path", d.path)

	lc.OnStartup(func() {
		startCtx, cancel := context.WithTimeout(lc.Context(), d.connTimeout)
		defer cancel()

		if err := d.conn.PingContext(startCtx); err != nil {
			d.logger.Error("database ping failed", "error", err)
			return
		}

		if err := EnsureSchema(startCtx, d.conn); err != nil {
			d.logger.Error("schema initialization failed", "error", err)
			return
		}

		d.logger.Info("database ready", "path", d.path)
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.logger.Info("closing database")

		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}

		d.logger.Info("database closed")
	})

	return nil
}
