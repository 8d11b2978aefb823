package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alephdao/agent-builder/internal/agent"
	"github.com/alephdao/agent-builder/internal/artifacts"
	"github.com/alephdao/agent-builder/internal/config"
	"github.com/alephdao/agent-builder/internal/conversations"
	"github.com/alephdao/agent-builder/internal/documents"
	"github.com/alephdao/agent-builder/internal/infrastructure"
	"github.com/alephdao/agent-builder/internal/session"
	"github.com/alephdao/agent-builder/pkg/content"
)

// app wires configuration, infrastructure, and domain systems for one
// command invocation.
type app struct {
	cfg       *config.Config
	infra     *infrastructure.Infrastructure
	documents documents.System
	session   *session.Manager
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	db := infra.Database.Connection()
	docs := documents.New(db, infra.Content, infra.Logger)
	convs := conversations.New(db, infra.Logger)
	arts := artifacts.New(db, infra.Logger)

	return &app{
		cfg:       cfg,
		infra:     infra,
		documents: docs,
		session:   session.New(convs, docs, arts, infra.Logger),
	}, nil
}

// start brings infrastructure up and blocks until every startup hook has
// completed or ctx is cancelled.
func (a *app) start(ctx context.Context) error {
	if err := a.infra.Start(); err != nil {
		return err
	}

	return a.infra.Lifecycle.WaitForStartup(ctx)
}

func (a *app) shutdown() {
	if err := a.infra.Lifecycle.Shutdown(a.cfg.ShutdownTimeoutDuration()); err != nil {
		a.infra.Logger.Error("shutdown incomplete", "error", err)
	}
}

// systemPrompt reads the configured system prompt file, falling back to the
// built-in default when the file is absent.
func (a *app) systemPrompt() string {
	text, err := a.infra.Content.Read(a.cfg.Agent.SystemPromptPath)
	if err != nil {
		if !errors.Is(err, content.ErrNotFound) {
			a.infra.Logger.Warn("system prompt unreadable, using default",
				"path", a.cfg.Agent.SystemPromptPath, "error", err)
		}
		return agent.DefaultSystemPrompt
	}
	return text
}
