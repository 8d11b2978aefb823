// Package chat implements the interactive prompt-building loop: reading user
// input, dispatching slash commands, assembling agent prompts with catalog
// and conversation context, and persisting every exchange.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alephdao/agent-builder/internal/agent"
	"github.com/alephdao/agent-builder/internal/conversations"
	"github.com/alephdao/agent-builder/internal/session"
	"github.com/alephdao/agent-builder/pkg/content"
)

const banner = `
============================================================
  Agent Prompt Builder
  Build AI agent system prompts interactively
============================================================

Type /help for commands, or describe the agent you want to build.`

// Loop drives one interactive chat session. It is single-threaded: each
// turn is fully persisted before the next line of input is read.
type Loop struct {
	cfg     *Config
	session *session.Manager
	agent   agent.Client
	content content.System
	logger  *slog.Logger

	binding       session.Binding
	improveTarget string
	lastReply     string
}

// New creates a chat loop over the given session manager and agent client.
func New(
	cfg *Config,
	sess *session.Manager,
	client agent.Client,
	files content.System,
	logger *slog.Logger,
) *Loop {
	return &Loop{
		cfg:     cfg,
		session: sess,
		agent:   client,
		content: files,
		logger:  logger.With("system", "chat"),
	}
}

// Run reads lines from in until EOF, /quit, or context cancellation.
// Agent failures are reported to the user and the loop continues; storage
// faults end the loop with an error.
func (l *Loop) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	binding, err := l.session.Ensure(ctx, session.NewSessionID())
	if err != nil {
		return fmt.Errorf("establish session: %w", err)
	}
	l.binding = binding
	l.logger.Info("chat session started", "session", binding.SessionID, "conversation", binding.ConversationID)

	scanner := bufio.NewScanner(in)
	// Pasted prompt drafts easily exceed the default token size.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lines := make(chan string)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	reader := &lineReader{lines: lines}

	fmt.Fprintln(out, banner)

	for {
		fmt.Fprint(out, "\nYou: ")

		input, ok := reader.next(ctx)
		if !ok {
			fmt.Fprintln(out, "\nGoodbye!")
			// The scanner's error is only settled once its goroutine has
			// closed the channel; a cancelled context leaves it mid-read.
			if ctx.Err() == nil {
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read input: %w", err)
				}
			}
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			quit, err := l.command(ctx, reader, out, input)
			if err != nil {
				return err
			}
			if quit {
				fmt.Fprintln(out, "\nGoodbye!")
				return nil
			}
			continue
		}

		if err := l.turn(ctx, out, input); err != nil {
			return err
		}
	}
}

// turn runs one exchange: assemble the prompt, persist the user message,
// call the agent, persist the reply. The user message is recorded before
// the agent call so a failed call still leaves the question on record.
func (l *Loop) turn(ctx context.Context, out io.Writer, input string) error {
	prompt, err := l.buildPrompt(ctx, input)
	if err != nil {
		return err
	}

	binding, err := l.session.AddMessage(ctx, l.binding, conversations.RoleUser, input)
	if err != nil {
		return fmt.Errorf("record user message: %w", err)
	}
	l.binding = binding

	reply, err := l.agent.Respond(ctx, prompt)
	if err != nil {
		l.logger.Error("agent request failed", "error", err)
		fmt.Fprintf(out, "\nError: %v\n", err)
		return nil
	}

	if _, err := l.session.AddMessage(ctx, l.binding, conversations.RoleAssistant, reply); err != nil {
		return fmt.Errorf("record assistant message: %w", err)
	}

	l.lastReply = reply
	fmt.Fprintf(out, "\nAgent: %s\n", reply)
	return nil
}

// lineReader hands out scanner lines while honoring context cancellation,
// which a blocking stdin read would otherwise ignore.
type lineReader struct {
	lines <-chan string
}

func (r *lineReader) next(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-r.lines:
		return line, ok
	}
}
