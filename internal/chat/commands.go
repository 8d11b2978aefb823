package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alephdao/agent-builder/internal/conversations"
	"github.com/alephdao/agent-builder/internal/documents"
	"github.com/alephdao/agent-builder/pkg/formatting"
)

const helpText = `
Available Commands:
  /new             - Start a new prompt from scratch
  /improve [path]  - Improve an existing prompt by analyzing a repository
  /list            - List available reference prompts
  /view [name]     - View content of a reference prompt
  /add             - Add a reference prompt to the database
  /draft           - Ask the agent to generate a draft prompt
  /save [name]     - Save the agent's last draft and export it to a file
  /history         - Show conversation history
  /quit            - Exit the application

Examples:
  /improve /Users/me/my-agent
  /view claude-code-system-prompt`

// previewLength caps each history line shown by /history.
const previewLength = 100

// command dispatches a slash command. The returned bool reports whether the
// loop should exit. Commands the loop does not recognize go to the agent as
// ordinary input; the system prompt gives meaning to drafting commands
// such as /draft.
func (l *Loop) command(ctx context.Context, reader *lineReader, out io.Writer, input string) (bool, error) {
	name, arg, _ := strings.Cut(input, " ")
	name = strings.ToLower(name)
	arg = strings.TrimSpace(arg)

	switch name {
	case "/help":
		fmt.Fprintln(out, helpText)
		return false, nil
	case "/list":
		return false, l.listReferences(ctx, out)
	case "/view":
		return false, l.viewReference(ctx, out, arg)
	case "/add":
		return false, l.addReference(ctx, reader, out)
	case "/new":
		return false, l.startNew(ctx, out)
	case "/improve":
		return false, l.improve(ctx, out, arg)
	case "/save":
		return false, l.saveDraft(ctx, out, arg)
	case "/history":
		return false, l.history(ctx, out)
	case "/quit", "/exit":
		return true, nil
	default:
		return false, l.turn(ctx, out, input)
	}
}

func (l *Loop) listReferences(ctx context.Context, out io.Writer) error {
	docs, err := l.session.References(ctx, nil)
	if err != nil {
		return fmt.Errorf("list references: %w", err)
	}

	if len(docs) == 0 {
		fmt.Fprintln(out, "\nNo reference prompts in database. Use /add to add some.")
		return nil
	}

	fmt.Fprintln(out, "\nReference Prompts:")
	for _, doc := range docs {
		line := "  - " + doc.Name
		if doc.Category != nil {
			line += fmt.Sprintf(" [%s]", *doc.Category)
		}
		fmt.Fprintln(out, line)
		if doc.Description != nil {
			fmt.Fprintf(out, "      %s\n", *doc.Description)
		}
	}
	return nil
}

func (l *Loop) viewReference(ctx context.Context, out io.Writer, name string) error {
	if name == "" {
		fmt.Fprintln(out, "\nUsage: /view [prompt_name]")
		return nil
	}

	text, err := l.session.ReferenceContent(ctx, name)
	if err == nil {
		fmt.Fprintf(out, "\n=== %s ===\n%s\n", name, text)
		return nil
	}
	if !errors.Is(err, documents.ErrNoContent) {
		return fmt.Errorf("view reference: %w", err)
	}

	// The document may exist with an unreadable or missing path; tell the
	// user which case they hit.
	doc, err := l.session.Reference(ctx, name)
	switch {
	case err == nil:
		recorded := "none recorded"
		if doc.LocalPath != nil {
			recorded = *doc.LocalPath
		}
		fmt.Fprintf(out, "\nFound '%s' but cannot read content. Path: %s\n", name, recorded)
	case errors.Is(err, documents.ErrNotFound):
		fmt.Fprintf(out, "\nPrompt '%s' not found. Use /list to see available prompts.\n", name)
	default:
		return fmt.Errorf("view reference: %w", err)
	}
	return nil
}

func (l *Loop) addReference(ctx context.Context, reader *lineReader, out io.Writer) error {
	fmt.Fprintln(out, "\n--- Add Reference Prompt ---")

	name, ok := promptField(ctx, reader, out, "Name (unique identifier): ")
	if !ok || name == "" {
		fmt.Fprintln(out, "Cancelled - name is required.")
		return nil
	}

	var cancelled bool
	ask := func(label string) *string {
		if cancelled {
			return nil
		}
		v, ok := promptField(ctx, reader, out, label)
		if !ok {
			cancelled = true
			return nil
		}
		if v == "" {
			return nil
		}
		return &v
	}

	cmd := documents.CreateCommand{Name: name}
	cmd.Description = ask("Description (optional): ")
	cmd.SourceURL = ask("Source URL (optional): ")
	cmd.LocalPath = ask("Local file path (optional): ")
	cmd.Category = ask("Category (optional, e.g., 'assistant', 'coder', 'analyzer'): ")
	if cancelled {
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}

	doc, err := l.session.AddReference(ctx, cmd)
	switch {
	case err == nil:
		fmt.Fprintf(out, "Added prompt reference: %s\n", doc.Name)
	case errors.Is(err, documents.ErrDuplicate):
		fmt.Fprintf(out, "A reference named '%s' already exists.\n", name)
	default:
		return fmt.Errorf("add reference: %w", err)
	}
	return nil
}

func (l *Loop) startNew(ctx context.Context, out io.Writer) error {
	binding, err := l.session.StartNew(ctx, l.binding, nil)
	if err != nil {
		return fmt.Errorf("start conversation: %w", err)
	}

	l.binding = binding
	l.improveTarget = ""
	l.lastReply = ""
	fmt.Fprintln(out, "\nStarted new conversation. What kind of agent would you like to build?")
	return nil
}

func (l *Loop) improve(ctx context.Context, out io.Writer, arg string) error {
	if arg == "" {
		fmt.Fprintln(out, "\nUsage: /improve [path_to_repo]\nExample: /improve /Users/me/my-agent")
		return nil
	}

	target, err := expandPath(arg)
	if err != nil {
		fmt.Fprintf(out, "\nInvalid path: %v\n", err)
		return nil
	}

	info, err := os.Stat(target)
	switch {
	case os.IsNotExist(err):
		fmt.Fprintf(out, "\nPath does not exist: %s\n", target)
		return nil
	case err != nil:
		fmt.Fprintf(out, "\nCannot access path: %v\n", err)
		return nil
	case !info.IsDir():
		fmt.Fprintf(out, "\nPath is not a directory: %s\n", target)
		return nil
	}

	binding, err := l.session.StartNew(ctx, l.binding, nil)
	if err != nil {
		return fmt.Errorf("start conversation: %w", err)
	}
	l.binding = binding
	l.improveTarget = target
	l.lastReply = ""

	fmt.Fprintln(out, "\n=== Improve Mode ===")
	fmt.Fprintf(out, "Analyzing repository: %s\n", target)
	fmt.Fprintln(out, "Gathering context on the existing system prompt, tools, and integrations...")

	prompt := fmt.Sprintf("I want to improve the system prompt for the agent at %s. "+
		"Help me review the existing prompt, data model, tools, and integrations, "+
		"then ask me what aspects I want to improve.", target)
	return l.turn(ctx, out, prompt)
}

func (l *Loop) saveDraft(ctx context.Context, out io.Writer, name string) error {
	if name == "" {
		fmt.Fprintln(out, "\nUsage: /save [prompt_name]")
		return nil
	}
	if l.lastReply == "" {
		fmt.Fprintln(out, "\nNothing to save yet. Ask the agent to draft a prompt first.")
		return nil
	}

	draft := formatting.ExtractFenced(l.lastReply)

	var metadata *string
	if l.improveTarget != "" {
		if meta, err := json.Marshal(map[string]string{"improve_target": l.improveTarget}); err == nil {
			s := string(meta)
			metadata = &s
		}
	}

	saved, err := l.session.SaveArtifact(ctx, l.binding, name, draft, metadata)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}

	exported, err := l.content.Write(filepath.Join(l.cfg.ExportDir, name+".md"), draft)
	if err != nil {
		return fmt.Errorf("export draft: %w", err)
	}

	fmt.Fprintf(out, "\nSaved prompt '%s' (id=%d) and exported to %s\n", saved.Name, saved.ID, exported)
	return nil
}

func (l *Loop) history(ctx context.Context, out io.Writer) error {
	msgs, err := l.session.Messages(ctx, l.binding, 0)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	if len(msgs) == 0 {
		fmt.Fprintln(out, "\nNo messages in current conversation.")
		return nil
	}

	fmt.Fprintln(out, "\nConversation History:")
	for _, msg := range msgs {
		label := "Agent"
		if msg.Role == conversations.RoleUser {
			label = "You"
		}
		fmt.Fprintf(out, "  [%s] %s\n", label, formatting.Preview(msg.Content, previewLength))
	}
	return nil
}

func promptField(ctx context.Context, reader *lineReader, out io.Writer, label string) (string, bool) {
	fmt.Fprint(out, label)
	line, ok := reader.next(ctx)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func expandPath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
	}
	return filepath.Abs(p)
}
