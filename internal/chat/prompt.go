package chat

import (
	"context"
	"fmt"
	"strings"
)

const improveContext = `
=== IMPROVE MODE ACTIVE ===
Target repository: %s
You are improving an existing agent. Ask the user about:
- The current system prompt and what it does well or badly
- The agent's data model and storage
- Available tools and integrations
Gather improvement goals before drafting changes.
===========================
`

// buildPrompt assembles the full agent prompt for one turn: the catalog of
// available reference names, the improve-mode block when a target is set,
// the recent transcript, and the user's input. History is read before the
// input is persisted, so the transcript never contains the current turn.
func (l *Loop) buildPrompt(ctx context.Context, input string) (string, error) {
	docs, err := l.session.References(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("list references: %w", err)
	}

	names := "none available"
	if len(docs) > 0 {
		parts := make([]string, len(docs))
		for i, doc := range docs {
			parts[i] = doc.Name
		}
		names = strings.Join(parts, ", ")
	}

	transcript, err := l.session.Transcript(ctx, l.binding, l.cfg.HistoryLimit)
	if err != nil {
		return "", fmt.Errorf("load transcript: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Available reference prompts in database: %s\n", names)
	if l.improveTarget != "" {
		fmt.Fprintf(&b, improveContext, l.improveTarget)
	}
	fmt.Fprintf(&b, "\nPrevious conversation:\n%s\n\nUser: %s", transcript, input)
	return b.String(), nil
}
