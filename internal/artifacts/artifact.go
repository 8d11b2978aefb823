// Package artifacts implements persistence for generated prompts.
// Each artifact is an immutable snapshot of a prompt the builder produced,
// optionally tied to the conversation that shaped it.
package artifacts

import "time"

// GeneratedPrompt is a saved prompt artifact.
type GeneratedPrompt struct {
	ID             int64
	ConversationID *int64
	Name           string
	Content        string
	Metadata       *string
	CreatedAt      time.Time
}

// SaveCommand carries the data needed to persist a generated prompt.
// ConversationID and Metadata are optional; Metadata is opaque text the
// store never interprets.
type SaveCommand struct {
	Name           string
	Content        string
	ConversationID *int64
	Metadata       *string
}
