package artifacts

import "context"

// System defines the public contract for generated prompt operations.
// Artifacts are write-once: there is no update and no delete.
type System interface {
	// Save persists a generated prompt snapshot.
	Save(ctx context.Context, cmd SaveCommand) (*GeneratedPrompt, error)
	// Find returns the generated prompt with the given id, or ErrNotFound.
	Find(ctx context.Context, id int64) (*GeneratedPrompt, error)
	// List returns all generated prompts, newest first.
	List(ctx context.Context) ([]GeneratedPrompt, error)
}
