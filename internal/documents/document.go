// Package documents implements the reference prompt catalog.
// It provides types, data access, and content read-through for named agent
// system prompts with provenance metadata and priority ordering.
package documents

import "time"

// Document represents a catalogued reference prompt. The row stores
// provenance metadata; the prompt text itself lives on the filesystem at
// LocalPath and is read through on demand.
type Document struct {
	ID              int64
	Name            string
	Description     *string
	SourceURL       *string
	LocalPath       *string
	Category        *string
	Priority        int
	SourceUpdatedAt *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateCommand carries the data needed to register a new reference prompt.
// Name is the unique identifier; everything else is optional provenance.
type CreateCommand struct {
	Name            string
	Description     *string
	SourceURL       *string
	LocalPath       *string
	Category        *string
	Priority        int
	SourceUpdatedAt *string
}

// UpdateCommand carries partial updates for a document. Nil fields are not
// applied. These are the only fields an update may touch; identity and
// bookkeeping columns stay under the repository's control.
type UpdateCommand struct {
	Description     *string
	SourceURL       *string
	LocalPath       *string
	Category        *string
	Priority        *int
	SourceUpdatedAt *string
}

// Empty reports whether the command carries no applicable fields.
func (c UpdateCommand) Empty() bool {
	return c.Description == nil &&
		c.SourceURL == nil &&
		c.LocalPath == nil &&
		c.Category == nil &&
		c.Priority == nil &&
		c.SourceUpdatedAt == nil
}
