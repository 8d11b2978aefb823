package documents

import "context"

// System defines the public contract for catalog operations.
type System interface {
	// Create registers a new reference prompt. Returns ErrDuplicate when the
	// name is already taken; the existing row is left untouched.
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	// Find returns the document with the given name, or ErrNotFound.
	Find(ctx context.Context, name string) (*Document, error)
	// List returns documents ordered by priority descending, then category,
	// then name. A category filter narrows the result and drops the category
	// column from the ordering.
	List(ctx context.Context, filters Filters) ([]Document, error)
	// Update applies the allow-listed fields of cmd and refreshes updated_at.
	// Returns false without writing when cmd is empty or no document has the
	// given name.
	Update(ctx context.Context, name string, cmd UpdateCommand) (bool, error)
	// Delete removes the document with the given name and reports whether a
	// row was removed. Missing names are not an error.
	Delete(ctx context.Context, name string) (bool, error)
	// ReadContent reads the document's prompt text from its local path.
	// Returns ErrNoContent when the document does not exist, records no
	// path, or the path does not resolve to a readable file.
	ReadContent(ctx context.Context, name string) (string, error)
	// Count returns the number of catalogued documents.
	Count(ctx context.Context) (int, error)
}
