package documents

import (
	"github.com/alephdao/agent-builder/pkg/database"
	"github.com/alephdao/agent-builder/pkg/query"
	"github.com/alephdao/agent-builder/pkg/repository"
)

var projection = query.
	NewProjectionMap("prompt_documents", "d").
	Project("id", "ID").
	Project("name", "Name").
	Project("description", "Description").
	Project("source_url", "SourceURL").
	Project("local_path", "LocalPath").
	Project("category", "Category").
	Project("priority", "Priority").
	Project("source_updated_at", "SourceUpdatedAt").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

// Highest priority first, then category, then name. When a listing is
// already scoped to one category the category column drops out of the sort.
var catalogSort = []query.SortField{
	{Field: "Priority", Descending: true},
	{Field: "Category"},
	{Field: "Name"},
}

var categorySort = []query.SortField{
	{Field: "Priority", Descending: true},
	{Field: "Name"},
}

// Filters contains optional filtering criteria for catalog queries.
// Nil fields are ignored.
type Filters struct {
	Category *string
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("Category", f.Category)
}

func scanDocument(s repository.Scanner) (Document, error) {
	var (
		d         Document
		createdAt string
		updatedAt string
	)

	err := s.Scan(
		&d.ID,
		&d.Name,
		&d.Description,
		&d.SourceURL,
		&d.LocalPath,
		&d.Category,
		&d.Priority,
		&d.SourceUpdatedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return d, err
	}

	if d.CreatedAt, err = database.ParseTimestamp(createdAt); err != nil {
		return d, err
	}
	if d.UpdatedAt, err = database.ParseTimestamp(updatedAt); err != nil {
		return d, err
	}

	return d, nil
}
