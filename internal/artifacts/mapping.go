package artifacts

import (
	"github.com/alephdao/agent-builder/pkg/database"
	"github.com/alephdao/agent-builder/pkg/query"
	"github.com/alephdao/agent-builder/pkg/repository"
)

var projection = query.
	NewProjectionMap("generated_prompts", "g").
	Project("id", "ID").
	Project("conversation_id", "ConversationID").
	Project("name", "Name").
	Project("content", "Content").
	Project("metadata", "Metadata").
	Project("created_at", "CreatedAt")

// Newest first; id breaks ties between equal timestamps.
var defaultSort = []query.SortField{
	{Field: "CreatedAt", Descending: true},
	{Field: "ID", Descending: true},
}

func scanArtifact(s repository.Scanner) (GeneratedPrompt, error) {
	var (
		g         GeneratedPrompt
		createdAt string
	)

	err := s.Scan(
		&g.ID,
		&g.ConversationID,
		&g.Name,
		&g.Content,
		&g.Metadata,
		&createdAt,
	)
	if err != nil {
		return g, err
	}

	if g.CreatedAt, err = database.ParseTimestamp(createdAt); err != nil {
		return g, err
	}

	return g, nil
}
