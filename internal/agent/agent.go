// Package agent provides the conversational agent client used by the chat
// loop to turn assembled prompts into responses.
package agent

import "context"

// DefaultSystemPrompt is used when no system prompt file is configured or
// the configured file cannot be read.
const DefaultSystemPrompt = "You are an AI agent prompt builder. Help users design system prompts for AI agents."

// Client produces a response for a fully assembled prompt. Implementations
// own transport concerns such as transient-failure retry; callers see only
// the final text or the final error.
type Client interface {
	Respond(ctx context.Context, prompt string) (string, error)
}
