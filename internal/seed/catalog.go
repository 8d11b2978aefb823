// Package seed loads the built-in reference prompt catalog into the store.
package seed

import "path/filepath"

// Priority tiers for the built-in catalog. Higher is more important when
// assembling context for the agent.
//
//	100 = primary reference (gold standard)
//	 95 = primary reference (tools and standards)
//	 90 = secondary reference (excellent examples)
//	 85 = conversational companion (dialogue patterns)
//	 80 = Claude model reference prompts
//	 70 = other LLM references
//	 60 = local agents
//	 50 = this agent's own prompt
type Record struct {
	Name            string
	Description     string
	SourceURL       string
	LocalPath       string
	Category        string
	Priority        int
	SourceUpdatedAt string
}

// Catalog returns the built-in reference records. Paths under the working
// tree are relative; prompts belonging to other local agent projects live
// under agentsDir and are skipped at seed time when absent.
func Catalog(agentsDir string) []Record {
	return []Record{
		{
			Name:            "claude-code-system-prompt",
			Description:     "The official Claude Code CLI system prompt - the gold standard for agent prompts",
			SourceURL:       "https://github.com/matthew-lim-matthew-lim/claude-code-system-prompt/blob/main/claudecode.md",
			LocalPath:       "prompts/references/claude-code-system-prompt.md",
			Category:        "claude-code",
			Priority:        100,
			SourceUpdatedAt: "2025-01-15",
		},
		{
			Name:            "claude-code-tools",
			Description:     "Claude Code's tool definitions - reference for how to define agent tools",
			SourceURL:       "https://gist.github.com/wong2/e0f34aac66caf890a332f7b6f9e2ba8f",
			LocalPath:       "prompts/references/claude-code-tools.md",
			Category:        "claude-code",
			Priority:        95,
			SourceUpdatedAt: "2025-01-10",
		},
		{
			Name:            "perplexity",
			Description:     "Perplexity AI search assistant prompt - excellent example of a search-focused agent",
			SourceURL:       "https://github.com/jujumilk3/leaked-system-prompts/blob/main/perplexity.ai_20250112.md",
			LocalPath:       "prompts/references/perplexity.md",
			Category:        "search",
			Priority:        90,
			SourceUpdatedAt: "2025-01-12",
		},
		{
			Name:            "aristotle-companion",
			Description:     "Philosophical conversational companion - excellent example of Socratic dialogue, persona, and conversational discipline",
			LocalPath:       "prompts/references/aristotle-companion.md",
			Category:        "companion",
			Priority:        85,
			SourceUpdatedAt: "2026-01-17",
		},
		{
			Name:            "claude-opus-4.5",
			Description:     "Claude Opus 4.5 model capabilities and system prompt reference",
			LocalPath:       "prompts/references/claude-opus-4.5.md",
			Category:        "claude-models",
			Priority:        80,
			SourceUpdatedAt: "2025-01-17",
		},
		{
			Name:            "claude-sonnet-4.5",
			Description:     "Claude Sonnet 4.5 model capabilities and system prompt reference",
			LocalPath:       "prompts/references/claude-sonnet-4.5.md",
			Category:        "claude-models",
			Priority:        80,
			SourceUpdatedAt: "2025-01-17",
		},
		{
			Name:            "claude-haiku-4.5",
			Description:     "Claude Haiku 4.5 model capabilities and system prompt reference",
			LocalPath:       "prompts/references/claude-haiku-4.5.md",
			Category:        "claude-models",
			Priority:        80,
			SourceUpdatedAt: "2025-01-17",
		},
		{
			Name:            "chatgpt5",
			Description:     "ChatGPT 5 system prompt - reference for an alternative LLM approach",
			LocalPath:       "prompts/references/chatgpt5.md",
			Category:        "other-llms",
			Priority:        70,
			SourceUpdatedAt: "2025-01-15",
		},
		{
			Name:            "grok3",
			Description:     "Grok 3 system prompt - xAI assistant reference",
			LocalPath:       "prompts/references/grok3.md",
			Category:        "other-llms",
			Priority:        70,
			SourceUpdatedAt: "2025-01-15",
		},
		{
			Name:            "openai-deep-research",
			Description:     "OpenAI Deep Research mode system prompt - research-focused AI approach",
			LocalPath:       "prompts/references/openai-deep-research.md",
			Category:        "other-llms",
			Priority:        70,
			SourceUpdatedAt: "2025-01-15",
		},
		{
			Name:            "gemini-cli",
			Description:     "Google Gemini CLI system prompt - multimodal AI reference",
			LocalPath:       "prompts/references/gemini-cli.md",
			Category:        "other-llms",
			Priority:        70,
			SourceUpdatedAt: "2025-01-15",
		},
		{
			Name:        "smithers-agent",
			Description: "Personal AI assistant with Asana, Calendar, and database integration",
			LocalPath:   filepath.Join(agentsDir, "smithers/apps/agent/prompts/smithers.md"),
			Category:    "assistant",
			Priority:    60,
		},
		{
			Name:        "spanish-translator",
			Description: "Argentine Spanish translator with conversation context",
			LocalPath:   filepath.Join(agentsDir, "spanish-translator/telegram_bot/prompts/system_prompt.md"),
			Category:    "translator",
			Priority:    60,
		},
		{
			Name:        "meeting-analyzer",
			Description: "Extracts action items and notes from meeting transcripts",
			LocalPath:   filepath.Join(agentsDir, "apps/meeting-analyzer/prompts/analyzer.md"),
			Category:    "analyzer",
			Priority:    60,
		},
		{
			Name:        "agent-builder-self",
			Description: "This agent's own system prompt (meta!)",
			LocalPath:   "prompts/system_prompt.md",
			Category:    "builder",
			Priority:    50,
		},
	}
}
