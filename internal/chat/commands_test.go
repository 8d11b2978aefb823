package chat_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alephdao/agent-builder/internal/documents"
)

func ptr[T any](v T) *T {
	return &v
}

func TestHelpCommand(t *testing.T) {
	f := newFixture(t, stubReplies())

	out := f.run(t, "/help\n/quit\n")

	if !strings.Contains(out, "Available Commands:") {
		t.Error("help header not printed")
	}
	for _, line := range []string{"/new", "/improve [path]", "/list", "/view [name]", "/add", "/save [name]", "/history", "/quit"} {
		if !strings.Contains(out, line) {
			t.Errorf("help text missing %q", line)
		}
	}
}

func TestListCommandEmpty(t *testing.T) {
	f := newFixture(t, stubReplies())

	out := f.run(t, "/list\n/quit\n")
	if !strings.Contains(out, "No reference prompts in database. Use /add to add some.") {
		t.Error("empty-catalog message not printed")
	}
}

func TestListCommand(t *testing.T) {
	f := newFixture(t, stubReplies())
	ctx := context.Background()

	if _, err := f.manager.AddReference(ctx, documents.CreateCommand{
		Name:        "perplexity",
		Description: ptr("Perplexity AI search assistant"),
		Category:    ptr("search"),
		Priority:    90,
	}); err != nil {
		t.Fatalf("add reference: %v", err)
	}
	if _, err := f.manager.AddReference(ctx, documents.CreateCommand{Name: "bare"}); err != nil {
		t.Fatalf("add reference: %v", err)
	}

	out := f.run(t, "/list\n/quit\n")

	if !strings.Contains(out, "Reference Prompts:") {
		t.Error("list header not printed")
	}
	if !strings.Contains(out, "  - perplexity [search]") {
		t.Error("name and category line not printed")
	}
	if !strings.Contains(out, "      Perplexity AI search assistant") {
		t.Error("description line not printed")
	}
	if !strings.Contains(out, "  - bare\n") {
		t.Error("uncategorized entry not printed")
	}
}

func TestViewCommand(t *testing.T) {
	f := newFixture(t, stubReplies())
	ctx := context.Background()

	path := filepath.Join(f.root, "prompts", "sample.md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("You are a sample agent."), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := f.manager.AddReference(ctx, documents.CreateCommand{
		Name:      "sample",
		LocalPath: ptr("prompts/sample.md"),
	}); err != nil {
		t.Fatalf("add sample: %v", err)
	}
	if _, err := f.manager.AddReference(ctx, documents.CreateCommand{Name: "pathless"}); err != nil {
		t.Fatalf("add pathless: %v", err)
	}

	t.Run("readable content", func(t *testing.T) {
		out := f.run(t, "/view sample\n/quit\n")
		if !strings.Contains(out, "=== sample ===\nYou are a sample agent.") {
			t.Error("content not printed")
		}
	})

	t.Run("no recorded path", func(t *testing.T) {
		out := f.run(t, "/view pathless\n/quit\n")
		if !strings.Contains(out, "Found 'pathless' but cannot read content. Path: none recorded") {
			t.Error("pathless explanation not printed")
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		out := f.run(t, "/view ghost\n/quit\n")
		if !strings.Contains(out, "Prompt 'ghost' not found. Use /list to see available prompts.") {
			t.Error("not-found message not printed")
		}
	})

	t.Run("usage", func(t *testing.T) {
		out := f.run(t, "/view\n/quit\n")
		if !strings.Contains(out, "Usage: /view [prompt_name]") {
			t.Error("usage not printed")
		}
	})
}

func TestAddCommand(t *testing.T) {
	f := newFixture(t, stubReplies())

	input := strings.Join([]string{
		"/add",
		"my-ref",
		"A custom reference",
		"",
		"",
		"tools",
		"/list",
		"/quit",
	}, "\n") + "\n"
	out := f.run(t, input)

	if !strings.Contains(out, "--- Add Reference Prompt ---") {
		t.Error("add header not printed")
	}
	if !strings.Contains(out, "Added prompt reference: my-ref") {
		t.Error("confirmation not printed")
	}
	if !strings.Contains(out, "  - my-ref [tools]") {
		t.Error("added reference not listed")
	}

	doc, err := f.manager.Reference(context.Background(), "my-ref")
	if err != nil {
		t.Fatalf("find my-ref: %v", err)
	}
	if doc.Description == nil || *doc.Description != "A custom reference" {
		t.Errorf("Description = %v, want captured", doc.Description)
	}
	if doc.SourceURL != nil || doc.LocalPath != nil {
		t.Error("blank optional fields should stay nil")
	}
	if doc.Category == nil || *doc.Category != "tools" {
		t.Errorf("Category = %v, want tools", doc.Category)
	}
}

func TestAddCommandRequiresName(t *testing.T) {
	f := newFixture(t, stubReplies())

	out := f.run(t, "/add\n\n/quit\n")
	if !strings.Contains(out, "Cancelled - name is required.") {
		t.Error("cancellation message not printed")
	}
}

func TestAddCommandDuplicate(t *testing.T) {
	f := newFixture(t, stubReplies())

	if _, err := f.manager.AddReference(context.Background(), documents.CreateCommand{Name: "taken"}); err != nil {
		t.Fatalf("add reference: %v", err)
	}

	out := f.run(t, "/add\ntaken\n\n\n\n\n/quit\n")
	if !strings.Contains(out, "A reference named 'taken' already exists.") {
		t.Error("duplicate message not printed")
	}
}

func TestNewCommand(t *testing.T) {
	client := stubReplies("ok")
	f := newFixture(t, client)

	out := f.run(t, "hello\n/new\n/history\n/quit\n")

	if !strings.Contains(out, "Started new conversation. What kind of agent would you like to build?") {
		t.Error("new-conversation message not printed")
	}
	// /history reads the fresh conversation, not the old one.
	if !strings.Contains(out, "No messages in current conversation.") {
		t.Error("history should be empty after /new")
	}
}

func TestHistoryCommand(t *testing.T) {
	client := stubReplies("hi there")
	f := newFixture(t, client)

	out := f.run(t, "hello\n/history\n/quit\n")

	if !strings.Contains(out, "Conversation History:") {
		t.Error("history header not printed")
	}
	if !strings.Contains(out, "  [You] hello") {
		t.Error("user line not printed")
	}
	if !strings.Contains(out, "  [Agent] hi there") {
		t.Error("agent line not printed")
	}
}

func TestHistoryCommandTruncatesPreviews(t *testing.T) {
	long := strings.Repeat("x", 150)
	client := stubReplies("ok")
	f := newFixture(t, client)

	out := f.run(t, long+"\n/history\n/quit\n")

	if !strings.Contains(out, "  [You] "+strings.Repeat("x", 100)+"...\n") {
		t.Error("long message not truncated to preview")
	}
}

func TestSaveCommandUsage(t *testing.T) {
	f := newFixture(t, stubReplies())

	out := f.run(t, "/save\n/quit\n")
	if !strings.Contains(out, "Usage: /save [prompt_name]") {
		t.Error("usage not printed")
	}
}

func TestSaveCommandWithoutDraft(t *testing.T) {
	f := newFixture(t, stubReplies())

	out := f.run(t, "/save my-agent\n/quit\n")
	if !strings.Contains(out, "Nothing to save yet. Ask the agent to draft a prompt first.") {
		t.Error("no-draft message not printed")
	}
}

func TestSaveCommandExportsDraft(t *testing.T) {
	client := stubReplies("Here you go:\n```markdown\nYou are a research agent.\n```\nEnjoy!")
	f := newFixture(t, client)

	out := f.run(t, "draft a research agent\n/save research-agent\n/quit\n")

	if !strings.Contains(out, "Saved prompt 'research-agent' (id=1) and exported to ") {
		t.Error("save confirmation not printed")
	}

	exported := filepath.Join(f.root, "generated", "research-agent.md")
	data, err := os.ReadFile(exported)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if string(data) != "You are a research agent." {
		t.Errorf("exported content = %q, want extracted draft", data)
	}

	var stored string
	if err := f.db.QueryRow("SELECT content FROM generated_prompts WHERE id = 1").Scan(&stored); err != nil {
		t.Fatalf("query artifact: %v", err)
	}
	if stored != "You are a research agent." {
		t.Errorf("stored content = %q, want extracted draft", stored)
	}
}

func TestSaveCommandUnfencedReply(t *testing.T) {
	client := stubReplies("  plain draft without fences  ")
	f := newFixture(t, client)

	f.run(t, "draft\n/save plain\n/quit\n")

	var stored string
	if err := f.db.QueryRow("SELECT content FROM generated_prompts WHERE id = 1").Scan(&stored); err != nil {
		t.Fatalf("query artifact: %v", err)
	}
	if stored != "plain draft without fences" {
		t.Errorf("stored content = %q, want trimmed reply", stored)
	}
}

func TestImproveCommandUsage(t *testing.T) {
	f := newFixture(t, stubReplies())

	out := f.run(t, "/improve\n/quit\n")
	if !strings.Contains(out, "Usage: /improve [path_to_repo]") {
		t.Error("usage not printed")
	}
}

func TestImproveCommandBadPath(t *testing.T) {
	f := newFixture(t, stubReplies())

	missing := filepath.Join(t.TempDir(), "missing")
	out := f.run(t, "/improve "+missing+"\n/quit\n")
	if !strings.Contains(out, "Path does not exist: "+missing) {
		t.Error("missing-path message not printed")
	}

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out = f.run(t, "/improve "+file+"\n/quit\n")
	if !strings.Contains(out, "Path is not a directory: "+file) {
		t.Error("not-a-directory message not printed")
	}
}

func TestImproveCommand(t *testing.T) {
	client := stubReplies("Tell me about the current prompt.")
	f := newFixture(t, client)

	target := t.TempDir()
	input := "/improve " + target + "\n/save improved\n/quit\n"
	out := f.run(t, input)

	if !strings.Contains(out, "=== Improve Mode ===") {
		t.Error("improve header not printed")
	}
	if !strings.Contains(out, "Analyzing repository: "+target) {
		t.Error("target not echoed")
	}

	if len(client.prompts) != 1 {
		t.Fatalf("agent called %d times, want 1", len(client.prompts))
	}
	if !strings.Contains(client.prompts[0], "=== IMPROVE MODE ACTIVE ===") {
		t.Error("prompt missing improve-mode block")
	}
	if !strings.Contains(client.prompts[0], "Target repository: "+target) {
		t.Error("prompt missing target repository")
	}
	if !strings.Contains(client.prompts[0], "I want to improve the system prompt for the agent at "+target) {
		t.Error("prompt missing exploration request")
	}

	// The saved artifact records which repository it came from.
	var metadata string
	if err := f.db.QueryRow("SELECT metadata FROM generated_prompts WHERE id = 1").Scan(&metadata); err != nil {
		t.Fatalf("query artifact: %v", err)
	}
	if !strings.Contains(metadata, `"improve_target":`) {
		t.Errorf("metadata = %q, want improve_target recorded", metadata)
	}
}

func TestUnknownCommandGoesToAgent(t *testing.T) {
	client := stubReplies("Here is a draft.")
	f := newFixture(t, client)

	out := f.run(t, "/draft\n/quit\n")

	if len(client.prompts) != 1 {
		t.Fatalf("agent called %d times, want 1", len(client.prompts))
	}
	if !strings.HasSuffix(client.prompts[0], "User: /draft") {
		t.Errorf("prompt = %q, want /draft forwarded as input", client.prompts[0])
	}
	if !strings.Contains(out, "Agent: Here is a draft.") {
		t.Error("reply not printed")
	}
}
