package documents_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alephdao/agent-builder/internal/documents"
	"github.com/alephdao/agent-builder/pkg/content"
	"github.com/alephdao/agent-builder/pkg/database"
	_ "modernc.org/sqlite"
)

func ptr[T any](v T) *T {
	return &v
}

func testCatalog(t *testing.T) (documents.System, string) {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	root := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := content.New(&content.Config{Root: root}, logger)

	return documents.New(db, store, logger), root
}

func createDoc(t *testing.T, sys documents.System, name, category string, priority int) *documents.Document {
	t.Helper()

	doc, err := sys.Create(context.Background(), documents.CreateCommand{
		Name:     name,
		Category: ptr(category),
		Priority: priority,
	})
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return doc
}

func TestCreateReturnsPopulatedDocument(t *testing.T) {
	sys, _ := testCatalog(t)
	ctx := context.Background()

	doc, err := sys.Create(ctx, documents.CreateCommand{
		Name:            "claude-code-system-prompt",
		Description:     ptr("Claude Code full system prompt"),
		SourceURL:       ptr("https://example.com/prompt"),
		LocalPath:       ptr("prompts/claude-code.md"),
		Category:        ptr("coding-agents"),
		Priority:        100,
		SourceUpdatedAt: ptr("2025-05-01"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if doc.ID == 0 {
		t.Error("ID not assigned")
	}
	if doc.Name != "claude-code-system-prompt" {
		t.Errorf("Name = %q, want %q", doc.Name, "claude-code-system-prompt")
	}
	if doc.Description == nil || *doc.Description != "Claude Code full system prompt" {
		t.Errorf("Description = %v, want populated", doc.Description)
	}
	if doc.SourceURL == nil || *doc.SourceURL != "https://example.com/prompt" {
		t.Errorf("SourceURL = %v, want populated", doc.SourceURL)
	}
	if doc.LocalPath == nil || *doc.LocalPath != "prompts/claude-code.md" {
		t.Errorf("LocalPath = %v, want populated", doc.LocalPath)
	}
	if doc.Category == nil || *doc.Category != "coding-agents" {
		t.Errorf("Category = %v, want populated", doc.Category)
	}
	if doc.Priority != 100 {
		t.Errorf("Priority = %d, want 100", doc.Priority)
	}
	if doc.SourceUpdatedAt == nil || *doc.SourceUpdatedAt != "2025-05-01" {
		t.Errorf("SourceUpdatedAt = %v, want populated", doc.SourceUpdatedAt)
	}
	if doc.CreatedAt.IsZero() || doc.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
	if !doc.CreatedAt.Equal(doc.UpdatedAt) {
		t.Errorf("CreatedAt = %v, UpdatedAt = %v, want equal on create", doc.CreatedAt, doc.UpdatedAt)
	}
}

func TestCreateMinimalCommand(t *testing.T) {
	sys, _ := testCatalog(t)

	doc, err := sys.Create(context.Background(), documents.CreateCommand{Name: "bare"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if doc.Description != nil || doc.SourceURL != nil || doc.LocalPath != nil ||
		doc.Category != nil || doc.SourceUpdatedAt != nil {
		t.Error("optional fields should stay nil when not provided")
	}
	if doc.Priority != 0 {
		t.Errorf("Priority = %d, want 0", doc.Priority)
	}
}

func TestCreateDuplicateName(t *testing.T) {
	sys, _ := testCatalog(t)
	ctx := context.Background()

	createDoc(t, sys, "perplexity", "search", 90)

	_, err := sys.Create(ctx, documents.CreateCommand{Name: "perplexity"})
	if !errors.Is(err, documents.ErrDuplicate) {
		t.Errorf("error = %v, want ErrDuplicate", err)
	}

	count, err := sys.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 after rejected duplicate", count)
	}
}

func TestFind(t *testing.T) {
	sys, _ := testCatalog(t)

	created := createDoc(t, sys, "grok3", "general-agents", 70)

	found, err := sys.Find(context.Background(), "grok3")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}
	if found.Priority != 70 {
		t.Errorf("Priority = %d, want 70", found.Priority)
	}
}

func TestFindMissing(t *testing.T) {
	sys, _ := testCatalog(t)

	_, err := sys.Find(context.Background(), "nonexistent")
	if !errors.Is(err, documents.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListOrdering(t *testing.T) {
	sys, _ := testCatalog(t)

	createDoc(t, sys, "alpha", "tools", 90)
	createDoc(t, sys, "beta", "agents", 100)
	createDoc(t, sys, "gamma", "agents", 90)
	createDoc(t, sys, "delta", "agents", 90)

	docs, err := sys.List(context.Background(), documents.Filters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"beta", "delta", "gamma", "alpha"}
	if len(docs) != len(want) {
		t.Fatalf("got %d documents, want %d", len(docs), len(want))
	}
	for i, name := range want {
		if docs[i].Name != name {
			t.Errorf("docs[%d].Name = %q, want %q", i, docs[i].Name, name)
		}
	}
}

func TestListCategoryFilter(t *testing.T) {
	sys, _ := testCatalog(t)
	ctx := context.Background()

	createDoc(t, sys, "alpha", "tools", 90)
	createDoc(t, sys, "beta", "agents", 100)
	createDoc(t, sys, "gamma", "agents", 90)
	createDoc(t, sys, "delta", "agents", 90)

	docs, err := sys.List(ctx, documents.Filters{Category: ptr("agents")})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"beta", "delta", "gamma"}
	if len(docs) != len(want) {
		t.Fatalf("got %d documents, want %d", len(docs), len(want))
	}
	for i, name := range want {
		if docs[i].Name != name {
			t.Errorf("docs[%d].Name = %q, want %q", i, docs[i].Name, name)
		}
	}
}

func TestListEmptyCategoryIgnored(t *testing.T) {
	sys, _ := testCatalog(t)

	createDoc(t, sys, "alpha", "tools", 90)
	createDoc(t, sys, "beta", "agents", 100)

	docs, err := sys.List(context.Background(), documents.Filters{Category: ptr("")})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("got %d documents, want 2 with blank filter ignored", len(docs))
	}
}

func TestListEmpty(t *testing.T) {
	sys, _ := testCatalog(t)

	docs, err := sys.List(context.Background(), documents.Filters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if docs == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(docs) != 0 {
		t.Errorf("got %d documents, want 0", len(docs))
	}
}

func TestUpdate(t *testing.T) {
	sys, _ := testCatalog(t)
	ctx := context.Background()

	created := createDoc(t, sys, "aristotle", "education", 85)
	time.Sleep(2 * time.Millisecond)

	ok, err := sys.Update(ctx, "aristotle", documents.UpdateCommand{
		Description: ptr("Socratic learning companion"),
		Priority:    ptr(88),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !ok {
		t.Fatal("Update returned false, want true")
	}

	doc, err := sys.Find(ctx, "aristotle")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if doc.Description == nil || *doc.Description != "Socratic learning companion" {
		t.Errorf("Description = %v, want updated", doc.Description)
	}
	if doc.Priority != 88 {
		t.Errorf("Priority = %d, want 88", doc.Priority)
	}
	if doc.Category == nil || *doc.Category != "education" {
		t.Errorf("Category = %v, want untouched", doc.Category)
	}
	if !doc.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want after %v", doc.UpdatedAt, created.UpdatedAt)
	}
	if !doc.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt = %v, want unchanged %v", doc.CreatedAt, created.CreatedAt)
	}
}

func TestUpdateEmptyCommand(t *testing.T) {
	sys, _ := testCatalog(t)
	ctx := context.Background()

	created := createDoc(t, sys, "static", "tools", 50)

	ok, err := sys.Update(ctx, "static", documents.UpdateCommand{})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if ok {
		t.Error("empty command should not report an update")
	}

	doc, err := sys.Find(ctx, "static")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if !doc.UpdatedAt.Equal(created.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want unchanged %v", doc.UpdatedAt, created.UpdatedAt)
	}
}

func TestUpdateMissingName(t *testing.T) {
	sys, _ := testCatalog(t)

	ok, err := sys.Update(context.Background(), "ghost", documents.UpdateCommand{
		Priority: ptr(10),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if ok {
		t.Error("update of missing document should report false")
	}
}

func TestDelete(t *testing.T) {
	sys, _ := testCatalog(t)
	ctx := context.Background()

	createDoc(t, sys, "ephemeral", "tools", 10)

	ok, err := sys.Delete(ctx, "ephemeral")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !ok {
		t.Fatal("Delete returned false, want true")
	}

	if _, err := sys.Find(ctx, "ephemeral"); !errors.Is(err, documents.ErrNotFound) {
		t.Errorf("Find after delete = %v, want ErrNotFound", err)
	}
}

func TestDeleteMissing(t *testing.T) {
	sys, _ := testCatalog(t)

	ok, err := sys.Delete(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if ok {
		t.Error("delete of missing document should report false")
	}
}

func TestReadContent(t *testing.T) {
	sys, root := testCatalog(t)
	ctx := context.Background()

	path := filepath.Join(root, "prompts", "ref.md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("You are a helpful agent."), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := sys.Create(ctx, documents.CreateCommand{
		Name:      "helpful",
		LocalPath: ptr("prompts/ref.md"),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	text, err := sys.ReadContent(ctx, "helpful")
	if err != nil {
		t.Fatalf("ReadContent failed: %v", err)
	}
	if text != "You are a helpful agent." {
		t.Errorf("content = %q, want %q", text, "You are a helpful agent.")
	}
}

func TestReadContentNoContent(t *testing.T) {
	sys, _ := testCatalog(t)
	ctx := context.Background()

	createDoc(t, sys, "pathless", "tools", 10)
	if _, err := sys.Create(ctx, documents.CreateCommand{
		Name:      "dangling",
		LocalPath: ptr("prompts/missing.md"),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("document without path", func(t *testing.T) {
		_, err := sys.ReadContent(ctx, "pathless")
		if !errors.Is(err, documents.ErrNoContent) {
			t.Errorf("error = %v, want ErrNoContent", err)
		}
	})

	t.Run("path to missing file", func(t *testing.T) {
		_, err := sys.ReadContent(ctx, "dangling")
		if !errors.Is(err, documents.ErrNoContent) {
			t.Errorf("error = %v, want ErrNoContent", err)
		}
	})

	t.Run("unknown document", func(t *testing.T) {
		_, err := sys.ReadContent(ctx, "ghost")
		if !errors.Is(err, documents.ErrNoContent) {
			t.Errorf("error = %v, want ErrNoContent", err)
		}
	})
}

func TestCount(t *testing.T) {
	sys, _ := testCatalog(t)
	ctx := context.Background()

	count, err := sys.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}

	createDoc(t, sys, "one", "tools", 10)
	createDoc(t, sys, "two", "tools", 20)

	count, err = sys.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}
