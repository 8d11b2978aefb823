package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alephdao/agent-builder/internal/documents"
	"github.com/alephdao/agent-builder/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the built-in reference prompt catalog",
	Long: `Seed registers the built-in reference prompts in the catalog.

Records whose source files are missing are skipped, as are names already
registered, so re-running is safe. Prompts belonging to other local agent
projects are looked up under the configured agents directory.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.start(cmd.Context()); err != nil {
		return err
	}
	defer a.shutdown()

	runner := seed.NewRunner(a.documents, a.infra.Content, a.infra.Logger)
	result, err := runner.Run(cmd.Context(), seed.Catalog(a.cfg.AgentsDir))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Summary: Added %d, Skipped %d\n", result.Added, result.Skipped)
	return printCatalog(cmd.Context(), out, a)
}

// printCatalog lists every catalogued prompt in priority order, printing a
// header each time the category changes.
func printCatalog(ctx context.Context, out io.Writer, a *app) error {
	docs, err := a.documents.List(ctx, documents.Filters{})
	if err != nil {
		return fmt.Errorf("list catalog: %w", err)
	}

	if len(docs) == 0 {
		return nil
	}

	fmt.Fprintln(out, "\nAll reference prompts (ordered by priority):")

	var current string
	for _, doc := range docs {
		category := "none"
		if doc.Category != nil {
			category = *doc.Category
		}
		if category != current {
			current = category
			fmt.Fprintf(out, "\n%s:\n", strings.ToUpper(category))
		}
		fmt.Fprintf(out, "  %-40s (priority=%3d)\n", doc.Name, doc.Priority)
	}
	return nil
}
