package main

import (
	"github.com/spf13/cobra"

	"github.com/alephdao/agent-builder/internal/agent"
	"github.com/alephdao/agent-builder/internal/chat"
)

var rootCmd = &cobra.Command{
	Use:   "agent-builder",
	Short: "Build AI agent system prompts interactively",
	Long: `Agent Prompt Builder is an interactive assistant for designing AI agent
system prompts. It chats with Claude against a local catalog of reference
prompts, keeps every conversation in an embedded SQLite database, and saves
generated prompts as reusable artifacts.

Running without a subcommand starts the chat loop.`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.start(cmd.Context()); err != nil {
		return err
	}
	defer a.shutdown()

	client := agent.NewAnthropic(&a.cfg.Agent, a.systemPrompt(), a.infra.Logger)
	loop := chat.New(&a.cfg.Chat, a.session, client, a.infra.Content, a.infra.Logger)

	return loop.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}

func init() {
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}
