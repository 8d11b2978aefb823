package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alephdao/agent-builder/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "agent-builder %s\n", cfg.Version)
		return nil
	},
}
