// Package cli implements the hooks command-line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the hooks command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hooks",
		Short: "Post-write formatter and lint hooks",
		Long: `hooks runs code formatters and ruff after a file-writing tool call and
keeps a capped JSON history of every run under ./logs.

Quick start:
  hooks init                  Write .hooks/config.yaml with the built-in table
  hooks install               Register the hooks in .claude/settings.json
  hooks log                   Show recent formatter runs
  hooks log lint --last 5     Show the last five lint runs`,
		SilenceUsage: true,
	}

	root.AddCommand(newFormatCmd())
	root.AddCommand(newLintCmd())
	root.AddCommand(newLogCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newInstallCmd())
	return root
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
