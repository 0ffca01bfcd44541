package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iikjl/gofore-hotvibes-sauna-evening/internal/hooks"
)

type hookFunc func(context.Context, hooks.HookInput, hooks.Options) (hooks.HookResult, int)

func newFormatCmd() *cobra.Command {
	return newHookCmd("multi-formatter", "format", "Run the formatter hook on a tool event read from stdin", hooks.MultiFormatter)
}

func newLintCmd() *cobra.Command {
	return newHookCmd("ruff-lint", "lint", "Run the ruff hook on a tool event read from stdin", hooks.RuffLint)
}

// newHookCmd wraps a hook as a subcommand. Like the standalone binaries it
// never fails: the host only learns about problems through the log file.
func newHookCmd(name, use, short string, fn hookFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if hooks.IsHookDisabled(name) {
				return nil
			}
			opts := hooks.LoadOptions(cmd.ErrOrStderr())
			hooks.Execute(cmd.InOrStdin(), cmd.OutOrStdout(), func(in hooks.HookInput) (hooks.HookResult, int) {
				return fn(cmd.Context(), in, opts)
			})
			return nil
		},
	}
}
