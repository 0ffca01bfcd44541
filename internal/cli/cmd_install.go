package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iikjl/gofore-hotvibes-sauna-evening/internal/config"
)

func newInstallCmd() *cobra.Command {
	var settings, binDir string
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Register the hooks as PostToolUse commands in Claude settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			added, err := config.InstallClaudeHooks(settings, binDir)
			if err != nil {
				return fmt.Errorf("install: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(added) == 0 {
				fmt.Fprintln(out, "hooks already registered in", settings)
				return nil
			}
			for _, c := range added {
				fmt.Fprintln(out, "registered", c)
			}
			fmt.Fprintln(out, "wrote", settings)
			return nil
		},
	}
	cmd.Flags().StringVar(&settings, "settings", filepath.Join(".claude", "settings.json"), "Claude settings file to update")
	cmd.Flags().StringVar(&binDir, "bin-dir", "./.hooks/bin", "directory holding the hook binaries")
	return cmd
}
