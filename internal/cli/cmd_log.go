package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/iikjl/gofore-hotvibes-sauna-evening/internal/hooks"
	"github.com/iikjl/gofore-hotvibes-sauna-evening/internal/runlog"
)

const (
	ansiDim    = "\033[2m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
	ansiReset  = "\033[0m"
)

func newLogCmd() *cobra.Command {
	var (
		last    int
		jsonOut bool
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "log [formatter|lint]",
		Short: "Show recent hook runs",
		Long: `Show entries from the formatter or lint history log.

Examples:
  hooks log                 # last 10 formatter runs
  hooks log lint --last 0   # every lint run kept in the log
  hooks log --json          # raw entries`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"formatter", "lint"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := "formatter"
			if len(args) == 1 {
				kind = args[0]
			}
			name, err := logName(kind)
			if err != nil {
				return err
			}

			opts := hooks.LoadOptions(cmd.ErrOrStderr())
			path := filepath.Join(opts.LogDir(), name)
			entries := runlog.Read(path)
			if entries == nil {
				entries = []json.RawMessage{}
			}
			if last > 0 && len(entries) > last {
				entries = entries[len(entries)-last:]
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				data, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			if len(entries) == 0 {
				fmt.Fprintf(out, "no entries in %s\n", path)
				return nil
			}

			p := printer{w: out, color: !noColor && isTerminal(out)}
			for _, raw := range entries {
				if kind == "lint" {
					p.lintEntry(raw)
				} else {
					p.formatterEntry(raw)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&last, "last", "n", 10, "number of most recent entries to show (0 = all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print raw JSON entries")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	return cmd
}

func logName(kind string) (string, error) {
	switch kind {
	case "formatter", "format":
		return hooks.FormatterLogName, nil
	case "lint", "ruff":
		return hooks.LintLogName, nil
	}
	return "", fmt.Errorf("unknown log %q (want formatter or lint)", kind)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type printer struct {
	w     io.Writer
	color bool
}

func (p printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + ansiReset
}

func (p printer) status(s string) string {
	switch s {
	case hooks.StatusSuccess:
		return p.paint(ansiGreen, s)
	case hooks.StatusFailed:
		return p.paint(ansiRed, s)
	default:
		return p.paint(ansiYellow, s)
	}
}

// Entries written by other versions may not decode; those are shown raw.
func (p printer) formatterEntry(raw json.RawMessage) {
	var e hooks.FormatterEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		fmt.Fprintln(p.w, string(raw))
		return
	}
	fmt.Fprintln(p.w, p.paint(ansiDim, e.Timestamp))
	for _, f := range e.FormattedFiles {
		tools := make([]string, 0, len(f.Results))
		for _, r := range f.Results {
			tools = append(tools, r.Tool+"="+p.status(r.Status))
		}
		if len(tools) == 0 {
			tools = append(tools, p.paint(ansiDim, "no tools"))
		}
		fmt.Fprintf(p.w, "  %s (%s) %s\n", f.File, f.FileType, strings.Join(tools, " "))
	}
}

func (p printer) lintEntry(raw json.RawMessage) {
	var e hooks.LintEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		fmt.Fprintln(p.w, string(raw))
		return
	}
	fmt.Fprintln(p.w, p.paint(ansiDim, e.Timestamp))
	for _, r := range e.Results {
		switch {
		case r.Error != "":
			fmt.Fprintf(p.w, "  %s %s %s\n", r.File, p.paint(ansiRed, "error"), r.Error)
		case r.HasIssues:
			fmt.Fprintf(p.w, "  %s %s\n", r.File, p.paint(ansiYellow, "issues"))
		default:
			fmt.Fprintf(p.w, "  %s %s\n", r.File, p.paint(ansiGreen, "clean"))
		}
	}
}
