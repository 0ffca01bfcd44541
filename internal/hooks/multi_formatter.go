package hooks

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iikjl/gofore-hotvibes-sauna-evening/internal/config"
)

// Format statuses recorded per tool.
const (
	StatusSuccess      = "success"
	StatusFailed       = "failed"
	StatusNotInstalled = "not_installed"
)

// FormatResult is the outcome of one formatter invocation.
type FormatResult struct {
	Tool   string `json:"tool"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// FormattedFile groups the results for one file.
type FormattedFile struct {
	File      string         `json:"file"`
	FileType  string         `json:"file_type"`
	Timestamp string         `json:"timestamp"`
	Results   []FormatResult `json:"results"`
	ToolName  string         `json:"tool_name"`
	SessionID string         `json:"session_id"`
}

// FormatterEntry is one multi-formatter run in the log.
type FormatterEntry struct {
	Timestamp      string          `json:"timestamp"`
	RunID          string          `json:"run_id"`
	FormattedFiles []FormattedFile `json:"formatted_files"`
}

// MultiFormatter is a postToolUse hook that runs the formatters mapped to the
// written file's extension and records the outcome. Always exits 0.
func MultiFormatter(ctx context.Context, input HookInput, opts Options) (HookResult, int) {
	opts = opts.withDefaults()
	if !input.IsFileMutation() {
		return NoOp(), 0
	}

	classifier := NewClassifier(opts.Config.Languages)
	var files []FormattedFile
	for _, path := range input.FilePaths() {
		lang, ok := classifier.Classify(path)
		if !ok {
			continue
		}
		t, skip := opts.resolveTarget(path)
		if skip != "" {
			opts.Logger.Debug("skipping file", "file", path, "reason", skip)
			continue
		}

		results := make([]FormatResult, 0, len(lang.Steps))
		for _, step := range lang.Steps {
			if r, ok := runStep(ctx, opts, step, t.absPath); ok {
				results = append(results, r)
			}
		}
		files = append(files, FormattedFile{
			File:      t.path,
			FileType:  lang.Name,
			Timestamp: opts.timestamp(),
			Results:   results,
			ToolName:  input.ToolName,
			SessionID: input.SessionID(),
		})
	}

	if len(files) == 0 {
		return NoOp(), 0
	}

	log, err := opts.OpenLog(FormatterLogName)
	if err != nil {
		opts.Logger.Warn("open formatter log", "error", err)
		return NoOp(), 0
	}
	entry := FormatterEntry{
		Timestamp:      opts.timestamp(),
		RunID:          uuid.NewString(),
		FormattedFiles: files,
	}
	if err := log.Append(entry); err != nil {
		opts.Logger.Warn("write formatter log", "path", log.Path(), "error", err)
	}
	return NoOp(), 0
}

// runStep runs the first installed tool of step against file. The bool is
// false when nothing ran and the step is silent about missing tools.
func runStep(ctx context.Context, opts Options, step config.Step, file string) (FormatResult, bool) {
	for _, tool := range step.Tools {
		if _, err := opts.Runner.LookPath(tool.Command); err != nil {
			continue
		}

		res, err := opts.Runner.Run(ctx, opts.WorkDir, tool.Command, tool.Expand(file)...)
		switch {
		case err != nil:
			opts.Logger.Debug("formatter failed to run", "tool", tool.Command, "file", file, "error", err)
			return FormatResult{Tool: tool.Command, Status: StatusFailed, Error: err.Error()}, true
		case res.ExitCode != 0:
			opts.Logger.Debug("formatter exited non-zero", "tool", tool.Command, "file", file, "exit", res.ExitCode)
			return FormatResult{Tool: tool.Command, Status: StatusFailed, Error: failureText(res)}, true
		default:
			return FormatResult{Tool: tool.Command, Status: StatusSuccess}, true
		}
	}

	if step.Missing == "" {
		return FormatResult{}, false
	}
	return FormatResult{Tool: step.Missing, Status: StatusNotInstalled}, true
}

func failureText(res ExecResult) string {
	if s := strings.TrimSpace(res.Stderr); s != "" {
		return res.Stderr
	}
	if s := strings.TrimSpace(res.Stdout); s != "" {
		return res.Stdout
	}
	return fmt.Sprintf("exit status %d", res.ExitCode)
}
