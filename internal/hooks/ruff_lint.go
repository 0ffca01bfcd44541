package hooks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// LintResult records one file's fix and check passes. When the linter could
// not be invoked only Error is set and the pass fields are left out of the JSON.
type LintResult struct {
	File      string
	Timestamp string
	Fixed     bool
	HasIssues bool
	Output    string
	Error     string
	ToolName  string
	SessionID string
}

func (r LintResult) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(struct {
			File      string `json:"file"`
			Timestamp string `json:"timestamp"`
			Error     string `json:"error"`
			ToolName  string `json:"tool_name"`
			SessionID string `json:"session_id"`
		}{r.File, r.Timestamp, r.Error, r.ToolName, r.SessionID})
	}
	return json.Marshal(struct {
		File      string `json:"file"`
		Timestamp string `json:"timestamp"`
		Fixed     bool   `json:"fixed"`
		HasIssues bool   `json:"has_issues"`
		Output    string `json:"output"`
		ToolName  string `json:"tool_name"`
		SessionID string `json:"session_id"`
	}{r.File, r.Timestamp, r.Fixed, r.HasIssues, r.Output, r.ToolName, r.SessionID})
}

func (r *LintResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		File      string `json:"file"`
		Timestamp string `json:"timestamp"`
		Fixed     bool   `json:"fixed"`
		HasIssues bool   `json:"has_issues"`
		Output    string `json:"output"`
		Error     string `json:"error"`
		ToolName  string `json:"tool_name"`
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = LintResult(raw)
	return nil
}

// LintEntry is one ruff-lint run in the log.
type LintEntry struct {
	Timestamp string       `json:"timestamp"`
	RunID     string       `json:"run_id"`
	Results   []LintResult `json:"results"`
}

// RuffLint is a postToolUse hook that runs `ruff check --fix` and then
// `ruff check` on written Python files and records the outcome.
// Always exits 0; remaining issues are reported as a message.
func RuffLint(ctx context.Context, input HookInput, opts Options) (HookResult, int) {
	opts = opts.withDefaults()
	if !input.IsFileMutation() {
		return NoOp(), 0
	}

	var paths []string
	for _, p := range input.FilePaths() {
		if hasLintExt(p, opts.Config.Lint.Extensions) {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return NoOp(), 0
	}

	command := opts.Config.Lint.Command
	if command == "" {
		command = "ruff"
	}

	var results []LintResult
	for _, path := range paths {
		t, skip := opts.resolveTarget(path)
		if skip != "" {
			opts.Logger.Debug("skipping file", "file", path, "reason", skip)
			continue
		}
		results = append(results, lintFile(ctx, opts, command, t, input))
	}
	if len(results) == 0 {
		return NoOp(), 0
	}

	log, err := opts.OpenLog(LintLogName)
	if err != nil {
		opts.Logger.Warn("open lint log", "error", err)
		return NoOp(), 0
	}
	entry := LintEntry{
		Timestamp: opts.timestamp(),
		RunID:     uuid.NewString(),
		Results:   results,
	}
	if err := log.Append(entry); err != nil {
		opts.Logger.Warn("write lint log", "path", log.Path(), "error", err)
	}

	issues := 0
	for _, r := range results {
		if r.HasIssues {
			issues++
		}
	}
	if issues > 0 {
		return NoOpMsg(fmt.Sprintf("%s found issues in %d file(s)", command, issues)), 0
	}
	return NoOp(), 0
}

func lintFile(ctx context.Context, opts Options, command string, t target, input HookInput) LintResult {
	result := LintResult{
		File:      t.path,
		Timestamp: opts.timestamp(),
		ToolName:  input.ToolName,
		SessionID: input.SessionID(),
	}

	fix, err := opts.Runner.Run(ctx, opts.WorkDir, command, "check", "--fix", t.absPath)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	check, err := opts.Runner.Run(ctx, opts.WorkDir, command, "check", t.absPath)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Fixed = fix.ExitCode == 0
	result.HasIssues = check.ExitCode != 0
	result.Output = check.Stdout + check.Stderr
	return result
}

func hasLintExt(path string, exts []string) bool {
	if len(exts) == 0 {
		exts = []string{".py"}
	}
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
