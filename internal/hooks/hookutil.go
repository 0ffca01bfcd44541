package hooks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// HookInput is the JSON payload piped to hooks via stdin.
type HookInput struct {
	ToolName  string          `json:"tool_name"`
	ToolInput json.RawMessage `json:"tool_input"`
	Session   json.RawMessage `json:"session_id,omitempty"`
}

// UnknownSession is recorded when the event carries no usable session_id.
const UnknownSession = "unknown"

// IsFileMutation reports whether the event comes from a file-writing tool.
func (h *HookInput) IsFileMutation() bool {
	switch h.ToolName {
	case "Write", "Edit", "MultiEdit":
		return true
	}
	return false
}

// FilePath extracts "file_path" from tool_input, falling back to "path"
// (Cursor-style Write payloads).
func (h *HookInput) FilePath() string {
	if len(h.ToolInput) == 0 {
		return ""
	}
	for _, key := range []string{"file_path", "path"} {
		if v := gjson.GetBytes(h.ToolInput, key); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

// FilePaths returns the files a mutation event touched.
func (h *HookInput) FilePaths() []string {
	if !h.IsFileMutation() {
		return nil
	}
	if p := h.FilePath(); p != "" {
		return []string{p}
	}
	return nil
}

// SessionID returns the session identifier, or UnknownSession when it is
// absent or not a string.
func (h *HookInput) SessionID() string {
	if len(h.Session) == 0 {
		return UnknownSession
	}
	v := gjson.ParseBytes(h.Session)
	if v.Type != gjson.String {
		return UnknownSession
	}
	return v.Str
}

// HookResult is the JSON output from a hook.
type HookResult struct {
	Decision string `json:"decision,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Message  string `json:"message,omitempty"`
}

// NoOp returns an empty result; nothing is written to stdout for it.
func NoOp() HookResult {
	return HookResult{}
}

// NoOpMsg returns a result carrying only an informational message.
func NoOpMsg(msg string) HookResult {
	return HookResult{Message: msg}
}

// ReadInput reads and parses HookInput from the given reader.
func ReadInput(r io.Reader) (HookInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return HookInput{}, fmt.Errorf("reading stdin: %w", err)
	}
	var input HookInput
	if err := json.Unmarshal(data, &input); err != nil {
		return HookInput{}, fmt.Errorf("parsing input: %w", err)
	}
	return input, nil
}

// IsHookDisabled returns true if name is listed in HOOK_DISABLED (comma-separated, trimmed).
func IsHookDisabled(name string) bool {
	v := os.Getenv("HOOK_DISABLED")
	if v == "" {
		return false
	}
	for _, s := range strings.Split(v, ",") {
		if strings.TrimSpace(s) == name {
			return true
		}
	}
	return false
}

// Execute reads one event from r, runs hookFn and writes a non-empty result
// to w. Decode errors and panics are swallowed; the returned code is what the
// process should exit with.
func Execute(r io.Reader, w io.Writer, hookFn func(HookInput) (HookResult, int)) (code int) {
	defer func() {
		if recover() != nil {
			code = 0
		}
	}()

	input, err := ReadInput(r)
	if err != nil {
		return 0
	}

	result, code := hookFn(input)
	if result != NoOp() {
		out, _ := json.Marshal(result)
		fmt.Fprintln(w, string(out))
	}
	return code
}

// Run is the standard entrypoint for a hook binary.
func Run(hookFn func(HookInput) (HookResult, int)) {
	os.Exit(Execute(os.Stdin, os.Stdout, hookFn))
}

// RunOrDisabled runs the hook unless its name is in HOOK_DISABLED; then it exits 0.
func RunOrDisabled(name string, hookFn func(HookInput) (HookResult, int)) {
	if IsHookDisabled(name) {
		os.Exit(0)
	}
	Run(hookFn)
}
