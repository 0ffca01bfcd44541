package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// WriteMatcher selects the file-mutating tools the hooks react to.
const WriteMatcher = "Write|Edit|MultiEdit"

// HookBinaries are the hook executables registered by InstallClaudeHooks.
var HookBinaries = []string{"multi-formatter", "ruff-lint"}

// InstallClaudeHooks merges PostToolUse registrations for HookBinaries into
// the Claude settings file at settingsPath, keeping every other key intact.
// Commands already registered are left alone. It returns the commands added.
func InstallClaudeHooks(settingsPath, binDir string) ([]string, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", settingsPath, err)
		}
		data = []byte("{}")
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s is not valid JSON", settingsPath)
	}

	registered := make(map[string]bool)
	gjson.GetBytes(data, "hooks.PostToolUse.#.hooks.#.command").ForEach(func(_, group gjson.Result) bool {
		for _, c := range group.Array() {
			registered[c.String()] = true
		}
		return true
	})

	var added []string
	var hooks []map[string]string
	for _, name := range HookBinaries {
		command := hookCommand(binDir, name)
		if registered[command] {
			continue
		}
		hooks = append(hooks, map[string]string{"type": "command", "command": command})
		added = append(added, command)
	}
	if len(hooks) == 0 {
		return nil, nil
	}

	group := map[string]any{"matcher": WriteMatcher, "hooks": hooks}
	if gjson.GetBytes(data, "hooks.PostToolUse").IsArray() {
		data, err = sjson.SetBytes(data, "hooks.PostToolUse.-1", group)
	} else {
		data, err = sjson.SetBytes(data, "hooks.PostToolUse", []any{group})
	}
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(settingsPath), 0755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(settingsPath, pretty.Pretty(data), 0644); err != nil {
		return nil, err
	}
	return added, nil
}

func hookCommand(binDir, name string) string {
	if !strings.HasSuffix(binDir, "/") {
		binDir += "/"
	}
	return binDir + name
}
