package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/iikjl/gofore-hotvibes-sauna-evening/internal/config"
	"github.com/iikjl/gofore-hotvibes-sauna-evening/internal/hooks"
)

// runCLI executes the root command in dir with stdin and returns stdout.
func runCLI(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	chdir(t, dir)
	t.Setenv("HOOK_CONFIG", "")
	t.Setenv("HOOK_LOG_DIR", "")
	t.Setenv("HOOK_DISABLED", "")

	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), err
}

func TestInitCmd_WritesConfig(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "", "init")
	require.NoError(t, err)
	path := filepath.Join(dir, ".hooks", "config.yaml")
	assert.Contains(t, out, "wrote")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().LogDir, cfg.LogDir)

	_, err = runCLI(t, dir, "", "init")
	assert.Error(t, err, "refuses to overwrite")

	_, err = runCLI(t, dir, "", "init", "--force")
	assert.NoError(t, err)
}

func TestInstallCmd(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "", "install")
	require.NoError(t, err)
	assert.Contains(t, out, "registered ./.hooks/bin/multi-formatter")

	data, err := os.ReadFile(filepath.Join(dir, ".claude", "settings.json"))
	require.NoError(t, err)
	assert.Equal(t, config.WriteMatcher, gjson.GetBytes(data, "hooks.PostToolUse.0.matcher").String())

	out, err = runCLI(t, dir, "", "install")
	require.NoError(t, err)
	assert.Contains(t, out, "already registered")
}

func TestLogCmd_Empty(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, "", "log", "lint")
	require.NoError(t, err)
	assert.Contains(t, out, "no entries")
	assert.NoDirExists(t, filepath.Join(dir, "logs"))

	out, err = runCLI(t, dir, "", "log", "--json")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
	assert.NoDirExists(t, filepath.Join(dir, "logs"))
}

func TestLogCmd_UnknownKind(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "", "log", "coverage")
	assert.Error(t, err)
}

func TestFormatCmd_NonMutationIsSilent(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, `{"tool_name":"Read","tool_input":{"file_path":"a.go"}}`, "format")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoDirExists(t, filepath.Join(dir, "logs"))
}

func TestFormatCmd_MalformedInput(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, `{{{`, "format")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFormatThenLog(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script tools need a POSIX shell")
	}
	bin := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bin, "gofmt"), []byte("#!/bin/sh\nexit 0\n"), 0755))
	t.Setenv("PATH", bin)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0644))

	_, err := runCLI(t, dir, `{"tool_name":"Write","tool_input":{"file_path":"main.go"},"session_id":"s"}`, "format")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "logs", hooks.FormatterLogName))

	out, err := runCLI(t, dir, "", "log", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "main.go (go) gofmt=success")

	out, err = runCLI(t, dir, "", "log", "--json")
	require.NoError(t, err)
	assert.Equal(t, "main.go", gjson.Get(out, "0.formatted_files.0.file").String())
}

func TestLintCmd_Disabled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.py"), []byte("x = 1\n"), 0644))
	chdir(t, dir)
	t.Setenv("HOOK_DISABLED", "ruff-lint")

	root := NewRootCmd()
	root.SetArgs([]string{"lint"})
	root.SetIn(strings.NewReader(`{"tool_name":"Write","tool_input":{"file_path":"a.py"}}`))
	root.SetOut(&bytes.Buffer{})
	require.NoError(t, root.Execute())
	assert.NoDirExists(t, filepath.Join(dir, "logs"))
}

// chdir changes the working directory for the test and restores it on
// cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
