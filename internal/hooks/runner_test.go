package hooks

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// installTool writes an executable shell script named name into binDir.
func installTool(t *testing.T, binDir, name, body string) {
	t.Helper()
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(binDir, name), []byte(script), 0755))
}

// fakePath replaces PATH with a fresh directory and returns it.
func fakePath(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script tools need a POSIX shell")
	}
	bin := t.TempDir()
	t.Setenv("PATH", bin)
	return bin
}

func TestExecRunner_Success(t *testing.T) {
	bin := fakePath(t)
	installTool(t, bin, "fmt-ok", `echo "formatted $1"`)

	res, err := ExecRunner{}.Run(context.Background(), t.TempDir(), "fmt-ok", "a.go")
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "formatted a.go\n", res.Stdout)
}

func TestExecRunner_NonZeroExitIsNotAnError(t *testing.T) {
	bin := fakePath(t)
	installTool(t, bin, "fmt-bad", `echo "cannot parse" >&2; exit 3`)

	res, err := ExecRunner{}.Run(context.Background(), "", "fmt-bad")
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "cannot parse\n", res.Stderr)
}

func TestExecRunner_MissingTool(t *testing.T) {
	fakePath(t)

	_, err := ExecRunner{}.LookPath("nope")
	assert.Error(t, err)

	_, err = ExecRunner{}.Run(context.Background(), "", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestExecRunner_Timeout(t *testing.T) {
	bin := fakePath(t)
	installTool(t, bin, "fmt-hang", `while :; do :; done`)

	start := time.Now()
	_, err := ExecRunner{Timeout: 200 * time.Millisecond}.Run(context.Background(), "", "fmt-hang")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, time.Since(start), 5*time.Second)
}

// sleepTool returns an absolute path to sleep before PATH is replaced.
func sleepTool(t *testing.T) string {
	t.Helper()
	p, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not available")
	}
	return p
}

func TestExecRunner_BackgroundChildHoldsPipe(t *testing.T) {
	sleep := sleepTool(t)
	bin := fakePath(t)
	installTool(t, bin, "fmt-daemon", "("+sleep+" 3) &\necho done\nexit 0")

	start := time.Now()
	res, err := ExecRunner{}.Run(context.Background(), "", "fmt-daemon")
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "done\n", res.Stdout)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestExecRunner_BackgroundChildKeepsNonZeroExit(t *testing.T) {
	sleep := sleepTool(t)
	bin := fakePath(t)
	installTool(t, bin, "fmt-daemon", "("+sleep+" 3) &\nexit 2")

	res, err := ExecRunner{}.Run(context.Background(), "", "fmt-daemon")
	require.NoError(t, err)
	assert.Equal(t, 2, res.ExitCode)
}

func TestMultiFormatter_BackgroundChildIsSuccess(t *testing.T) {
	sleep := sleepTool(t)
	bin := fakePath(t)
	installTool(t, bin, "gofmt", "("+sleep+" 3) &\nexit 0")

	dir := t.TempDir()
	touch(t, dir, "main.go")

	MultiFormatter(context.Background(), fileInput("Write", "main.go"), formatterOpts(dir, ExecRunner{}))

	assert.Equal(t, []FormatResult{{Tool: "gofmt", Status: StatusSuccess}},
		readFormatterLog(t, dir)[0].FormattedFiles[0].Results)
}

func TestExecRunner_RunsInDir(t *testing.T) {
	bin := fakePath(t)
	installTool(t, bin, "where", `pwd`)
	dir := t.TempDir()

	res, err := ExecRunner{}.Run(context.Background(), dir, "where")
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), filepath.Base(strings.TrimSpace(res.Stdout)))
}

// End to end through real processes: isort and black must run in that order.
func TestMultiFormatter_RealToolsInOrder(t *testing.T) {
	bin := fakePath(t)
	calls := filepath.Join(t.TempDir(), "calls")
	t.Setenv("CALLS", calls)
	installTool(t, bin, "isort", `echo isort >> "$CALLS"`)
	installTool(t, bin, "black", `echo black >> "$CALLS"`)

	dir := t.TempDir()
	touch(t, dir, "app.py")
	opts := formatterOpts(dir, ExecRunner{})

	MultiFormatter(context.Background(), fileInput("Write", "app.py"), opts)

	data, err := os.ReadFile(calls)
	require.NoError(t, err)
	assert.Equal(t, "isort\nblack\n", string(data))
	assert.Equal(t, []FormatResult{
		{Tool: "isort", Status: StatusSuccess},
		{Tool: "black", Status: StatusSuccess},
	}, readFormatterLog(t, dir)[0].FormattedFiles[0].Results)
}

func TestRuffLint_RealToolNotInstalled(t *testing.T) {
	fakePath(t)
	dir := t.TempDir()
	touch(t, dir, "app.py")

	_, code := RuffLint(context.Background(), fileInput("Write", "app.py"), formatterOpts(dir, ExecRunner{}))

	assert.Equal(t, 0, code)
	assert.Contains(t, string(readLintLog(t, dir)), `"error"`)
}
