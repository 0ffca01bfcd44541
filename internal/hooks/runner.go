package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ExecResult is the captured outcome of one external command.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner locates and runs external tools.
// A non-zero exit is reported in ExecResult.ExitCode, not as an error. Errors
// are reserved for commands that could not start or were cut off.
type Runner interface {
	LookPath(name string) (string, error)
	Run(ctx context.Context, dir, name string, args ...string) (ExecResult, error)
}

// ExecRunner runs tools with os/exec. A zero Timeout waits for the tool
// however long it takes.
type ExecRunner struct {
	Timeout time.Duration
}

func (r ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (r ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (ExecResult, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := ExecResult{ExitCode: -1, Stdout: stdout.String(), Stderr: stderr.String()}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	if err == nil {
		return res, nil
	}

	if ctx.Err() == context.DeadlineExceeded {
		return res, fmt.Errorf("%s timed out after %s", name, r.Timeout)
	}
	// The tool exited on its own but a child it left behind still holds
	// stdout or stderr. The exit status is what counts.
	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil {
		return res, nil
	}
	if ctx.Err() != nil {
		return res, fmt.Errorf("%s: %w", name, ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return res, nil
	}
	return res, fmt.Errorf("run %s: %w", name, err)
}
