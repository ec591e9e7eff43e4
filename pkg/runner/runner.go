// Package runner executes the external analysis tools and checks that they
// are installed.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
)

// Result is the captured outcome of one invocation. A non-zero ExitCode is
// not an error: linters exit non-zero when they report findings.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Combined returns stdout followed by stderr.
func (r Result) Combined() string {
	return r.Stdout + r.Stderr
}

// Invoker runs a command to completion and captures its output.
type Invoker interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecInvoker runs commands as subprocesses in Dir (the current directory
// when empty).
type ExecInvoker struct {
	Dir string
}

// Run executes name with args. The returned error is non-nil only when the
// command could not be started or was cancelled; a command that ran and
// exited non-zero is reported through Result.ExitCode.
func (e ExecInvoker) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running command", "cmd", cmd.String(), "dir", e.Dir)
	err := cmd.Run()

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("%s: %w", name, ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return res, fmt.Errorf("failed to run %s: %w", name, err)
		}
		res.ExitCode = exitErr.ExitCode()
	}

	slog.Debug("command output",
		"cmd", name,
		"exit_code", res.ExitCode,
		"stdout_bytes", len(res.Stdout),
		"stderr_bytes", len(res.Stderr))
	return res, nil
}
