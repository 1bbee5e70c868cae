package profiler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// Result is the outcome of a child process that was started successfully.
type Result struct {
	// Stderr is everything the child wrote to standard error.
	Stderr []byte
	// Stdout is everything the child wrote to standard output.
	Stdout []byte
	// ExitCode is the child's exit status.
	ExitCode int
}

// Executor runs a command to completion.
//
// Execute returns an error only when the command could not be started or
// waited on. A command that runs and exits non-zero yields a [Result] with
// the exit code and a nil error.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecExecutor is an [Executor] backed by [os/exec]. The child is started
// directly, never through a shell.
type ExecExecutor struct {
	// Stdout, if set, also receives the child's standard output as it is
	// written. The output is captured in [Result] either way.
	Stdout io.Writer
}

// Execute implements [Executor].
func (e ExecExecutor) Execute(ctx context.Context, name string, args ...string) (Result, error) {
	var stdout, stderr bytes.Buffer

	//nolint:gosec // Profiler and module names are user-provided CLI arguments.
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	if e.Stdout != nil {
		cmd.Stdout = io.MultiWriter(&stdout, e.Stdout)
	}

	cmd.Stderr = &stderr

	err := cmd.Run()

	res := Result{Stderr: stderr.Bytes(), Stdout: stdout.Bytes()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()

		return res, nil
	}

	if err != nil {
		return res, err
	}

	return res, nil
}
