package compiler

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/specialistvlad/tsbridge/internal/ctxlog"
)

// ProcessRunner abstracts child process execution so command lines can be
// asserted in tests.
type ProcessRunner interface {
	// Run executes name with args in dir and waits for it. A process that
	// ran and exited non-zero is not an error.
	Run(ctx context.Context, dir, name string, args ...string) (ProcessResult, error)
}

// ProcessResult is the captured outcome of a child process.
type ProcessResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// combined returns stdout followed by stderr.
func (r ProcessResult) combined() string {
	return string(r.Stdout) + string(r.Stderr)
}

// ExecRunner runs processes with os/exec.
type ExecRunner struct{}

// NewExecRunner returns the default process runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements ProcessRunner.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (ProcessResult, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting process.", "name", name, "args", args, "dir", dir)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := ProcessResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		return result, err
	}

	logger.Debug("Process finished.", "name", name, "exit_code", result.ExitCode)
	return result, nil
}

var _ ProcessRunner = (*ExecRunner)(nil)
