package trimtool

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Execution captures everything a finished command produced
type Execution struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// CommandRunner defines the interface for running external commands
// This allows mocking exec.Command in tests
type CommandRunner interface {
	// Run executes a command, capturing both output streams in full.
	// A nonzero exit code is reported in the Execution, not as an error.
	Run(ctx context.Context, name string, args ...string) (*Execution, error)

	// Output executes a command and returns its standard output
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecCommandRunner is the production implementation using os/exec
type ExecCommandRunner struct{}

// Run executes a command and captures its streams and exit code
func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) (*Execution, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	exe := &Execution{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exe.ExitCode = exitErr.ExitCode()
			return exe, nil
		}
		return nil, err
	}

	return exe, nil
}

// Output executes a command and returns its output
func (r *ExecCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}
