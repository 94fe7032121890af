package trimtool

import (
	"context"
	"fmt"

	"cliptrim/domain/video"
)

// DefaultScriptPath is where the trim script is expected unless configured
const DefaultScriptPath = "./trim-convert.sh"

// Script implements video.TrimScript by invoking the trim-convert shell
// script as a subprocess. The script writes <prefix>.mp4 and <prefix>.aac.
type Script struct {
	shellPath  string
	scriptPath string
	runner     CommandRunner
}

// ScriptOption is a functional option for configuring Script
type ScriptOption func(*Script)

// WithShellPath sets a custom shell executable
func WithShellPath(path string) ScriptOption {
	return func(s *Script) {
		s.shellPath = path
	}
}

// WithScriptRunner sets a custom command runner (for testing)
func WithScriptRunner(runner CommandRunner) ScriptOption {
	return func(s *Script) {
		s.runner = runner
	}
}

// NewScript creates a trim-script adapter. An empty scriptPath falls back
// to DefaultScriptPath.
func NewScript(scriptPath string, opts ...ScriptOption) *Script {
	if scriptPath == "" {
		scriptPath = DefaultScriptPath
	}

	s := &Script{
		shellPath:  "bash",
		scriptPath: scriptPath,
		runner:     &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Path implements video.TrimScript
func (s *Script) Path() string {
	return s.scriptPath
}

// Run implements video.TrimScript
func (s *Script) Run(ctx context.Context, req *video.TrimRequest, prefix string) (*video.ToolRunResult, error) {
	args := []string{
		s.scriptPath,
		"-s", video.FormatTimecode(req.StartSeconds),
		"-e", video.FormatTimecode(req.EndSeconds),
		"-o", prefix,
		req.SourcePath,
	}

	exe, err := s.runner.Run(ctx, s.shellPath, args...)

	// A context kill shows up as a plain exit error; report it as the
	// context's failure so callers can distinguish a timeout.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, fmt.Errorf("trim script invocation failed: %w", err)
	}

	return &video.ToolRunResult{
		ExitCode: exe.ExitCode,
		Stdout:   exe.Stdout,
		Stderr:   exe.Stderr,
	}, nil
}

// Ensure Script implements video.TrimScript
var _ video.TrimScript = (*Script)(nil)
