package trimtool

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"cliptrim/domain/video"
)

// Prober implements video.DurationProber using ffprobe
type Prober struct {
	ffprobePath string
	runner      CommandRunner
	logger      *slog.Logger
}

// ProberOption is a functional option for configuring Prober
type ProberOption func(*Prober)

// WithFFprobePath sets a custom ffprobe executable path
func WithFFprobePath(path string) ProberOption {
	return func(p *Prober) {
		p.ffprobePath = path
	}
}

// WithProberRunner sets a custom command runner (for testing)
func WithProberRunner(runner CommandRunner) ProberOption {
	return func(p *Prober) {
		p.runner = runner
	}
}

// NewProber creates an ffprobe-based duration prober
func NewProber(logger *slog.Logger, opts ...ProberOption) *Prober {
	p := &Prober{
		ffprobePath: "ffprobe",
		runner:      &ExecCommandRunner{},
		logger:      logger,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// probeOutput is the slice of ffprobe's JSON output we care about
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration implements video.DurationProber. Every failure mode maps to an
// unknown result with a warning log; callers treat unknown as "use a
// default full-range selection".
func (p *Prober) Duration(ctx context.Context, path string) video.ProbeResult {
	if path == "" {
		return video.ProbeResult{}
	}

	out, err := p.runner.Output(ctx, p.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	if err != nil {
		p.logger.Warn("ffprobe failed", "path", path, "error", err)
		return video.ProbeResult{}
	}

	var parsed probeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		p.logger.Warn("could not parse ffprobe output", "path", path, "error", err)
		return video.ProbeResult{}
	}

	if parsed.Format.Duration == "" {
		p.logger.Warn("ffprobe output has no duration field", "path", path)
		return video.ProbeResult{}
	}

	seconds, err := strconv.ParseFloat(parsed.Format.Duration, 64)
	if err != nil {
		p.logger.Warn("malformed duration in ffprobe output",
			"path", path, "duration", parsed.Format.Duration)
		return video.ProbeResult{}
	}

	return video.ProbeResult{Seconds: seconds, Known: true}
}

// Ensure Prober implements video.DurationProber
var _ video.DurationProber = (*Prober)(nil)
