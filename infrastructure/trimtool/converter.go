package trimtool

import (
	"context"
	"fmt"

	"cliptrim/domain/video"
)

// Converter implements video.Converter using ffmpeg
type Converter struct {
	ffmpegPath string
	runner     CommandRunner
}

// ConverterOption is a functional option for configuring Converter
type ConverterOption func(*Converter)

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) ConverterOption {
	return func(c *Converter) {
		c.ffmpegPath = path
	}
}

// WithConverterRunner sets a custom command runner (for testing)
func WithConverterRunner(runner CommandRunner) ConverterOption {
	return func(c *Converter) {
		c.runner = runner
	}
}

// NewConverter creates an ffmpeg-based converter
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{
		ffmpegPath: "ffmpeg",
		runner:     &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// RemuxVideo implements video.Converter. Stream copy only; no re-encoding.
func (c *Converter) RemuxVideo(ctx context.Context, inputPath, outputPath string) error {
	args := []string{
		"-i", inputPath,
		"-c", "copy",
		"-movflags", "+faststart",
		"-y",
		outputPath,
	}

	return c.run(ctx, "remux", args)
}

// TranscodeAudio implements video.Converter
func (c *Converter) TranscodeAudio(ctx context.Context, inputPath, outputPath, bitrate string) error {
	args := []string{
		"-i", inputPath,
		"-vn",
		"-acodec", "libmp3lame",
		"-ab", bitrate,
		"-y",
		outputPath,
	}

	return c.run(ctx, "audio transcode", args)
}

func (c *Converter) run(ctx context.Context, op string, args []string) error {
	exe, err := c.runner.Run(ctx, c.ffmpegPath, args...)
	if err != nil {
		return fmt.Errorf("ffmpeg %s failed: %w", op, err)
	}
	if exe.ExitCode != 0 {
		return fmt.Errorf("ffmpeg %s exited %d: %s", op, exe.ExitCode, exe.Stderr)
	}
	return nil
}

// VerifyInstalled checks that ffmpeg is available
func (c *Converter) VerifyInstalled(ctx context.Context) error {
	_, err := c.runner.Output(ctx, c.ffmpegPath, "-version")
	if err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}

// Ensure Converter implements video.Converter
var _ video.Converter = (*Converter)(nil)
