package video

import "context"

// ProbeResult is a source file's duration as reported by the media probe.
// Known is false when the duration could not be determined; callers must
// treat that as "proceed with a default full-range selection", not as an
// error.
type ProbeResult struct {
	Seconds float64
	Known   bool
}

// DurationProber inspects a media file for its duration.
// Implementations never fail: any probe error maps to an unknown result.
type DurationProber interface {
	Duration(ctx context.Context, path string) ProbeResult
}

// TrimScript defines the interface to the external trimming tool.
// This is a port that can be implemented by different infrastructure adapters.
type TrimScript interface {
	// Run invokes the tool against req, writing outputs under prefix.
	// A nonzero exit code is reported in the result, not as an error;
	// the error return is for invocation problems (tool unrunnable,
	// context cancelled).
	Run(ctx context.Context, req *TrimRequest, prefix string) (*ToolRunResult, error)

	// Path returns the configured script path, for diagnostics
	Path() string
}

// Converter performs best-effort post-processing on trim artifacts
type Converter interface {
	// RemuxVideo rewrites the container for broader playback
	// compatibility without re-encoding any streams
	RemuxVideo(ctx context.Context, inputPath, outputPath string) error

	// TranscodeAudio converts audio to a widely supported codec at the
	// given bitrate
	TranscodeAudio(ctx context.Context, inputPath, outputPath, bitrate string) error
}

// FileChecker defines the interface for checking file existence
// This is used both to validate sources and to verify tool outputs
type FileChecker interface {
	// Exists returns true if the file exists
	Exists(path string) bool
}

// FrameGrabber extracts a still image from a video at a point in time,
// used by the selection UI to preview trim boundaries
type FrameGrabber interface {
	// GrabFrame returns a JPEG-encoded frame at the given offset
	GrabFrame(ctx context.Context, videoPath string, atSeconds float64) ([]byte, error)
}

// WorkspaceAllocator creates per-operation scratch directories.
// Workspaces are caller-owned; nothing in this package deletes them.
type WorkspaceAllocator interface {
	// NewWorkspace returns the path of a fresh, exclusively-owned
	// directory for one operation's derived artifacts
	NewWorkspace() (string, error)
}
