package video

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputSuffix is appended to the source base name to form the output
// filename prefix the trim script writes to.
const OutputSuffix = "_trimmed"

// TrimRequest represents a single request to trim a video to a time range.
// Times are in seconds from the start of the source.
type TrimRequest struct {
	SourcePath   string
	StartSeconds float64
	EndSeconds   float64
}

// NewTrimRequest creates a TrimRequest and validates the time range
func NewTrimRequest(sourcePath string, startSeconds, endSeconds float64) (*TrimRequest, error) {
	req := &TrimRequest{
		SourcePath:   sourcePath,
		StartSeconds: startSeconds,
		EndSeconds:   endSeconds,
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// Validate checks that the trim request is internally consistent.
// It does not touch the filesystem; source existence is the orchestrator's
// concern.
func (r *TrimRequest) Validate() error {
	if r.SourcePath == "" {
		return fmt.Errorf("source video path is required")
	}

	if r.StartSeconds < 0 {
		return fmt.Errorf("start time %.1fs must not be negative", r.StartSeconds)
	}

	if r.StartSeconds >= r.EndSeconds {
		return fmt.Errorf("start time %.1fs must be less than end time %.1fs", r.StartSeconds, r.EndSeconds)
	}

	return nil
}

// OutputPrefix returns the output filename prefix inside workDir, derived
// from the source file's base name with OutputSuffix appended.
func (r *TrimRequest) OutputPrefix(workDir string) string {
	base := filepath.Base(r.SourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(workDir, base+OutputSuffix)
}

// ExpectedVideoPath returns the path the trim script is expected to write
// the trimmed video to, given the output prefix.
func ExpectedVideoPath(prefix string) string {
	return prefix + ".mp4"
}

// ExpectedAudioPath returns the path the trim script is expected to write
// the extracted audio to, given the output prefix.
func ExpectedAudioPath(prefix string) string {
	return prefix + ".aac"
}
