package trim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cliptrim/domain/video"

	"github.com/google/uuid"
)

// DefaultToolTimeout bounds a single trim-script invocation. The script
// itself has no internal timeout, so a hung tool would otherwise block the
// session forever.
const DefaultToolTimeout = 30 * time.Minute

// DefaultPlaybackBitrate is the bitrate for the playback audio transcode
const DefaultPlaybackBitrate = "192k"

// JobRecord captures one finished trim invocation for the history store
type JobRecord struct {
	ID           string
	SourcePath   string
	StartSeconds float64
	EndSeconds   float64
	Success      bool
	Message      string
	VideoPath    string
	AudioPath    string
}

// Recorder persists trim job records. Recording is best-effort; the
// orchestrator logs and ignores recorder failures.
type Recorder interface {
	Record(ctx context.Context, rec JobRecord) error
}

// Service orchestrates a single trim request: validation, workspace
// preparation, external tool invocation, output verification, and
// best-effort playback conversion. Each request runs synchronously and
// owns its workspace; there is no shared mutable state between requests.
type Service struct {
	script     video.TrimScript
	converter  video.Converter
	files      video.FileChecker
	workspaces video.WorkspaceAllocator
	recorder   Recorder
	logger     *slog.Logger

	timeout         time.Duration
	playbackEnabled bool
	playbackBitrate string
}

// Option is a functional option for configuring Service
type Option func(*Service)

// WithTimeout sets the trim-script invocation timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// WithPlaybackConversion enables or disables the best-effort remux and
// audio transcode after a successful trim
func WithPlaybackConversion(enabled bool) Option {
	return func(s *Service) {
		s.playbackEnabled = enabled
	}
}

// WithPlaybackBitrate sets the bitrate for the playback audio transcode
func WithPlaybackBitrate(bitrate string) Option {
	return func(s *Service) {
		if bitrate != "" {
			s.playbackBitrate = bitrate
		}
	}
}

// WithRecorder sets the job history recorder
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// NewService creates a trim orchestrator
func NewService(
	script video.TrimScript,
	converter video.Converter,
	files video.FileChecker,
	workspaces video.WorkspaceAllocator,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		script:          script,
		converter:       converter,
		files:           files,
		workspaces:      workspaces,
		logger:          logger,
		timeout:         DefaultToolTimeout,
		playbackEnabled: true,
		playbackBitrate: DefaultPlaybackBitrate,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Trim runs one request through the full workflow. Every failure mode is
// reported in the returned result; nothing is raised across this boundary.
func (s *Service) Trim(ctx context.Context, req *video.TrimRequest) *video.TrimResult {
	result := s.trim(ctx, req)
	s.record(ctx, req, result)
	return result
}

func (s *Service) trim(ctx context.Context, req *video.TrimRequest) *video.TrimResult {
	// Validating
	if err := req.Validate(); err != nil {
		return video.Failure(video.FailureValidation, err.Error())
	}
	if !s.files.Exists(req.SourcePath) {
		return video.Failure(video.FailureValidation,
			fmt.Sprintf("input video file not found: %s", req.SourcePath))
	}

	// Preparing
	if !s.files.Exists(s.script.Path()) {
		return video.Failure(video.FailureConfiguration,
			fmt.Sprintf("trim script not found at: %s", s.script.Path()))
	}

	workspace, err := s.workspaces.NewWorkspace()
	if err != nil {
		return video.Failure(video.FailureConfiguration,
			fmt.Sprintf("could not create workspace: %v", err))
	}

	prefix := req.OutputPrefix(workspace)
	videoPath := video.ExpectedVideoPath(prefix)
	audioPath := video.ExpectedAudioPath(prefix)

	s.logger.Info("invoking trim script",
		"source", req.SourcePath,
		"start", video.FormatTimecode(req.StartSeconds),
		"end", video.FormatTimecode(req.EndSeconds),
		"workspace", workspace,
	)

	// Invoking
	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	run, err := s.script.Run(runCtx, req, prefix)
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return video.Failure(video.FailureTimedOut,
				fmt.Sprintf("trim script did not finish within %s and was killed", s.timeout))
		}
		return video.Failure(video.FailureExecution,
			fmt.Sprintf("could not invoke trim script: %v", err))
	}

	// Verifying
	diagnostic := fmt.Sprintf("STDOUT:\n%s\n\nSTDERR:\n%s", run.Stdout, run.Stderr)

	if run.ExitCode != 0 {
		s.logger.Error("trim script failed", "exit_code", run.ExitCode)
		return &video.TrimResult{
			Kind:       video.FailureExecution,
			ExitCode:   run.ExitCode,
			Message:    fmt.Sprintf("trim script failed with exit code %d", run.ExitCode),
			Diagnostic: diagnostic,
		}
	}

	// A zero exit code is not sufficient proof of success: the script can
	// exit 0 after a partial failure. Output file presence is authoritative.
	if !s.files.Exists(videoPath) || !s.files.Exists(audioPath) {
		s.logger.Error("trim script exited 0 but output files are missing",
			"video", videoPath, "audio", audioPath)
		return &video.TrimResult{
			Kind:       video.FailureExecution,
			Message:    "trim script reported success but did not create its output files",
			Diagnostic: diagnostic,
		}
	}

	result := &video.TrimResult{
		Success:           true,
		VideoPath:         videoPath,
		AudioPath:         audioPath,
		PlaybackAudioPath: audioPath,
		Message: fmt.Sprintf("Successfully trimmed video from %.1fs to %.1fs",
			req.StartSeconds, req.EndSeconds),
	}

	if s.playbackEnabled {
		s.convertForPlayback(ctx, prefix, result)
	}

	return result
}

// convertForPlayback opportunistically remuxes the trimmed video and
// transcodes the audio for in-browser playback. Both steps are
// best-effort: a failure here never turns a successful trim into a
// reported failure.
func (s *Service) convertForPlayback(ctx context.Context, prefix string, result *video.TrimResult) {
	remuxed := prefix + "_web.mp4"
	if err := s.converter.RemuxVideo(ctx, result.VideoPath, remuxed); err != nil || !s.files.Exists(remuxed) {
		s.logger.Warn("playback remux failed, keeping original video", "error", err)
	} else {
		result.VideoPath = remuxed
	}

	transcoded := prefix + ".mp3"
	if err := s.converter.TranscodeAudio(ctx, result.AudioPath, transcoded, s.playbackBitrate); err != nil || !s.files.Exists(transcoded) {
		s.logger.Warn("playback audio transcode failed, keeping original audio", "error", err)
	} else {
		result.PlaybackAudioPath = transcoded
	}
}

func (s *Service) record(ctx context.Context, req *video.TrimRequest, result *video.TrimResult) {
	if s.recorder == nil {
		return
	}

	rec := JobRecord{
		ID:           uuid.New().String(),
		SourcePath:   req.SourcePath,
		StartSeconds: req.StartSeconds,
		EndSeconds:   req.EndSeconds,
		Success:      result.Success,
		Message:      result.Message,
		VideoPath:    result.VideoPath,
		AudioPath:    result.AudioPath,
	}

	if err := s.recorder.Record(ctx, rec); err != nil {
		s.logger.Warn("could not record trim job", "error", err)
	}
}
