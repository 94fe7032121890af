package trim

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cliptrim/domain/video"
)

// fakeScript simulates the external trim script. It writes the expected
// output files according to its configuration.
type fakeScript struct {
	path        string
	exitCode    int
	stdout      string
	stderr      string
	createVideo bool
	createAudio bool
	blockOnCtx  bool

	invoked     bool
	hadDeadline bool
}

func (f *fakeScript) Path() string { return f.path }

func (f *fakeScript) Run(ctx context.Context, req *video.TrimRequest, prefix string) (*video.ToolRunResult, error) {
	f.invoked = true
	_, f.hadDeadline = ctx.Deadline()

	if f.blockOnCtx {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	if f.createVideo {
		if err := os.WriteFile(video.ExpectedVideoPath(prefix), []byte("video"), 0644); err != nil {
			return nil, err
		}
	}
	if f.createAudio {
		if err := os.WriteFile(video.ExpectedAudioPath(prefix), []byte("audio"), 0644); err != nil {
			return nil, err
		}
	}

	return &video.ToolRunResult{ExitCode: f.exitCode, Stdout: f.stdout, Stderr: f.stderr}, nil
}

// fakeConverter simulates ffmpeg remux/transcode by copying bytes
type fakeConverter struct {
	failRemux     bool
	failTranscode bool
}

func (f *fakeConverter) RemuxVideo(ctx context.Context, in, out string) error {
	if f.failRemux {
		return fmt.Errorf("remux exploded")
	}
	return copyFile(in, out)
}

func (f *fakeConverter) TranscodeAudio(ctx context.Context, in, out, bitrate string) error {
	if f.failTranscode {
		return fmt.Errorf("transcode exploded")
	}
	return copyFile(in, out)
}

func copyFile(in, out string) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	return os.WriteFile(out, data, 0644)
}

type osChecker struct{}

func (osChecker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

type fakeWorkspaces struct {
	root      string
	allocated int
}

func (f *fakeWorkspaces) NewWorkspace() (string, error) {
	f.allocated++
	dir := filepath.Join(f.root, fmt.Sprintf("ws%d", f.allocated))
	return dir, os.MkdirAll(dir, 0755)
}

type fakeRecorder struct {
	records []JobRecord
}

func (f *fakeRecorder) Record(ctx context.Context, rec JobRecord) error {
	f.records = append(f.records, rec)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeSource(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "recording.mp4")
	if err := os.WriteFile(src, []byte("source"), 0644); err != nil {
		t.Fatal(err)
	}
	return src
}

func writeScript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trim-convert.sh")
	if err := os.WriteFile(path, []byte("#!/bin/bash\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestService(t *testing.T, script *fakeScript, conv *fakeConverter, opts ...Option) (*Service, *fakeWorkspaces) {
	t.Helper()
	ws := &fakeWorkspaces{root: t.TempDir()}
	svc := NewService(script, conv, osChecker{}, ws, testLogger(), opts...)
	return svc, ws
}

func TestService_Trim_Success(t *testing.T) {
	src := writeSource(t)
	script := &fakeScript{path: writeScript(t), createVideo: true, createAudio: true}
	svc, _ := newTestService(t, script, &fakeConverter{})

	req := &video.TrimRequest{SourcePath: src, StartSeconds: 0, EndSeconds: 100}
	result := svc.Trim(context.Background(), req)

	if !result.Success {
		t.Fatalf("Trim() failed: %s", result.Message)
	}
	if !strings.Contains(result.Message, "0.0s to 100.0s") {
		t.Errorf("Trim() message = %q, want it to echo the requested range", result.Message)
	}
	for _, p := range []string{result.VideoPath, result.AudioPath, result.PlaybackAudioPath} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected artifact %s to exist: %v", p, err)
		}
	}
	if !strings.HasSuffix(result.VideoPath, "_web.mp4") {
		t.Errorf("VideoPath = %q, want the remuxed playback copy", result.VideoPath)
	}
	if !strings.HasSuffix(result.PlaybackAudioPath, ".mp3") {
		t.Errorf("PlaybackAudioPath = %q, want the transcoded copy", result.PlaybackAudioPath)
	}
	if !strings.HasSuffix(result.AudioPath, ".aac") {
		t.Errorf("AudioPath = %q, want the original extraction", result.AudioPath)
	}
}

func TestService_Trim_InvalidRangeNeverInvokesScript(t *testing.T) {
	src := writeSource(t)
	script := &fakeScript{path: writeScript(t), createVideo: true, createAudio: true}
	svc, ws := newTestService(t, script, &fakeConverter{})

	tests := []struct {
		name       string
		start, end float64
	}{
		{"start equals end", 10, 10},
		{"start after end", 100, 5},
		{"negative start", -1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &video.TrimRequest{SourcePath: src, StartSeconds: tt.start, EndSeconds: tt.end}
			result := svc.Trim(context.Background(), req)

			if result.Success {
				t.Fatal("Trim() succeeded for invalid range")
			}
			if result.Kind != video.FailureValidation {
				t.Errorf("Kind = %q, want %q", result.Kind, video.FailureValidation)
			}
			if script.invoked {
				t.Error("trim script was invoked for an invalid request")
			}
		})
	}

	if ws.allocated != 0 {
		t.Errorf("allocated %d workspaces for rejected requests, want 0", ws.allocated)
	}
}

func TestService_Trim_MissingSource(t *testing.T) {
	script := &fakeScript{path: writeScript(t)}
	svc, ws := newTestService(t, script, &fakeConverter{})

	req := &video.TrimRequest{SourcePath: "/nope/missing.mp4", StartSeconds: 0, EndSeconds: 10}
	result := svc.Trim(context.Background(), req)

	if result.Success {
		t.Fatal("Trim() succeeded with a missing source")
	}
	if result.Kind != video.FailureValidation {
		t.Errorf("Kind = %q, want %q", result.Kind, video.FailureValidation)
	}
	if !strings.Contains(result.Message, "not found") {
		t.Errorf("message = %q, want it to cite file not found", result.Message)
	}
	if script.invoked {
		t.Error("trim script was invoked for a missing source")
	}
	if ws.allocated != 0 {
		t.Errorf("allocated %d workspaces, want 0", ws.allocated)
	}
}

func TestService_Trim_MissingScriptIsConfigurationFailure(t *testing.T) {
	src := writeSource(t)
	script := &fakeScript{path: "/nope/trim-convert.sh"}
	svc, _ := newTestService(t, script, &fakeConverter{})

	result := svc.Trim(context.Background(), &video.TrimRequest{SourcePath: src, StartSeconds: 0, EndSeconds: 10})

	if result.Kind != video.FailureConfiguration {
		t.Errorf("Kind = %q, want %q", result.Kind, video.FailureConfiguration)
	}
	if !strings.Contains(result.Message, "/nope/trim-convert.sh") {
		t.Errorf("message = %q, want it to name the expected script path", result.Message)
	}
}

func TestService_Trim_NonzeroExit(t *testing.T) {
	src := writeSource(t)
	script := &fakeScript{
		path:     writeScript(t),
		exitCode: 2,
		stdout:   "processing...",
		stderr:   "codec not supported",
	}
	svc, _ := newTestService(t, script, &fakeConverter{})

	result := svc.Trim(context.Background(), &video.TrimRequest{SourcePath: src, StartSeconds: 0, EndSeconds: 10})

	if result.Success {
		t.Fatal("Trim() succeeded despite nonzero exit")
	}
	if result.Kind != video.FailureExecution {
		t.Errorf("Kind = %q, want %q", result.Kind, video.FailureExecution)
	}
	if result.ExitCode != 2 {
		t.Errorf("ExitCode = %d, want 2", result.ExitCode)
	}
	if !strings.Contains(result.Diagnostic, "codec not supported") || !strings.Contains(result.Diagnostic, "processing...") {
		t.Errorf("Diagnostic = %q, want both captured streams verbatim", result.Diagnostic)
	}
}

func TestService_Trim_ZeroExitWithMissingOutputIsFailure(t *testing.T) {
	src := writeSource(t)
	// Exit 0 but only the video appears; the audio extraction silently failed
	script := &fakeScript{path: writeScript(t), createVideo: true, createAudio: false}
	svc, _ := newTestService(t, script, &fakeConverter{})

	result := svc.Trim(context.Background(), &video.TrimRequest{SourcePath: src, StartSeconds: 0, EndSeconds: 10})

	if result.Success {
		t.Fatal("Trim() trusted exit code 0 over missing output files")
	}
	if result.Kind != video.FailureExecution {
		t.Errorf("Kind = %q, want %q", result.Kind, video.FailureExecution)
	}
	if !strings.Contains(result.Message, "did not create its output files") {
		t.Errorf("message = %q", result.Message)
	}
}

func TestService_Trim_RemuxFailureStillSuccess(t *testing.T) {
	src := writeSource(t)
	script := &fakeScript{path: writeScript(t), createVideo: true, createAudio: true}
	svc, _ := newTestService(t, script, &fakeConverter{failRemux: true})

	result := svc.Trim(context.Background(), &video.TrimRequest{SourcePath: src, StartSeconds: 0, EndSeconds: 10})

	if !result.Success {
		t.Fatalf("Trim() reported failure after a secondary remux failure: %s", result.Message)
	}
	if !strings.HasSuffix(result.VideoPath, "_trimmed.mp4") {
		t.Errorf("VideoPath = %q, want fallback to the pre-remux artifact", result.VideoPath)
	}
	if !strings.HasSuffix(result.PlaybackAudioPath, ".mp3") {
		t.Errorf("PlaybackAudioPath = %q, want transcode to still apply", result.PlaybackAudioPath)
	}
}

func TestService_Trim_TranscodeFailureFallsBackToOriginalAudio(t *testing.T) {
	src := writeSource(t)
	script := &fakeScript{path: writeScript(t), createVideo: true, createAudio: true}
	svc, _ := newTestService(t, script, &fakeConverter{failTranscode: true})

	result := svc.Trim(context.Background(), &video.TrimRequest{SourcePath: src, StartSeconds: 0, EndSeconds: 10})

	if !result.Success {
		t.Fatalf("Trim() reported failure after a secondary transcode failure: %s", result.Message)
	}
	if result.PlaybackAudioPath != result.AudioPath {
		t.Errorf("PlaybackAudioPath = %q, want fallback to %q", result.PlaybackAudioPath, result.AudioPath)
	}
}

func TestService_Trim_PlaybackConversionDisabled(t *testing.T) {
	src := writeSource(t)
	script := &fakeScript{path: writeScript(t), createVideo: true, createAudio: true}
	svc, _ := newTestService(t, script, &fakeConverter{}, WithPlaybackConversion(false))

	result := svc.Trim(context.Background(), &video.TrimRequest{SourcePath: src, StartSeconds: 0, EndSeconds: 10})

	if !result.Success {
		t.Fatalf("Trim() failed: %s", result.Message)
	}
	if !strings.HasSuffix(result.VideoPath, "_trimmed.mp4") {
		t.Errorf("VideoPath = %q, want the un-remuxed artifact", result.VideoPath)
	}
	if result.PlaybackAudioPath != result.AudioPath {
		t.Errorf("PlaybackAudioPath = %q, want the original audio", result.PlaybackAudioPath)
	}
}

func TestService_Trim_Timeout(t *testing.T) {
	src := writeSource(t)
	script := &fakeScript{path: writeScript(t), blockOnCtx: true}
	svc, _ := newTestService(t, script, &fakeConverter{}, WithTimeout(20*time.Millisecond))

	result := svc.Trim(context.Background(), &video.TrimRequest{SourcePath: src, StartSeconds: 0, EndSeconds: 10})

	if result.Success {
		t.Fatal("Trim() succeeded despite a hung script")
	}
	if result.Kind != video.FailureTimedOut {
		t.Errorf("Kind = %q, want %q", result.Kind, video.FailureTimedOut)
	}
}

func TestService_Trim_DefaultTimeoutSetsDeadline(t *testing.T) {
	src := writeSource(t)
	script := &fakeScript{path: writeScript(t), createVideo: true, createAudio: true}
	svc, _ := newTestService(t, script, &fakeConverter{})

	result := svc.Trim(context.Background(), &video.TrimRequest{SourcePath: src, StartSeconds: 0, EndSeconds: 10})

	if !result.Success {
		t.Fatalf("Trim() failed: %s", result.Message)
	}
	if !script.hadDeadline {
		t.Error("script ran without a deadline, want the default timeout to apply")
	}
}

func TestService_Trim_ZeroTimeoutDisablesDeadline(t *testing.T) {
	src := writeSource(t)
	script := &fakeScript{path: writeScript(t), createVideo: true, createAudio: true}
	svc, _ := newTestService(t, script, &fakeConverter{}, WithTimeout(0))

	result := svc.Trim(context.Background(), &video.TrimRequest{SourcePath: src, StartSeconds: 0, EndSeconds: 10})

	if !result.Success {
		t.Fatalf("Trim() failed: %s", result.Message)
	}
	if script.hadDeadline {
		t.Error("script ran under a deadline, want timeout 0 to disable it")
	}
}

func TestService_Trim_RecordsHistory(t *testing.T) {
	src := writeSource(t)
	script := &fakeScript{path: writeScript(t), createVideo: true, createAudio: true}
	recorder := &fakeRecorder{}
	svc, _ := newTestService(t, script, &fakeConverter{}, WithRecorder(recorder))

	svc.Trim(context.Background(), &video.TrimRequest{SourcePath: src, StartSeconds: 2, EndSeconds: 8})
	svc.Trim(context.Background(), &video.TrimRequest{SourcePath: src, StartSeconds: 8, EndSeconds: 2})

	if len(recorder.records) != 2 {
		t.Fatalf("recorded %d jobs, want 2", len(recorder.records))
	}
	if !recorder.records[0].Success {
		t.Error("first record should be a success")
	}
	if recorder.records[1].Success {
		t.Error("second record should be a failure")
	}
	if recorder.records[0].ID == "" || recorder.records[0].ID == recorder.records[1].ID {
		t.Error("records should carry distinct non-empty IDs")
	}
}
