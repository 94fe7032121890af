package trimtool

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"cliptrim/domain/video"
)

// fakeRunner records invocations and replays canned results
type fakeRunner struct {
	lastName string
	lastArgs []string

	runResult *Execution
	runErr    error

	output    []byte
	outputErr error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (*Execution, error) {
	f.lastName = name
	f.lastArgs = args
	return f.runResult, f.runErr
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.lastName = name
	f.lastArgs = args
	return f.output, f.outputErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestScript_Run_ArgumentOrder(t *testing.T) {
	runner := &fakeRunner{runResult: &Execution{ExitCode: 0, Stdout: "ok"}}
	script := NewScript("/opt/trim-convert.sh", WithScriptRunner(runner))

	req := &video.TrimRequest{
		SourcePath:   "/videos/clip.mp4",
		StartSeconds: 5.5,
		EndSeconds:   125.25,
	}

	result, err := script.Run(context.Background(), req, "/tmp/ws/clip_trimmed")
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if result.ExitCode != 0 || result.Stdout != "ok" {
		t.Errorf("Run() result = %+v", result)
	}

	if runner.lastName != "bash" {
		t.Errorf("shell = %q, want bash", runner.lastName)
	}

	want := []string{
		"/opt/trim-convert.sh",
		"-s", "00:00:05.500",
		"-e", "00:02:05.250",
		"-o", "/tmp/ws/clip_trimmed",
		"/videos/clip.mp4",
	}
	if len(runner.lastArgs) != len(want) {
		t.Fatalf("args = %v, want %v", runner.lastArgs, want)
	}
	for i := range want {
		if runner.lastArgs[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, runner.lastArgs[i], want[i])
		}
	}
}

func TestScript_Run_NonzeroExitIsNotAnError(t *testing.T) {
	runner := &fakeRunner{runResult: &Execution{ExitCode: 3, Stderr: "boom"}}
	script := NewScript("", WithScriptRunner(runner))

	req := &video.TrimRequest{SourcePath: "/v.mp4", StartSeconds: 0, EndSeconds: 1}
	result, err := script.Run(context.Background(), req, "/tmp/p")
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if result.ExitCode != 3 || result.Stderr != "boom" {
		t.Errorf("Run() result = %+v", result)
	}
}

func TestScript_Run_CancelledContext(t *testing.T) {
	runner := &fakeRunner{runErr: fmt.Errorf("signal: killed")}
	script := NewScript("", WithScriptRunner(runner))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := &video.TrimRequest{SourcePath: "/v.mp4", StartSeconds: 0, EndSeconds: 1}
	_, err := script.Run(ctx, req, "/tmp/p")
	if err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestScript_DefaultPath(t *testing.T) {
	script := NewScript("")
	if script.Path() != DefaultScriptPath {
		t.Errorf("Path() = %q, want %q", script.Path(), DefaultScriptPath)
	}
}

func TestProber_Duration(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		output []byte
		err    error
		want   video.ProbeResult
	}{
		{
			name:   "valid duration",
			path:   "/videos/clip.mp4",
			output: []byte(`{"format":{"duration":"123.456","format_name":"mov,mp4"}}`),
			want:   video.ProbeResult{Seconds: 123.456, Known: true},
		},
		{
			name: "empty path",
			path: "",
			want: video.ProbeResult{},
		},
		{
			name: "ffprobe exits nonzero",
			path: "/videos/clip.mp4",
			err:  fmt.Errorf("exit status 1"),
			want: video.ProbeResult{},
		},
		{
			name:   "malformed json",
			path:   "/videos/clip.mp4",
			output: []byte(`not json at all`),
			want:   video.ProbeResult{},
		},
		{
			name:   "missing duration field",
			path:   "/videos/clip.mp4",
			output: []byte(`{"format":{"format_name":"mov,mp4"}}`),
			want:   video.ProbeResult{},
		},
		{
			name:   "non-numeric duration",
			path:   "/videos/clip.mp4",
			output: []byte(`{"format":{"duration":"N/A"}}`),
			want:   video.ProbeResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{output: tt.output, outputErr: tt.err}
			prober := NewProber(testLogger(), WithProberRunner(runner))

			got := prober.Duration(context.Background(), tt.path)
			if got != tt.want {
				t.Errorf("Duration() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConverter_RemuxVideo(t *testing.T) {
	runner := &fakeRunner{runResult: &Execution{ExitCode: 0}}
	conv := NewConverter(WithConverterRunner(runner))

	if err := conv.RemuxVideo(context.Background(), "/in.mp4", "/out.mp4"); err != nil {
		t.Fatalf("RemuxVideo() unexpected error: %v", err)
	}

	joined := ""
	for _, a := range runner.lastArgs {
		joined += a + " "
	}
	for _, want := range []string{"-c copy", "+faststart", "/in.mp4", "/out.mp4"} {
		if !containsStr(joined, want) {
			t.Errorf("remux args %q missing %q", joined, want)
		}
	}
}

func TestConverter_TranscodeAudio_FailureCarriesStderr(t *testing.T) {
	runner := &fakeRunner{runResult: &Execution{ExitCode: 1, Stderr: "unknown encoder"}}
	conv := NewConverter(WithConverterRunner(runner))

	err := conv.TranscodeAudio(context.Background(), "/in.aac", "/out.mp3", "192k")
	if err == nil {
		t.Fatal("TranscodeAudio() expected error")
	}
	if !containsStr(err.Error(), "unknown encoder") {
		t.Errorf("error = %v, want stderr included", err)
	}
}

func containsStr(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
