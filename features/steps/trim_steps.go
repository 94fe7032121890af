//go:build integration

package steps

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"cliptrim/application/trim"
	"cliptrim/domain/video"

	"github.com/cucumber/godog"
)

// scriptedTool simulates the external trim script
type scriptedTool struct {
	path          string
	exitCode      int
	skipOutputs   bool
	invoked       bool
	invokedStart  string
	invokedEnd    string
	invokedPrefix string
	files         *fakeFiles
}

func (s *scriptedTool) Path() string {
	return s.path
}

func (s *scriptedTool) Run(ctx context.Context, req *video.TrimRequest, prefix string) (*video.ToolRunResult, error) {
	s.invoked = true
	s.invokedStart = video.FormatTimecode(req.StartSeconds)
	s.invokedEnd = video.FormatTimecode(req.EndSeconds)
	s.invokedPrefix = prefix

	if s.exitCode == 0 && !s.skipOutputs {
		s.files.existing[video.ExpectedVideoPath(prefix)] = true
		s.files.existing[video.ExpectedAudioPath(prefix)] = true
	}

	return &video.ToolRunResult{
		ExitCode: s.exitCode,
		Stdout:   "scripted stdout",
		Stderr:   "scripted stderr",
	}, nil
}

// noopConverter satisfies video.Converter without touching anything
type noopConverter struct{}

func (noopConverter) RemuxVideo(ctx context.Context, inputPath, outputPath string) error {
	return fmt.Errorf("conversion disabled in scenario")
}

func (noopConverter) TranscodeAudio(ctx context.Context, inputPath, outputPath, bitrate string) error {
	return fmt.Errorf("conversion disabled in scenario")
}

// fakeFiles simulates file existence
type fakeFiles struct {
	existing map[string]bool
}

func (f *fakeFiles) Exists(path string) bool {
	return f.existing[path]
}

// fixedWorkspaces always allocates the same directory
type fixedWorkspaces struct{}

func (fixedWorkspaces) NewWorkspace() (string, error) {
	return "/work/scenario", nil
}

// trimScenario holds test state for trim scenarios
type trimScenario struct {
	sourcePath string
	script     *scriptedTool
	files      *fakeFiles
	result     *video.TrimResult
}

// SharedTrimScenario is reset before each scenario via Before hook
var SharedTrimScenario *trimScenario

func getTrimScenario() *trimScenario {
	return SharedTrimScenario
}

func InitializeTrimScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		files := &fakeFiles{existing: make(map[string]bool)}
		SharedTrimScenario = &trimScenario{
			files:  files,
			script: &scriptedTool{files: files},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedTrimScenario = nil
		return c, nil
	})

	ctx.Step(`^a source video at "([^"]*)"$`, aSourceVideoAt)
	ctx.Step(`^no source video exists at "([^"]*)"$`, noSourceVideoExistsAt)
	ctx.Step(`^the trim script is installed at "([^"]*)"$`, theTrimScriptIsInstalledAt)
	ctx.Step(`^no trim script is installed$`, noTrimScriptIsInstalled)
	ctx.Step(`^the trim script will exit with code (\d+)$`, theTrimScriptWillExitWithCode)
	ctx.Step(`^the trim script will not create its output files$`, theTrimScriptWillNotCreateOutputs)
	ctx.Step(`^I trim the video from ([\d.]+) to ([\d.]+) seconds$`, iTrimTheVideoFromTo)
	ctx.Step(`^the trim should succeed$`, theTrimShouldSucceed)
	ctx.Step(`^the trim should fail with kind "([^"]*)"$`, theTrimShouldFailWithKind)
	ctx.Step(`^the trim script should have been invoked with start "([^"]*)" and end "([^"]*)"$`, theTrimScriptShouldHaveBeenInvokedWith)
	ctx.Step(`^the trim script should not have been invoked$`, theTrimScriptShouldNotHaveBeenInvoked)
	ctx.Step(`^the output files should be named after "([^"]*)"$`, theOutputFilesShouldBeNamedAfter)
	ctx.Step(`^the failure diagnostic should include the script output$`, theFailureDiagnosticShouldIncludeScriptOutput)
}

func aSourceVideoAt(path string) error {
	s := getTrimScenario()
	s.sourcePath = path
	s.files.existing[path] = true
	return nil
}

func noSourceVideoExistsAt(path string) error {
	s := getTrimScenario()
	s.sourcePath = path
	s.files.existing[path] = false
	return nil
}

func theTrimScriptIsInstalledAt(path string) error {
	s := getTrimScenario()
	s.script.path = path
	s.files.existing[path] = true
	return nil
}

func noTrimScriptIsInstalled() error {
	s := getTrimScenario()
	s.script.path = "/opt/trim-convert.sh"
	s.files.existing[s.script.path] = false
	return nil
}

func theTrimScriptWillExitWithCode(code string) error {
	s := getTrimScenario()
	n, err := strconv.Atoi(code)
	if err != nil {
		return err
	}
	s.script.exitCode = n
	return nil
}

func theTrimScriptWillNotCreateOutputs() error {
	getTrimScenario().script.skipOutputs = true
	return nil
}

func iTrimTheVideoFromTo(start, end string) error {
	s := getTrimScenario()

	startSeconds, err := strconv.ParseFloat(start, 64)
	if err != nil {
		return err
	}
	endSeconds, err := strconv.ParseFloat(end, 64)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := trim.NewService(
		s.script,
		noopConverter{},
		s.files,
		fixedWorkspaces{},
		logger,
		trim.WithPlaybackConversion(false),
	)

	req := &video.TrimRequest{
		SourcePath:   s.sourcePath,
		StartSeconds: startSeconds,
		EndSeconds:   endSeconds,
	}
	s.result = service.Trim(context.Background(), req)
	return nil
}

func theTrimShouldSucceed() error {
	s := getTrimScenario()
	if !s.result.Success {
		return fmt.Errorf("expected success, got failure: %s", s.result.Message)
	}
	return nil
}

func theTrimShouldFailWithKind(kind string) error {
	s := getTrimScenario()
	if s.result.Success {
		return fmt.Errorf("expected a failure but the trim succeeded")
	}
	if string(s.result.Kind) != kind {
		return fmt.Errorf("expected failure kind %q, got %q (%s)", kind, s.result.Kind, s.result.Message)
	}
	return nil
}

func theTrimScriptShouldHaveBeenInvokedWith(start, end string) error {
	s := getTrimScenario()
	if !s.script.invoked {
		return fmt.Errorf("trim script was not invoked")
	}
	if s.script.invokedStart != start {
		return fmt.Errorf("expected start %q, got %q", start, s.script.invokedStart)
	}
	if s.script.invokedEnd != end {
		return fmt.Errorf("expected end %q, got %q", end, s.script.invokedEnd)
	}
	return nil
}

func theTrimScriptShouldNotHaveBeenInvoked() error {
	s := getTrimScenario()
	if s.script.invoked {
		return fmt.Errorf("trim script was invoked but should not have been")
	}
	return nil
}

func theOutputFilesShouldBeNamedAfter(prefix string) error {
	s := getTrimScenario()
	base := filepath.Base(s.script.invokedPrefix)
	if base != prefix {
		return fmt.Errorf("expected output prefix %q, got %q", prefix, base)
	}
	return nil
}

func theFailureDiagnosticShouldIncludeScriptOutput() error {
	s := getTrimScenario()
	if !strings.Contains(s.result.Diagnostic, "scripted stdout") ||
		!strings.Contains(s.result.Diagnostic, "scripted stderr") {
		return fmt.Errorf("diagnostic missing script output: %q", s.result.Diagnostic)
	}
	return nil
}
