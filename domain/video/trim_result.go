package video

// FailureKind classifies why a trim request failed
type FailureKind string

const (
	// FailureValidation means the request was rejected before any
	// external tool was invoked
	FailureValidation FailureKind = "validation"

	// FailureConfiguration means the trim script is not present at its
	// configured path
	FailureConfiguration FailureKind = "configuration"

	// FailureExecution means the trim script ran but did not succeed,
	// either by exit code or by failing to produce its output files
	FailureExecution FailureKind = "execution"

	// FailureTimedOut means the trim script exceeded the configured
	// invocation timeout and was killed
	FailureTimedOut FailureKind = "timed_out"
)

// TrimResult is the outcome of one trim request. It is a value, not an
// error: every failure mode surfaces here with a human-readable message,
// and where the external tool ran, its captured output.
type TrimResult struct {
	Success bool

	// Populated on success
	VideoPath string // trimmed video (container-remuxed copy when available)
	AudioPath string // extracted audio, the downloadable artifact
	// PlaybackAudioPath is a transcoded copy for in-browser playback.
	// Falls back to AudioPath when transcoding was skipped or failed.
	PlaybackAudioPath string

	// Populated on failure
	Kind     FailureKind
	ExitCode int

	// Message is always set
	Message string

	// Diagnostic carries the trim script's captured stdout/stderr for
	// operator troubleshooting. Empty when the script never ran.
	Diagnostic string
}

// Failure builds a failed TrimResult
func Failure(kind FailureKind, message string) *TrimResult {
	return &TrimResult{Kind: kind, Message: message}
}

// ToolRunResult captures a finished trim-script invocation
type ToolRunResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}
