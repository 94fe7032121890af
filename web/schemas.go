package web

import (
	"time"

	"cliptrim/domain/remote"
	"cliptrim/domain/video"
	"cliptrim/infrastructure/history"
)

// ErrorResponse is the uniform error body
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

// ProbeRequest asks for the duration of a local media file
type ProbeRequest struct {
	Path string `json:"path"`
}

// ProbeResponse carries the probe outcome. When Known is false the UI
// falls back to a full-range selection with free-form time entry.
type ProbeResponse struct {
	Known           bool    `json:"known"`
	DurationSeconds float64 `json:"duration_seconds"`
	Display         string  `json:"display"`
	Timecode        string  `json:"timecode"`
}

// TrimRequest names a source and the selection to keep
type TrimRequest struct {
	SourcePath   string  `json:"source_path"`
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
}

// TrimResponse reports the trim outcome, success or not
type TrimResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	Kind              string `json:"kind,omitempty"`
	ExitCode          int    `json:"exit_code,omitempty"`
	Diagnostic        string `json:"diagnostic,omitempty"`
	VideoPath         string `json:"video_path,omitempty"`
	AudioPath         string `json:"audio_path,omitempty"`
	PlaybackAudioPath string `json:"playback_audio_path,omitempty"`
}

// TrimResultToResponse maps a domain result to its wire form
func TrimResultToResponse(r *video.TrimResult) TrimResponse {
	return TrimResponse{
		Success:           r.Success,
		Message:           r.Message,
		Kind:              string(r.Kind),
		ExitCode:          r.ExitCode,
		Diagnostic:        r.Diagnostic,
		VideoPath:         r.VideoPath,
		AudioPath:         r.AudioPath,
		PlaybackAudioPath: r.PlaybackAudioPath,
	}
}

// FetchRequest names a local path, share link, or resource ID
type FetchRequest struct {
	Locator string `json:"locator"`
}

// FetchResponse reports where the resource landed locally
type FetchResponse struct {
	LocalPath string `json:"local_path"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	Remote    bool   `json:"remote"`
}

// UploadRequest asks for a local file to be sent to remote storage
type UploadRequest struct {
	Path   string `json:"path"`
	Folder string `json:"folder,omitempty"`
}

// UploadResponse reports the uploaded file's remote identity
type UploadResponse struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
	ViewLink string `json:"view_link"`
	Size     int64  `json:"size"`
}

// UploadResultToResponse maps an upload result to its wire form
func UploadResultToResponse(r *remote.UploadResult) UploadResponse {
	return UploadResponse{
		FileID:   r.FileID,
		FileName: r.FileName,
		ViewLink: r.ViewLink,
		Size:     r.Size,
	}
}

// JobResponse is one history entry
type JobResponse struct {
	ID           string  `json:"id"`
	SourcePath   string  `json:"source_path"`
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
	Success      bool    `json:"success"`
	Message      string  `json:"message"`
	VideoPath    string  `json:"video_path,omitempty"`
	AudioPath    string  `json:"audio_path,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// JobsResponse lists recent trim jobs, newest first
type JobsResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

// JobToResponse maps a stored job to its wire form
func JobToResponse(j history.Job) JobResponse {
	return JobResponse{
		ID:           j.ID,
		SourcePath:   j.SourcePath,
		StartSeconds: j.StartSeconds,
		EndSeconds:   j.EndSeconds,
		Success:      j.Success,
		Message:      j.Message,
		VideoPath:    j.VideoPath,
		AudioPath:    j.AudioPath,
		CreatedAt:    j.CreatedAt.Format(time.RFC3339),
	}
}
