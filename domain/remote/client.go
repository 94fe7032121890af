package remote

import (
	"context"
	"io"
)

// DriveClient defines the interface for Google Drive operations
// This is a port that can be implemented by different infrastructure adapters
type DriveClient interface {
	// GetFileInfo returns metadata for a file by ID
	GetFileInfo(ctx context.Context, fileID string) (*FileInfo, error)

	// Download streams a file's content to w. The progress callback,
	// when non-nil, receives cumulative bytes transferred.
	Download(ctx context.Context, fileID string, w io.Writer, progress func(transferred int64)) error

	// Upload creates a file with metadata and content in the target
	// folder using a resumable transfer. An empty FolderID uploads to
	// the root of My Drive.
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)

	// ListVideos lists video files in a folder
	ListVideos(ctx context.Context, folderID string) ([]FileInfo, error)

	// CurrentUser returns the authenticated user's email address
	CurrentUser(ctx context.Context) (string, error)
}

// FileInfo represents metadata about a file in Google Drive
type FileInfo struct {
	ID       string
	Name     string
	MimeType string
	Size     int64
}
