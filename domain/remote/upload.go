package remote

import (
	"path/filepath"
	"strings"
)

// UploadRequest contains the parameters needed to upload a file to Google Drive
type UploadRequest struct {
	LocalPath string // Full path to the local file
	FileName  string // Target filename in Google Drive
	FolderID  string // Target folder ID; empty means My Drive root
	MimeType  string // MIME type of the file; empty lets Drive sniff it
}

// UploadResult contains the result of a successful upload
type UploadResult struct {
	FileID   string // Google Drive file ID
	FileName string // Name of the uploaded file
	ViewLink string // Browser link to the uploaded file
	Size     int64  // Size of the uploaded file in bytes
}

// MIME type constants for the media formats this tool produces
const (
	MimeTypeMP4 = "video/mp4"
	MimeTypeAAC = "audio/aac"
	MimeTypeMP3 = "audio/mpeg"
)

// MimeTypeForPath selects a transfer content-type from the file extension.
// Unknown extensions return "" so the storage API can sniff the type.
func MimeTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4":
		return MimeTypeMP4
	case ".aac":
		return MimeTypeAAC
	case ".mp3":
		return MimeTypeMP3
	default:
		return ""
	}
}
