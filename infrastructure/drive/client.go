package drive

import (
	"context"
	"fmt"
	"io"
	"os"

	"cliptrim/domain/remote"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

// uploadChunkSize is the resumable transfer chunk size
const uploadChunkSize = 8 * 1024 * 1024

// DriveService defines the interface for Google Drive API operations
// This allows mocking the Google Drive API in tests
type DriveService interface {
	GetFile(ctx context.Context, fileID string) (*drive.File, error)
	DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, error)
	UploadFile(ctx context.Context, name, mimeType, folderID, localPath string, progress googleapi.ProgressUpdater) (*drive.File, error)
	ListFiles(ctx context.Context, query string, fields string, orderBy string) ([]*drive.File, error)
	GetAbout(ctx context.Context, fields string) (*drive.About, error)
}

// GoogleDriveService is the production implementation using the Google Drive API
type GoogleDriveService struct {
	service *drive.Service
}

// GetFile returns file metadata by ID
func (s *GoogleDriveService) GetFile(ctx context.Context, fileID string) (*drive.File, error) {
	return s.service.Files.Get(fileID).
		Fields("id, name, mimeType, size").
		Context(ctx).
		Do()
}

// DownloadFile opens a streaming download of the file's content
func (s *GoogleDriveService) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, error) {
	resp, err := s.service.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// UploadFile creates a file with metadata and content using a resumable transfer
func (s *GoogleDriveService) UploadFile(ctx context.Context, name, mimeType, folderID, localPath string, progress googleapi.ProgressUpdater) (*drive.File, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open file for upload: %w", err)
	}
	defer f.Close()

	meta := &drive.File{Name: name}
	if folderID != "" {
		meta.Parents = []string{folderID}
	}

	mediaOpts := []googleapi.MediaOption{googleapi.ChunkSize(uploadChunkSize)}
	if mimeType != "" {
		mediaOpts = append(mediaOpts, googleapi.ContentType(mimeType))
	}

	call := s.service.Files.Create(meta).
		Media(f, mediaOpts...).
		Fields("id, name, size, webViewLink").
		Context(ctx)
	if progress != nil {
		call = call.ProgressUpdater(progress)
	}

	return call.Do()
}

// ListFiles lists files matching the query
func (s *GoogleDriveService) ListFiles(ctx context.Context, query string, fields string, orderBy string) ([]*drive.File, error) {
	r, err := s.service.Files.List().
		Q(query).
		Fields(googleapi.Field("files(" + fields + ")")).
		OrderBy(orderBy).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return r.Files, nil
}

// GetAbout returns account information
func (s *GoogleDriveService) GetAbout(ctx context.Context, fields string) (*drive.About, error) {
	return s.service.About.Get().
		Fields(googleapi.Field(fields)).
		Context(ctx).
		Do()
}

// Client implements remote.DriveClient using the Google Drive API
type Client struct {
	driveService DriveService
}

// ClientOption is a functional option for configuring Client
type ClientOption func(*Client)

// WithDriveService sets a custom drive service (for testing)
func WithDriveService(svc DriveService) ClientOption {
	return func(c *Client) {
		c.driveService = svc
	}
}

// GetFileInfo implements remote.DriveClient
func (c *Client) GetFileInfo(ctx context.Context, fileID string) (*remote.FileInfo, error) {
	f, err := c.driveService.GetFile(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get file metadata: %w", err)
	}

	return &remote.FileInfo{
		ID:       f.Id,
		Name:     f.Name,
		MimeType: f.MimeType,
		Size:     f.Size,
	}, nil
}

// Download implements remote.DriveClient. Content is streamed to w in
// chunks, invoking progress with the cumulative byte count.
func (c *Client) Download(ctx context.Context, fileID string, w io.Writer, progress func(int64)) error {
	body, err := c.driveService.DownloadFile(ctx, fileID)
	if err != nil {
		return fmt.Errorf("failed to download file: %w", err)
	}
	defer body.Close()

	buf := make([]byte, 1024*1024)
	var transferred int64
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				return fmt.Errorf("failed to write downloaded content: %w", writeErr)
			}
			transferred += int64(n)
			if progress != nil {
				progress(transferred)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("download interrupted: %w", readErr)
		}
	}
}

// Upload implements remote.DriveClient
func (c *Client) Upload(ctx context.Context, req remote.UploadRequest) (*remote.UploadResult, error) {
	f, err := c.driveService.UploadFile(ctx, req.FileName, req.MimeType, req.FolderID, req.LocalPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	return &remote.UploadResult{
		FileID:   f.Id,
		FileName: f.Name,
		ViewLink: f.WebViewLink,
		Size:     f.Size,
	}, nil
}

// ListVideos implements remote.DriveClient
func (c *Client) ListVideos(ctx context.Context, folderID string) ([]remote.FileInfo, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType contains 'video/' and trashed = false", folderID)
	files, err := c.driveService.ListFiles(ctx, query, "id, name, mimeType, size", "name")
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var result []remote.FileInfo
	for _, f := range files {
		result = append(result, remote.FileInfo{
			ID:       f.Id,
			Name:     f.Name,
			MimeType: f.MimeType,
			Size:     f.Size,
		})
	}
	return result, nil
}

// CurrentUser implements remote.DriveClient
func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	about, err := c.driveService.GetAbout(ctx, "user")
	if err != nil {
		return "", fmt.Errorf("failed to get account info: %w", err)
	}
	if about.User == nil {
		return "", fmt.Errorf("account info has no user")
	}
	return about.User.EmailAddress, nil
}

// Ensure Client implements remote.DriveClient
var _ remote.DriveClient = (*Client)(nil)
