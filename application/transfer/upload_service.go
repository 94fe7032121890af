package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cliptrim/domain/remote"
)

// UploadService uploads local result files to a remote destination folder
type UploadService struct {
	client remote.DriveClient
	logger *slog.Logger
}

// NewUploadService creates an upload service
func NewUploadService(client remote.DriveClient, logger *slog.Logger) *UploadService {
	return &UploadService{client: client, logger: logger}
}

// Upload transfers localPath to the folder named by folderLocator, which
// is resolved the same way as a fetch locator. An empty locator uploads to
// the root of My Drive. Fails without retry on any API error.
func (s *UploadService) Upload(ctx context.Context, localPath, folderLocator string) (*remote.UploadResult, error) {
	if _, err := os.Stat(localPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", localPath)
	}

	var folderID string
	if folderLocator != "" {
		id, ok := remote.ResolveLocator(folderLocator)
		if !ok {
			return nil, fmt.Errorf("unrecognized destination locator: %q", folderLocator)
		}
		folderID = id
	}

	fileName := filepath.Base(localPath)

	req := remote.UploadRequest{
		LocalPath: localPath,
		FileName:  fileName,
		FolderID:  folderID,
		MimeType:  remote.MimeTypeForPath(localPath),
	}

	s.logger.Info("uploading file", "name", fileName, "folder_id", folderID)

	result, err := s.client.Upload(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("upload of %s failed: %w", fileName, err)
	}

	s.logger.Info("upload complete", "name", result.FileName, "link", result.ViewLink)
	return result, nil
}
