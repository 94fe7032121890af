package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cliptrim/domain/remote"
)

// FetchResult describes a resource made available on the local filesystem
type FetchResult struct {
	LocalPath string
	Name      string
	Size      int64
	// Remote is false when the input was already a local path
	Remote bool
}

// FetchService resolves a user-supplied locator and downloads the resource
// to local storage. Downloads are synchronous with no automatic retry.
type FetchService struct {
	client      remote.DriveClient
	downloadDir string
	logger      *slog.Logger
}

// NewFetchService creates a fetch service. Downloads land in downloadDir.
func NewFetchService(client remote.DriveClient, downloadDir string, logger *slog.Logger) *FetchService {
	return &FetchService{
		client:      client,
		downloadDir: downloadDir,
		logger:      logger,
	}
}

// Fetch makes the resource named by input available locally. An existing
// local path is used directly; anything else is resolved as a Drive
// locator and downloaded.
func (s *FetchService) Fetch(ctx context.Context, input string) (*FetchResult, error) {
	if info, err := os.Stat(input); err == nil && !info.IsDir() {
		return &FetchResult{
			LocalPath: input,
			Name:      filepath.Base(input),
			Size:      info.Size(),
		}, nil
	}

	fileID, ok := remote.ResolveLocator(input)
	if !ok {
		return nil, fmt.Errorf("unrecognized locator: %q is not a local file, share link, or resource ID", input)
	}

	info, err := s.client.GetFileInfo(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("could not look up remote file %s: %w", fileID, err)
	}

	if err := os.MkdirAll(s.downloadDir, 0755); err != nil {
		return nil, fmt.Errorf("could not create download directory: %w", err)
	}

	localPath := filepath.Join(s.downloadDir, info.Name)
	f, err := os.Create(localPath)
	if err != nil {
		return nil, fmt.Errorf("could not create local file: %w", err)
	}
	defer f.Close()

	s.logger.Info("downloading remote file", "name", info.Name, "size", info.Size)

	progress := func(transferred int64) {
		if info.Size > 0 {
			s.logger.Debug("download progress",
				"name", info.Name,
				"percent", int(float64(transferred)/float64(info.Size)*100))
		}
	}

	if err := s.client.Download(ctx, fileID, f, progress); err != nil {
		return nil, fmt.Errorf("download of %s failed: %w", info.Name, err)
	}

	s.logger.Info("download complete", "name", info.Name, "path", localPath)

	return &FetchResult{
		LocalPath: localPath,
		Name:      info.Name,
		Size:      info.Size,
		Remote:    true,
	}, nil
}
