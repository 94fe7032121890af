package cmd

import (
	"context"
	"fmt"
	"io"

	"cliptrim/application/transfer"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <locator>",
	Short: "Download a video from Google Drive",
	Long: `Make a source video available locally. The locator may be a local
path (used as-is), a Drive share link, or a bare Drive file ID.

Example:
  cliptrim fetch "https://drive.google.com/file/d/FILE_ID/view"`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	client, err := buildDriveClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	downloadDir := cfg.Paths.DownloadDirectory
	if downloadDir == "" {
		downloadDir = "downloads"
	}

	service := transfer.NewFetchService(client, downloadDir, logger)
	return RunFetchWithService(cmd.Context(), service, args[0], cmd.OutOrStdout())
}

// RunFetchWithService runs the fetch command with an injected service (for testing)
func RunFetchWithService(ctx context.Context, service *transfer.FetchService, locator string, output io.Writer) error {
	result, err := service.Fetch(ctx, locator)
	if err != nil {
		return err
	}

	if result.Remote {
		fmt.Fprintf(output, "Downloaded %s (%d bytes) to %s\n", result.Name, result.Size, result.LocalPath)
	} else {
		fmt.Fprintf(output, "Using local file %s\n", result.LocalPath)
	}
	return nil
}
