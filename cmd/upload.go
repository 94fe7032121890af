package cmd

import (
	"context"
	"fmt"
	"io"

	"cliptrim/application/transfer"

	"github.com/spf13/cobra"
)

var uploadFolder string

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a result file to Google Drive",
	Long: `Upload a local file to Google Drive. The destination folder may be
a share link or a folder ID; without one, the configured upload folder
is used, falling back to the root of My Drive.

Example:
  cliptrim upload ./work/recording_trimmed.mp4 --folder FOLDER_ID`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVar(&uploadFolder, "folder", "", "Destination folder link or ID")
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	client, err := buildDriveClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	folder := uploadFolder
	if folder == "" {
		folder = cfg.Google.UploadFolder
	}

	service := transfer.NewUploadService(client, logger)
	return RunUploadWithService(cmd.Context(), service, args[0], folder, cmd.OutOrStdout())
}

// RunUploadWithService runs the upload command with an injected service (for testing)
func RunUploadWithService(ctx context.Context, service *transfer.UploadService, localPath, folder string, output io.Writer) error {
	result, err := service.Upload(ctx, localPath, folder)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Uploaded %s (%d bytes)\n", result.FileName, result.Size)
	if result.ViewLink != "" {
		fmt.Fprintf(output, "Link: %s\n", result.ViewLink)
	}
	return nil
}
