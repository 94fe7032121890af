package cmd

import (
	"context"
	"fmt"
	"io"

	"cliptrim/domain/remote"

	"github.com/spf13/cobra"
)

var listFolder string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List videos in a Google Drive folder",
	Long: `List the video files in a Drive folder, sorted by name. The folder
may be a share link or a folder ID; without one, the configured upload
folder is used.

Example:
  cliptrim list --folder FOLDER_ID`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listFolder, "folder", "", "Folder link or ID")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	client, err := buildDriveClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	folder := listFolder
	if folder == "" {
		folder = cfg.Google.UploadFolder
	}
	if folder == "" {
		return fmt.Errorf("no folder given; use --folder or configure google.upload_folder")
	}

	return RunListWithClient(cmd.Context(), client, folder, cmd.OutOrStdout())
}

// RunListWithClient runs the list command with an injected client (for testing)
func RunListWithClient(ctx context.Context, client remote.DriveClient, folderLocator string, output io.Writer) error {
	folderID, ok := remote.ResolveLocator(folderLocator)
	if !ok {
		return fmt.Errorf("unrecognized folder locator: %q", folderLocator)
	}

	user, err := client.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("could not identify Drive account: %w", err)
	}
	fmt.Fprintf(output, "Videos in folder %s (as %s):\n", folderID, user)

	videos, err := client.ListVideos(ctx, folderID)
	if err != nil {
		return fmt.Errorf("could not list folder %s: %w", folderID, err)
	}

	if len(videos) == 0 {
		fmt.Fprintln(output, "  (none)")
		return nil
	}

	for _, v := range videos {
		fmt.Fprintf(output, "  %s  %d bytes  %s\n", v.ID, v.Size, v.Name)
	}
	return nil
}
