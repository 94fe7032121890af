package cmd

import (
	"context"
	"fmt"
	"io"

	"cliptrim/application/trim"
	"cliptrim/domain/video"

	"github.com/spf13/cobra"
)

var (
	trimSourcePath string
	trimStart      float64
	trimEnd        float64
)

var trimCmd = &cobra.Command{
	Use:   "trim",
	Short: "Trim a video to a start/end selection",
	Long: `Trim a video file to the given start and end offsets in seconds.

The trim script writes the trimmed video and the extracted audio track
into a fresh workspace directory. When playback conversion is enabled,
a web-compatible copy of the video and an mp3 copy of the audio are
produced alongside them.

Example:
  cliptrim trim --source recording.mp4 --start 330.5 --end 4500`,
	RunE: runTrim,
}

func init() {
	rootCmd.AddCommand(trimCmd)
	trimCmd.Flags().StringVar(&trimSourcePath, "source", "", "Path to source video file (required)")
	trimCmd.Flags().Float64Var(&trimStart, "start", 0, "Start offset in seconds (required)")
	trimCmd.Flags().Float64Var(&trimEnd, "end", 0, "End offset in seconds (required)")
	trimCmd.MarkFlagRequired("source")
	trimCmd.MarkFlagRequired("start")
	trimCmd.MarkFlagRequired("end")
}

func runTrim(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	service, store := buildTrimService(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	return RunTrimWithService(cmd.Context(), service, trimSourcePath, trimStart, trimEnd, cmd.OutOrStdout())
}

// RunTrimWithService runs the trim command with an injected service (for testing)
func RunTrimWithService(
	ctx context.Context,
	service *trim.Service,
	sourcePath string,
	startSeconds, endSeconds float64,
	output io.Writer,
) error {
	req := &video.TrimRequest{
		SourcePath:   sourcePath,
		StartSeconds: startSeconds,
		EndSeconds:   endSeconds,
	}

	fmt.Fprintf(output, "Trimming %s from %s to %s...\n",
		sourcePath, video.FormatTimecode(startSeconds), video.FormatTimecode(endSeconds))

	result := service.Trim(ctx, req)
	if !result.Success {
		if result.Diagnostic != "" {
			fmt.Fprintln(output, result.Diagnostic)
		}
		return fmt.Errorf("%s", result.Message)
	}

	fmt.Fprintln(output, result.Message)
	fmt.Fprintf(output, "Video: %s\n", result.VideoPath)
	fmt.Fprintf(output, "Audio: %s\n", result.AudioPath)
	if result.PlaybackAudioPath != result.AudioPath {
		fmt.Fprintf(output, "Playback audio: %s\n", result.PlaybackAudioPath)
	}
	return nil
}
