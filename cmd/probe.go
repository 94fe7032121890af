package cmd

import (
	"context"
	"fmt"
	"io"

	"cliptrim/domain/video"
	"cliptrim/infrastructure/trimtool"

	"github.com/spf13/cobra"
)

var probeSourcePath string

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Report a video's duration",
	Long: `Inspect a media file with ffprobe and print its duration.

An unreadable or malformed file is reported as an unknown duration,
not an error; trims on such a file are still possible with manually
entered times.

Example:
  cliptrim probe --source recording.mp4`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().StringVar(&probeSourcePath, "source", "", "Path to media file (required)")
	probeCmd.MarkFlagRequired("source")
}

func runProbe(cmd *cobra.Command, args []string) error {
	var opts []trimtool.ProberOption
	if cfg != nil && cfg.Tool.FFprobePath != "" {
		opts = append(opts, trimtool.WithFFprobePath(cfg.Tool.FFprobePath))
	}
	prober := trimtool.NewProber(logger, opts...)

	return RunProbeWithProber(cmd.Context(), prober, probeSourcePath, cmd.OutOrStdout())
}

// RunProbeWithProber runs the probe command with an injected prober (for testing)
func RunProbeWithProber(ctx context.Context, prober video.DurationProber, sourcePath string, output io.Writer) error {
	result := prober.Duration(ctx, sourcePath)
	if !result.Known {
		fmt.Fprintln(output, "Duration: unknown")
		return nil
	}

	fmt.Fprintf(output, "Duration: %s (%s, %.3f seconds)\n",
		video.FormatDisplay(result.Seconds),
		video.FormatTimecode(result.Seconds),
		result.Seconds)
	return nil
}
