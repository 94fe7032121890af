package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"cliptrim/application/trim"
	"cliptrim/domain/remote"
	"cliptrim/infrastructure/config"
	"cliptrim/infrastructure/drive"
	"cliptrim/infrastructure/filesystem"
	"cliptrim/infrastructure/history"
	"cliptrim/infrastructure/logging"
	"cliptrim/infrastructure/trimtool"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cliptrim",
	Short: "Trim videos by time range and move them through Google Drive",
	Long: `cliptrim trims a video to a start/end selection using an external
trim script, extracts the audio track, and optionally converts the
results for in-browser playback:

  - Probe a video for its duration
  - Trim by start/end seconds with output verification
  - Fetch sources from Google Drive share links
  - Upload results back to Google Drive
  - Serve a browser UI for the whole workflow

Example:
  cliptrim trim --source recording.mp4 --start 330 --end 4500`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
}

func initConfig() {
	// Environment overrides may live in a .env file next to the binary
	godotenv.Load()

	if cfgFile == "" {
		cfgFile = "config/config.yaml"
	}

	var loadErr error
	cfg, loadErr = config.Load(cfgFile)
	if loadErr != nil {
		// Config file is optional for some commands (like help and setup)
		// Commands that need config will check and error appropriately
		cfg = nil
	}

	level := "info"
	if cfg != nil && cfg.Logging.Level != "" {
		level = cfg.Logging.Level
	}
	logger = logging.NewLogger(level)

	// A present-but-unparseable file is an operator mistake, not an
	// unconfigured install; name the real cause
	if loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
		logger.Warn("could not load config file", "path", cfgFile, "error", loadErr)
	}
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}

// requireConfig returns the configuration or an actionable error
func requireConfig() (*config.Config, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded; run 'cliptrim setup' or provide --config")
	}
	return cfg, nil
}

// buildTrimService assembles the production trim orchestrator. The
// recorder is optional; a missing history database just disables history.
func buildTrimService(cfg *config.Config, logger *slog.Logger) (*trim.Service, *history.Store) {
	script := trimtool.NewScript(cfg.Tool.ScriptPath, scriptOptions(cfg)...)

	var converterOpts []trimtool.ConverterOption
	if cfg.Tool.FFmpegPath != "" {
		converterOpts = append(converterOpts, trimtool.WithFFmpegPath(cfg.Tool.FFmpegPath))
	}
	converter := trimtool.NewConverter(converterOpts...)

	opts := []trim.Option{
		trim.WithPlaybackConversion(cfg.Playback.ConversionEnabled()),
		trim.WithPlaybackBitrate(cfg.Playback.AudioBitrate),
	}
	// An explicit timeout: 0 disables the deadline; only an absent key
	// keeps the built-in default
	if cfg.Tool.Timeout != nil {
		opts = append(opts, trim.WithTimeout(cfg.Tool.Timeout.Std()))
	}

	var store *history.Store
	if cfg.Paths.HistoryDB != "" {
		var err error
		store, err = history.NewStore(cfg.Paths.HistoryDB)
		if err != nil {
			logger.Warn("job history disabled", "error", err)
			store = nil
		} else {
			opts = append(opts, trim.WithRecorder(store))
		}
	}

	service := trim.NewService(
		script,
		converter,
		filesystem.NewChecker(),
		filesystem.NewWorkspaces(cfg.Paths.WorkRoot),
		logger,
		opts...,
	)

	return service, store
}

func scriptOptions(cfg *config.Config) []trimtool.ScriptOption {
	var opts []trimtool.ScriptOption
	if cfg.Tool.ShellPath != "" {
		opts = append(opts, trimtool.WithShellPath(cfg.Tool.ShellPath))
	}
	return opts
}

// buildDriveClient connects to Google Drive via OAuth. Returns an error
// when credentials are not configured.
func buildDriveClient(ctx context.Context, cfg *config.Config) (remote.DriveClient, error) {
	if cfg.Google.CredentialsFile == "" {
		return nil, fmt.Errorf("google.credentials_file is not configured; run 'cliptrim setup'")
	}

	tokenFile := cfg.Google.TokenFile
	if tokenFile == "" {
		tokenFile = "token.json"
	}

	return drive.NewClientWithOAuth(ctx, cfg.Google.CredentialsFile, tokenFile)
}
