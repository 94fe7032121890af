package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cliptrim/application/transfer"
	"cliptrim/infrastructure/filesystem"
	"cliptrim/infrastructure/logging"
	"cliptrim/infrastructure/preview"
	"cliptrim/infrastructure/trimtool"
	"cliptrim/web"

	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser UI",
	Long: `Start the local web server hosting the trim UI and its JSON API.

The server binds to localhost only. Google Drive endpoints respond with
an error when credentials are not configured; everything else works
without them.

Example:
  cliptrim serve --port 7860`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	port := servePort
	if port == 0 {
		port = cfg.Server.Port
	}

	trimService, store := buildTrimService(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	// Workspaces are never cleaned up automatically; tell the operator
	// where they accumulate
	logger.Info("trim workspaces", "root", filesystem.NewWorkspaces(cfg.Paths.WorkRoot).Root())

	var proberOpts []trimtool.ProberOption
	if cfg.Tool.FFprobePath != "" {
		proberOpts = append(proberOpts, trimtool.WithFFprobePath(cfg.Tool.FFprobePath))
	}

	serverCfg := web.ServerConfig{
		Port:      port,
		Trimmer:   trimService,
		Prober:    trimtool.NewProber(logger, proberOpts...),
		Grabber:   preview.NewGrabber(),
		Logger:    logging.WithComponent(logger, "web"),
		StartTime: time.Now(),
	}
	if store != nil {
		serverCfg.Jobs = store
	}

	// Drive is optional for the web UI; without credentials the fetch and
	// upload endpoints report that remote transfer is not configured
	if client, err := buildDriveClient(cmd.Context(), cfg); err == nil {
		downloadDir := cfg.Paths.DownloadDirectory
		if downloadDir == "" {
			downloadDir = "downloads"
		}
		serverCfg.Fetcher = transfer.NewFetchService(client, downloadDir, logger)
		serverCfg.Uploader = transfer.NewUploadService(client, logger)
	} else {
		logger.Info("remote transfer disabled", "reason", err)
	}

	server := web.NewServer(serverCfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", server.Addr())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
	case <-cmd.Context().Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
