// Package web serves the browser UI and the JSON API behind it.
package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"cliptrim/application/transfer"
	"cliptrim/domain/remote"
	"cliptrim/domain/video"
	"cliptrim/infrastructure/history"
)

// Trimmer runs a trim request end to end
type Trimmer interface {
	Trim(ctx context.Context, req *video.TrimRequest) *video.TrimResult
}

// Fetcher makes a remote or local resource available on disk
type Fetcher interface {
	Fetch(ctx context.Context, input string) (*transfer.FetchResult, error)
}

// Uploader transfers a local file to remote storage
type Uploader interface {
	Upload(ctx context.Context, localPath, folderLocator string) (*remote.UploadResult, error)
}

// JobLister reads recent trim job history
type JobLister interface {
	Recent(ctx context.Context, limit int) ([]history.Job, error)
}

// Server wraps the HTTP server hosting the trim UI and API
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// ServerConfig wires the services the handlers depend on.
// Fetcher and Uploader may be nil when remote storage is not configured;
// Jobs and Grabber may be nil when history or preview is unavailable.
type ServerConfig struct {
	Port      int
	Trimmer   Trimmer
	Prober    video.DurationProber
	Fetcher   Fetcher
	Uploader  Uploader
	Jobs      JobLister
	Grabber   video.FrameGrabber
	Logger    *slog.Logger
	StartTime time.Time
}

// NewServer creates the HTTP server bound to localhost
func NewServer(cfg ServerConfig) *Server {
	router := NewRouter(cfg)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("127.0.0.1:%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 0,
			IdleTimeout:  60 * time.Second,
		},
		logger: cfg.Logger,
	}
}

// Start blocks serving requests until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
