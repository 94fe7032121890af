package web

import (
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"cliptrim/domain/video"

	"github.com/go-chi/chi/v5"
)

//go:embed static
var staticFS embed.FS

// Version is reported by the health endpoint
const Version = "0.1.0"

// NewRouter builds the chi router for the UI and API
func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))
	r.Get("/", indexHandler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/probe", probeHandler(cfg))
		r.Post("/trim", trimHandler(cfg))
		r.Post("/fetch", fetchHandler(cfg))
		r.Post("/upload", uploadHandler(cfg))
		r.Get("/jobs", listJobsHandler(cfg))
		r.Get("/preview", previewHandler(cfg))
	})

	return r
}

func indexHandler() http.HandlerFunc {
	sub, _ := fs.Sub(staticFS, "static")
	fileServer := http.FileServer(http.FS(sub))
	return func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	}
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: Version,
			UptimeS: uptime,
		})
	}
}

func probeHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProbeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.Path == "" {
			WriteError(w, http.StatusBadRequest, "path is required", "BAD_REQUEST")
			return
		}

		probe := cfg.Prober.Duration(r.Context(), req.Path)

		resp := ProbeResponse{Known: probe.Known}
		if probe.Known {
			resp.DurationSeconds = probe.Seconds
			resp.Display = video.FormatDisplay(probe.Seconds)
			resp.Timecode = video.FormatTimecode(probe.Seconds)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func trimHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TrimRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		// Validation happens inside the orchestrator so the failure shape
		// is the same for API and CLI callers
		trimReq := &video.TrimRequest{
			SourcePath:   req.SourcePath,
			StartSeconds: req.StartSeconds,
			EndSeconds:   req.EndSeconds,
		}
		result := cfg.Trimmer.Trim(r.Context(), trimReq)

		status := http.StatusOK
		if !result.Success {
			status = statusForKind(result.Kind)
		}
		WriteJSON(w, status, TrimResultToResponse(result))
	}
}

func statusForKind(kind video.FailureKind) int {
	switch kind {
	case video.FailureValidation:
		return http.StatusBadRequest
	case video.FailureTimedOut:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func fetchHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.Fetcher == nil {
			WriteError(w, http.StatusServiceUnavailable, "remote transfer is not configured", "NOT_CONFIGURED")
			return
		}

		var req FetchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.Locator == "" {
			WriteError(w, http.StatusBadRequest, "locator is required", "BAD_REQUEST")
			return
		}

		result, err := cfg.Fetcher.Fetch(r.Context(), req.Locator)
		if err != nil {
			WriteError(w, http.StatusBadGateway, err.Error(), "FETCH_FAILED")
			return
		}

		WriteJSON(w, http.StatusOK, FetchResponse{
			LocalPath: result.LocalPath,
			Name:      result.Name,
			Size:      result.Size,
			Remote:    result.Remote,
		})
	}
}

func uploadHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.Uploader == nil {
			WriteError(w, http.StatusServiceUnavailable, "remote transfer is not configured", "NOT_CONFIGURED")
			return
		}

		var req UploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.Path == "" {
			WriteError(w, http.StatusBadRequest, "path is required", "BAD_REQUEST")
			return
		}

		result, err := cfg.Uploader.Upload(r.Context(), req.Path, req.Folder)
		if err != nil {
			WriteError(w, http.StatusBadGateway, err.Error(), "UPLOAD_FAILED")
			return
		}

		WriteJSON(w, http.StatusOK, UploadResultToResponse(result))
	}
}

func listJobsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.Jobs == nil {
			WriteJSON(w, http.StatusOK, JobsResponse{Jobs: []JobResponse{}})
			return
		}

		limit := 20
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		jobs, err := cfg.Jobs.Recent(r.Context(), limit)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list jobs", "INTERNAL_ERROR")
			return
		}

		resp := JobsResponse{Jobs: make([]JobResponse, len(jobs))}
		for i, j := range jobs {
			resp.Jobs[i] = JobToResponse(j)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func previewHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.Grabber == nil {
			WriteError(w, http.StatusServiceUnavailable, "frame preview is not available", "NOT_CONFIGURED")
			return
		}

		path := r.URL.Query().Get("path")
		if path == "" {
			WriteError(w, http.StatusBadRequest, "path is required", "BAD_REQUEST")
			return
		}

		at := 0.0
		if v := r.URL.Query().Get("at"); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil || parsed < 0 {
				WriteError(w, http.StatusBadRequest, "at must be a non-negative number of seconds", "BAD_REQUEST")
				return
			}
			at = parsed
		}

		frame, err := cfg.Grabber.GrabFrame(r.Context(), path, at)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "PREVIEW_FAILED")
			return
		}

		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		w.Write(frame)
	}
}
