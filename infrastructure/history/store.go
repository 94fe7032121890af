package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cliptrim/application/trim"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS trim_jobs (
	id            TEXT PRIMARY KEY,
	source_path   TEXT NOT NULL,
	start_seconds REAL NOT NULL,
	end_seconds   REAL NOT NULL,
	success       INTEGER NOT NULL,
	message       TEXT NOT NULL DEFAULT '',
	video_path    TEXT NOT NULL DEFAULT '',
	audio_path    TEXT NOT NULL DEFAULT '',
	created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_trim_jobs_created_at ON trim_jobs(created_at DESC);
`

// Job is a stored trim invocation
type Job struct {
	ID           string    `json:"id"`
	SourcePath   string    `json:"source_path"`
	StartSeconds float64   `json:"start_seconds"`
	EndSeconds   float64   `json:"end_seconds"`
	Success      bool      `json:"success"`
	Message      string    `json:"message"`
	VideoPath    string    `json:"video_path"`
	AudioPath    string    `json:"audio_path"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store persists trim job history in sqlite
type Store struct {
	conn *sql.DB
}

// NewStore opens (creating if needed) the history database at dbPath
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{conn: conn}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.conn.Close()
}

// Record implements trim.Recorder
func (s *Store) Record(ctx context.Context, rec trim.JobRecord) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO trim_jobs
			(id, source_path, start_seconds, end_seconds, success, message, video_path, audio_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.SourcePath,
		rec.StartSeconds,
		rec.EndSeconds,
		boolToInt(rec.Success),
		rec.Message,
		rec.VideoPath,
		rec.AudioPath,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record trim job: %w", err)
	}
	return nil
}

// Recent returns the most recent trim jobs, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Job, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, source_path, start_seconds, end_seconds, success, message, video_path, audio_path, created_at
		FROM trim_jobs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query trim jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		var success int
		var createdAt string
		if err := rows.Scan(&j.ID, &j.SourcePath, &j.StartSeconds, &j.EndSeconds,
			&success, &j.Message, &j.VideoPath, &j.AudioPath, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan trim job: %w", err)
		}
		j.Success = success != 0
		j.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		jobs = append(jobs, j)
	}

	return jobs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Ensure Store implements trim.Recorder
var _ trim.Recorder = (*Store)(nil)
