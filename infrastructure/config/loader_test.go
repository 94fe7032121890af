package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	content := `
paths:
  work_root: /var/lib/cliptrim/work
  download_directory: /var/lib/cliptrim/downloads
  history_db: /var/lib/cliptrim/history.db
tool:
  script_path: /opt/cliptrim/trim-convert.sh
  ffprobe_path: /usr/bin/ffprobe
  timeout: 15m
playback:
  enabled: false
  audio_bitrate: 128k
google:
  credentials_file: oauth_credentials.json
  token_file: oauth_token.json
  upload_folder: https://drive.google.com/drive/folders/ABC
server:
  port: 8090
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Paths.WorkRoot != "/var/lib/cliptrim/work" {
		t.Errorf("WorkRoot = %q", cfg.Paths.WorkRoot)
	}
	if cfg.Tool.ScriptPath != "/opt/cliptrim/trim-convert.sh" {
		t.Errorf("ScriptPath = %q", cfg.Tool.ScriptPath)
	}
	if cfg.Tool.Timeout == nil || cfg.Tool.Timeout.Std() != 15*time.Minute {
		t.Errorf("Timeout = %v, want 15m", cfg.Tool.Timeout)
	}
	if cfg.Playback.ConversionEnabled() {
		t.Error("ConversionEnabled() = true, want false")
	}
	if cfg.Playback.AudioBitrate != "128k" {
		t.Errorf("AudioBitrate = %q", cfg.Playback.AudioBitrate)
	}
	if cfg.Server.Port != 8090 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("paths: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if !cfg.Playback.ConversionEnabled() {
		t.Error("ConversionEnabled() = false when unset, want true")
	}
	if cfg.Server.Port != DefaultServerPort {
		t.Errorf("Port = %d, want default %d", cfg.Server.Port, DefaultServerPort)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func TestSaveAndReload(t *testing.T) {
	enabled := true
	timeout := Duration(5 * time.Minute)
	cfg := &Config{
		Paths:    PathsConfig{WorkRoot: "/w", DownloadDirectory: "/d"},
		Tool:     ToolConfig{ScriptPath: "/s.sh", Timeout: &timeout},
		Playback: PlaybackConfig{Enabled: &enabled, AudioBitrate: "192k"},
		Server:   ServerConfig{Port: 7000},
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Paths.WorkRoot != cfg.Paths.WorkRoot ||
		got.Tool.ScriptPath != cfg.Tool.ScriptPath ||
		got.Server.Port != cfg.Server.Port {
		t.Errorf("reloaded config differs: %+v", got)
	}
	if got.Tool.Timeout == nil || got.Tool.Timeout.Std() != 5*time.Minute {
		t.Errorf("reloaded Timeout = %v, want 5m", got.Tool.Timeout)
	}
}

func TestLoad_TimeoutZeroIsDistinctFromUnset(t *testing.T) {
	tests := []struct {
		name    string
		content string
		set     bool
		want    time.Duration
	}{
		{"explicit zero", "tool:\n  timeout: 0\n", true, 0},
		{"human-friendly value", "tool:\n  timeout: 30m\n", true, 30 * time.Minute},
		{"absent key", "tool:\n  script_path: /s.sh\n", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}

			if !tt.set {
				if cfg.Tool.Timeout != nil {
					t.Errorf("Timeout = %v, want nil for an absent key", cfg.Tool.Timeout)
				}
				return
			}
			if cfg.Tool.Timeout == nil {
				t.Fatal("Timeout = nil, want an explicit value")
			}
			if cfg.Tool.Timeout.Std() != tt.want {
				t.Errorf("Timeout = %v, want %v", cfg.Tool.Timeout.Std(), tt.want)
			}
		})
	}
}

func TestLoad_MalformedTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("tool:\n  timeout: soon\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected error for an unparseable duration")
	}
	if !strings.Contains(err.Error(), "soon") {
		t.Errorf("error = %v, want it to name the bad value", err)
	}
}
