package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Paths    PathsConfig    `yaml:"paths"`
	Tool     ToolConfig     `yaml:"tool"`
	Playback PlaybackConfig `yaml:"playback"`
	Google   GoogleConfig   `yaml:"google"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PathsConfig contains directory paths for media processing
type PathsConfig struct {
	// WorkRoot is where per-operation workspaces are created.
	// Empty means the system temp directory.
	WorkRoot string `yaml:"work_root"`
	// DownloadDirectory is where fetched remote files land
	DownloadDirectory string `yaml:"download_directory"`
	// HistoryDB is the sqlite job history file
	HistoryDB string `yaml:"history_db"`
}

// ToolConfig locates the external trimming and inspection tools.
// Timeout nil means "use the built-in default"; an explicit 0 disables
// the timeout entirely.
type ToolConfig struct {
	ScriptPath  string    `yaml:"script_path"`
	ShellPath   string    `yaml:"shell_path"`
	FFprobePath string    `yaml:"ffprobe_path"`
	FFmpegPath  string    `yaml:"ffmpeg_path"`
	Timeout     *Duration `yaml:"timeout,omitempty"`
}

// Duration is a time.Duration that reads and writes human-friendly YAML
// values like "30m" instead of nanosecond integers
type Duration time.Duration

// Std returns the wrapped time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("invalid duration: expected a scalar like \"30m\"")
	}

	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}

	*d = Duration(parsed)
	return nil
}

// PlaybackConfig controls the best-effort post-trim conversion
type PlaybackConfig struct {
	Enabled      *bool  `yaml:"enabled"`
	AudioBitrate string `yaml:"audio_bitrate"`
}

// ConversionEnabled reports whether playback conversion is on.
// Unset defaults to true.
func (p PlaybackConfig) ConversionEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// GoogleConfig contains Google API settings
type GoogleConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`
	UploadFolder    string `yaml:"upload_folder"`
}

// ServerConfig contains the web UI server settings
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultServerPort is used when no port is configured
const DefaultServerPort = 7860

// Load reads and parses the configuration from the specified YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}

	return &cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
