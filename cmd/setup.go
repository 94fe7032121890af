package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"cliptrim/infrastructure/config"
	"cliptrim/infrastructure/trimtool"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through setting up paths, the trim tool,
playback conversion, and Google Drive access.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, "config/config.yaml")
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	fmt.Println("Welcome to cliptrim setup!")
	fmt.Println()

	cfg := &config.Config{}

	if err := promptPaths(prompter, cfg); err != nil {
		return err
	}
	if err := promptTool(prompter, cfg); err != nil {
		return err
	}
	if err := promptPlayback(prompter, cfg); err != nil {
		return err
	}
	if err := promptGoogle(prompter, cfg); err != nil {
		return err
	}
	if err := promptServer(prompter, cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", configPath)
	return nil
}

func promptPaths(prompter Prompter, cfg *config.Config) error {
	workRoot, err := prompter.Input("Where should trim workspaces be created? (blank for system temp)", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Paths.WorkRoot = workRoot

	downloads, err := prompter.Input("Where should fetched videos be saved?", "downloads")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Paths.DownloadDirectory = downloads

	historyDB, err := prompter.Input("Job history database file? (blank to disable history)", "cliptrim.db")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Paths.HistoryDB = historyDB

	return nil
}

func promptTool(prompter Prompter, cfg *config.Config) error {
	scriptPath, err := prompter.Input("Path to the trim script?", trimtool.DefaultScriptPath)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if scriptPath == "" {
		scriptPath = trimtool.DefaultScriptPath
	}
	cfg.Tool.ScriptPath = scriptPath

	timeout, err := prompter.Input("Trim script timeout? (e.g. 30m, 0 to disable)", "30m")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", timeout, err)
		}
		t := config.Duration(d)
		cfg.Tool.Timeout = &t
	}

	return nil
}

func promptPlayback(prompter Prompter, cfg *config.Config) error {
	enabled, err := prompter.Confirm("Convert results for in-browser playback?", true)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Playback.Enabled = &enabled

	if enabled {
		bitrate, err := prompter.Input("Playback audio bitrate?", "192k")
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if bitrate == "" {
			bitrate = "192k"
		}
		cfg.Playback.AudioBitrate = bitrate
	}

	return nil
}

func promptGoogle(prompter Prompter, cfg *config.Config) error {
	useDrive, err := prompter.Confirm("Configure Google Drive access?", false)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if !useDrive {
		return nil
	}

	credentials, err := prompter.Input("Path to Google credentials file?", "credentials.json")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if credentials == "" {
		credentials = "credentials.json"
	}
	cfg.Google.CredentialsFile = credentials

	token, err := prompter.Input("Path for the saved OAuth token?", "token.json")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if token == "" {
		token = "token.json"
	}
	cfg.Google.TokenFile = token

	folder, err := prompter.Input("Default upload folder link or ID? (blank for My Drive root)", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Google.UploadFolder = folder

	return nil
}

func promptServer(prompter Prompter, cfg *config.Config) error {
	port, err := prompter.Input("Web UI port?", strconv.Itoa(config.DefaultServerPort))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n <= 0 || n > 65535 {
			return fmt.Errorf("invalid port %q", port)
		}
		cfg.Server.Port = n
	}
	return nil
}
