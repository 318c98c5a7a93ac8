// Package config defines the gemini-note configuration model and default values.
//
// Configuration is assembled from multiple sources with a strict precedence
// chain: built-in defaults < global config file < project config file <
// explicit config file < .env file and process environment < CLI flag
// overrides. Presets live in a separate YAML file (see LoadPresets).
package config

import (
	"os"
	"path/filepath"

	"github.com/CodexForgeBR/gemini-note/internal/model"
)

// WhitelistedVars lists every configuration variable name that may appear in
// config files or the environment. Variables not in this list are silently
// ignored during loading.
var WhitelistedVars = [12]string{
	"GEMINI_API_KEY",
	"GEMINI_MODEL",
	"GEMINI_PROMPT",
	"RETRY_INTERVAL_SEC",
	"MAX_RETRY_WAIT_SEC",
	"PRESETS_FILE",
	"OUTPUT_DIR",
	"MIME_TYPE",
	"VERBOSE",
	"NOTIFY_WEBHOOK",
	"NOTIFY_CHANNEL",
	"NOTIFY_CHAT_ID",
}

// Default locations, relative to the user config dir and the working directory.
const (
	ProjectConfigPath  = ".gemini-note/config"
	ProjectPresetsPath = ".gemini-note/presets.yaml"
	EnvFilePath        = ".env"
)

// Config holds every configuration field for the gemini-note CLI.
type Config struct {
	// Gemini access.
	APIKey string
	Model  string
	Prompt string

	// Retry policy, in seconds. Both must stay positive.
	RetryIntervalSec float64
	MaxRetryWaitSec  float64

	// Files.
	PresetsFile string
	OutputDir   string
	MIMEType    string

	// Runtime flags.
	Verbose bool

	// Notification settings.
	NotifyWebhook string
	NotifyChannel string
	NotifyChatID  string

	// CLI-only flags (not loaded from config files).
	ConfigFile string
	EnvFile    string
	Preset     string
	InputFile  string
	Folder     string
	StartAt    string
}

// NewDefaultConfig returns a Config populated with all built-in default values.
func NewDefaultConfig() *Config {
	return &Config{
		Model:            model.Default,
		RetryIntervalSec: 5,
		MaxRetryWaitSec:  60,
		PresetsFile:      ProjectPresetsPath,
		OutputDir:        ".",
		NotifyWebhook:    "http://127.0.0.1:18789/webhook",
		NotifyChannel:    "telegram",
		EnvFile:          EnvFilePath,
	}
}

// GlobalConfigPath returns the per-user config file location, or "" when the
// user config directory cannot be determined.
func GlobalConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gemini-note", "config")
}
