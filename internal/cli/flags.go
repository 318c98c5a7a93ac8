// Package cli provides flag binding and validation for the gemini-note CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/gemini-note/internal/config"
	"github.com/CodexForgeBR/gemini-note/internal/model"
	"github.com/CodexForgeBR/gemini-note/internal/schedule"
)

// BindPersistentFlags registers the flags shared by the root command and its
// subcommands (config sources and verbosity).
func BindPersistentFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&cfg.ConfigFile, "config", "", "Path to additional config file")
	flags.StringVar(&cfg.EnvFile, "env-file", config.EnvFilePath, "Path to .env file")
	flags.StringVar(&cfg.PresetsFile, "presets-file", config.ProjectPresetsPath, "Path to presets YAML file")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Show debug output")
}

// BindFlags registers the generation flags on the given cobra command.
// The flags directly modify fields in the provided config pointer.
// Call ValidateFlags after parsing to check flag combinations.
func BindFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	// Input
	flags.StringVarP(&cfg.InputFile, "file", "f", "", "Attachment to send (PDF, image, ...)")
	flags.StringVar(&cfg.MIMEType, "mime-type", "", "Attachment MIME type (default: from extension, else application/pdf)")

	// Preset, model & prompt
	flags.StringVarP(&cfg.Preset, "preset", "p", "", "Preset name from the presets file")
	flags.StringVarP(&cfg.Model, "model", "m", model.Default, "Gemini model")
	flags.StringVar(&cfg.Prompt, "prompt", "", "Prompt sent with the attachment")
	flags.StringVar(&cfg.APIKey, "api-key", "", "Gemini API key (prefer GEMINI_API_KEY)")

	// Output
	flags.StringVarP(&cfg.OutputDir, "output-dir", "o", ".", "Vault root the note is written below")
	flags.StringVar(&cfg.Folder, "folder", "", "Folder inside the vault (overrides the preset's outputPath)")

	// Retry policy
	flags.Float64Var(&cfg.RetryIntervalSec, "retry-interval", 5, "Seconds between retries while Gemini is unavailable")
	flags.Float64Var(&cfg.MaxRetryWaitSec, "max-retry-wait", 60, "Maximum total seconds spent waiting between retries")

	// Scheduling
	flags.StringVar(&cfg.StartAt, "at", "", "Send the request at this time (HH:MM, YYYY-MM-DD HH:MM, +90m)")

	// Notifications
	flags.StringVar(&cfg.NotifyWebhook, "notify-webhook", "http://127.0.0.1:18789/webhook", "OpenClaw webhook URL")
	flags.StringVar(&cfg.NotifyChannel, "notify-channel", "telegram", "Notification channel")
	flags.StringVar(&cfg.NotifyChatID, "notify-chat-id", "", "Recipient chat ID")
}

// ValidateFlags checks flag values and combinations after parsing.
// A single positional argument is accepted as the input file.
func ValidateFlags(cmd *cobra.Command, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("expected at most one input file, got %d", len(args))
	}
	if len(args) == 1 {
		if cfg.InputFile != "" && cfg.InputFile != args[0] {
			return fmt.Errorf("input given both as --file (%s) and argument (%s)", cfg.InputFile, args[0])
		}
		cfg.InputFile = args[0]
	}
	if cfg.InputFile == "" {
		return fmt.Errorf("no input file: pass --file or a positional argument")
	}

	// --config must exist if provided
	if cfg.ConfigFile != "" {
		if _, err := os.Stat(cfg.ConfigFile); err != nil {
			return fmt.Errorf("--config: %w", err)
		}
	}

	if cmd.Flags().Changed("retry-interval") && !(cfg.RetryIntervalSec > 0) {
		return fmt.Errorf("--retry-interval must be positive, got: %v", cfg.RetryIntervalSec)
	}
	if cmd.Flags().Changed("max-retry-wait") && !(cfg.MaxRetryWaitSec > 0) {
		return fmt.Errorf("--max-retry-wait must be positive, got: %v", cfg.MaxRetryWaitSec)
	}

	if cfg.StartAt != "" {
		if _, err := schedule.Parse(cfg.StartAt, time.Now()); err != nil {
			return fmt.Errorf("--at: %w", err)
		}
	}

	if cfg.Folder != "" && !filepath.IsLocal(cfg.Folder) {
		return fmt.Errorf("--folder must be a relative path inside the vault, got: %s", cfg.Folder)
	}
	return nil
}

// BuildOverrides creates a map of CLI flag overrides from the config.
// Uses cmd.Flags().Changed() to only include flags explicitly set by the user,
// ensuring config file values are not accidentally overridden by default values.
func BuildOverrides(cmd *cobra.Command, cfg *config.Config) map[string]string {
	overrides := make(map[string]string)
	flags := cmd.Flags()

	stringFlags := map[string]struct {
		key string
		val string
	}{
		"api-key":        {"GEMINI_API_KEY", cfg.APIKey},
		"model":          {"GEMINI_MODEL", cfg.Model},
		"prompt":         {"GEMINI_PROMPT", cfg.Prompt},
		"presets-file":   {"PRESETS_FILE", cfg.PresetsFile},
		"output-dir":     {"OUTPUT_DIR", cfg.OutputDir},
		"mime-type":      {"MIME_TYPE", cfg.MIMEType},
		"notify-webhook": {"NOTIFY_WEBHOOK", cfg.NotifyWebhook},
		"notify-channel": {"NOTIFY_CHANNEL", cfg.NotifyChannel},
		"notify-chat-id": {"NOTIFY_CHAT_ID", cfg.NotifyChatID},
	}
	for flag, mapping := range stringFlags {
		if flags.Changed(flag) {
			overrides[mapping.key] = mapping.val
		}
	}

	floatFlags := map[string]struct {
		key string
		val float64
	}{
		"retry-interval": {"RETRY_INTERVAL_SEC", cfg.RetryIntervalSec},
		"max-retry-wait": {"MAX_RETRY_WAIT_SEC", cfg.MaxRetryWaitSec},
	}
	for flag, mapping := range floatFlags {
		if flags.Changed(flag) {
			overrides[mapping.key] = strconv.FormatFloat(mapping.val, 'f', -1, 64)
		}
	}

	if flags.Changed("verbose") {
		overrides["VERBOSE"] = strconv.FormatBool(cfg.Verbose)
	}

	return overrides
}

// MergeCLIOnly copies the flags that never come from config files.
func MergeCLIOnly(dst, src *config.Config) {
	dst.ConfigFile = src.ConfigFile
	dst.EnvFile = src.EnvFile
	dst.Preset = src.Preset
	dst.InputFile = src.InputFile
	dst.Folder = src.Folder
	dst.StartAt = src.StartAt
}
