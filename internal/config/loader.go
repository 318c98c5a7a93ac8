package config

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// whitelistSet is a precomputed lookup table for fast whitelist membership checks.
var whitelistSet map[string]bool

func init() {
	whitelistSet = make(map[string]bool, len(WhitelistedVars))
	for _, v := range WhitelistedVars {
		whitelistSet[v] = true
	}
}

// LoadFile parses a KEY=VALUE config file at the given path.
//
// Lines are processed according to these rules:
//   - Empty lines and lines starting with # are skipped.
//   - Lines without an = sign are skipped.
//   - Leading and trailing whitespace is trimmed from both key and value.
//   - Keys not present in WhitelistedVars are silently ignored.
//
// Returns a map of whitelisted key-value pairs, or an error if the file
// cannot be opened.
func LoadFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	result := make(map[string]string)
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Split on first '=' only.
		idx := strings.Index(line, "=")
		if idx < 0 {
			continue
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])

		if !whitelistSet[key] {
			continue
		}

		result[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return result, nil
}

// LoadEnv collects whitelisted variables from the dotenv file at envPath
// (skipped when empty or missing) and then from the process environment,
// which wins over the file. Empty environment values are ignored.
func LoadEnv(envPath string) (map[string]string, error) {
	result := make(map[string]string)

	if envPath != "" {
		vars, err := godotenv.Read(envPath)
		switch {
		case err == nil:
			for k, v := range vars {
				if whitelistSet[k] {
					result[k] = v
				}
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read env file: %w", err)
		}
	}

	for _, key := range WhitelistedVars {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			result[key] = v
		}
	}
	return result, nil
}

// LoadWithPrecedence assembles a Config by merging sources in order of
// increasing priority:
//
//  1. Built-in defaults
//  2. Global config file (globalPath)
//  3. Project config file (projectPath)
//  4. Explicit config file (explicitPath)
//  5. Dotenv file (envPath) and process environment
//  6. CLI overrides (cliOverrides map)
//
// Any path that is empty is silently skipped, as are missing global,
// project and dotenv files. A missing explicit config file is an error.
func LoadWithPrecedence(globalPath, projectPath, explicitPath, envPath string, cliOverrides map[string]string) (*Config, error) {
	cfg := NewDefaultConfig()

	if globalPath != "" {
		m, err := LoadFile(globalPath)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("global config: %w", err)
			}
		} else {
			ApplyMapToConfig(cfg, m)
		}
	}

	if projectPath != "" {
		m, err := LoadFile(projectPath)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("project config: %w", err)
			}
		} else {
			ApplyMapToConfig(cfg, m)
		}
	}

	if explicitPath != "" {
		m, err := LoadFile(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("explicit config: %w", err)
		}
		ApplyMapToConfig(cfg, m)
	}

	env, err := LoadEnv(envPath)
	if err != nil {
		return nil, err
	}
	ApplyMapToConfig(cfg, env)

	if len(cliOverrides) > 0 {
		ApplyMapToConfig(cfg, cliOverrides)
	}

	return cfg, nil
}

// ApplyMapToConfig sets fields on cfg from the key-value pairs in m.
// Unknown keys are silently ignored. Timing values that fail to parse or
// are not positive are ignored (the previous value is preserved).
func ApplyMapToConfig(cfg *Config, m map[string]string) {
	for key, value := range m {
		switch key {
		case "GEMINI_API_KEY":
			cfg.APIKey = strings.TrimSpace(value)
		case "GEMINI_MODEL":
			cfg.Model = value
		case "GEMINI_PROMPT":
			cfg.Prompt = value
		case "RETRY_INTERVAL_SEC":
			if v, ok := parsePositive(value); ok {
				cfg.RetryIntervalSec = v
			}
		case "MAX_RETRY_WAIT_SEC":
			if v, ok := parsePositive(value); ok {
				cfg.MaxRetryWaitSec = v
			}
		case "PRESETS_FILE":
			cfg.PresetsFile = value
		case "OUTPUT_DIR":
			cfg.OutputDir = value
		case "MIME_TYPE":
			cfg.MIMEType = value
		case "VERBOSE":
			cfg.Verbose = parseBool(value)
		case "NOTIFY_WEBHOOK":
			cfg.NotifyWebhook = value
		case "NOTIFY_CHANNEL":
			cfg.NotifyChannel = value
		case "NOTIFY_CHAT_ID":
			cfg.NotifyChatID = value
		}
	}
}

func parsePositive(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !(v > 0) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseBool interprets common boolean representations.
// "true", "1", "yes" (case-insensitive) return true; everything else returns false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
