// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the engine configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Server
	Port            int `json:"port,omitempty"`             // HTTP listen port
	RequestsPerMin  int `json:"requests_per_min,omitempty"` // Per-client rate limit
	ShutdownSeconds int `json:"shutdown_seconds,omitempty"` // Graceful shutdown grace period

	// Services
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Behavior
	LLMTimeoutSeconds int  `json:"llm_timeout_seconds,omitempty"` // External analysis deadline
	Verbose           bool `json:"verbose,omitempty"`             // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a config from environment variables. Used as the lowest
// precedence layer under the config file and CLI flags.
func FromEnv() Config {
	cfg := Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil && port > 0 {
		cfg.Port = port
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RequestsPerMin < 0 {
		return fmt.Errorf("config error: 'requests_per_min' must be non-negative")
	}
	if c.ShutdownSeconds < 0 {
		return fmt.Errorf("config error: 'shutdown_seconds' must be non-negative")
	}
	if c.LLMTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'llm_timeout_seconds' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RequestsPerMin == 0 {
		result.RequestsPerMin = defaults.RequestsPerMin
	}
	if result.ShutdownSeconds == 0 {
		result.ShutdownSeconds = defaults.ShutdownSeconds
	}
	if result.LLMTimeoutSeconds == 0 {
		result.LLMTimeoutSeconds = defaults.LLMTimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Defaults returns the built-in fallback configuration
func Defaults() Config {
	return Config{
		Port:              8080,
		RequestsPerMin:    60,
		ShutdownSeconds:   10,
		LLMTimeoutSeconds: 8,
	}
}
