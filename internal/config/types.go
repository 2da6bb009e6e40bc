package config

import (
	"path/filepath"
	"time"
)

// Default values.
const (
	DefaultBaseURL       = "http://localhost:4000/api/v1"
	DefaultStateDir      = "~/.taskdeck"
	DefaultTimeoutSec    = 15
	DefaultSettleDelayMS = 100
)

// Config holds the full configuration for taskdeck.
type Config struct {
	// BaseURL is the versioned root of the todo API.
	BaseURL string `toml:"base_url"`

	// StateDir holds the persisted session record and cookie file.
	StateDir string `toml:"state_dir"`

	// Request timeout in seconds.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// SettleDelayMS is the guard's pre-revalidation delay in milliseconds.
	SettleDelayMS int `toml:"settle_delay_ms"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SettleDelay returns the guard delay as a duration.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMS) * time.Millisecond
}

// SessionFile returns the path of the persisted session record.
func (c *Config) SessionFile() string {
	return filepath.Join(c.StateDir, "session.json")
}

// CookieFile returns the path of the persisted cookie file.
func (c *Config) CookieFile() string {
	return filepath.Join(c.StateDir, "cookies.json")
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.BaseURL = DefaultBaseURL
	cfg.StateDir = DefaultStateDir
	cfg.TimeoutSeconds = DefaultTimeoutSec
	cfg.SettleDelayMS = DefaultSettleDelayMS
	cfg.LogLevel = "info"
	cfg.LogFormat = "text"
}
