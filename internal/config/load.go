package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from defaults, config files, and environment, in
// that order. CLI flag overrides are applied by the caller on top.
func Load() (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if userFile := findUserConfigFile(); userFile != "" {
		if err := loadConfigFile(cfg, userFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userFile, err)
		}
	}

	if projectFile := findProjectConfigFile(); projectFile != "" {
		if err := loadConfigFile(cfg, projectFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectFile, err)
		}
	}

	loadFromEnv(cfg)

	if err := finalize(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	return cfg, nil
}

// loadConfigFile loads TOML config from the given file.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// finalize expands paths and validates the result.
func finalize(cfg *Config) error {
	cfg.StateDir = expandPath(cfg.StateDir)
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.BaseURL == "" {
		return fmt.Errorf("base_url is empty")
	}
	if cfg.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", cfg.TimeoutSeconds)
	}
	if cfg.SettleDelayMS < 0 {
		return fmt.Errorf("settle_delay_ms must not be negative, got %d", cfg.SettleDelayMS)
	}
	return nil
}
