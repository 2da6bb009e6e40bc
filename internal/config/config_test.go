package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points HOME and the working directory at empty temp dirs so Load
// sees no real config files.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatal(err)
		}
	})
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.Timeout() != 15*time.Second {
		t.Errorf("Timeout() = %v, want 15s", cfg.Timeout())
	}
	if cfg.SettleDelay() != 100*time.Millisecond {
		t.Errorf("SettleDelay() = %v, want 100ms", cfg.SettleDelay())
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadUserConfigFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".taskdeck")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "base_url = \"https://todo.example.com/api/v1\"\ntimeout_seconds = 30\n"
	if err := os.WriteFile(filepath.Join(dir, "taskdeck.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != "https://todo.example.com/api/v1" {
		t.Errorf("BaseURL = %q, want file value", cfg.BaseURL)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.TimeoutSeconds)
	}
	// Fields the file does not mention keep their defaults.
	if cfg.SettleDelayMS != DefaultSettleDelayMS {
		t.Errorf("SettleDelayMS = %d, want default", cfg.SettleDelayMS)
	}
}

func TestProjectFileOverridesUserFile(t *testing.T) {
	home := isolate(t)
	userDir := filepath.Join(home, ".taskdeck")
	if err := os.MkdirAll(userDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "taskdeck.toml"),
		[]byte("log_level = \"warn\"\ntimeout_seconds = 30\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("taskdeck.toml", []byte("log_level = \"debug\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want project value debug", cfg.LogLevel)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want user value 30 to survive", cfg.TimeoutSeconds)
	}
}

func TestEnvOverridesFiles(t *testing.T) {
	isolate(t)
	if err := os.WriteFile("taskdeck.toml", []byte("base_url = \"https://file.example.com\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TASKDECK_BASE_URL", "https://env.example.com/api/v1")
	t.Setenv("TASKDECK_SETTLE_DELAY_MS", "0")
	t.Setenv("TASKDECK_LOG_TIMESTAMPS", "yes")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != "https://env.example.com/api/v1" {
		t.Errorf("BaseURL = %q, want env value", cfg.BaseURL)
	}
	if cfg.SettleDelayMS != 0 {
		t.Errorf("SettleDelayMS = %d, want 0", cfg.SettleDelayMS)
	}
	if !cfg.LogTimestamps {
		t.Error("LogTimestamps should be true")
	}
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	isolate(t)
	t.Setenv("TASKDECK_BASE_URL", "https://todo.example.com/api/v1/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != "https://todo.example.com/api/v1" {
		t.Errorf("BaseURL = %q, want trailing slash removed", cfg.BaseURL)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero timeout", key: "TASKDECK_TIMEOUT_SECONDS", value: "0"},
		{name: "negative settle delay", key: "TASKDECK_SETTLE_DELAY_MS", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Error("Load should have failed")
			}
		})
	}
}

func TestStateDirExpansion(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := filepath.Join(home, ".taskdeck")
	if cfg.StateDir != want {
		t.Errorf("StateDir = %q, want %q", cfg.StateDir, want)
	}
	if cfg.SessionFile() != filepath.Join(want, "session.json") {
		t.Errorf("SessionFile() = %q", cfg.SessionFile())
	}
	if cfg.CookieFile() != filepath.Join(want, "cookies.json") {
		t.Errorf("CookieFile() = %q", cfg.CookieFile())
	}
}

func TestBoolFromString(t *testing.T) {
	truthy := []string{"1", "true", "TRUE", "yes", "on", " on "}
	for _, v := range truthy {
		if !boolFromString(v) {
			t.Errorf("boolFromString(%q) = false, want true", v)
		}
	}
	falsy := []string{"", "0", "false", "off", "nope"}
	for _, v := range falsy {
		if boolFromString(v) {
			t.Errorf("boolFromString(%q) = true, want false", v)
		}
	}
}
