package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/Dicklesworthstone/sysmoni/internal/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG", "INTERVAL", "REFRESH", "HISTORY", "TOP", "SORT", "FILTER",
		"LOGGING", "EXPORT_DIR", "LOG_FILE", "LOG_LEVEL",
	} {
		t.Setenv(EnvPrefix+k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sysmoni.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestFromFlagsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromFlags(nil)
	if err != nil {
		t.Fatalf("FromFlags: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
	if cfg.Interval != time.Second || cfg.HistorySize != 60 || cfg.TopN != 50 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Headless() {
		t.Error("default config should not be headless")
	}
}

func TestFromFlagsParsesFlags(t *testing.T) {
	clearEnv(t)
	cfg, err := FromFlags([]string{
		"-interval", "250ms", "-history", "10", "-top", "5",
		"-sort", "memory", "-filter", "go", "-json", "-logging",
	})
	if err != nil {
		t.Fatalf("FromFlags: %v", err)
	}
	if cfg.Interval != 250*time.Millisecond {
		t.Errorf("Interval = %s", cfg.Interval)
	}
	if cfg.HistorySize != 10 || cfg.TopN != 5 {
		t.Errorf("HistorySize=%d TopN=%d", cfg.HistorySize, cfg.TopN)
	}
	if cfg.Sort != "memory" || cfg.Filter != "go" {
		t.Errorf("Sort=%q Filter=%q", cfg.Sort, cfg.Filter)
	}
	if !cfg.JSON || !cfg.Logging || !cfg.Headless() {
		t.Errorf("expected json+logging, got %+v", cfg)
	}
}

func TestPrecedence(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "interval: 3s\nhistory_size: 30\ntop_n: 7\nsort: memory\n")

	t.Setenv(EnvPrefix+"CONFIG", path)
	t.Setenv(EnvPrefix+"HISTORY", "40")

	cfg, err := FromFlags([]string{"-top", "9"})
	if err != nil {
		t.Fatalf("FromFlags: %v", err)
	}
	if cfg.Interval != 3*time.Second {
		t.Errorf("Interval = %s, want file value 3s", cfg.Interval)
	}
	if cfg.HistorySize != 40 {
		t.Errorf("HistorySize = %d, want env value 40", cfg.HistorySize)
	}
	if cfg.TopN != 9 {
		t.Errorf("TopN = %d, want flag value 9", cfg.TopN)
	}
	if cfg.Sort != "memory" {
		t.Errorf("Sort = %q, want file value", cfg.Sort)
	}
	if cfg.ConfigFile != path {
		t.Errorf("ConfigFile = %q", cfg.ConfigFile)
	}
}

func TestConfigFlagOverridesEnvPath(t *testing.T) {
	clearEnv(t)
	envPath := writeConfig(t, "top_n: 3\n")
	flagPath := writeConfig(t, "top_n: 4\n")
	t.Setenv(EnvPrefix+"CONFIG", envPath)

	cfg, err := FromFlags([]string{"-config", flagPath})
	if err != nil {
		t.Fatalf("FromFlags: %v", err)
	}
	if cfg.TopN != 4 {
		t.Errorf("TopN = %d, want 4", cfg.TopN)
	}
}

func TestEnvDurationForms(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		val  string
		want time.Duration
	}{
		{"2s", 2 * time.Second},
		{"500ms", 500 * time.Millisecond},
		{"3", 3 * time.Second},
		{"nonsense", time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.val, func(t *testing.T) {
			t.Setenv(EnvPrefix+"INTERVAL", tt.val)
			if got := getEnvDuration("INTERVAL", time.Second); got != tt.want {
				t.Errorf("getEnvDuration(%q) = %s, want %s", tt.val, got, tt.want)
			}
		})
	}
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		val  string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"false", true, false},
		{"no", true, false},
		{"maybe", true, true},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Setenv(EnvPrefix+"LOGGING", tt.val)
		if got := getEnvBool("LOGGING", tt.def); got != tt.want {
			t.Errorf("getEnvBool(%q, %v) = %v, want %v", tt.val, tt.def, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero interval", func(c *Config) { c.Interval = 0 }},
		{"negative refresh", func(c *Config) { c.Refresh = -time.Second }},
		{"zero history", func(c *Config) { c.HistorySize = 0 }},
		{"zero top", func(c *Config) { c.TopN = 0 }},
		{"bad sort", func(c *Config) { c.Sort = "pid" }},
		{"both headless modes", func(c *Config) { c.JSON, c.JSONStream = true, true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			var ce apperrors.ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Validate() = %v, want ConfigError", err)
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestFromFlagsErrors(t *testing.T) {
	clearEnv(t)

	_, err := FromFlags([]string{"-interval", "0s"})
	var ce apperrors.ConfigError
	if !errors.As(err, &ce) {
		t.Errorf("zero interval: got %v, want ConfigError", err)
	}

	_, err = FromFlags([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")})
	if !errors.As(err, &ce) {
		t.Errorf("missing file: got %v, want ConfigError", err)
	}

	_, err = FromFlags([]string{"-h"})
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("-h: got %v, want flag.ErrHelp", err)
	}
}

func TestLoadFileRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "interval: [1, 2\n")
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "filter: ssh\n")
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Filter != "ssh" {
		t.Errorf("Filter = %q", cfg.Filter)
	}
	if cfg.Interval != time.Second || cfg.TopN != 50 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}
