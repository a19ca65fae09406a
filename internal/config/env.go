// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// loadDotEnv reads a .env file from the working directory if present.
// Variables already set in the environment win.
func loadDotEnv() {
	_ = godotenv.Load()
}

// applyEnv overlays SYSMONI_* variables onto cfg.
func applyEnv(cfg *Config) {
	cfg.Interval = getEnvDuration("INTERVAL", cfg.Interval)
	cfg.Refresh = getEnvDuration("REFRESH", cfg.Refresh)
	cfg.HistorySize = getEnvInt("HISTORY", cfg.HistorySize)
	cfg.TopN = getEnvInt("TOP", cfg.TopN)
	cfg.Sort = getEnvString("SORT", cfg.Sort)
	cfg.Filter = getEnvString("FILTER", cfg.Filter)
	cfg.Logging = getEnvBool("LOGGING", cfg.Logging)
	cfg.ExportDir = getEnvString("EXPORT_DIR", cfg.ExportDir)
	cfg.LogFile = getEnvString("LOG_FILE", cfg.LogFile)
	cfg.LogLevel = getEnvString("LOG_LEVEL", cfg.LogLevel)
}

// getEnvString returns the value of EnvPrefix+key, or defaultVal if unset.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns EnvPrefix+key parsed as int, or defaultVal if unset or
// invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool accepts "true", "1", "yes" and "false", "0", "no"
// (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration accepts Go durations ("500ms", "2s") and bare seconds ("2").
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		} else if parsed, err2 := time.ParseDuration(val + "s"); err2 == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
