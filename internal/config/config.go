package config

import (
	"errors"
	"flag"
	"time"

	apperrors "github.com/Dicklesworthstone/sysmoni/internal/errors"
	"github.com/Dicklesworthstone/sysmoni/internal/history"
	"github.com/Dicklesworthstone/sysmoni/internal/sampler"
)

// EnvPrefix prefixes every environment override, e.g. SYSMONI_INTERVAL.
const EnvPrefix = "SYSMONI_"

// Config carries runtime options for sysmoni.
type Config struct {
	Interval    time.Duration `yaml:"interval"`
	Refresh     time.Duration `yaml:"refresh"`
	HistorySize int           `yaml:"history_size"`
	TopN        int           `yaml:"top_n"`
	Sort        string        `yaml:"sort"`
	Filter      string        `yaml:"filter"`
	JSON        bool          `yaml:"json"`
	JSONStream  bool          `yaml:"json_stream"`
	Logging     bool          `yaml:"logging"`
	ExportDir   string        `yaml:"export_dir"`
	LogFile     string        `yaml:"log_file"`
	LogLevel    string        `yaml:"log_level"`
	ConfigFile  string        `yaml:"-"`
}

func Default() Config {
	return Config{
		Interval:    time.Second,
		Refresh:     time.Second,
		HistorySize: history.DefaultSize,
		TopN:        sampler.DefaultTopN,
		Sort:        "cpu",
		ExportDir:   ".",
		LogLevel:    "info",
	}
}

// FromFlags resolves configuration from, in increasing precedence: defaults,
// the YAML file named by -config (or SYSMONI_CONFIG), .env and environment
// variables, then explicitly set flags.
func FromFlags(args []string) (Config, error) {
	cfg := Default()
	fs := flag.NewFlagSet("sysmoni", flag.ContinueOnError)
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML config file")
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "sampling interval")
	fs.DurationVar(&cfg.Refresh, "refresh", cfg.Refresh, "dashboard refresh interval")
	fs.IntVar(&cfg.HistorySize, "history", cfg.HistorySize, "chart points kept")
	fs.IntVar(&cfg.TopN, "top", cfg.TopN, "processes kept per snapshot")
	fs.StringVar(&cfg.Sort, "sort", cfg.Sort, "process sort column: cpu|memory")
	fs.StringVar(&cfg.Filter, "filter", cfg.Filter, "process name filter")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "output one-shot JSON and exit")
	fs.BoolVar(&cfg.JSONStream, "json-stream", cfg.JSONStream, "stream NDJSON until interrupted")
	fs.BoolVar(&cfg.Logging, "logging", cfg.Logging, "start with snapshot logging on")
	fs.StringVar(&cfg.ExportDir, "export-dir", cfg.ExportDir, "directory for snapshot and log exports")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write diagnostics to this file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug|info|warn|error")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Config{}, err
		}
		return Config{}, apperrors.NewConfigError("%v", err)
	}

	flagged := cfg
	loadDotEnv()

	resolved := Default()
	path := getEnvString("CONFIG", "")
	if isFlagSet(fs, "config") {
		path = flagged.ConfigFile
	}
	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		resolved = fileCfg
		resolved.ConfigFile = path
	}
	applyEnv(&resolved)
	applyFlags(fs, &resolved, flagged)

	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}
	return resolved, nil
}

// applyFlags copies explicitly set flags from flagged onto cfg.
func applyFlags(fs *flag.FlagSet, cfg *Config, flagged Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "interval":
			cfg.Interval = flagged.Interval
		case "refresh":
			cfg.Refresh = flagged.Refresh
		case "history":
			cfg.HistorySize = flagged.HistorySize
		case "top":
			cfg.TopN = flagged.TopN
		case "sort":
			cfg.Sort = flagged.Sort
		case "filter":
			cfg.Filter = flagged.Filter
		case "json":
			cfg.JSON = flagged.JSON
		case "json-stream":
			cfg.JSONStream = flagged.JSONStream
		case "logging":
			cfg.Logging = flagged.Logging
		case "export-dir":
			cfg.ExportDir = flagged.ExportDir
		case "log-file":
			cfg.LogFile = flagged.LogFile
		case "log-level":
			cfg.LogLevel = flagged.LogLevel
		}
	})
}

// Validate rejects settings the collector cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Interval <= 0:
		return apperrors.NewConfigError("interval must be positive, got %s", c.Interval)
	case c.Refresh <= 0:
		return apperrors.NewConfigError("refresh must be positive, got %s", c.Refresh)
	case c.HistorySize <= 0:
		return apperrors.NewConfigError("history must be positive, got %d", c.HistorySize)
	case c.TopN <= 0:
		return apperrors.NewConfigError("top must be positive, got %d", c.TopN)
	case c.Sort != "cpu" && c.Sort != "memory" && c.Sort != "mem":
		return apperrors.NewConfigError("sort must be cpu or memory, got %q", c.Sort)
	case c.JSON && c.JSONStream:
		return apperrors.NewConfigError("-json and -json-stream are mutually exclusive")
	}
	return nil
}

// Headless reports whether sysmoni runs without the dashboard.
func (c Config) Headless() bool { return c.JSON || c.JSONStream }
