package app

import (
	"errors"
	"fmt"
	"strings"
)

// Defaults.
const (
	DefaultOutputFile   = "target/maven-results.json"
	DefaultSettingsFile = "mvngraph.hcl"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Mode selects how manifests are found.
type Mode string

// Run modes.
const (
	// ModeHierarchical walks the aggregator tree from the root manifest.
	ModeHierarchical Mode = "hierarchical"
	// ModeList reads the listed manifests; directories are scanned.
	ModeList Mode = "list"
	// ModeStdin reads manifest paths from stdin, one per line.
	ModeStdin Mode = "stdin"
	// ModeAnalyze prints a debug analysis of a single manifest.
	ModeAnalyze Mode = "analyze"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	WorkspaceRoot string
	Mode          Mode
	Manifests     []string

	// OutputFile and SettingsFile come from flags. Empty means not given.
	OutputFile   string
	SettingsFile string

	// Env holds values read from the environment and .env.
	Env Environment

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.WorkspaceRoot == "" {
		return nil, errors.New("WorkspaceRoot is a required configuration field and cannot be empty")
	}

	if cfg.Mode == "" {
		cfg.Mode = ModeHierarchical
	}
	switch cfg.Mode {
	case ModeHierarchical, ModeStdin:
	case ModeList:
		if len(cfg.Manifests) == 0 {
			return nil, errors.New("list mode requires at least one manifest path")
		}
	case ModeAnalyze:
		if len(cfg.Manifests) != 1 {
			return nil, fmt.Errorf("analyze mode requires exactly one manifest path, got %d", len(cfg.Manifests))
		}
	default:
		return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
	}

	cfg.LogLevel = strings.ToLower(firstNonEmpty(cfg.LogLevel, cfg.Env.LogLevel, DefaultLogLevel))
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	cfg.LogFormat = strings.ToLower(firstNonEmpty(cfg.LogFormat, cfg.Env.LogFormat, DefaultLogFormat))
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	return &cfg, nil
}

// outputFile resolves the output path: flag, then settings file, then
// environment, then the default.
func (c *Config) outputFile(fromSettings string) string {
	return firstNonEmpty(c.OutputFile, fromSettings, c.Env.OutputFile, DefaultOutputFile)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
