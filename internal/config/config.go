// Package config handles configuration loading and defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultDataDir   = "~/.aitodo"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for aitodo.
type Config struct {
	// DataDir is where persisted state lives (one file per key).
	DataDir string `toml:"data_dir"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.aitodo/aitodo.toml)
// 3. Project config file (.aitodo.toml in current directory)
// 4. Environment variables (AITODO_*)
// 5. CLI flags registered on fs
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{
		DataDir:   DefaultDataDir,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}

	for _, path := range []string{findUserConfigFile(), findProjectConfigFile()} {
		if path == "" {
			continue
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg.DataDir = expandPath(cfg.DataDir)
	return cfg, nil
}

func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".aitodo", "aitodo.toml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func findProjectConfigFile() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	path := filepath.Join(wd, ".aitodo.toml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("AITODO_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("AITODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("AITODO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("AITODO_LOG_TIMESTAMPS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogTimestamps = b
		}
	}
}

func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory for persisted state")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	return fs.Parse(args)
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		if p == "~" {
			return home
		}
		return filepath.Join(home, p[2:])
	}
	return os.ExpandEnv(p)
}
