// Package config loads tasks configuration.
//
// Sources, in increasing priority:
//  1. Defaults
//  2. tasks.toml in the working directory (optional)
//  3. Environment variables
//
// Environment variables:
//   - TASKS_DB_PATH: database file, relative to the working directory (default: db.db3)
//   - TASKS_BACKEND: storage backend (default: sqlite)
//   - TASKS_LOG_LEVEL: debug, info, warn, error (default: warn)
//   - TASKS_LOG_FORMAT: text, json, logfmt (default: text)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/JamesPrial/tasks/internal/pathutil"
)

// Defaults.
const (
	DefaultDBPath    = "db.db3"
	DefaultBackend   = "sqlite"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// FileName is the optional project config file looked up in the working directory.
const FileName = "tasks.toml"

// Environment variable names.
const (
	EnvDBPath    = "TASKS_DB_PATH"
	EnvBackend   = "TASKS_BACKEND"
	EnvLogLevel  = "TASKS_LOG_LEVEL"
	EnvLogFormat = "TASKS_LOG_FORMAT"
)

// Config holds the resolved configuration for one invocation.
type Config struct {
	// DBPath is the database file. After Load it is absolute and inside WorkDir.
	DBPath string `toml:"db_path"`

	// Backend names the storage backend.
	Backend string `toml:"backend"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// WorkDir is the directory the configuration was loaded from.
	WorkDir string `toml:"-"`

	// File is the config file that was read, or empty if none was found.
	File string `toml:"-"`
}

// Load builds the configuration for workDir.
//
// Returns an error if tasks.toml is malformed or the database path escapes
// workDir.
func Load(workDir string) (*Config, error) {
	if strings.TrimSpace(workDir) == "" {
		return nil, errors.New("working directory is empty")
	}

	cfg := &Config{}
	setDefaults(cfg)
	cfg.WorkDir = workDir

	file := filepath.Join(workDir, FileName)
	if _, err := os.Stat(file); err == nil {
		if err := loadConfigFile(cfg, file); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", file, err)
		}
		cfg.File = file
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking config file %s: %w", file, err)
	}

	loadFromEnv(cfg)

	if err := finalizeConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.DBPath = DefaultDBPath
	cfg.Backend = DefaultBackend
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// loadConfigFile decodes TOML into cfg, rejecting unknown keys.
func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvDBPath)); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBackend)); v != "" {
		cfg.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.LogFormat = v
	}
}

func finalizeConfig(cfg *Config) error {
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	safePath, err := pathutil.ResolveSafePath(cfg.WorkDir, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("invalid database path: %w", err)
	}
	cfg.DBPath = safePath
	return nil
}
