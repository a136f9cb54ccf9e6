// Package config loads bmsearch settings.
// Loads from: CLI flags > env vars > config.toml > built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/xtruder/bookmarks-search/internal/bookmarks"
	"github.com/xtruder/bookmarks-search/internal/chromium"
)

// EnvConfigPath names the env var that points at a config file.
const EnvConfigPath = "BMSEARCH_CONFIG"

// Config holds all bmsearch configuration.
type Config struct {
	Log      LogConfig                `toml:"log"`
	Search   SearchConfig             `toml:"search"`
	Export   ExportConfig             `toml:"export"`
	Check    CheckConfig              `toml:"check"`
	Browsers map[string]BrowserConfig `toml:"browsers"`
}

// LogConfig controls diagnostics output.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
	File  string `toml:"file"`  // log destination in interactive mode; empty discards
}

// SearchConfig tunes result lists.
type SearchConfig struct {
	Limit int `toml:"limit"` // 0 = unlimited
}

// ExportConfig holds markdown export settings.
type ExportConfig struct {
	Dir string `toml:"dir"`
}

// CheckConfig holds link check settings.
type CheckConfig struct {
	Concurrency int           `toml:"concurrency"`
	Timeout     time.Duration `toml:"timeout"`
	Retries     int           `toml:"retries"`
	CacheDir    string        `toml:"cache_dir"`
}

// BrowserConfig overrides platform lookups for one browser.
type BrowserConfig struct {
	DataDir    string   `toml:"data_dir"`
	Executable string   `toml:"executable"`
	Profiles   []string `toml:"profiles"`
	Disabled   bool     `toml:"disabled"`
}

// BrowserOrder is the order browsers contribute records to the index.
var BrowserOrder = []bookmarks.BrowserID{bookmarks.Chrome, bookmarks.Edge}

// Default returns a Config with all built-in defaults.
func Default() *Config {
	cacheDir := ""
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, "bmsearch")
	}

	return &Config{
		Log:    LogConfig{Level: "info"},
		Search: SearchConfig{Limit: 0},
		Export: ExportConfig{Dir: "bookmarks"},
		Check: CheckConfig{
			Concurrency: 8,
			Timeout:     10 * time.Second,
			Retries:     2,
			CacheDir:    cacheDir,
		},
		Browsers: map[string]BrowserConfig{},
	}
}

// DefaultPath returns the config file location: $BMSEARCH_CONFIG, else
// <user config dir>/bmsearch/config.toml.
func DefaultPath() string {
	if v := os.Getenv(EnvConfigPath); v != "" {
		return v
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bmsearch", "config.toml")
}

// Load reads the config file at path over the defaults. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		meta, err := toml.DecodeFile(path, cfg)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Debug("no config file", "path", path)
		case err != nil:
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		default:
			warnUnknownKeys(meta, path)
		}
	}

	if v := os.Getenv("BMSEARCH_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Search.Limit < 0 {
		return fmt.Errorf("search.limit must not be negative")
	}
	if c.Check.Concurrency < 1 {
		return fmt.Errorf("check.concurrency must be at least 1")
	}
	for name := range c.Browsers {
		if !knownBrowser(name) {
			return fmt.Errorf("unknown browser %q in [browsers]", name)
		}
	}
	return nil
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// BrowserList returns the enabled browsers in BrowserOrder with their overrides applied.
func (c *Config) BrowserList() []chromium.Browser {
	var browsers []chromium.Browser
	for _, id := range BrowserOrder {
		bc := c.Browsers[string(id)]
		if bc.Disabled {
			continue
		}
		browsers = append(browsers, chromium.Browser{
			ID:         id,
			DataDir:    bc.DataDir,
			Executable: bc.Executable,
			Profiles:   bc.Profiles,
		})
	}
	return browsers
}

func knownBrowser(name string) bool {
	for _, id := range BrowserOrder {
		if string(id) == name {
			return true
		}
	}
	return false
}

func warnUnknownKeys(meta toml.MetaData, path string) {
	for _, key := range meta.Undecoded() {
		slog.Warn("unknown config key will be ignored",
			"key", key.String(),
			"file", filepath.Base(path))
	}
}

// ParseBrowser maps a user supplied browser name to its ID.
func ParseBrowser(name string) (bookmarks.BrowserID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !knownBrowser(name) {
		return "", fmt.Errorf("unknown browser %q", name)
	}
	return bookmarks.BrowserID(name), nil
}
