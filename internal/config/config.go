package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Config holds all archiwum configuration.
type Config struct {
	// Archive storage
	Archive ArchiveConfig `yaml:"archive"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`
}

// ArchiveConfig configures the record archive.
type ArchiveConfig struct {
	// Dir holds one TOML file per contract. Relative paths are resolved
	// against the application base directory, "~" against the home dir.
	Dir string `yaml:"dir"`

	// Concurrency bounds how many files are read at once when listing.
	Concurrency int `yaml:"concurrency"`

	// Watch refreshes the entries list when the directory changes.
	Watch bool `yaml:"watch"`

	// WatchDebounce coalesces bursts of file events.
	WatchDebounce string `yaml:"watch_debounce"`
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	Theme string `yaml:"theme"` // auto, light, dark
}

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{"auto", "light", "dark"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Archive: ArchiveConfig{
			Dir:           "archiwum",
			Concurrency:   128,
			Watch:         true,
			WatchDebounce: "250ms",
		},
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "text",
			Console: false,
		},
		UI: UIConfig{
			Theme: "auto",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("ARCHIWUM_ARCHIVE_DIR"); dir != "" {
		c.Archive.Dir = dir
	}
	if level := os.Getenv("ARCHIWUM_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if theme := os.Getenv("ARCHIWUM_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if debug := os.Getenv("ARCHIWUM_DEBUG"); debug != "" {
		if on, err := strconv.ParseBool(debug); err == nil {
			c.Logging.DebugMode = on
		}
	}
}

// ArchiveDir resolves the archive directory against base.
func (c *Config) ArchiveDir(base string) (string, error) {
	dir, err := homedir.Expand(c.Archive.Dir)
	if err != nil {
		return "", fmt.Errorf("expanding archive dir %q: %w", c.Archive.Dir, err)
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(base, dir)
	}
	return filepath.Clean(dir), nil
}

// GetWatchDebounce returns the watcher debounce as a duration.
func (c *Config) GetWatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Archive.WatchDebounce)
	if err != nil {
		return 250 * time.Millisecond
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Archive.Dir == "" {
		return fmt.Errorf("archive.dir must not be empty")
	}
	if c.Archive.Concurrency < 1 {
		return fmt.Errorf("archive.concurrency must be positive, got %d", c.Archive.Concurrency)
	}
	if _, err := time.ParseDuration(c.Archive.WatchDebounce); err != nil {
		return fmt.Errorf("invalid archive.watch_debounce %q: %w", c.Archive.WatchDebounce, err)
	}
	if !slices.Contains(ValidLevels, c.Logging.Level) {
		return fmt.Errorf("invalid logging.level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	if !slices.Contains(ValidFormats, c.Logging.Format) {
		return fmt.Errorf("invalid logging.format: %s (valid: %v)", c.Logging.Format, ValidFormats)
	}
	if !slices.Contains(ValidThemes, c.UI.Theme) {
		return fmt.Errorf("invalid ui.theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}
	return nil
}
