// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all contactbook configuration.
type Config struct {
	Storage Storage `yaml:"storage"`
	Export  Export  `yaml:"export"`
	Log     Log     `yaml:"log"`
	UI      UI      `yaml:"ui"`
}

// Storage holds database settings.
type Storage struct {
	Driver string `yaml:"driver"` // "sqlite" | "sqlite3"
	Path   string `yaml:"path"`
}

// Export holds CSV export settings.
type Export struct {
	DefaultPath string `yaml:"default_path"` // Prefilled in the export prompt.
}

// Log holds structured logging settings.
type Log struct {
	File  string `yaml:"file"`  // Empty disables logging.
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// UI holds terminal UI settings.
type UI struct {
	Title      string `yaml:"title"`
	ListHeight int    `yaml:"list_height"` // Visible rows in the result list.
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: Storage{
			Driver: "sqlite",
			Path:   "contacts.db",
		},
		Export: Export{
			DefaultPath: "contacts.csv",
		},
		Log: Log{
			Level: "info",
		},
		UI: UI{
			Title:      "Smart Contact Book",
			ListHeight: 15,
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite", "sqlite3":
		// valid
	default:
		return fmt.Errorf("config: storage.driver must be \"sqlite\" or \"sqlite3\", got %q", c.Storage.Driver)
	}
	if c.Storage.Path == "" {
		return errors.New("config: storage.path cannot be empty")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	if c.UI.ListHeight <= 0 {
		return fmt.Errorf("config: ui.list_height must be positive, got %d", c.UI.ListHeight)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: CONTACTBOOK_DB, CONTACTBOOK_DRIVER, CONTACTBOOK_LOG_FILE,
// CONTACTBOOK_LOG_LEVEL, CONTACTBOOK_LIST_HEIGHT.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CONTACTBOOK_DB"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("CONTACTBOOK_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("CONTACTBOOK_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("CONTACTBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CONTACTBOOK_LIST_HEIGHT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid CONTACTBOOK_LIST_HEIGHT %q: %w", v, err)
		}
		c.UI.ListHeight = n
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Storage *rawStorage `yaml:"storage"`
	Export  *rawExport  `yaml:"export"`
	Log     *rawLog     `yaml:"log"`
	UI      *rawUI      `yaml:"ui"`
}

type rawStorage struct {
	Driver *string `yaml:"driver"`
	Path   *string `yaml:"path"`
}

type rawExport struct {
	DefaultPath *string `yaml:"default_path"`
}

type rawLog struct {
	File  *string `yaml:"file"`
	Level *string `yaml:"level"`
}

type rawUI struct {
	Title      *string `yaml:"title"`
	ListHeight *int    `yaml:"list_height"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Storage != nil {
		if layer.Storage.Driver != nil {
			c.Storage.Driver = *layer.Storage.Driver
		}
		if layer.Storage.Path != nil {
			c.Storage.Path = *layer.Storage.Path
		}
	}
	if layer.Export != nil {
		if layer.Export.DefaultPath != nil {
			c.Export.DefaultPath = *layer.Export.DefaultPath
		}
	}
	if layer.Log != nil {
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
	}
	if layer.UI != nil {
		if layer.UI.Title != nil {
			c.UI.Title = *layer.UI.Title
		}
		if layer.UI.ListHeight != nil {
			c.UI.ListHeight = *layer.UI.ListHeight
		}
	}
}
