/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/widgetfilter/errors"
	"github.com/suparena/widgetfilter/registry"
	"github.com/suparena/widgetfilter/storagemodels"
)

// Widget store backends.
const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
)

// Environment variables that override the file.
const (
	EnvDriver      = "WIDGETFILTER_DRIVER"
	EnvDSN         = "WIDGETFILTER_DSN"
	EnvLogLevel    = "WIDGETFILTER_LOG_LEVEL"
	EnvWidgetTable = "DDB_WIDGET_TABLE"
	EnvRegion      = "AWS_REGION"
	EnvAccessKey   = "AWS_ACCESS_KEY_ID"
	EnvSecretKey   = "AWS_SECRET_ACCESS_KEY"
	EnvEndpoint    = "DDB_ENDPOINT"
)

// Config is the configuration of a widget filter service.
type Config struct {
	Database DatabaseConfig            `yaml:"database"`
	Widgets  WidgetsConfig             `yaml:"widgets"`
	Entities []registry.EntityMetadata `yaml:"entities"`
	Log      LogConfig                 `yaml:"log"`
}

// DatabaseConfig selects the SQL database entities are read from.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// WidgetsConfig selects where filter widgets are loaded from.
type WidgetsConfig struct {
	// Backend is "memory" (the Static list) or "dynamodb".
	Backend  string `yaml:"backend"`
	Table    string `yaml:"table"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`

	// Credentials are only read from the environment.
	AccessKey string `yaml:"-"`
	SecretKey string `yaml:"-"`

	Static []storagemodels.Widget `yaml:"static"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a configuration with an in-memory SQLite database and
// in-memory widget store.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "sqlite", DSN: ":memory:"},
		Widgets:  WidgetsConfig{Backend: BackendMemory},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults, loads a .env file if
// one exists and applies environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := Parse(data, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	// .env is optional
	_ = godotenv.Load()
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg. Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings with the environment variables that are set.
func (c *Config) ApplyEnv() {
	set := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	set(&c.Database.Driver, EnvDriver)
	set(&c.Database.DSN, EnvDSN)
	set(&c.Log.Level, EnvLogLevel)
	set(&c.Widgets.Table, EnvWidgetTable)
	set(&c.Widgets.Region, EnvRegion)
	set(&c.Widgets.Endpoint, EnvEndpoint)
	set(&c.Widgets.AccessKey, EnvAccessKey)
	set(&c.Widgets.SecretKey, EnvSecretKey)
}

// Validate checks the configuration and fills entity defaults.
func (c *Config) Validate() error {
	if c.Database.Driver == "" {
		return errors.NewValidationError("database.driver", "driver is required")
	}
	if c.Database.DSN == "" {
		return errors.NewValidationError("database.dsn", "dsn is required")
	}

	switch c.Widgets.Backend {
	case "", BackendMemory:
		c.Widgets.Backend = BackendMemory
	case BackendDynamoDB:
		if c.Widgets.Table == "" {
			return errors.NewValidationError("widgets.table", "table is required for the dynamodb backend")
		}
	default:
		return errors.NewValidationError("widgets.backend", fmt.Sprintf("unknown backend %q", c.Widgets.Backend))
	}

	seen := make(map[string]bool, len(c.Entities))
	for i := range c.Entities {
		if err := c.Entities[i].Validate(); err != nil {
			return fmt.Errorf("entities[%d]: %w", i, err)
		}
		if seen[c.Entities[i].Type] {
			return errors.NewValidationError("entities", fmt.Sprintf("duplicate entity %q", c.Entities[i].Type))
		}
		seen[c.Entities[i].Type] = true
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts a level name into a slog.Level. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	if level == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo, errors.NewValidationError("log.level", fmt.Sprintf("unknown level %q", level))
	}
	return l, nil
}
