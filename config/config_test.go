/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/suparena/widgetfilter/errors"
	"github.com/suparena/widgetfilter/storagemodels"
)

const sample = `
database:
  driver: sqlite
  dsn: catalog.db
widgets:
  backend: memory
  static:
    - id: categories
      kind: filter
      listing:
        mode: query
        businessEntity: App\Entity\Product
        query: WHERE item.published = 1
        orderBy: '[{"by":"price","order":"desc"}]'
        maxResults: 10
entities:
  - type: App\Entity\Product
    table: product
    columns: [name, price, published]
  - type: App\Entity\Category
    table: category
    identifier: code
log:
  level: debug
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "widgetfilter.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.DSN != "catalog.db" {
		t.Errorf("Unexpected dsn %q", cfg.Database.DSN)
	}
	if len(cfg.Entities) != 2 {
		t.Fatalf("Expected 2 entities, got %d", len(cfg.Entities))
	}
	if cfg.Entities[0].Type != `App\Entity\Product` || cfg.Entities[0].Identifier != "id" {
		t.Errorf("Unexpected product mapping: %+v", cfg.Entities[0])
	}
	if cfg.Entities[1].Identifier != "code" {
		t.Errorf("Expected identifier code, got %q", cfg.Entities[1].Identifier)
	}

	if len(cfg.Widgets.Static) != 1 {
		t.Fatalf("Expected 1 static widget, got %d", len(cfg.Widgets.Static))
	}
	listing := cfg.Widgets.Static[0].Listing
	if listing == nil || listing.Mode != storagemodels.ModeQuery || listing.MaxResults != 10 {
		t.Errorf("Unexpected listing: %+v", listing)
	}
	if listing.Query != "WHERE item.published = 1" {
		t.Errorf("Unexpected query fragment %q", listing.Query)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Widgets.Backend != BackendMemory {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvDSN, "override.db")
	t.Setenv(EnvWidgetTable, "widgets-test")
	t.Setenv(EnvAccessKey, "key")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.DSN != "override.db" {
		t.Errorf("Expected dsn override, got %q", cfg.Database.DSN)
	}
	if cfg.Widgets.Table != "widgets-test" || cfg.Widgets.AccessKey != "key" {
		t.Errorf("Expected widget overrides, got %+v", cfg.Widgets)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Expected level warn, got %q", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"MissingDSN", func(c *Config) { c.Database.DSN = "" }, "database.dsn"},
		{"UnknownBackend", func(c *Config) { c.Widgets.Backend = "redis" }, "widgets.backend"},
		{"DynamoDBWithoutTable", func(c *Config) { c.Widgets.Backend = BackendDynamoDB }, "widgets.table"},
		{"BadLevel", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			var ve *errors.ValidationError
			if !stderrors.As(err, &ve) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, ve.Field)
			}
		})
	}

	t.Run("DuplicateEntity", func(t *testing.T) {
		cfg := Default()
		if err := Parse([]byte(sample), cfg); err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		cfg.Entities = append(cfg.Entities, cfg.Entities[0])
		if err := cfg.Validate(); !errors.IsValidationError(err) {
			t.Fatalf("Expected validation error, got %v", err)
		}
	})
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if err := Parse([]byte("databse:\n  dsn: x\n"), Default()); err == nil {
		t.Fatal("Expected error for unknown key")
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
}
