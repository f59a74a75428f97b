// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and environment variables over those defaults.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"

	"github.com/okian/laureates/internal/domain/category"
	"github.com/okian/laureates/internal/domain/ranking"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataPath is the laureate CSV read once at startup.
	DataPath string `koanf:"data_path"`

	// DefaultTopN is used by /api/countries when no top parameter is given.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxSchemaErrors caps how many row violations a failed load reports.
	MaxSchemaErrors int `koanf:"max_schema_errors"`

	// Palette colors the bars of the country chart, in rank order.
	Palette []string `koanf:"palette"`

	// CategoryGroups names the category sets offered to the selector.
	CategoryGroups map[string][]string `koanf:"category_groups"`
}

// New creates a Config with defaults. The context is accepted first to
// follow the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		DataPath:        "archive.csv",
		DefaultTopN:     5,
		MaxSchemaErrors: 20,
		Palette:         ranking.DefaultPalette(),
		CategoryGroups:  defaultGroups(),
	}
}

func defaultGroups() map[string][]string {
	groups := category.DefaultGroups()
	out := make(map[string][]string, len(groups))
	for name, cats := range groups {
		labels := make([]string, len(cats))
		for i, c := range cats {
			labels[i] = c.String()
		}
		out[name] = labels
	}
	return out
}

// Groups resolves CategoryGroups into typed category groups.
func (c *Config) Groups() (category.Groups, error) {
	return category.NewGroups(c.CategoryGroups)
}
