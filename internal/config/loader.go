package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/laureates/internal/domain/ranking"
)

// Environment variable names.
const (
	EnvPrefix = "LAUREATES_"
	EnvFile   = "LAUREATES_CONFIG"
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if LAUREATES_CONFIG is set
//  3. env (prefix LAUREATES_)
//
// A palette or group set given by a higher layer replaces the default one
// instead of merging with it.
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// LAUREATES_DEFAULT_TOP_N -> default_top_n; LAUREATES_PALETTE is a
	// comma separated list.
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
		if key == "config" {
			return "", nil
		}
		if key == "palette" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	cfg.Palette = nil
	cfg.CategoryGroups = nil
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = base.Palette
	}
	if len(cfg.CategoryGroups) == 0 {
		cfg.CategoryGroups = base.CategoryGroups
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.DataPath == "" {
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	}
	if !logLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("%w: log_level %q is not one of debug, info, warn, error", ErrInvalidConfig, c.LogLevel)
	}
	if c.DefaultTopN < ranking.MinN || c.DefaultTopN > ranking.MaxN {
		return fmt.Errorf("%w: default_top_n must be within %d..%d, got %d",
			ErrInvalidConfig, ranking.MinN, ranking.MaxN, c.DefaultTopN)
	}
	if c.MaxSchemaErrors < 1 {
		return fmt.Errorf("%w: max_schema_errors must be positive", ErrInvalidConfig)
	}
	for i, color := range c.Palette {
		if strings.TrimSpace(color) == "" {
			return fmt.Errorf("%w: palette entry %d is empty", ErrInvalidConfig, i)
		}
	}
	if _, err := c.Groups(); err != nil {
		return fmt.Errorf("%w: category_groups: %w", ErrInvalidConfig, err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
