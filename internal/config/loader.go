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
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if ASCEND_CONFIG is set
//  3. env (prefix ASCEND_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("ASCEND_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: ASCEND_ADDR, ASCEND_STORE_BACKEND, ...
	// Map env keys like ASCEND_STORE_BACKEND -> store_backend (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("ASCEND_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "ascend_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.StoreBackend {
	case "memory":
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("%w: postgres backend requires postgres_dsn", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidConfig, c.StoreBackend)
	}
	if c.ClientsPerPoint <= 0 {
		return fmt.Errorf("%w: clients_per_point must be positive", ErrInvalidConfig)
	}
	if c.MaxActivityLimit <= 0 {
		return fmt.Errorf("%w: max_activity_limit must be positive", ErrInvalidConfig)
	}
	if c.DedupeSize <= 0 {
		return fmt.Errorf("%w: dedupe_size must be positive", ErrInvalidConfig)
	}
	return nil
}
