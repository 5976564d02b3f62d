package config

import (
	"context"
	"errors"
	"os"
)

// Environment variables that override the configuration file
const (
	EnvURL      = "DAVBRIDGE_URL"
	EnvUsername = "DAVBRIDGE_USERNAME"
	EnvPassword = "DAVBRIDGE_PASSWORD"
	EnvListPath = "DAVBRIDGE_LIST_PATH"
)

// LookupFunc resolves an environment variable
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides origin settings from the environment. A nil lookup uses
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup LookupFunc) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(EnvURL); ok && v != "" {
		c.Origin.URL = v
	}
	if v, ok := lookup(EnvUsername); ok {
		c.Origin.Username = v
	}
	if v, ok := lookup(EnvPassword); ok {
		c.Origin.Password = v
	}
	if v, ok := lookup(EnvListPath); ok {
		c.Origin.ListPath = v
	}
}

// Resolve loads the configuration file if present, then applies environment
// overrides. A missing file is not an error; the environment may name the
// origin on its own.
func (m *Manager) Resolve(ctx context.Context, lookup LookupFunc) (*Config, error) {
	cfg, err := m.Load(ctx)
	if err != nil {
		var notFound ErrNotFound
		if !errors.As(err, &notFound) {
			return nil, err
		}
		cfg = &Config{Version: CurrentVersion}
		applyDefaults(cfg)
	}

	cfg.ApplyEnv(lookup)
	return cfg, nil
}
