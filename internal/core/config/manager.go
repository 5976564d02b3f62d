// Package config loads, validates and persists davbridge configuration.
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aki/davbridge/internal/filemanager"
)

// DefaultFile is the configuration file looked up in the working directory
const DefaultFile = "davbridge.yaml"

// Manager reads and writes one configuration file
type Manager struct {
	path  string
	files *filemanager.Manager[Config]
}

// NewManager creates a manager for the file at path
func NewManager(path string) *Manager {
	if path == "" {
		path = DefaultFile
	}
	return &Manager{
		path: path,
		files: filemanager.NewManager[Config](
			filemanager.WithValidator(ValidateYAML),
			filemanager.WithLockTimeout(2*time.Second),
		),
	}
}

// Path returns the configuration file path
func (m *Manager) Path() string {
	return m.path
}

// Exists reports whether the configuration file is present
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

// Load reads, validates and defaults the configuration file
func (m *Manager) Load(ctx context.Context) (*Config, error) {
	cfg, _, err := m.files.Read(ctx, m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound{Path: m.path}
		}
		return nil, fmt.Errorf("invalid configuration %s: %w", m.path, err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// Save writes cfg to the configuration file
func (m *Manager) Save(ctx context.Context, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := m.files.Write(ctx, m.path, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Set changes a single dotted key (for example origin.url) in the file
func (m *Manager) Set(ctx context.Context, key, value string) error {
	setter, ok := setters[key]
	if !ok {
		return ErrUnknownKey{Key: key}
	}

	return m.files.Update(ctx, m.path, func(cfg *Config) error {
		if cfg.Version == "" {
			cfg.Version = CurrentVersion
		}
		if err := setter(cfg, value); err != nil {
			return err
		}
		return cfg.Validate()
	})
}

// Keys lists the keys accepted by Set
func Keys() []string {
	return []string{
		"origin.url", "origin.username", "origin.password", "origin.listPath",
		"server.port", "server.readHeaderTimeout", "mcp.transport", "mcp.port",
	}
}

var setters = map[string]func(*Config, string) error{
	"origin.url":      func(c *Config, v string) error { c.Origin.URL = v; return nil },
	"origin.username": func(c *Config, v string) error { c.Origin.Username = v; return nil },
	"origin.password": func(c *Config, v string) error { c.Origin.Password = v; return nil },
	"origin.listPath": func(c *Config, v string) error { c.Origin.ListPath = v; return nil },
	"server.port":     func(c *Config, v string) error { return setPort(&c.Server.Port, "server.port", v) },
	"server.readHeaderTimeout": func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ErrInvalid{Field: "server.readHeaderTimeout", Reason: err.Error()}
		}
		c.Server.ReadHeaderTimeout = d
		return nil
	},
	"mcp.transport": func(c *Config, v string) error { c.MCP.Transport = v; return nil },
	"mcp.port":      func(c *Config, v string) error { return setPort(&c.MCP.Port, "mcp.port", v) },
}

func setPort(dst *int, field, v string) error {
	port, err := strconv.Atoi(v)
	if err != nil {
		return ErrInvalid{Field: field, Reason: "must be a number"}
	}
	*dst = port
	return nil
}

// Validate checks the fields the bridge cannot run without
func (c *Config) Validate() error {
	u, err := url.Parse(c.Origin.URL)
	if c.Origin.URL == "" || err != nil {
		return ErrInvalid{Field: "origin.url", Reason: "must be an absolute http(s) URL"}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalid{Field: "origin.url", Reason: "must be an absolute http(s) URL"}
	}
	if c.Origin.ListPath != "" && !strings.HasPrefix(c.Origin.ListPath, "/") {
		return ErrInvalid{Field: "origin.listPath", Reason: "must start with /"}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return ErrInvalid{Field: "server.port", Reason: "must be between 0 and 65535"}
	}
	if c.MCP.Port < 0 || c.MCP.Port > 65535 {
		return ErrInvalid{Field: "mcp.port", Reason: "must be between 0 and 65535"}
	}
	switch c.MCP.Transport {
	case "", "stdio", "http":
	default:
		return ErrInvalid{Field: "mcp.transport", Reason: "must be stdio or http"}
	}
	return nil
}
