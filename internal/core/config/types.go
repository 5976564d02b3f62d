package config

import "time"

// Config is the davbridge configuration file
type Config struct {
	Version string       `yaml:"version" json:"version"`
	Origin  OriginConfig `yaml:"origin" json:"origin"`
	Server  ServerConfig `yaml:"server,omitempty" json:"server"`
	MCP     MCPConfig    `yaml:"mcp,omitempty" json:"mcp"`
}

// OriginConfig locates the WebDAV origin and its static credentials
type OriginConfig struct {
	URL      string `yaml:"url" json:"url"`
	Username string `yaml:"username,omitempty" json:"username,omitempty"`
	Password string `yaml:"password,omitempty" json:"password,omitempty"`
	// ListPath is appended to URL for the /list endpoint
	ListPath string `yaml:"listPath,omitempty" json:"listPath,omitempty"`
}

// ServerConfig configures the HTTP bridge
type ServerConfig struct {
	Port              int           `yaml:"port,omitempty" json:"port"`
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout,omitempty" json:"readHeaderTimeout"`
}

// MCPConfig configures the MCP server
type MCPConfig struct {
	Transport string `yaml:"transport,omitempty" json:"transport"`
	Port      int    `yaml:"port,omitempty" json:"port"`
}

const (
	// CurrentVersion is the only configuration format version
	CurrentVersion = "1.0"
	// DefaultPort is the HTTP bridge port
	DefaultPort = 8080
	// DefaultMCPPort is the port of the MCP HTTP transport
	DefaultMCPPort = 3001
	// DefaultReadHeaderTimeout bounds how long a client may take to send headers
	DefaultReadHeaderTimeout = 10 * time.Second
)

// DefaultConfig returns a configuration pointing at a placeholder origin
func DefaultConfig() *Config {
	cfg := &Config{
		Version: CurrentVersion,
		Origin: OriginConfig{
			URL: "https://dav.example.com",
		},
	}
	applyDefaults(cfg)
	return cfg
}

// Redacted returns a copy with the password masked
func (c Config) Redacted() Config {
	if c.Origin.Password != "" {
		c.Origin.Password = "********"
	}
	return c
}

func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.ReadHeaderTimeout == 0 {
		cfg.Server.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if cfg.MCP.Transport == "" {
		cfg.MCP.Transport = "stdio"
	}
	if cfg.MCP.Port == 0 {
		cfg.MCP.Port = DefaultMCPPort
	}
}
