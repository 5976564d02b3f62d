package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aki/davbridge/internal/cli/ui"
	"github.com/aki/davbridge/internal/core/config"
	"github.com/aki/davbridge/internal/webdav"
)

const envURLHint = config.EnvURL

// configManager returns the manager for the --config file
func (o *rootOptions) configManager() *config.Manager {
	return config.NewManager(o.configPath)
}

// resolveConfig merges the configuration file, the environment and the
// origin flags, in increasing order of precedence.
func (o *rootOptions) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := o.configManager().Resolve(commandContext(cmd), nil)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("origin") {
		cfg.Origin.URL = o.origin
	}
	if flags.Changed("username") {
		cfg.Origin.Username = o.username
	}
	if flags.Changed("password") {
		cfg.Origin.Password = o.password
	}

	return cfg, nil
}

// newOrigin validates cfg and builds the WebDAV client for it
func newOrigin(cfg *config.Config) (*webdav.Origin, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Origin.Password != "" && strings.HasPrefix(cfg.Origin.URL, "http://") {
		ui.Warning("Origin credentials are sent unencrypted to %s", cfg.Origin.URL)
	}
	return webdav.NewOrigin(cfg.Origin.URL, cfg.Origin.Username, cfg.Origin.Password)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
