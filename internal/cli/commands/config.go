package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aki/davbridge/internal/cli/ui"
	"github.com/aki/davbridge/internal/core/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage davbridge configuration",
		Long: `Manage the davbridge configuration file.

The file is davbridge.yaml in the working directory unless --config is given.
Environment variables (` + strings.Join([]string{config.EnvURL, config.EnvUsername, config.EnvPassword, config.EnvListPath}, ", ") + `)
and the --origin, --username and --password flags override it at run time.`,
		Example: `  # Create a configuration file
  davbridge config init --origin https://dav.example.com/files

  # View current configuration
  davbridge config show

  # Change a single value
  davbridge config set server.port 9000

  # Validate configuration
  davbridge config validate`,
	}

	cmd.AddCommand(newConfigInitCmd(opts))
	cmd.AddCommand(newConfigShowCmd(opts))
	cmd.AddCommand(newConfigValidateCmd(opts))
	cmd.AddCommand(newConfigSetCmd(opts))

	return cmd
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := opts.configManager()
			if mgr.Exists() && !force {
				return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", mgr.Path())
			}

			cfg := config.DefaultConfig()
			if opts.origin != "" {
				cfg.Origin.URL = opts.origin
			}
			cfg.Origin.Username = opts.username
			cfg.Origin.Password = opts.password

			if err := mgr.Save(commandContext(cmd), cfg); err != nil {
				return err
			}

			ui.Success("Configuration written to %s", mgr.Path())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file")

	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the current configuration",
		Long:  "Display the configuration file with the password redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.configManager().Load(commandContext(cmd))
			if err != nil {
				return err
			}

			redacted := cfg.Redacted()
			if ui.GlobalFormatter.IsJSON() {
				return ui.GlobalFormatter.Output(redacted)
			}

			data, err := yaml.Marshal(redacted)
			if err != nil {
				return fmt.Errorf("failed to marshal configuration: %w", err)
			}
			ui.OutputLine("%s", strings.TrimRight(string(data), "\n"))
			return nil
		},
	}
}

func newConfigValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate the configuration file.

This command checks:
- The file matches the configuration schema
- The origin URL is an absolute http(s) URL
- Ports and the MCP transport are usable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := opts.configManager()

			// Load runs the schema validation
			cfg, err := mgr.Load(commandContext(cmd))
			if err == nil {
				err = cfg.Validate()
			}
			if err != nil {
				var notFound config.ErrNotFound
				if errors.As(err, &notFound) {
					return err
				}
				ui.Error("Configuration validation failed: %v", err)
				return fmt.Errorf("invalid configuration")
			}

			ui.Success("Configuration is valid")
			return nil
		},
	}
}

func newConfigSetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Set a single configuration value. Keys: " + strings.Join(config.Keys(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := opts.configManager()
			if err := mgr.Set(commandContext(cmd), args[0], args[1]); err != nil {
				return err
			}

			ui.Success("Set %s in %s", args[0], mgr.Path())
			return nil
		},
	}
}
