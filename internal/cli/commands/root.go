// Package commands implements the davbridge command line.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aki/davbridge/internal/cli/ui"
	"github.com/aki/davbridge/internal/core/logger"
)

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	configPath string
	format     string
	logLevel   string
	logFormat  string

	origin   string
	username string
	password string
}

// NewRootCommand builds the davbridge command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "davbridge",
		Short: "HTTP bridge for browsing and downloading files from a WebDAV server",
		Long: `davbridge exposes a WebDAV origin over plain HTTP.

It renders the origin's directory listing as an HTML page and relays file
downloads, including byte ranges, while holding the origin credentials itself.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			format, err := ui.ParseFormat(opts.format)
			if err != nil {
				return err
			}
			if _, err := logger.ParseLevel(opts.logLevel); err != nil {
				return err
			}
			if _, err := logger.ParseFormat(opts.logFormat); err != nil {
				return err
			}
			return ui.SetGlobalFormatter(format)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file (default davbridge.yaml)")
	flags.StringVar(&opts.format, "format", "pretty", "Output format (pretty, json)")
	flags.StringVar(&opts.origin, "origin", "", "WebDAV origin URL (overrides config and "+envURLHint+")")
	flags.StringVar(&opts.username, "username", "", "WebDAV username")
	flags.StringVar(&opts.password, "password", "", "WebDAV password")
	registerLoggerFlags(cmd, opts)

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newLsCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		_ = ui.GlobalFormatter.OutputError(err)
		return err
	}
	return nil
}
