package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/davbridge/internal/cli/ui"
	"github.com/aki/davbridge/internal/core/logger"
)

// registerLoggerFlags registers global logging flags
func registerLoggerFlags(cmd *cobra.Command, opts *rootOptions) {
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")
}

// newLogger creates a logger based on CLI flags. Logs always go to stderr so
// they never mix with command output or the stdio MCP transport.
func (o *rootOptions) newLogger() logger.Logger {
	// Both values were checked in PersistentPreRunE.
	level, _ := logger.ParseLevel(o.logLevel)
	format, _ := logger.ParseFormat(o.logFormat)

	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(ui.Stderr),
	)
}
