package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aki/davbridge/internal/cli/ui"
	"github.com/aki/davbridge/internal/core/logger"
)

func newLsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [path]",
		Short: "List files on the WebDAV origin",
		Long: `List a directory of the WebDAV origin.

The path is relative to the origin URL and defaults to origin.listPath.`,
		Example: `  # List the configured directory
  davbridge ls

  # List another directory as JSON
  davbridge ls /photos/2024/ --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolveConfig(cmd)
			if err != nil {
				return err
			}

			origin, err := newOrigin(cfg)
			if err != nil {
				return err
			}

			listPath := cfg.Origin.ListPath
			if len(args) == 1 {
				listPath = args[0]
			}

			ctx := logger.WithContext(commandContext(cmd), opts.newLogger())
			entries, err := origin.List(ctx, listPath)
			if err != nil {
				return fmt.Errorf("failed to list files: %w", err)
			}

			if ui.GlobalFormatter.IsJSON() {
				return ui.GlobalFormatter.Output(entries)
			}

			ui.PrintEntryList(origin.URL(listPath), entries)
			return nil
		},
	}
}
