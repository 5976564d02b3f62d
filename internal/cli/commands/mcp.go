package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aki/davbridge/internal/mcp"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	var (
		transport string
		port      int
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server",
		Long: `Start a Model Context Protocol server exposing the origin listing.

Tools:     webdav_list (optional path below origin.listPath)
Resources: webdav://listing`,
		Example: `  # Serve MCP over stdio for a local agent
  davbridge mcp

  # Serve MCP over HTTP (SSE)
  davbridge mcp --transport http --port 3001`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolveConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("transport") {
				cfg.MCP.Transport = transport
			}
			if cmd.Flags().Changed("port") {
				cfg.MCP.Port = port
			}

			origin, err := newOrigin(cfg)
			if err != nil {
				return err
			}

			log := opts.newLogger()
			server, err := mcp.NewServer(mcp.Options{
				Origin:    origin,
				ListPath:  cfg.Origin.ListPath,
				Transport: cfg.MCP.Transport,
				Port:      cfg.MCP.Port,
				Version:   Version,
				Logger:    log,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("Starting MCP server", "transport", cfg.MCP.Transport)
			return server.Start(ctx)
		},
	}

	cmd.Flags().StringVarP(&transport, "transport", "t", "stdio", "Transport type (stdio, http)")
	cmd.Flags().IntVarP(&port, "port", "p", 3001, "Port for the HTTP transport")

	return cmd
}
