package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aki/davbridge/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP bridge",
		Long: `Run the HTTP bridge in front of the WebDAV origin.

Routes:
  GET  /list           HTML listing of the configured directory
  GET  /list.json      the same listing as JSON
  GET  /download/<p>   file relay with Range support (HEAD also accepted)
  GET  /healthz        liveness probe`,
		Example: `  # Serve using davbridge.yaml in the current directory
  davbridge serve

  # Serve an origin given on the command line
  davbridge serve --origin https://dav.example.com/files --username alice --password s3cret --port 9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolveConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			origin, err := newOrigin(cfg)
			if err != nil {
				return err
			}

			srv, err := server.New(*cfg, origin, opts.newLogger())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on (overrides server.port)")

	return cmd
}
