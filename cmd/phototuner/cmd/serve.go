package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ironsheep/phototuner/internal/server"
)

// NewServeCmd runs the MCP tool server on stdin/stdout.
func NewServeCmd(ctx context.Context, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "run the MCP editing server over stdio",
		Long:  "Run the MCP server. Requests are read from stdin and responses written to stdout; logs go to stderr or the configured log file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.New(a.cfg,
				server.WithLogger(slog.Default()),
				server.WithVersion(a.build.Version))
			return srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	return cmd
}
