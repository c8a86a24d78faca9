package cli

import (
	"context"

	"github.com/spf13/cobra"

	"climate-server/internal/app"
)

func newServeCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the climate API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rt)
		},
	}
}

func runServe(ctx context.Context, rt *runtime) error {
	rt.logger.Info("starting",
		"version", rt.version,
		"env", rt.cfg.AppEnv,
		"log_level", rt.cfg.LogLevel.String(),
	)
	return app.Run(ctx, rt.cfg, rt.logger, nil)
}
