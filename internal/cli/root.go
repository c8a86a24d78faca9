package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"climate-server/internal/config"
	"climate-server/internal/logging"
)

const appName = "climate-server"

// runtime carries what PersistentPreRunE prepared to the subcommands.
type runtime struct {
	version string
	verbose bool
	envFile string
	cfg     config.Config
	logger  *slog.Logger
}

// NewRootCmd builds the command tree. Without a subcommand it serves HTTP.
func NewRootCmd(version string) *cobra.Command {
	rt := &runtime{version: version}

	root := &cobra.Command{
		Use:   appName,
		Short: "Read-only HTTP API over the Hawaii climate dataset",
		Long: `Serves precipitation, station and temperature data from a pre-populated
SQLite dataset (station and measurement tables).

Configuration comes from the environment (APP_ENV, LOG_LEVEL, HTTP_ADDR,
SQLITE_PATH, DB_*), optionally preloaded from a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rt)
		},
	}

	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Enable verbose (debug) logging")
	root.PersistentFlags().StringVar(&rt.envFile, "env-file", ".env", "Environment file loaded before reading configuration")

	root.AddCommand(newServeCmd(rt), newQueryCmd(rt))
	return root
}

// Execute runs the root command with ctx, which is cancelled on shutdown signals.
func Execute(ctx context.Context, version string, args []string) error {
	root := NewRootCmd(version)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (rt *runtime) init(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(rt.envFile); err != nil {
		return err
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if rt.verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	rt.cfg = cfg
	rt.logger = logging.New(logOutput(cmd), cfg, rt.version, appName)
	slog.SetDefault(rt.logger)
	return nil
}

// logOutput keeps stdout clean for commands that print JSON.
func logOutput(cmd *cobra.Command) io.Writer {
	if cmd.Name() == queryCmdName {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}
