package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"climate-server/internal/app"
	"climate-server/internal/db"
	climate "climate-server/internal/modules/climate"
	"climate-server/internal/modules/climate/service"
)

const queryCmdName = "query"

type queryFunc func(ctx context.Context, svc *service.Service) (any, error)

func wrapQuery[T any](f func(*service.Service, context.Context) (T, error)) queryFunc {
	return func(ctx context.Context, svc *service.Service) (any, error) {
		return f(svc, ctx)
	}
}

// queries are keyed by the last segment of the matching HTTP route.
var queries = map[string]queryFunc{
	"precipitation": wrapQuery((*service.Service).Precipitation),
	"stations":      wrapQuery((*service.Service).Stations),
	"tobs":          wrapQuery((*service.Service).TemperatureObservations),
	"one":           wrapQuery((*service.Service).OneDate),
	"range":         wrapQuery((*service.Service).Range),
}

func queryNames() []string {
	names := make([]string, 0, len(queries))
	for n := range queries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func newQueryCmd(rt *runtime) *cobra.Command {
	var indent bool
	cmd := &cobra.Command{
		Use:   queryCmdName + " <" + strings.Join(queryNames(), "|") + ">",
		Short: "Run one API query against the dataset and print its JSON",
		Long: `Runs the same query an API route would and prints the JSON body to stdout.

Examples:
  climate-server query stations
  climate-server query precipitation --indent`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: queryNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), rt, args[0], cmd.OutOrStdout(), indent)
		},
	}
	cmd.Flags().BoolVar(&indent, "indent", false, "Pretty-print the JSON output")
	return cmd
}

func runQuery(ctx context.Context, rt *runtime, name string, out io.Writer, indent bool) error {
	query, ok := queries[name]
	if !ok {
		return fmt.Errorf("unknown query %q (allowed: %s)", name, strings.Join(queryNames(), ", "))
	}

	sqlDB, gormDB, err := app.OpenStore(rt.cfg, rt.logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(sqlDB); closeErr != nil {
			rt.logger.Error("db close", "error", closeErr)
		}
	}()

	result, err := query(ctx, climate.NewService(gormDB))
	if err != nil {
		return fmt.Errorf("query %s: %w", name, err)
	}

	enc := json.NewEncoder(out)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
