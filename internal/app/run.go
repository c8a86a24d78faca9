package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"gorm.io/gorm"

	"climate-server/internal/config"
	db "climate-server/internal/db"
	httpapi "climate-server/internal/httpapi"
	climate "climate-server/internal/modules/climate"
	climateviews "climate-server/internal/modules/climate/views"
)

// Run serves the climate API until ctx is cancelled. If ready is non-nil it
// receives the bound listener address once the server accepts connections.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger, ready chan<- string) error {
	logger.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"sqlitePath", cfg.SQLitePath,
		"sqliteMaxOpenConns", cfg.SQLiteMaxOpenConns,
		"sqliteMaxIdleConns", cfg.SQLiteMaxIdleConns,
		"sqliteConnMaxLifetime", cfg.SQLiteConnMaxLifetime,
		"sqliteLogQueries", cfg.SQLiteLogQueries,
	)

	sqlDB, gormDB, err := OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(sqlDB); closeErr != nil {
			logger.Error("db close", "error", closeErr)
		}
	}()

	if err := climateviews.LoadTemplates(); err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	mux := httpapi.NewMux(sqlDB)
	climate.RegisterFeature(mux, gormDB)

	srv := httpapi.NewServer(cfg, logger, mux)
	ln, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.HTTPAddr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()
	if ready != nil {
		ready <- ln.Addr().String()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}

// OpenStore opens the shared read-only pool and the gorm handle over it, and
// checks that the dataset answers a query.
func OpenStore(cfg config.Config, logger *slog.Logger) (*sql.DB, *gorm.DB, error) {
	sqlDB, err := db.Open(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var ok int
	if err := sqlDB.QueryRow(`SELECT 1`).Scan(&ok); err != nil {
		_ = db.Close(sqlDB)
		return nil, nil, err
	}
	if ok != 1 {
		_ = db.Close(sqlDB)
		return nil, nil, errors.New("database connection failed")
	}

	gormDB, err := db.OpenGorm(sqlDB)
	if err != nil {
		_ = db.Close(sqlDB)
		return nil, nil, err
	}
	logger.Info("database connection successful", "path", cfg.SQLitePath)
	return sqlDB, gormDB, nil
}
