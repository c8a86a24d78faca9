package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"climate-server/internal/config"
)

func NewServer(cfg config.Config, logger *slog.Logger, mux *http.ServeMux) *http.Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           requestLogger(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}
