package httpapi

import (
	"database/sql"
	"log/slog"
	"net/http"

	"climate-server/internal/utils"
)

type healthchecker interface {
	handleHealthz(w http.ResponseWriter, r *http.Request)
}

type healthcheckerImpl struct {
	db *sql.DB
}

func NewHealthchecker(db *sql.DB) healthchecker {
	return &healthcheckerImpl{db: db}
}

// handleHealthz reports whether the dataset can still be read.
func (h *healthcheckerImpl) handleHealthz(w http.ResponseWriter, r *http.Request) {
	var stations int
	if err := h.db.QueryRowContext(r.Context(), `SELECT COUNT(*) FROM station`).Scan(&stations); err != nil {
		slog.Error("failed to read dataset", "error", err)
		utils.WriteError(w, http.StatusServiceUnavailable, "dataset not readable")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "stations": stations})
}

func registerHealthcheck(mux *http.ServeMux, db *sql.DB) {
	healthchecker := NewHealthchecker(db)
	mux.HandleFunc("GET /healthz", healthchecker.handleHealthz)
}
