package controller

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"climate-server/internal/modules/climate/views"
	"climate-server/internal/utils"
)

func (c *climateControllerImpl) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := views.RenderIndex(&buf, &views.IndexData{Routes: indexLinks}); err != nil {
		slog.Error("index template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("index: write response failed", "error", err)
	}
}

func (c *climateControllerImpl) handlePrecipitation(w http.ResponseWriter, r *http.Request) {
	respond(w, r, "precipitation", c.service.Precipitation)
}

func (c *climateControllerImpl) handleStations(w http.ResponseWriter, r *http.Request) {
	respond(w, r, "stations", c.service.Stations)
}

func (c *climateControllerImpl) handleTobs(w http.ResponseWriter, r *http.Request) {
	respond(w, r, "temperature observations", c.service.TemperatureObservations)
}

func (c *climateControllerImpl) handleOneDate(w http.ResponseWriter, r *http.Request) {
	respond(w, r, "daily temperatures", c.service.OneDate)
}

func (c *climateControllerImpl) handleRange(w http.ResponseWriter, r *http.Request) {
	respond(w, r, "daily temperatures", c.service.Range)
}

// respond runs one query and writes its result as JSON. A failed query is
// logged and answered with a generic 500; nothing is retried.
func respond[T any](w http.ResponseWriter, r *http.Request, what string, query func(context.Context) (T, error)) {
	result, err := query(r.Context())
	if err != nil {
		slog.Error("query failed", "path", r.URL.Path, "query", what, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load "+what)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}
