package controller

import (
	"net/http"

	"climate-server/internal/modules/climate/service"
	"climate-server/internal/modules/climate/views"
)

const (
	PrecipitationPath = "/api/v1.0/precipitation"
	StationsPath      = "/api/v1.0/stations"
	TobsPath          = "/api/v1.0/tobs"
	OneDatePath       = "/api/v1.0/one"
	RangePath         = "/api/v1.0/range"
)

// indexLinks is what GET / lists, in display order.
var indexLinks = []views.RouteLink{
	{Path: PrecipitationPath, Label: "Precipitation Data"},
	{Path: StationsPath, Label: "Station Data"},
	{Path: TobsPath, Label: "Temperature Data"},
	{Path: OneDatePath, Label: "Min Avg and Max Temperature " + service.SingleDateStart + " Forward"},
	{Path: RangePath, Label: "Min Avg and Max Temperature " + service.RangeStart + " to " + service.RangeEnd},
}

type ClimateController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type climateControllerImpl struct {
	service *service.Service
}

func NewClimateController(service *service.Service) ClimateController {
	return &climateControllerImpl{service: service}
}

func (c *climateControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", c.handleIndex)
	mux.HandleFunc("GET "+PrecipitationPath, c.handlePrecipitation)
	mux.HandleFunc("GET "+StationsPath, c.handleStations)
	mux.HandleFunc("GET "+TobsPath, c.handleTobs)
	mux.HandleFunc("GET "+OneDatePath, c.handleOneDate)
	mux.HandleFunc("GET "+RangePath, c.handleRange)
}
