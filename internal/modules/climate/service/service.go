package service

import (
	"context"

	"climate-server/internal/modules/climate/repository"
	"climate-server/internal/modules/climate/types"
)

// Fixed query bounds, compared as text against the stored YYYY-MM-DD dates.
const (
	PrecipitationCutoff = "2016-08-23"
	SingleDateStart     = "2017-01-01"
	RangeStart          = "2017-01-06"
	// RangeEnd is not a calendar date. As text it sorts after every 2017 date,
	// so the range runs to the end of 2017. Kept as served; see DESIGN.md.
	RangeEnd = "2017-31-12"
)

type Service struct {
	repository repository.ClimateRepository
}

func NewService(repository repository.ClimateRepository) *Service {
	return &Service{repository: repository}
}

// Precipitation returns date -> prcp for every measurement on or after the cutoff.
// Several stations report the same date; the last row read for a date wins.
func (s *Service) Precipitation(ctx context.Context) (types.Precipitation, error) {
	readings, err := s.repository.GetPrecipitationSince(ctx, PrecipitationCutoff)
	if err != nil {
		return nil, err
	}
	return CollapseByDate(readings), nil
}

// CollapseByDate builds the precipitation mapping. Each insert overwrites any
// earlier value for the same date.
func CollapseByDate(readings []types.PrecipitationReading) types.Precipitation {
	out := make(types.Precipitation, len(readings))
	for _, r := range readings {
		out[r.Date] = r.Prcp
	}
	return out
}

func (s *Service) Stations(ctx context.Context) ([]types.StationSummary, error) {
	stations, err := s.repository.GetStations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.StationSummary, 0, len(stations))
	for _, st := range stations {
		out = append(out, types.StationSummary{ID: st.ID, Name: st.Name})
	}
	return out, nil
}

// TemperatureObservations returns every measurement row. No date window is applied.
func (s *Service) TemperatureObservations(ctx context.Context) ([]types.TemperatureObservation, error) {
	obs, err := s.repository.GetTemperatureObservations(ctx)
	if err != nil {
		return nil, err
	}
	if obs == nil {
		obs = []types.TemperatureObservation{}
	}
	return obs, nil
}

func (s *Service) OneDate(ctx context.Context) ([]types.DailyTemperature, error) {
	return s.daily(ctx, SingleDateStart, "")
}

func (s *Service) Range(ctx context.Context) ([]types.DailyTemperature, error) {
	return s.daily(ctx, RangeStart, RangeEnd)
}

func (s *Service) daily(ctx context.Context, from, to string) ([]types.DailyTemperature, error) {
	days, err := s.repository.GetDailyTemperatures(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if days == nil {
		days = []types.DailyTemperature{}
	}
	return days, nil
}
