package repository

import (
	"context"

	"gorm.io/gorm"

	"climate-server/internal/modules/climate/types"
)

// ClimateRepository reads the station and measurement tables. Dates are
// YYYY-MM-DD strings and every bound is compared as text by SQLite.
// Results come back in the store's scan or grouping order.
type ClimateRepository interface {
	GetPrecipitationSince(ctx context.Context, from string) ([]types.PrecipitationReading, error)
	GetStations(ctx context.Context) ([]types.Station, error)
	GetTemperatureObservations(ctx context.Context) ([]types.TemperatureObservation, error)
	// GetDailyTemperatures groups by date; an empty to leaves the range open.
	GetDailyTemperatures(ctx context.Context, from string, to string) ([]types.DailyTemperature, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ClimateRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) GetPrecipitationSince(ctx context.Context, from string) ([]types.PrecipitationReading, error) {
	var out []types.PrecipitationReading
	err := r.db.WithContext(ctx).
		Model(&types.Measurement{}).
		Select("date", "prcp").
		Where("date >= ?", from).
		Scan(&out).Error
	if err != nil {
		return nil, wrap("get precipitation", err)
	}
	return out, nil
}

func (r *repositoryImpl) GetStations(ctx context.Context) ([]types.Station, error) {
	var out []types.Station
	err := r.db.WithContext(ctx).
		Select("id", "name").
		Find(&out).Error
	if err != nil {
		return nil, wrap("get stations", err)
	}
	return out, nil
}

func (r *repositoryImpl) GetTemperatureObservations(ctx context.Context) ([]types.TemperatureObservation, error) {
	var out []types.TemperatureObservation
	err := r.db.WithContext(ctx).
		Model(&types.Measurement{}).
		Select("date", "tobs").
		Scan(&out).Error
	if err != nil {
		return nil, wrap("get temperature observations", err)
	}
	return out, nil
}

func (r *repositoryImpl) GetDailyTemperatures(ctx context.Context, from string, to string) ([]types.DailyTemperature, error) {
	q := r.db.WithContext(ctx).
		Model(&types.Measurement{}).
		Select("date, MIN(tobs) AS min, AVG(tobs) AS avg, MAX(tobs) AS max").
		Where("date >= ?", from)
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	var out []types.DailyTemperature
	if err := q.Group("date").Scan(&out).Error; err != nil {
		return nil, wrap("get daily temperatures", err)
	}
	return out, nil
}
