package repository

import (
	"context"
	"errors"
	"sort"
	"testing"

	"climate-server/internal/dbtest"
	"climate-server/internal/modules/climate/types"
)

const seedStations = `INSERT INTO station (id, station, name, latitude, longitude, elevation) VALUES
  (1, 'USC00519397', 'WAIKIKI 717.2, HI US', 21.2716, -157.8168, 3.0),
  (2, 'USC00513117', 'KANEOHE 838.1, HI US', 21.4234, -157.8015, 14.6)`

const seedMeasurements = `INSERT INTO measurement (id, station, date, prcp, tobs) VALUES
  (1, 'USC00519397', '2016-08-22', 0.5, 69),
  (2, 'USC00519397', '2016-08-23', 0.0, 70),
  (3, 'USC00519397', '2016-08-24', NULL, 72),
  (4, 'USC00513117', '2017-01-01', 0.1, 60),
  (5, 'USC00519397', '2017-01-01', 0.3, 80),
  (6, 'USC00519397', '2017-01-06', 0.2, 65),
  (7, 'USC00513117', '2017-08-23', 0.0, 81),
  (8, 'USC00519397', '2018-01-02', 0.0, 75)`

func newRepo(t *testing.T, seed ...string) ClimateRepository {
	t.Helper()
	return NewRepository(dbtest.OpenGorm(t, seed...))
}

func TestNewRepository(t *testing.T) {
	if repo := newRepo(t); repo == nil {
		t.Fatal("NewRepository returned nil")
	}
}

func TestGetStations_Empty(t *testing.T) {
	stations, err := newRepo(t).GetStations(context.Background())
	if err != nil {
		t.Fatalf("GetStations: %v", err)
	}
	if len(stations) != 0 {
		t.Fatalf("GetStations: got %d stations, want 0", len(stations))
	}
}

func TestGetStations_WithData(t *testing.T) {
	stations, err := newRepo(t, seedStations).GetStations(context.Background())
	if err != nil {
		t.Fatalf("GetStations: %v", err)
	}
	if len(stations) != 2 {
		t.Fatalf("GetStations: got %d stations, want 2", len(stations))
	}
	// insertion order, no explicit sort
	if stations[0].ID != 1 || stations[0].Name != "WAIKIKI 717.2, HI US" {
		t.Errorf("first station: got id=%d name=%q", stations[0].ID, stations[0].Name)
	}
	if stations[1].ID != 2 || stations[1].Name != "KANEOHE 838.1, HI US" {
		t.Errorf("second station: got id=%d name=%q", stations[1].ID, stations[1].Name)
	}
}

func TestGetPrecipitationSince(t *testing.T) {
	readings, err := newRepo(t, seedMeasurements).GetPrecipitationSince(context.Background(), "2016-08-23")
	if err != nil {
		t.Fatalf("GetPrecipitationSince: %v", err)
	}
	if len(readings) != 7 {
		t.Fatalf("got %d readings, want 7", len(readings))
	}
	for _, r := range readings {
		if r.Date < "2016-08-23" {
			t.Errorf("reading before cutoff: %q", r.Date)
		}
	}
	if readings[0].Date != "2016-08-23" || readings[0].Prcp == nil || *readings[0].Prcp != 0 {
		t.Errorf("first reading = %+v; want 2016-08-23 with 0.0", readings[0])
	}
	if readings[1].Date != "2016-08-24" || readings[1].Prcp != nil {
		t.Errorf("second reading = %+v; want 2016-08-24 with NULL", readings[1])
	}
}

func TestGetTemperatureObservations_AllRows(t *testing.T) {
	obs, err := newRepo(t, seedMeasurements).GetTemperatureObservations(context.Background())
	if err != nil {
		t.Fatalf("GetTemperatureObservations: %v", err)
	}
	if len(obs) != 8 {
		t.Fatalf("got %d observations, want 8 (no date filter)", len(obs))
	}
	if obs[0] != (types.TemperatureObservation{Date: "2016-08-22", Tobs: 69}) {
		t.Errorf("first observation = %+v", obs[0])
	}
}

func TestGetDailyTemperatures_OpenRange(t *testing.T) {
	days, err := newRepo(t, seedMeasurements).GetDailyTemperatures(context.Background(), "2017-01-01", "")
	if err != nil {
		t.Fatalf("GetDailyTemperatures: %v", err)
	}
	byDate := make(map[string]types.DailyTemperature, len(days))
	for _, d := range days {
		byDate[d.Date] = d
		if d.Min > d.Avg || d.Avg > d.Max {
			t.Errorf("%s: min/avg/max out of order: %+v", d.Date, d)
		}
	}
	if len(byDate) != 4 {
		t.Fatalf("got %d dates, want 4: %+v", len(byDate), days)
	}
	want := types.DailyTemperature{Date: "2017-01-01", Min: 60, Avg: 70, Max: 80}
	if byDate["2017-01-01"] != want {
		t.Errorf("2017-01-01 = %+v; want %+v", byDate["2017-01-01"], want)
	}
}

func TestGetDailyTemperatures_TextUpperBound(t *testing.T) {
	// "2017-31-12" is not a calendar date; as text it sorts after every 2017 date and before 2018.
	days, err := newRepo(t, seedMeasurements).GetDailyTemperatures(context.Background(), "2017-01-06", "2017-31-12")
	if err != nil {
		t.Fatalf("GetDailyTemperatures: %v", err)
	}
	got := make([]string, 0, len(days))
	for _, d := range days {
		got = append(got, d.Date)
	}
	sort.Strings(got)
	if len(got) != 2 || got[0] != "2017-01-06" || got[1] != "2017-08-23" {
		t.Fatalf("dates = %v; want [2017-01-06 2017-08-23]", got)
	}
}

func TestRepository_DataAccessError(t *testing.T) {
	gdb := dbtest.OpenGorm(t)
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("DB(): %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	repo := NewRepository(gdb)
	ctx := context.Background()

	checks := map[string]func() error{
		"stations": func() error { _, err := repo.GetStations(ctx); return err },
		"precipitation": func() error {
			_, err := repo.GetPrecipitationSince(ctx, "2016-08-23")
			return err
		},
		"tobs": func() error { _, err := repo.GetTemperatureObservations(ctx); return err },
		"daily": func() error {
			_, err := repo.GetDailyTemperatures(ctx, "2017-01-01", "")
			return err
		},
	}
	for name, call := range checks {
		t.Run(name, func(t *testing.T) {
			err := call()
			if !errors.Is(err, ErrDataAccess) {
				t.Fatalf("err = %v; want ErrDataAccess", err)
			}
			var dae *DataAccessError
			if !errors.As(err, &dae) || dae.Op == "" {
				t.Fatalf("err = %#v; want *DataAccessError with Op", err)
			}
		})
	}
}

func TestRepository_CanceledContext(t *testing.T) {
	repo := newRepo(t, seedStations)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.GetStations(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v; want context.Canceled", err)
	}
}
