package types

// Station is a row of the station table.
type Station struct {
	ID        int64   `gorm:"column:id;primaryKey"`
	Code      string  `gorm:"column:station"`
	Name      string  `gorm:"column:name"`
	Latitude  float64 `gorm:"column:latitude"`
	Longitude float64 `gorm:"column:longitude"`
	Elevation float64 `gorm:"column:elevation"`
}

func (Station) TableName() string { return "station" }

// Measurement is a row of the measurement table. Date is the stored
// YYYY-MM-DD text and is compared as text.
type Measurement struct {
	ID      int64    `gorm:"column:id;primaryKey"`
	Station string   `gorm:"column:station"`
	Date    string   `gorm:"column:date"`
	Prcp    *float64 `gorm:"column:prcp"`
	Tobs    float64  `gorm:"column:tobs"`
}

func (Measurement) TableName() string { return "measurement" }

type StationSummary struct {
	ID   int64  `json:"Id"`
	Name string `json:"Name"`
}

type PrecipitationReading struct {
	Date string   `gorm:"column:date"`
	Prcp *float64 `gorm:"column:prcp"`
}

// Precipitation maps a date to its precipitation in inches; null when not recorded.
type Precipitation map[string]*float64

type TemperatureObservation struct {
	Date string  `json:"Date" gorm:"column:date"`
	Tobs float64 `json:"Temp Observed" gorm:"column:tobs"`
}

// DailyTemperature is the min/avg/max observed temperature for one date.
type DailyTemperature struct {
	Date string  `json:"Date" gorm:"column:date"`
	Min  float64 `json:"Min" gorm:"column:min"`
	Avg  float64 `json:"Avg" gorm:"column:avg"`
	Max  float64 `json:"Max" gorm:"column:max"`
}
