package weather

import (
	"time"
)

// dayLayout is the canonical calendar date format used for keys and display.
const dayLayout = "2006-01-02"

// AirportCodeEntry is one row of the airport code table.
type AirportCodeEntry struct {
	IATA string `json:"iataCode"`
	ICAO string `json:"icaoCode"`
}

// FlightDelayRecord holds the average delays for one airport on one day.
type FlightDelayRecord struct {
	AirportCode string    `json:"airportCode"` // IATA
	Date        time.Time `json:"date"`        // 00:00 UTC
	AvgDepDelay float64   `json:"avgDepDelay"`
	AvgArrDelay float64   `json:"avgArrDelay"`
}

// WeatherRecord is a daily observation for one station. Any of the numeric
// fields may be nil when the source cell was blank.
type WeatherRecord struct {
	StationID       string    `json:"stationId"` // ICAO
	Date            time.Time `json:"date"`
	PrecipitationIn *float64  `json:"precipitationIn"`
	WindAvgMPH      *float64  `json:"windAvgMph"`
	VisibilityMi    *float64  `json:"visibilityMi"`
	TempMaxF        *float64  `json:"tempMaxF"`
}

// JoinedRecord is a flight delay row extended with the matching weather
// observation, if any.
type JoinedRecord struct {
	FlightDelayRecord

	// StationID is the ICAO code the airport mapped to; empty when unmapped.
	StationID string `json:"stationId,omitempty"`
	Matched   bool   `json:"matched"`

	PrecipitationIn *float64 `json:"precipitationIn"`
	WindAvgMPH      *float64 `json:"windAvgMph"`
	VisibilityMi    *float64 `json:"visibilityMi"`
	TempMaxF        *float64 `json:"tempMaxF"`
}

// Value returns the weather value selected by m, or nil when it is missing.
func (r JoinedRecord) Value(m Metric) *float64 {
	switch m.Column {
	case ColumnPrecipitation:
		return r.PrecipitationIn
	case ColumnWind:
		return r.WindAvgMPH
	case ColumnVisibility:
		return r.VisibilityMi
	case ColumnTemperature:
		return r.TempMaxF
	default:
		return nil
	}
}

// Day truncates t to a calendar date at 00:00 UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDay renders a calendar date as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(dayLayout)
}
