package weather

import (
	"fmt"
	"sort"
	"time"

	"github.com/i474232898/airport-weather/internal/log"
)

// Dataset is the immutable result of one load: the source tables plus the
// derived mapping and joined table. Nothing mutates a Dataset once built.
type Dataset struct {
	Mapping map[string]string
	Flights []FlightDelayRecord
	Weather []WeatherRecord
	Joined  []JoinedRecord

	// Airports are the distinct flight airport codes, sorted.
	Airports []string
	MinDate  time.Time
	MaxDate  time.Time

	LoadedAt time.Time
}

// NewDataset derives the mapping and joined table from the loaded tables.
func NewDataset(codes []AirportCodeEntry, flights []FlightDelayRecord, weather []WeatherRecord) *Dataset {
	mapping := BuildMapping(codes)

	if _, shadowed := indexWeather(weather); shadowed > 0 {
		log.Warnf("weather: %d duplicate station/date rows ignored; first row wins", shadowed)
	}

	ds := &Dataset{
		Mapping:  mapping,
		Flights:  flights,
		Weather:  weather,
		Joined:   Join(flights, weather, mapping),
		Airports: AvailableAirports(flights),
		LoadedAt: time.Now().UTC(),
	}
	if from, to, ok := DateRange(flights); ok {
		ds.MinDate, ds.MaxDate = from, to
	}

	if unmapped := ds.Unmapped(); len(unmapped) > 0 {
		log.Warnf("weather: no ICAO station for %v; their weather fields will be empty", unmapped)
	}

	log.Infow("dataset built",
		"flights", len(flights),
		"weather", len(weather),
		"airports", len(ds.Airports),
		"stations", len(mapping),
	)
	return ds
}

// Station looks up the ICAO code for an airport. The error wraps ErrLookup.
func (d *Dataset) Station(airport string) (string, error) {
	station, ok := d.Mapping[airport]
	if !ok {
		return "", fmt.Errorf("%w: no ICAO code for %s", ErrLookup, airport)
	}
	return station, nil
}

// Unmapped lists flight airports that have no ICAO mapping, sorted.
func (d *Dataset) Unmapped() []string {
	var missing []string
	for _, a := range d.Airports {
		if _, err := d.Station(a); err != nil {
			missing = append(missing, a)
		}
	}
	sort.Strings(missing)
	return missing
}

// Empty reports whether the dataset has no flight rows.
func (d *Dataset) Empty() bool {
	return len(d.Flights) == 0
}
