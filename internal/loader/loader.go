// Package loader builds a weather.Dataset from the three source CSV files.
package loader

import (
	"context"
	"fmt"
	"io"

	"github.com/i474232898/airport-weather/internal/log"
	"github.com/i474232898/airport-weather/internal/source"
	"github.com/i474232898/airport-weather/internal/weather"
)

// Files names the three input tables inside a source.
type Files struct {
	AirportCodes string
	FlightDelays string
	Weather      string
}

// DefaultFiles are the file names the analyzer ships with.
func DefaultFiles() Files {
	return Files{
		AirportCodes: "airport_codes.csv",
		FlightDelays: "daily_flight_delays.csv",
		Weather:      "daily_weather.csv",
	}
}

// Loader reads the input tables from a Source. It implements weather.Loader.
type Loader struct {
	src   source.Source
	files Files
}

// New creates a Loader.
func New(src source.Source, files Files) *Loader {
	return &Loader{src: src, files: files}
}

// Load reads airport codes, flight delays and weather, in that order, and
// derives the dataset.
func (l *Loader) Load(ctx context.Context) (*weather.Dataset, error) {
	log.Infof("loading dataset from %s", l.src.Name())

	codes, err := readWith(ctx, l.src, l.files.AirportCodes, ParseAirportCodes)
	if err != nil {
		return nil, err
	}
	flights, err := readWith(ctx, l.src, l.files.FlightDelays, ParseFlightDelays)
	if err != nil {
		return nil, err
	}
	wx, err := readWith(ctx, l.src, l.files.Weather, ParseWeather)
	if err != nil {
		return nil, err
	}

	return weather.NewDataset(codes, flights, wx), nil
}

func readWith[T any](ctx context.Context, src source.Source, file string, parse func(string, io.Reader) ([]T, error)) ([]T, error) {
	rc, err := src.Open(ctx, file)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	rows, err := parse(file, rc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", file, err)
	}
	log.Debugf("loaded %d rows from %s", len(rows), file)
	return rows, nil
}
