// Package validate checks and normalizes user input for an analysis request.
// Every failure is a *weather.ValidationError whose message is suitable for
// showing to the user as-is.
package validate

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/airport-weather/internal/weather"
)

const dateLayout = "2006-01-02"

var validate = validator.New()

// metricSelectors maps menu numbers and names to metrics.
var metricSelectors = map[string]weather.Metric{
	"1":             weather.MetricPrecipitation,
	"precipitation": weather.MetricPrecipitation,
	"2":             weather.MetricWind,
	"wind":          weather.MetricWind,
	"3":             weather.MetricVisibility,
	"visibility":    weather.MetricVisibility,
	"4":             weather.MetricTemperature,
	"temperature":   weather.MetricTemperature,
}

// AirportCode trims and uppercases input and checks it against known.
func AirportCode(input string, known []string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(input))

	if err := validate.Var(code, "len=3"); err != nil {
		return "", weather.NewValidationError(weather.ErrRange, "Airport code must be 3 letters.")
	}
	if !slices.Contains(known, code) {
		return "", weather.NewValidationError(weather.ErrRange,
			"Invalid airport. Choose from: "+strings.Join(known, ", "))
	}
	return code, nil
}

// Date parses a strict YYYY-MM-DD date and checks min <= date <= max.
func Date(input string, min, max time.Time) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(input))
	if err != nil {
		return time.Time{}, weather.NewValidationError(weather.ErrFormat, "Invalid date format. Use YYYY-MM-DD.")
	}

	if parsed.Before(min) || parsed.After(max) {
		return time.Time{}, weather.NewValidationError(weather.ErrRange,
			fmt.Sprintf("Date out of range. Data available: %s to %s", min.Format(dateLayout), max.Format(dateLayout)))
	}
	return parsed, nil
}

// DateRange succeeds iff start is not after end.
func DateRange(start, end time.Time) error {
	if start.After(end) {
		return weather.NewValidationError(weather.ErrRange, "End date must be on or after start date.")
	}
	return nil
}

// WeatherMetric accepts a menu number 1-4 or a metric name, case-insensitive.
func WeatherMetric(input string) (weather.Metric, error) {
	if m, ok := metricSelectors[strings.ToLower(strings.TrimSpace(input))]; ok {
		return m, nil
	}
	return weather.Metric{}, weather.NewValidationError(weather.ErrFormat,
		"Invalid selection. Enter 1-4 or metric name ("+strings.Join(weather.MetricKeys(), ", ")+").")
}
