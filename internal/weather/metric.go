package weather

import "strings"

// Weather table column names.
const (
	ColumnPrecipitation = "precipitation_in"
	ColumnWind          = "wind_avg_mph"
	ColumnVisibility    = "visibility_mi"
	ColumnTemperature   = "temp_max_f"
)

// Metric selects one weather column together with its display label.
type Metric struct {
	Key    string `json:"key"`
	Column string `json:"column"`
	Label  string `json:"label"`
}

var (
	MetricPrecipitation = Metric{Key: "precipitation", Column: ColumnPrecipitation, Label: "Precipitation (inches)"}
	MetricWind          = Metric{Key: "wind", Column: ColumnWind, Label: "Average Wind Speed (mph)"}
	MetricVisibility    = Metric{Key: "visibility", Column: ColumnVisibility, Label: "Visibility (miles)"}
	MetricTemperature   = Metric{Key: "temperature", Column: ColumnTemperature, Label: "Max Temperature (F)"}
)

// Metrics lists the selectable metrics in menu order (1-4).
func Metrics() []Metric {
	return []Metric{MetricPrecipitation, MetricWind, MetricVisibility, MetricTemperature}
}

// MetricKeys returns the metric names in menu order.
func MetricKeys() []string {
	ms := Metrics()
	keys := make([]string, len(ms))
	for i, m := range ms {
		keys[i] = m.Key
	}
	return keys
}

// Title is the menu label, e.g. "Precipitation".
func (m Metric) Title() string {
	if m.Key == "" {
		return ""
	}
	return strings.ToUpper(m.Key[:1]) + m.Key[1:]
}
