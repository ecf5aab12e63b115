package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/airport-weather/internal/store"
	"github.com/i474232898/airport-weather/internal/weather"
)

func fp(v float64) *float64 { return &v }

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func newService(t *testing.T) *weather.Service {
	t.Helper()

	flights := []weather.FlightDelayRecord{
		{AirportCode: "ORD", Date: day(1), AvgDepDelay: 10, AvgArrDelay: 8},
		{AirportCode: "ORD", Date: day(2), AvgDepDelay: 15, AvgArrDelay: 12},
		{AirportCode: "ORD", Date: day(3), AvgDepDelay: 30, AvgArrDelay: 27},
		{AirportCode: "ATL", Date: day(1), AvgDepDelay: 5, AvgArrDelay: 3},
	}
	wx := []weather.WeatherRecord{
		{StationID: "KORD", Date: day(1), PrecipitationIn: fp(0.5), WindAvgMPH: fp(10)},
		{StationID: "KORD", Date: day(2), PrecipitationIn: fp(0), WindAvgMPH: fp(12)},
		{StationID: "KORD", Date: day(3), WindAvgMPH: fp(20)},
	}

	st := store.NewDatasetStore()
	st.Save(weather.NewDataset([]weather.AirportCodeEntry{{IATA: "ORD", ICAO: "KORD"}}, flights, wx))
	return weather.NewService(st, nil)
}

func run(t *testing.T, input string, opts Options) string {
	t.Helper()
	var out bytes.Buffer
	err := NewSession(strings.NewReader(input), &out, newService(t), opts).Run(context.Background())
	require.NoError(t, err)
	return out.String()
}

func TestSessionHappyPath(t *testing.T) {
	out := run(t, "ORD\n2024-01-01\n2024-01-02\n1\nn\n", Options{})

	assert.Contains(t, out, "Airport Weather Delay Analyzer")
	assert.Contains(t, out, "Available airports: ATL, ORD")
	assert.Contains(t, out, "Data available from 2024-01-01 to 2024-01-03")
	assert.Contains(t, out, "  1. Precipitation")
	assert.Contains(t, out, "  4. Temperature")
	assert.Contains(t, out, "Generating chart for ORD...")
	assert.NotContains(t, out, "missing")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
}

func TestSessionRepromptsInvalidInput(t *testing.T) {
	input := strings.Join([]string{
		"ordd", "XYZ", "ord",
		"01/01/2024", "2024-02-01", "2024-01-03",
		"2024-01-01", "2024-01-03",
		"rain", "precipitation",
		"n",
	}, "\n") + "\n"

	out := run(t, input, Options{})

	assert.Contains(t, out, "Airport code must be 3 letters.")
	assert.Contains(t, out, "Invalid airport. Choose from: ATL, ORD")
	assert.Contains(t, out, "Invalid date format. Use YYYY-MM-DD.")
	assert.Contains(t, out, "Date out of range. Data available: 2024-01-01 to 2024-01-03")
	assert.Contains(t, out, "End date must be on or after start date.")
	assert.Contains(t, out, "Invalid selection.")
	assert.Contains(t, out, "Note: 1 day(s) have missing Precipitation (inches) data.")
}

func TestSessionNoData(t *testing.T) {
	out := run(t, "ATL\n2024-01-02\n2024-01-03\nwind\nn\n", Options{})
	assert.Contains(t, out, "No data available for the selected criteria.")
	assert.NotContains(t, out, "Generating chart")
}

func TestSessionAnotherRound(t *testing.T) {
	out := run(t, "ORD\n2024-01-01\n2024-01-01\n2\ny\nATL\n2024-01-01\n2024-01-01\n3\nN\n", Options{})
	assert.Equal(t, 2, strings.Count(out, "Enter airport code: "))
	assert.Contains(t, out, "Generating chart for ATL...")
	// ATL has no station so visibility is missing for its only day.
	assert.Contains(t, out, "Note: 1 day(s) have missing Visibility (miles) data.")
}

func TestSessionEndOfInput(t *testing.T) {
	out := run(t, "ORD\n2024-01-01\n", Options{})
	assert.Contains(t, out, "Enter end date (YYYY-MM-DD): ")
	assert.Contains(t, out, "Goodbye!")
}

func TestSessionWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	opts := Options{ChartDir: filepath.Join(dir, "charts"), ExportDir: filepath.Join(dir, "exports")}

	out := run(t, "ORD\n2024-01-01\n2024-01-03\nwind\nn\n", opts)

	chartPath := filepath.Join(opts.ChartDir, "ORD_20240101_20240103_wind.pdf")
	exportPath := filepath.Join(opts.ExportDir, "ORD_20240101_20240103_wind.xlsx")
	assert.Contains(t, out, "Chart saved to "+chartPath)
	assert.Contains(t, out, "Data exported to "+exportPath)

	for _, p := range []string{chartPath, exportPath} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestSessionNotLoaded(t *testing.T) {
	svc := weather.NewService(store.NewDatasetStore(), nil)
	err := NewSession(strings.NewReader(""), &bytes.Buffer{}, svc, Options{}).Run(context.Background())
	assert.ErrorIs(t, err, store.ErrNotLoaded)
}

func TestSessionEmptyFlightTable(t *testing.T) {
	st := store.NewDatasetStore()
	st.Save(weather.NewDataset(nil, nil, nil))

	var out bytes.Buffer
	err := NewSession(strings.NewReader("ORD\n"), &out, weather.NewService(st, nil), Options{}).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No flight data loaded.")
	assert.NotContains(t, out.String(), "Enter airport")
}
