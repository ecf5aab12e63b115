package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/airport-weather/internal/weather"
)

var known = []string{"ORD", "ATL", "JFK"}

func TestAirportCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{name: "uppercase", input: "ORD", want: "ORD"},
		{name: "lowercase", input: "ord", want: "ORD"},
		{name: "padded", input: "  atl \n", want: "ATL"},
		{name: "unknown", input: "XYZ", wantErr: "Invalid airport"},
		{name: "too long", input: "ordd", wantErr: "3 letters"},
		{name: "too short", input: "OR", wantErr: "3 letters"},
		{name: "empty", input: "", wantErr: "3 letters"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AirportCode(tc.input, known)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				assert.ErrorIs(t, err, weather.ErrRange)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAirportCodeListsChoices(t *testing.T) {
	_, err := AirportCode("XYZ", known)
	require.Error(t, err)
	assert.Equal(t, "Invalid airport. Choose from: ORD, ATL, JFK", err.Error())
}

func TestDate(t *testing.T) {
	min := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	max := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	got, err := Date("2024-01-03", min, max)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), got)

	got, err = Date(" 2024-01-01 ", min, max)
	require.NoError(t, err)
	assert.Equal(t, min, got)

	_, err = Date("2024-01-05", min, max)
	assert.NoError(t, err)

	_, err = Date("01/03/2024", min, max)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
	assert.ErrorIs(t, err, weather.ErrFormat)

	_, err = Date("2024-1-3", min, max)
	assert.ErrorIs(t, err, weather.ErrFormat)

	_, err = Date("2024-01-10", min, max)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
	assert.Contains(t, err.Error(), "2024-01-01 to 2024-01-05")
	assert.ErrorIs(t, err, weather.ErrRange)
}

func TestDateRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, DateRange(start, end))
	assert.NoError(t, DateRange(end, end))

	err := DateRange(end, start)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "End date")
	assert.ErrorIs(t, err, weather.ErrRange)
}

func TestWeatherMetric(t *testing.T) {
	byNumber, err := WeatherMetric("1")
	require.NoError(t, err)
	byName, err := WeatherMetric("precipitation")
	require.NoError(t, err)
	upper, err := WeatherMetric("PRECIPITATION")
	require.NoError(t, err)

	assert.Equal(t, byNumber, byName)
	assert.Equal(t, byName, upper)
	assert.Equal(t, weather.ColumnPrecipitation, byNumber.Column)
	assert.Contains(t, byNumber.Label, "Precipitation")

	wind, err := WeatherMetric("wind")
	require.NoError(t, err)
	assert.Equal(t, weather.ColumnWind, wind.Column)

	temp, err := WeatherMetric("TEMPERATURE")
	require.NoError(t, err)
	assert.Equal(t, weather.ColumnTemperature, temp.Column)

	vis, err := WeatherMetric(" 3 ")
	require.NoError(t, err)
	assert.Equal(t, weather.MetricVisibility, vis)

	for _, bad := range []string{"5", "rain", "", "0"} {
		_, err := WeatherMetric(bad)
		require.Error(t, err, bad)
		assert.Contains(t, err.Error(), "Invalid")
		assert.ErrorIs(t, err, weather.ErrFormat)
	}
}
