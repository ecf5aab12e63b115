package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
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

type staticLoader struct {
	ds  *weather.Dataset
	err error
}

func (l staticLoader) Load(ctx context.Context) (*weather.Dataset, error) {
	return l.ds, l.err
}

func fixture() *weather.Dataset {
	var flights []weather.FlightDelayRecord
	var wx []weather.WeatherRecord
	for d := 1; d <= 3; d++ {
		flights = append(flights, weather.FlightDelayRecord{AirportCode: "ORD", Date: day(d), AvgDepDelay: float64(10 * d), AvgArrDelay: float64(8 * d)})
		wx = append(wx, weather.WeatherRecord{StationID: "KORD", Date: day(d),
			PrecipitationIn: fp(0.1 * float64(d)), WindAvgMPH: fp(float64(5 + d)), VisibilityMi: fp(10), TempMaxF: fp(float64(30 - d))})
	}
	return weather.NewDataset([]weather.AirportCodeEntry{{IATA: "ORD", ICAO: "KORD"}}, flights, wx)
}

func newTestApp(t *testing.T, loaded bool) (*weather.Service, func(*http.Request) *http.Response) {
	t.Helper()
	st := store.NewDatasetStore()
	if loaded {
		st.Save(fixture())
	}
	svc := weather.NewService(st, staticLoader{ds: fixture()})
	app := NewApp(svc, false)

	return svc, func(req *http.Request) *http.Response {
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestAnalysisWorkedExample(t *testing.T) {
	_, do := newTestApp(t, true)

	resp := do(httptest.NewRequest(http.MethodGet, "/api/v1/analysis?airport=ord&start=2024-01-01&end=2024-01-02&metric=1", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var a weather.Analysis
	decode(t, resp, &a)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "ORD", a.Airport)
	assert.Equal(t, "KORD", a.Station)
	assert.Equal(t, weather.MetricPrecipitation, a.Metric)
	require.Len(t, a.Records, 2)
	assert.True(t, a.Records[0].Date.Before(a.Records[1].Date))
	for _, r := range a.Records {
		assert.NotNil(t, r.PrecipitationIn)
		assert.NotNil(t, r.TempMaxF)
	}
	assert.Equal(t, 0, a.Missing)
	assert.Equal(t, 2, a.Summary.Days)
}

func TestAnalysisValidation(t *testing.T) {
	_, do := newTestApp(t, true)

	tests := []struct {
		name    string
		query   string
		message string
	}{
		{"missing params", "airport=ORD", "required"},
		{"airport length", "airport=ORDD&start=2024-01-01&end=2024-01-02&metric=wind", "3 letters"},
		{"unknown airport", "airport=ATL&start=2024-01-01&end=2024-01-02&metric=wind", "Invalid airport"},
		{"bad date", "airport=ORD&start=01/01/2024&end=2024-01-02&metric=wind", "YYYY-MM-DD"},
		{"out of range", "airport=ORD&start=2024-01-01&end=2024-01-09&metric=wind", "out of range"},
		{"reversed", "airport=ORD&start=2024-01-03&end=2024-01-01&metric=wind", "End date"},
		{"metric", "airport=ORD&start=2024-01-01&end=2024-01-02&metric=rain", "Invalid selection"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(httptest.NewRequest(http.MethodGet, "/api/v1/analysis?"+tc.query, nil))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body struct {
				Error   bool   `json:"error"`
				Message string `json:"message"`
			}
			decode(t, resp, &body)
			assert.True(t, body.Error)
			assert.Contains(t, body.Message, tc.message)
		})
	}
}

func TestNotLoadedReturns503(t *testing.T) {
	_, do := newTestApp(t, false)

	resp := do(httptest.NewRequest(http.MethodGet, "/api/v1/airports", nil))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp = do(httptest.NewRequest(http.MethodGet, "/health", nil))
	var health healthBody
	decode(t, resp, &health)
	assert.Equal(t, "loading", health.Status)
	assert.Zero(t, health.Reloads)
	assert.Nil(t, health.LastReload)
}

type healthBody struct {
	Status     string     `json:"status"`
	Reloads    int        `json:"reloads"`
	LastReload *time.Time `json:"lastReload"`
}

func TestReloadCountedInHealth(t *testing.T) {
	_, do := newTestApp(t, true)

	resp := do(httptest.NewRequest(http.MethodGet, "/health", nil))
	var health healthBody
	decode(t, resp, &health)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 1, health.Reloads)
	require.NotNil(t, health.LastReload)

	resp = do(httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reload struct {
		Flights int `json:"flights"`
		Reloads int `json:"reloads"`
	}
	decode(t, resp, &reload)
	assert.Equal(t, 3, reload.Flights)
	assert.Equal(t, 2, reload.Reloads)

	resp = do(httptest.NewRequest(http.MethodGet, "/health", nil))
	decode(t, resp, &health)
	assert.Equal(t, 2, health.Reloads)
}

func TestReloadThenAirports(t *testing.T) {
	_, do := newTestApp(t, false)

	resp := do(httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(httptest.NewRequest(http.MethodGet, "/api/v1/airports", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Airports []string `json:"airports"`
		From     string   `json:"from"`
		To       string   `json:"to"`
	}
	decode(t, resp, &body)
	assert.Equal(t, []string{"ORD"}, body.Airports)
	assert.Equal(t, "2024-01-01", body.From)
	assert.Equal(t, "2024-01-03", body.To)
}

func TestMetrics(t *testing.T) {
	_, do := newTestApp(t, true)

	resp := do(httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Metrics []weather.Metric `json:"metrics"`
	}
	decode(t, resp, &body)
	assert.Equal(t, weather.Metrics(), body.Metrics)
}

func TestExportAndChart(t *testing.T) {
	_, do := newTestApp(t, true)
	query := "?airport=ORD&start=2024-01-01&end=2024-01-03&metric=temperature"

	resp := do(httptest.NewRequest(http.MethodGet, "/api/v1/analysis/export"+query, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "ORD_20240101_20240103_temperature.xlsx")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("PK")))

	resp = do(httptest.NewRequest(http.MethodGet, "/api/v1/analysis/chart"+query, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}
