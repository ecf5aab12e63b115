package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// DataDir holds the three CSV files when DataBaseURL is empty.
	DataDir string
	// DataBaseURL, when set, fetches the CSV files over HTTP instead.
	DataBaseURL string

	AirportCodesFile string
	FlightDelaysFile string
	WeatherFile      string

	HTTPTimeout time.Duration

	// ReloadInterval re-reads the source files in server mode (0 = never).
	ReloadInterval time.Duration

	// Output directories for charts and workbooks; empty disables writing.
	ChartDir  string
	ExportDir string

	Port  string
	Debug bool
}

// Load reads configuration from environment with sensible defaults. A .env
// file in the working directory is applied first if present.
func Load() (*AppConfig, error) {
	// Missing .env is normal; real environment variables still apply.
	_ = godotenv.Load()

	cfg := &AppConfig{
		DataDir:          getenvDefault("DATA_DIR", "data"),
		DataBaseURL:      os.Getenv("DATA_BASE_URL"),
		AirportCodesFile: getenvDefault("AIRPORT_CODES_FILE", "airport_codes.csv"),
		FlightDelaysFile: getenvDefault("FLIGHT_DELAYS_FILE", "daily_flight_delays.csv"),
		WeatherFile:      getenvDefault("WEATHER_FILE", "daily_weather.csv"),
		ChartDir:         os.Getenv("CHART_DIR"),
		ExportDir:        os.Getenv("EXPORT_DIR"),
		Port:             getenvDefault("PORT", "8080"),
		Debug:            getenvBool("DEBUG", false),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.ReloadInterval, err = getenvDuration("RELOAD_INTERVAL", 0); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
