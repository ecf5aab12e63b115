package loader

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/i474232898/airport-weather/internal/common"
	"github.com/i474232898/airport-weather/internal/weather"
)

// Source date layouts.
const (
	flightDateLayout  = "20060102"
	weatherDateLayout = "1/2/2006"
)

// table wraps a string-typed dataframe with the file name for error messages.
type table struct {
	name    string
	columns []string
	df      dataframe.DataFrame
	n       int
}

// readTable loads r as CSV with every column kept as a string and checks that
// the required columns exist. Extra columns are ignored. A file holding only
// the header row yields a table with zero rows.
func readTable(name string, r io.Reader, required ...string) (*table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	t := &table{name: name}
	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(common.MissingTokens),
	)
	if df.Err == nil {
		t.df, t.columns, t.n = df, df.Names(), df.Nrow()
	} else {
		header, ok := readHeader(data)
		if !ok {
			return nil, fmt.Errorf("%w: read %s: %v", weather.ErrFormat, name, df.Err)
		}
		t.columns = header
	}

	names := make(map[string]struct{}, len(t.columns))
	for _, n := range t.columns {
		names[n] = struct{}{}
	}
	for _, col := range required {
		if _, ok := names[col]; !ok {
			return nil, fmt.Errorf("%w: %s: missing column %q", weather.ErrFormat, name, col)
		}
	}

	return t, nil
}

// readHeader returns the column names of a CSV that has a header row and no
// data rows. gota refuses to build a dataframe from such a file.
func readHeader(data []byte) ([]string, bool) {
	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(false),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil || df.Nrow() != 1 {
		return nil, false
	}

	// Records()[0] holds gota's generated names; [1] is the only line.
	header := df.Records()[1]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	return header, true
}

func (t *table) rows() int {
	return t.n
}

// cell returns the trimmed text of a cell and whether it holds a value.
func (t *table) cell(col string, row int) (string, bool) {
	e := t.df.Col(col).Elem(row)
	if e.IsNA() {
		return "", false
	}
	s := strings.TrimSpace(e.String())
	if common.IsMissing(s) {
		return "", false
	}
	return s, true
}

func (t *table) cellErr(col string, row int, format string, args ...any) error {
	// Row numbers are 1-based file lines; line 1 is the header.
	return fmt.Errorf("%w: %s line %d column %s: %s", weather.ErrFormat, t.name, row+2, col, fmt.Sprintf(format, args...))
}

func (t *table) text(col string, row int) (string, error) {
	s, ok := t.cell(col, row)
	if !ok {
		return "", t.cellErr(col, row, "value is empty")
	}
	return s, nil
}

func (t *table) date(col string, row int, layout string) (time.Time, error) {
	s, err := t.text(col, row)
	if err != nil {
		return time.Time{}, err
	}
	d, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, t.cellErr(col, row, "invalid date %q", s)
	}
	return weather.Day(d), nil
}

func (t *table) float(col string, row int) (float64, error) {
	s, err := t.text(col, row)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, t.cellErr(col, row, "invalid number %q", s)
	}
	return v, nil
}

// optionalFloat returns nil for a blank cell.
func (t *table) optionalFloat(col string, row int) (*float64, error) {
	s, ok := t.cell(col, row)
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, t.cellErr(col, row, "invalid number %q", s)
	}
	return &v, nil
}

// ParseAirportCodes reads the iata_code/icao_code table.
func ParseAirportCodes(name string, r io.Reader) ([]weather.AirportCodeEntry, error) {
	t, err := readTable(name, r, "iata_code", "icao_code")
	if err != nil {
		return nil, err
	}

	entries := make([]weather.AirportCodeEntry, 0, t.rows())
	for i := 0; i < t.rows(); i++ {
		iata, _ := t.cell("iata_code", i)
		icao, _ := t.cell("icao_code", i)
		entries = append(entries, weather.AirportCodeEntry{
			IATA: strings.ToUpper(iata),
			ICAO: strings.ToUpper(icao),
		})
	}
	return entries, nil
}

// ParseFlightDelays reads the daily flight delay table.
func ParseFlightDelays(name string, r io.Reader) ([]weather.FlightDelayRecord, error) {
	t, err := readTable(name, r, "airport_code", "fl_date", "avg_dep_delay", "avg_arr_delay")
	if err != nil {
		return nil, err
	}

	records := make([]weather.FlightDelayRecord, 0, t.rows())
	for i := 0; i < t.rows(); i++ {
		var (
			rec weather.FlightDelayRecord
			err error
		)
		if rec.AirportCode, err = t.text("airport_code", i); err != nil {
			return nil, err
		}
		rec.AirportCode = strings.ToUpper(rec.AirportCode)
		if rec.Date, err = t.date("fl_date", i, flightDateLayout); err != nil {
			return nil, err
		}
		if rec.AvgDepDelay, err = t.float("avg_dep_delay", i); err != nil {
			return nil, err
		}
		if rec.AvgArrDelay, err = t.float("avg_arr_delay", i); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseWeather reads the daily weather table. Blank metric cells become nil.
func ParseWeather(name string, r io.Reader) ([]weather.WeatherRecord, error) {
	t, err := readTable(name, r, "station_id", "date",
		weather.ColumnPrecipitation, weather.ColumnWind, weather.ColumnVisibility, weather.ColumnTemperature)
	if err != nil {
		return nil, err
	}

	records := make([]weather.WeatherRecord, 0, t.rows())
	for i := 0; i < t.rows(); i++ {
		var (
			rec weather.WeatherRecord
			err error
		)
		if rec.StationID, err = t.text("station_id", i); err != nil {
			return nil, err
		}
		rec.StationID = strings.ToUpper(rec.StationID)
		if rec.Date, err = t.date("date", i, weatherDateLayout); err != nil {
			return nil, err
		}
		if rec.PrecipitationIn, err = t.optionalFloat(weather.ColumnPrecipitation, i); err != nil {
			return nil, err
		}
		if rec.WindAvgMPH, err = t.optionalFloat(weather.ColumnWind, i); err != nil {
			return nil, err
		}
		if rec.VisibilityMi, err = t.optionalFloat(weather.ColumnVisibility, i); err != nil {
			return nil, err
		}
		if rec.TempMaxF, err = t.optionalFloat(weather.ColumnTemperature, i); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
