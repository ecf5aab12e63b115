// Package cli runs the interactive analyzer session over text streams.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/i474232898/airport-weather/internal/chart"
	"github.com/i474232898/airport-weather/internal/log"
	"github.com/i474232898/airport-weather/internal/report"
	"github.com/i474232898/airport-weather/internal/validate"
	"github.com/i474232898/airport-weather/internal/weather"
)

// errEndOfInput ends the session when the input stream is exhausted.
var errEndOfInput = errors.New("end of input")

// Analyzer is the part of weather.Service a session needs.
type Analyzer interface {
	Dataset() (*weather.Dataset, error)
	Analyze(req weather.AnalysisRequest) (*weather.Analysis, error)
}

// Options control where charts and workbooks are written. Empty disables.
type Options struct {
	ChartDir  string
	ExportDir string
}

// Session is one interactive run reading answers from in and writing to out.
type Session struct {
	in   *bufio.Scanner
	out  io.Writer
	svc  Analyzer
	opts Options
}

// NewSession creates a Session.
func NewSession(in io.Reader, out io.Writer, svc Analyzer, opts Options) *Session {
	return &Session{
		in:   bufio.NewScanner(in),
		out:  out,
		svc:  svc,
		opts: opts,
	}
}

// Run loops over analyses until the user declines another or input ends.
func (s *Session) Run(ctx context.Context) error {
	ds, err := s.svc.Dataset()
	if err != nil {
		return err
	}

	s.printf("%s\n  Airport Weather Delay Analyzer\n%s\n\n", strings.Repeat("=", 50), strings.Repeat("=", 50))

	if ds.Empty() {
		s.printf("No flight data loaded.\n")
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.analyzeOnce(ds)
		if errors.Is(err, errEndOfInput) {
			s.printf("\nGoodbye!\n")
			return nil
		}
		if err != nil {
			return err
		}

		s.printf("\n")
		again, err := s.ask("Analyze another? (y/n): ")
		if err != nil || strings.ToLower(strings.TrimSpace(again)) != "y" {
			s.printf("Goodbye!\n")
			return nil
		}
		s.printf("\n")
	}
}

func (s *Session) analyzeOnce(ds *weather.Dataset) error {
	s.printf("Available airports: %s\n", strings.Join(ds.Airports, ", "))
	s.printf("Data available from %s to %s\n\n", weather.FormatDay(ds.MinDate), weather.FormatDay(ds.MaxDate))

	airport, err := prompt(s, "Enter airport code: ", func(in string) (string, error) {
		return validate.AirportCode(in, ds.Airports)
	})
	if err != nil {
		return err
	}

	dateIn := func(in string) (time.Time, error) {
		return validate.Date(in, ds.MinDate, ds.MaxDate)
	}
	start, err := prompt(s, "Enter start date (YYYY-MM-DD): ", dateIn)
	if err != nil {
		return err
	}
	end, err := prompt(s, "Enter end date (YYYY-MM-DD): ", dateIn)
	if err != nil {
		return err
	}
	for {
		rangeErr := validate.DateRange(start, end)
		if rangeErr == nil {
			break
		}
		s.printf("%s\n", rangeErr)
		if end, err = prompt(s, "Enter end date (YYYY-MM-DD): ", dateIn); err != nil {
			return err
		}
	}

	s.printf("\nWeather metrics:\n")
	for i, m := range weather.Metrics() {
		s.printf("  %d. %s\n", i+1, m.Title())
	}
	s.printf("\n")
	metric, err := prompt(s, "Select weather metric (1-4 or name): ", validate.WeatherMetric)
	if err != nil {
		return err
	}

	a, err := s.svc.Analyze(weather.AnalysisRequest{Airport: airport, Start: start, End: end, Metric: metric})
	if err != nil {
		return err
	}

	if a.Empty() {
		s.printf("No data available for the selected criteria.\n")
		return nil
	}

	if note := report.MissingNote(a); note != "" {
		s.printf("%s\n", note)
	}

	s.printf("\nGenerating chart for %s...\n", airport)
	s.writeOutputs(a)
	return nil
}

// writeOutputs saves the chart and workbook when directories are configured.
// Failures are reported but do not end the session.
func (s *Session) writeOutputs(a *weather.Analysis) {
	if s.opts.ChartDir != "" {
		path, err := writeFile(s.opts.ChartDir, report.Filename(a, "pdf"), func(w io.Writer) error {
			return chart.Render(w, a)
		})
		if err != nil {
			log.Errorf("chart for %s failed: %v", a.Airport, err)
			s.printf("Could not write chart: %v\n", err)
		} else {
			s.printf("Chart saved to %s\n", path)
		}
	}

	if s.opts.ExportDir != "" {
		path, err := writeFile(s.opts.ExportDir, report.Filename(a, "xlsx"), func(w io.Writer) error {
			return report.WriteXLSX(w, a)
		})
		if err != nil {
			log.Errorf("export for %s failed: %v", a.Airport, err)
			s.printf("Could not write export: %v\n", err)
		} else {
			s.printf("Data exported to %s\n", path)
		}
	}
}

func writeFile(dir, name string, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := write(f); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// prompt asks until check accepts the answer, printing each rejection.
func prompt[T any](s *Session, text string, check func(string) (T, error)) (T, error) {
	for {
		answer, err := s.ask(text)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := check(answer)
		if err == nil {
			return v, nil
		}
		s.printf("%s\n", err)
	}
}

func (s *Session) ask(text string) (string, error) {
	s.printf("%s", text)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errEndOfInput
	}
	return s.in.Text(), nil
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
