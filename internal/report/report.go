// Package report renders an analysis as text and as an XLSX workbook.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/i474232898/airport-weather/internal/weather"
)

// SummarySheet is the name of the workbook sheet holding the summary table.
const SummarySheet = "Summary"

// MissingNote returns the user-facing note about days without a metric
// value, or "" when every day has one.
func MissingNote(a *weather.Analysis) string {
	if a.Missing == 0 {
		return ""
	}
	return fmt.Sprintf("Note: %d day(s) have missing %s data.", a.Missing, a.Metric.Label)
}

// Filename suggests a file name for an analysis export with the given extension.
func Filename(a *weather.Analysis, ext string) string {
	return fmt.Sprintf("%s_%s_%s_%s.%s", a.Airport,
		a.Start.Format("20060102"), a.End.Format("20060102"), a.Metric.Key, ext)
}

// WriteXLSX writes a workbook with one data sheet named after the airport and
// a summary sheet. Missing metric values are left blank.
func WriteXLSX(w io.Writer, a *weather.Analysis) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := a.Airport
	if sheet == "" {
		sheet = "Data"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"Date", "Avg Departure Delay", "Avg Arrival Delay", a.Metric.Label}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for rowIdx, r := range a.Records {
		values := []any{weather.FormatDay(r.Date), r.AvgDepDelay, r.AvgArrDelay}
		if v := r.Value(a.Metric); v != nil {
			values = append(values, *v)
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", rowIdx+1, err)
			}
		}
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}
	for i, row := range summaryRows(a) {
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	return f.Write(w)
}

func summaryRows(a *weather.Analysis) [][]any {
	s := a.Summary
	return [][]any{
		{"Analysis", a.ID},
		{"Airport", a.Airport},
		{"Station", a.Station},
		{"Start", weather.FormatDay(a.Start)},
		{"End", weather.FormatDay(a.End)},
		{"Metric", a.Metric.Label},
		{"Days", s.Days},
		{"Missing", a.Missing},
		{"Mean departure delay", optional(s.MeanDepDelay)},
		{"Mean arrival delay", optional(s.MeanArrDelay)},
		{"Mean " + a.Metric.Key, optional(s.MeanMetric)},
		{"Departure delay correlation", optional(s.DepCorrelation)},
		{"Arrival delay correlation", optional(s.ArrCorrelation)},
	}
}

func optional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', 3, 64)
}
