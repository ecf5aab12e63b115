// Package chart draws the delay/weather dual-axis chart as a PDF page.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/i474232898/airport-weather/internal/weather"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("chart: no records to plot")

type rgb [3]int

var (
	depColor    = rgb{0, 0, 255}
	arrColor    = rgb{0, 128, 0}
	lineColor   = rgb{220, 0, 0}
	barColor    = rgb{255, 165, 0}
	axisColor   = rgb{60, 60, 60}
	gridColor   = rgb{220, 220, 220}
	leftAxisClr = rgb{0, 0, 255}
)

// Page layout in mm (A4 landscape).
const (
	plotLeft   = 30.0
	plotTop    = 25.0
	plotWidth  = 230.0
	plotHeight = 130.0
	yTicks     = 5
)

// grid maps data values onto the plot rectangle.
type grid struct {
	minX, maxX float64
	minY, maxY float64
}

// U maps an x value (day index) to a page coordinate.
func (g grid) U(x float64) float64 {
	ratio := 0.5
	if g.maxX > g.minX {
		ratio = (x - g.minX) / (g.maxX - g.minX)
	}
	// Keep points away from the axes.
	return plotLeft + plotWidth*0.05 + ratio*plotWidth*0.9
}

// V maps a y value to a page coordinate; larger values sit higher.
func (g grid) V(y float64) float64 {
	ratio := (y - g.minY) / (g.maxY - g.minY)
	return plotTop + plotHeight - ratio*plotHeight
}

// bounds returns a padded [min, max] covering vals and zero.
func bounds(vals []float64) (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.1
	if lo < 0 {
		lo -= pad
	}
	return lo, hi + pad
}

// Render writes a one-page PDF plotting departure and arrival delays on the
// left axis and the analysis metric on the right axis.
func Render(w io.Writer, a *weather.Analysis) error {
	if a == nil || a.Empty() {
		return ErrNoData
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(Title(a), true)
	pdf.AddPage()

	first := a.Records[0].Date
	xs := make([]float64, len(a.Records))
	var delays, metric []float64
	for i, r := range a.Records {
		xs[i] = r.Date.Sub(first).Hours() / 24
		delays = append(delays, r.AvgDepDelay, r.AvgArrDelay)
		if v := r.Value(a.Metric); v != nil {
			metric = append(metric, *v)
		}
	}

	left := grid{minX: xs[0], maxX: xs[len(xs)-1]}
	left.minY, left.maxY = bounds(delays)
	right := left
	right.minY, right.maxY = bounds(metric)

	single := len(a.Records) == 1

	drawFrame(pdf, a, left, right)

	if a.Metric.Column == weather.ColumnPrecipitation {
		drawBars(pdf, a, xs, right)
	} else {
		drawSeries(pdf, xs, metricValues(a), right, lineColor, single)
	}

	dep := make([]*float64, len(a.Records))
	arr := make([]*float64, len(a.Records))
	for i := range a.Records {
		dep[i] = &a.Records[i].AvgDepDelay
		arr[i] = &a.Records[i].AvgArrDelay
	}
	drawSeries(pdf, xs, dep, left, depColor, single)
	drawSeries(pdf, xs, arr, left, arrColor, single)

	drawLegend(pdf, a)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return pdf.Output(w)
}

// Title is the chart heading.
func Title(a *weather.Analysis) string {
	return fmt.Sprintf("Flight Delays vs %s at %s", a.Metric.Label, a.Airport)
}

func metricValues(a *weather.Analysis) []*float64 {
	vals := make([]*float64, len(a.Records))
	for i, r := range a.Records {
		vals[i] = r.Value(a.Metric)
	}
	return vals
}

func setDraw(pdf *gofpdf.Fpdf, c rgb) { pdf.SetDrawColor(c[0], c[1], c[2]) }
func setFill(pdf *gofpdf.Fpdf, c rgb) { pdf.SetFillColor(c[0], c[1], c[2]) }
func setText(pdf *gofpdf.Fpdf, c rgb) { pdf.SetTextColor(c[0], c[1], c[2]) }

func drawFrame(pdf *gofpdf.Fpdf, a *weather.Analysis, left, right grid) {
	pdf.SetFont("Helvetica", "B", 14)
	setText(pdf, axisColor)
	pdf.Text(plotLeft, plotTop-10, Title(a))

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetLineWidth(0.2)

	bottom := plotTop + plotHeight
	rightEdge := plotLeft + plotWidth

	for i := 0; i <= yTicks; i++ {
		frac := float64(i) / yTicks
		v := bottom - frac*plotHeight

		setDraw(pdf, gridColor)
		pdf.Line(plotLeft, v, rightEdge, v)

		lv := left.minY + frac*(left.maxY-left.minY)
		setText(pdf, leftAxisClr)
		label := fmt.Sprintf("%.1f", lv)
		pdf.Text(plotLeft-2-pdf.GetStringWidth(label), v+1, label)

		rv := right.minY + frac*(right.maxY-right.minY)
		setText(pdf, lineColor)
		pdf.Text(rightEdge+2, v+1, fmt.Sprintf("%.2f", rv))
	}

	setDraw(pdf, axisColor)
	pdf.SetLineWidth(0.4)
	pdf.Line(plotLeft, plotTop, plotLeft, bottom)
	pdf.Line(rightEdge, plotTop, rightEdge, bottom)
	pdf.Line(plotLeft, bottom, rightEdge, bottom)

	// X ticks, one per record date, rotated 45 degrees.
	setText(pdf, axisColor)
	for _, r := range a.Records {
		u := left.U(r.Date.Sub(a.Records[0].Date).Hours() / 24)
		pdf.Line(u, bottom, u, bottom+1.5)
		pdf.TransformBegin()
		pdf.TransformRotate(45, u, bottom+4)
		label := r.Date.Format("Jan 02")
		pdf.Text(u-pdf.GetStringWidth(label), bottom+4, label)
		pdf.TransformEnd()
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(plotLeft+plotWidth/2-5, bottom+16, "Date")

	setText(pdf, leftAxisClr)
	pdf.TransformBegin()
	pdf.TransformRotate(90, plotLeft-16, plotTop+plotHeight/2+15)
	pdf.Text(plotLeft-16, plotTop+plotHeight/2+15, "Delay (minutes)")
	pdf.TransformEnd()

	setText(pdf, lineColor)
	pdf.TransformBegin()
	pdf.TransformRotate(90, rightEdge+18, plotTop+plotHeight/2+20)
	pdf.Text(rightEdge+18, plotTop+plotHeight/2+20, a.Metric.Label)
	pdf.TransformEnd()
}

// drawSeries draws a polyline through the present values. A nil value breaks
// the line. Single-point series get a marker.
func drawSeries(pdf *gofpdf.Fpdf, xs []float64, vals []*float64, g grid, c rgb, markers bool) {
	setDraw(pdf, c)
	setFill(pdf, c)
	pdf.SetLineWidth(0.7)

	var prevU, prevV float64
	havePrev := false
	for i, v := range vals {
		if v == nil {
			havePrev = false
			continue
		}
		u, vv := g.U(xs[i]), g.V(*v)
		if havePrev {
			pdf.Line(prevU, prevV, u, vv)
		}
		if markers {
			pdf.Circle(u, vv, 1.4, "F")
		}
		prevU, prevV, havePrev = u, vv, true
	}
}

func drawBars(pdf *gofpdf.Fpdf, a *weather.Analysis, xs []float64, g grid) {
	width := plotWidth * 0.9 / float64(len(xs)) * 0.8
	if width > 25 {
		width = 25
	}

	setFill(pdf, barColor)
	pdf.SetAlpha(0.4, "Normal")
	base := g.V(math.Max(g.minY, 0))
	for i, r := range a.Records {
		v := r.Value(a.Metric)
		if v == nil {
			continue
		}
		top := g.V(*v)
		pdf.Rect(g.U(xs[i])-width/2, math.Min(top, base), width, math.Abs(base-top), "F")
	}
	pdf.SetAlpha(1, "Normal")
}

func drawLegend(pdf *gofpdf.Fpdf, a *weather.Analysis) {
	entries := []struct {
		label string
		color rgb
	}{
		{"Avg Departure Delay", depColor},
		{"Avg Arrival Delay", arrColor},
		{a.Metric.Label, lineColor},
	}
	if a.Metric.Column == weather.ColumnPrecipitation {
		entries[2].color = barColor
	}

	pdf.SetFont("Helvetica", "", 8)
	x, y := plotLeft+4, plotTop+5
	setDraw(pdf, axisColor)
	pdf.SetFillColor(255, 255, 255)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x-2, y-4, 60, float64(len(entries))*5+2, "FD")
	for i, e := range entries {
		ly := y + float64(i)*5
		setFill(pdf, e.color)
		pdf.Rect(x, ly-2, 6, 2, "F")
		setText(pdf, axisColor)
		pdf.Text(x+8, ly, e.label)
	}
}
