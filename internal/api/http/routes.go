package httpapi

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/airport-weather/internal/chart"
	"github.com/i474232898/airport-weather/internal/report"
	"github.com/i474232898/airport-weather/internal/store"
	"github.com/i474232898/airport-weather/internal/validate"
	"github.com/i474232898/airport-weather/internal/weather"
)

var validateStruct = validator.New()

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/airports", func(c *fiber.Ctx) error {
		ds, err := service.Dataset()
		if err != nil {
			return toHTTPError(err)
		}

		return c.JSON(fiber.Map{
			"airports": ds.Airports,
			"unmapped": ds.Unmapped(),
			"from":     weather.FormatDay(ds.MinDate),
			"to":       weather.FormatDay(ds.MaxDate),
			"loadedAt": ds.LoadedAt,
		})
	})

	v1.Get("/metrics", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"metrics": weather.Metrics()})
	})

	v1.Get("/analysis", func(c *fiber.Ctx) error {
		a, err := analyze(c, service)
		if err != nil {
			return err
		}
		return c.JSON(a)
	})

	v1.Get("/analysis/export", func(c *fiber.Ctx) error {
		a, err := analyze(c, service)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := report.WriteXLSX(&buf, a); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to build workbook")
		}
		c.Attachment(report.Filename(a, "xlsx"))
		c.Set(fiber.HeaderContentType, xlsxContentType)
		return c.Send(buf.Bytes())
	})

	v1.Get("/analysis/chart", func(c *fiber.Ctx) error {
		a, err := analyze(c, service)
		if err != nil {
			return err
		}
		if a.Empty() {
			return fiber.NewError(fiber.StatusNotFound, "no data available for the selected criteria")
		}

		var buf bytes.Buffer
		if err := chart.Render(&buf, a); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		return c.Send(buf.Bytes())
	})

	v1.Post("/reload", func(c *fiber.Ctx) error {
		if err := service.Reload(c.UserContext()); err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		ds, err := service.Dataset()
		if err != nil {
			return toHTTPError(err)
		}
		reloads, _ := service.Stats()
		return c.JSON(fiber.Map{
			"flights":  len(ds.Flights),
			"weather":  len(ds.Weather),
			"loadedAt": ds.LoadedAt,
			"reloads":  reloads,
		})
	})
}

// analysisQuery holds query parameters for the analysis endpoints.
type analysisQuery struct {
	Airport string `query:"airport" validate:"required"`
	Start   string `query:"start" validate:"required"`
	End     string `query:"end" validate:"required"`
	Metric  string `query:"metric" validate:"required"`
}

func (q analysisQuery) toRequest(ds *weather.Dataset) (weather.AnalysisRequest, error) {
	var (
		req weather.AnalysisRequest
		err error
	)
	if req.Airport, err = validate.AirportCode(q.Airport, ds.Airports); err != nil {
		return req, err
	}
	if req.Start, err = validate.Date(q.Start, ds.MinDate, ds.MaxDate); err != nil {
		return req, err
	}
	if req.End, err = validate.Date(q.End, ds.MinDate, ds.MaxDate); err != nil {
		return req, err
	}
	if err = validate.DateRange(req.Start, req.End); err != nil {
		return req, err
	}
	if req.Metric, err = validate.WeatherMetric(q.Metric); err != nil {
		return req, err
	}
	return req, nil
}

func analyze(c *fiber.Ctx, service *weather.Service) (*weather.Analysis, error) {
	var q analysisQuery
	if err := c.QueryParser(&q); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validateStruct.Struct(q); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ds, err := service.Dataset()
	if err != nil {
		return nil, toHTTPError(err)
	}

	req, err := q.toRequest(ds)
	if err != nil {
		return nil, toHTTPError(err)
	}

	a, err := service.Analyze(req)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return a, nil
}

// toHTTPError maps domain errors onto status codes.
func toHTTPError(err error) error {
	var verr *weather.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.NewError(fiber.StatusBadRequest, verr.Message)
	case errors.Is(err, store.ErrNotLoaded):
		return fiber.NewError(fiber.StatusServiceUnavailable, "dataset not loaded")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("internal error: %v", err))
	}
}
