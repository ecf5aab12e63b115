package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/i474232898/airport-weather/internal/weather"
)

const appName = "airport-weather"

// NewApp builds the Fiber app with middleware, health check and API routes.
func NewApp(service *weather.Service, accessLog bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          ErrorHandler,
	})

	if accessLog {
		app.Use(logger.New())
	}
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "ok"
		if _, err := service.Dataset(); err != nil {
			status = "loading"
		}
		reloads, lastReload := service.Stats()
		body := fiber.Map{
			"status":  status,
			"service": appName,
			"reloads": reloads,
		}
		if !lastReload.IsZero() {
			body["lastReload"] = lastReload
		}
		return c.JSON(body)
	})

	RegisterRoutes(app, service)
	return app
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}
