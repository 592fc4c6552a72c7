// Package httpserver assembles the Fiber application: middleware, routes,
// health, metrics and API docs.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/google/uuid"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	clicksHttp "click-stats-service/internal/clicks/adapters/http/fiber"
	"click-stats-service/internal/observability"
	statsHttp "click-stats-service/internal/stats/adapters/http/fiber"
)

// PingFunc checks the click store.
type PingFunc func(ctx context.Context) error

type Options struct {
	Log            *zap.Logger
	Metrics        *observability.Metrics
	Ping           PingFunc
	RequestTimeout time.Duration
}

func New(clicks *clicksHttp.ClickHandler, stats *statsHttp.StatsHandler, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "click-stats",
		ErrorHandler: errorHandler,
		Immutable:    true, // request values outlive the request in the click store
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(accessLog(opts.Log, opts.Metrics))

	bounded := func(h fiber.Handler) fiber.Handler {
		if opts.RequestTimeout <= 0 {
			return h
		}
		return timeout.NewWithContext(h, opts.RequestTimeout)
	}

	api := app.Group("/api")
	api.Post("/click", bounded(clicks.CreateClick))
	api.Get("/day", bounded(stats.GetDay))
	api.Get("/series", bounded(stats.GetSeries))
	api.Get("/dashboard", bounded(stats.GetDashboard))

	app.Get("/health", healthCheck(opts.Ping))
	if opts.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(opts.Metrics.Handler()))
	}
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	return app
}

func accessLog(log *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			status = http.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		route := c.Route().Path
		if metrics != nil {
			metrics.ObserveRequest(c.Method(), route, status, elapsed)
		}

		fields := []zap.Field{
			zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", elapsed),
		}
		if status >= http.StatusInternalServerError {
			log.Error("HTTP request", append(fields, zap.Error(err))...)
		} else {
			log.Info("HTTP request", fields...)
		}
		return err
	}
}

// healthCheck godoc
// @Summary Health check
// @Description Reports whether the click store is reachable
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func healthCheck(ping PingFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ping != nil {
			if err := ping(c.UserContext()); err != nil {
				return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	name := "internal_server_error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		switch code {
		case http.StatusNotFound:
			name = "not_found"
		case http.StatusMethodNotAllowed:
			name = "method_not_allowed"
		case http.StatusRequestTimeout:
			name = "timeout"
		default:
			if code < http.StatusInternalServerError {
				name = "bad_request"
			}
		}
	}

	return c.Status(code).JSON(fiber.Map{"error": name})
}
