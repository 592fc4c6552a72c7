package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	clicks "click-stats-service/internal/clicks/core/domain"
	"click-stats-service/internal/stats/core/domain"
	"click-stats-service/internal/stats/core/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GetDayUseCase interface {
	Execute(ctx context.Context, in usecase.GetDayInput) (*domain.DayAggregate, error)
}

type GetSeriesUseCase interface {
	Execute(ctx context.Context, in usecase.GetSeriesInput) (*domain.Series, error)
}

type GetDashboardUseCase interface {
	Execute(ctx context.Context, in usecase.GetDashboardInput) (*usecase.Dashboard, error)
}

type StatsHandler struct {
	dayUC       GetDayUseCase
	seriesUC    GetSeriesUseCase
	dashboardUC GetDashboardUseCase
	log         *zap.Logger
}

func NewStatsHandler(dayUC GetDayUseCase, seriesUC GetSeriesUseCase, dashboardUC GetDashboardUseCase, log *zap.Logger) *StatsHandler {
	return &StatsHandler{dayUC: dayUC, seriesUC: seriesUC, dashboardUC: dashboardUC, log: log}
}

// GetDay godoc
// @Summary Hourly statistics for one day
// @Description Returns 24 hourly buckets of A/B/C/D counts, day totals and KPIs
// @Tags Stats
// @Produce json
// @Param date query string false "Calendar date YYYY-MM-DD (default: today)"
// @Success 200 {object} DayResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/day [get]
func (h *StatsHandler) GetDay(c *fiber.Ctx) error {
	in := usecase.GetDayInput{Date: c.Query("date", "")}

	agg, err := h.dayUC.Execute(c.UserContext(), in)
	if err != nil {
		return h.fail(c, "day", err)
	}

	return c.Status(http.StatusOK).JSON(newDayResponse(agg))
}

// GetSeries godoc
// @Summary Daily series
// @Description Returns per-day A/B/C/D totals for the trailing window, ascending, days without clicks omitted
// @Tags Stats
// @Produce json
// @Param days query int false "Window length in days (default 30)"
// @Success 200 {object} SeriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/series [get]
func (h *StatsHandler) GetSeries(c *fiber.Ctx) error {
	days, err := parseDays(c)
	if err != nil {
		return h.fail(c, "series", err)
	}

	series, err := h.seriesUC.Execute(c.UserContext(), usecase.GetSeriesInput{Days: days})
	if err != nil {
		return h.fail(c, "series", err)
	}

	return c.Status(http.StatusOK).JSON(newSeriesResponse(series))
}

// GetDashboard godoc
// @Summary Day and series in one call
// @Description Computes the day statistics and the daily series concurrently
// @Tags Stats
// @Produce json
// @Param date query string false "Calendar date YYYY-MM-DD (default: today)"
// @Param days query int false "Window length in days (default 30)"
// @Success 200 {object} DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/dashboard [get]
func (h *StatsHandler) GetDashboard(c *fiber.Ctx) error {
	days, err := parseDays(c)
	if err != nil {
		return h.fail(c, "dashboard", err)
	}

	in := usecase.GetDashboardInput{
		Day:    usecase.GetDayInput{Date: c.Query("date", "")},
		Series: usecase.GetSeriesInput{Days: days},
	}

	res, err := h.dashboardUC.Execute(c.UserContext(), in)
	if err != nil {
		return h.fail(c, "dashboard", err)
	}

	return c.Status(http.StatusOK).JSON(DashboardResponse{
		Day:    newDayResponse(res.Day),
		Series: newSeriesResponse(res.Series),
	})
}

func parseDays(c *fiber.Ctx) (int, error) {
	raw := c.Query("days", "")
	if raw == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0, usecase.ErrInvalidWindow
	}
	return days, nil
}

func (h *StatsHandler) fail(c *fiber.Ctx, query string, err error) error {
	if errors.Is(err, clicks.ErrValidation) {
		h.log.Warn("Invalid stats query",
			zap.String("query", query),
			zap.String("raw_query", string(c.Request().URI().QueryString())),
			zap.Error(err))
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	}

	h.log.Error("Failed to compute stats",
		zap.String("query", query),
		zap.Error(err))
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Error: "internal_server_error",
	})
}
