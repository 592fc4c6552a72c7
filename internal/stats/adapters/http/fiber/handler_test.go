package fiber

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"click-stats-service/internal/clicks/adapters/memory"
	clicks "click-stats-service/internal/clicks/core/domain"
	"click-stats-service/internal/stats/core/domain"
	"click-stats-service/internal/stats/core/usecase"
)

var testNow = time.Date(2026, 10, 17, 15, 0, 0, 0, time.UTC)

type fakeDayUseCase struct {
	ExecuteFn func(ctx context.Context, in usecase.GetDayInput) (*domain.DayAggregate, error)
	LastInput usecase.GetDayInput
}

func (f *fakeDayUseCase) Execute(ctx context.Context, in usecase.GetDayInput) (*domain.DayAggregate, error) {
	f.LastInput = in
	return f.ExecuteFn(ctx, in)
}

type fakeSeriesUseCase struct {
	ExecuteFn func(ctx context.Context, in usecase.GetSeriesInput) (*domain.Series, error)
	LastInput usecase.GetSeriesInput
	Called    bool
}

func (f *fakeSeriesUseCase) Execute(ctx context.Context, in usecase.GetSeriesInput) (*domain.Series, error) {
	f.LastInput = in
	f.Called = true
	return f.ExecuteFn(ctx, in)
}

// helper: wire real use cases over a memory store seeded with clicks
func setupStoreApp(t *testing.T, seed ...clicks.NewClick) *fiber.App {
	t.Helper()

	store := memory.NewClickStore()
	for _, c := range seed {
		_, err := store.Append(context.Background(), c)
		require.NoError(t, err)
	}

	clock := func() time.Time { return testNow }
	day := usecase.NewGetDayUseCase(store, time.UTC).WithClock(clock)
	series := usecase.NewGetSeriesUseCase(store, time.UTC, 30, 365).WithClock(clock)

	return setupTestApp(day, series, usecase.NewGetDashboardUseCase(day, series))
}

func setupTestApp(day GetDayUseCase, series GetSeriesUseCase, dashboard GetDashboardUseCase) *fiber.App {
	app := fiber.New()
	h := NewStatsHandler(day, series, dashboard, zap.NewNop())

	app.Get("/api/day", h.GetDay)
	app.Get("/api/series", h.GetSeries)
	app.Get("/api/dashboard", h.GetDashboard)

	return app
}

func get(t *testing.T, app *fiber.App, path string) (*http.Response, []byte) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	return resp, body
}

// ------------------------------------------------------------
// DAY
// ------------------------------------------------------------

func TestGetDay_Empty(t *testing.T) {
	app := setupStoreApp(t)

	resp, body := get(t, app, "/api/day?date=2026-10-17")

	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	kpis := raw["kpis"].(map[string]any)
	assert.Contains(t, kpis, "topCategory")
	assert.Nil(t, kpis["topCategory"])
	assert.Equal(t, 0.0, kpis["peakHour"])
	assert.Equal(t, 0.0, kpis["medianPerHour"])

	var got DayResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "2026-10-17", got.Date)
	require.Len(t, got.Hourly, 24)
	for h, item := range got.Hourly {
		assert.Equal(t, h, item.Hour)
	}
}

func TestGetDay_WithClicks(t *testing.T) {
	day := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	app := setupStoreApp(t,
		clicks.NewClick{Category: clicks.CategoryB, OccurredAt: day.Add(5 * time.Hour)},
		clicks.NewClick{Category: clicks.CategoryB, OccurredAt: day.Add(5*time.Hour + time.Minute)},
		clicks.NewClick{Category: clicks.CategoryB, OccurredAt: day.Add(5*time.Hour + 2*time.Minute)},
		clicks.NewClick{Category: clicks.CategoryA, OccurredAt: day.Add(-time.Hour)},
	)

	resp, body := get(t, app, "/api/day?date=2026-10-17")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got DayResponse
	require.NoError(t, json.Unmarshal(body, &got))

	assert.Equal(t, CountsResponse{B: 3}, got.Totals)
	assert.Equal(t, 5, got.KPIs.PeakHour)
	assert.Equal(t, int64(3), got.KPIs.PeakTotal)
	require.NotNil(t, got.KPIs.TopCategory)
	assert.Equal(t, "B", *got.KPIs.TopCategory)
	assert.Equal(t, int64(3), got.Hourly[5].B)
}

func TestGetDay_DefaultsToToday(t *testing.T) {
	fake := &fakeDayUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetDayInput) (*domain.DayAggregate, error) {
			return &domain.DayAggregate{Date: testNow.Truncate(24 * time.Hour)}, nil
		},
	}
	app := setupTestApp(fake, nil, nil)

	resp, _ := get(t, app, "/api/day")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "", fake.LastInput.Date)
}

func TestGetDay_InvalidDate(t *testing.T) {
	app := setupStoreApp(t)

	resp, body := get(t, app, "/api/day?date=17-10-2026")

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var got ErrorResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "validation_error", got.Error)
	assert.Contains(t, got.Message, "YYYY-MM-DD")
}

func TestGetDay_StorageError(t *testing.T) {
	fake := &fakeDayUseCase{
		ExecuteFn: func(ctx context.Context, in usecase.GetDayInput) (*domain.DayAggregate, error) {
			return nil, errors.Join(clicks.ErrStorage, errors.New("boom"))
		},
	}
	app := setupTestApp(fake, nil, nil)

	resp, body := get(t, app, "/api/day?date=2026-10-17")

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(body), "internal_server_error")
	assert.NotContains(t, string(body), "boom")
}

// ------------------------------------------------------------
// SERIES
// ------------------------------------------------------------

func TestGetSeries_Default(t *testing.T) {
	app := setupStoreApp(t,
		clicks.NewClick{Category: clicks.CategoryA, OccurredAt: testNow.Add(-3 * 24 * time.Hour)},
		clicks.NewClick{Category: clicks.CategoryD, OccurredAt: testNow.Add(-time.Hour)},
		clicks.NewClick{Category: clicks.CategoryD, OccurredAt: testNow.Add(-2 * time.Hour)},
	)

	resp, body := get(t, app, "/api/series")

	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var got SeriesResponse
	require.NoError(t, json.Unmarshal(body, &got))

	assert.Equal(t, 30, got.Days)
	assert.Equal(t, []SeriesPointResponse{
		{Date: "2026-10-14", A: 1},
		{Date: "2026-10-17", D: 2},
	}, got.Series)
}

func TestGetSeries_EmptyIsArray(t *testing.T) {
	app := setupStoreApp(t)

	resp, body := get(t, app, "/api/series")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"series":[]`)
}

func TestGetSeries_DaysParam(t *testing.T) {
	tests := []struct {
		query      string
		wantStatus int
		wantDays   int
	}{
		{"?days=7", http.StatusOK, 7},
		{"?days=abc", http.StatusBadRequest, 0},
		{"?days=0", http.StatusBadRequest, 0},
		{"?days=-3", http.StatusBadRequest, 0},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			fake := &fakeSeriesUseCase{
				ExecuteFn: func(ctx context.Context, in usecase.GetSeriesInput) (*domain.Series, error) {
					return &domain.Series{Days: in.Days}, nil
				},
			}
			app := setupTestApp(nil, fake, nil)

			resp, _ := get(t, app, "/api/series"+tc.query)

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, tc.wantDays, fake.LastInput.Days)
			} else {
				assert.False(t, fake.Called)
			}
		})
	}
}

// ------------------------------------------------------------
// DASHBOARD
// ------------------------------------------------------------

func TestGetDashboard(t *testing.T) {
	app := setupStoreApp(t,
		clicks.NewClick{Category: clicks.CategoryC, OccurredAt: testNow.Add(-time.Hour)},
	)

	resp, body := get(t, app, "/api/dashboard")

	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var got DashboardResponse
	require.NoError(t, json.Unmarshal(body, &got))

	assert.Equal(t, "2026-10-17", got.Day.Date)
	assert.Equal(t, int64(1), got.Day.Totals.C)
	assert.Equal(t, 14, got.Day.KPIs.PeakHour)
	require.Len(t, got.Series.Series, 1)
	assert.Equal(t, int64(1), got.Series.Series[0].C)
}

func TestGetDashboard_InvalidDate(t *testing.T) {
	app := setupStoreApp(t)

	resp, _ := get(t, app, "/api/dashboard?date=bad")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
