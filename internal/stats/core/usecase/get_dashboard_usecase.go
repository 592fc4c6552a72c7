package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"click-stats-service/internal/stats/core/domain"
)

type GetDashboardInput struct {
	Day    GetDayInput
	Series GetSeriesInput
}

type Dashboard struct {
	Day    *domain.DayAggregate
	Series *domain.Series
}

// GetDashboardUseCase runs the day and series queries concurrently.
type GetDashboardUseCase struct {
	day    *GetDayUseCase
	series *GetSeriesUseCase
}

func NewGetDashboardUseCase(day *GetDayUseCase, series *GetSeriesUseCase) *GetDashboardUseCase {
	return &GetDashboardUseCase{day: day, series: series}
}

func (uc *GetDashboardUseCase) Execute(ctx context.Context, in GetDashboardInput) (*Dashboard, error) {
	var out Dashboard

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		day, err := uc.day.Execute(ctx, in.Day)
		out.Day = day
		return err
	})
	g.Go(func() error {
		series, err := uc.series.Execute(ctx, in.Series)
		out.Series = series
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
