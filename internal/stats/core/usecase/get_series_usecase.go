package usecase

import (
	"context"
	"time"

	"click-stats-service/internal/stats/core/aggregate"
	"click-stats-service/internal/stats/core/domain"
	"click-stats-service/internal/stats/core/ports"
)

const DefaultSeriesDays = 30

type GetSeriesInput struct {
	// Days is the trailing window length; zero means the default.
	Days int
}

type GetSeriesUseCase struct {
	reader      ports.ClickReaderPort
	loc         *time.Location
	now         func() time.Time
	defaultDays int
	maxDays     int
}

func NewGetSeriesUseCase(reader ports.ClickReaderPort, loc *time.Location, defaultDays, maxDays int) *GetSeriesUseCase {
	if defaultDays <= 0 {
		defaultDays = DefaultSeriesDays
	}
	if maxDays < defaultDays {
		maxDays = defaultDays
	}
	return &GetSeriesUseCase{
		reader:      reader,
		loc:         loc,
		now:         time.Now,
		defaultDays: defaultDays,
		maxDays:     maxDays,
	}
}

func (uc *GetSeriesUseCase) WithClock(now func() time.Time) *GetSeriesUseCase {
	uc.now = now
	return uc
}

func (uc *GetSeriesUseCase) Execute(ctx context.Context, in GetSeriesInput) (*domain.Series, error) {
	days := in.Days
	if days == 0 {
		days = uc.defaultDays
	}
	if days < 0 || days > uc.maxDays {
		return nil, ErrInvalidWindow
	}

	start, end := aggregate.SeriesWindow(uc.now(), days)

	events, err := uc.reader.QueryRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &domain.Series{
		From:   start,
		To:     end,
		Days:   days,
		Points: aggregate.Series(events, start, end, uc.loc),
	}, nil
}
