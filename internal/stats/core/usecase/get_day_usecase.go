package usecase

import (
	"context"
	"time"

	"click-stats-service/internal/stats/core/aggregate"
	"click-stats-service/internal/stats/core/domain"
	"click-stats-service/internal/stats/core/ports"
)

type GetDayInput struct {
	// Date is YYYY-MM-DD; empty means today in the configured zone.
	Date string
}

type GetDayUseCase struct {
	reader ports.ClickReaderPort
	loc    *time.Location
	now    func() time.Time
}

func NewGetDayUseCase(reader ports.ClickReaderPort, loc *time.Location) *GetDayUseCase {
	return &GetDayUseCase{reader: reader, loc: loc, now: time.Now}
}

func (uc *GetDayUseCase) WithClock(now func() time.Time) *GetDayUseCase {
	uc.now = now
	return uc
}

// Execute parses the date, loads that day's clicks and aggregates them.
func (uc *GetDayUseCase) Execute(ctx context.Context, in GetDayInput) (*domain.DayAggregate, error) {
	day, err := uc.parseDay(in.Date)
	if err != nil {
		return nil, err
	}

	start, end := aggregate.DayWindow(day, uc.loc)

	events, err := uc.reader.QueryRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	agg := aggregate.Day(events, day, uc.loc)
	return &agg, nil
}

func (uc *GetDayUseCase) parseDay(s string) (time.Time, error) {
	if s == "" {
		y, m, d := uc.now().In(uc.loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, uc.loc), nil
	}
	day, err := time.ParseInLocation(DateLayout, s, uc.loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return day, nil
}
