// Package aggregate folds click events into day and series statistics.
// Every function here is pure: same events and window, same result.
package aggregate

import (
	"slices"
	"time"

	clicks "click-stats-service/internal/clicks/core/domain"
	"click-stats-service/internal/stats/core/domain"
)

// DayWindow returns [local midnight, next local midnight) in loc for the
// calendar date of day as read in day's own location.
func DayWindow(day time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// SeriesWindow is the trailing window of days*24h ending at now.
func SeriesWindow(now time.Time, days int) (time.Time, time.Time) {
	return now.Add(-time.Duration(days) * 24 * time.Hour), now
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// Day buckets events into 24 wall-clock hours of day in loc and derives
// totals and KPIs. Events outside the day are ignored.
func Day(events []clicks.ClickEvent, day time.Time, loc *time.Location) domain.DayAggregate {
	start, end := DayWindow(day, loc)

	agg := domain.DayAggregate{Date: start}
	for h := range agg.Hourly {
		agg.Hourly[h].Hour = h
	}

	for _, ev := range events {
		if !inWindow(ev.OccurredAt, start, end) {
			continue
		}
		h := ev.OccurredAt.In(loc).Hour()
		agg.Hourly[h].Counts.Add(ev.Category, 1)
	}

	var sums [domain.HoursPerDay]int64
	for h, b := range agg.Hourly {
		agg.Totals.A += b.Counts.A
		agg.Totals.B += b.Counts.B
		agg.Totals.C += b.Counts.C
		agg.Totals.D += b.Counts.D
		sums[h] = b.Counts.Sum()
	}

	agg.KPIs.PeakHour, agg.KPIs.PeakTotal = Peak(sums[:])
	agg.KPIs.TopCategory = TopCategory(agg.Totals)
	agg.KPIs.MedianPerHour = Median(sums[:])

	return agg
}

// Peak returns the first index holding the maximum and that maximum.
// All-zero or empty input yields (0, 0).
func Peak(sums []int64) (int, int64) {
	if len(sums) == 0 {
		return 0, 0
	}
	idx, peak := 0, sums[0]
	for i := 1; i < len(sums); i++ {
		if sums[i] > peak {
			idx, peak = i, sums[i]
		}
	}
	if peak <= 0 {
		return 0, 0
	}
	return idx, peak
}

// TopCategory returns the category with the largest total, first in A..D
// order on ties, or nil when every total is zero.
func TopCategory(totals domain.CategoryCounts) *clicks.Category {
	if totals.Sum() == 0 {
		return nil
	}
	top := clicks.Categories[0]
	for _, c := range clicks.Categories[1:] {
		if totals.Get(c) > totals.Get(top) {
			top = c
		}
	}
	return &top
}

// Median of values; the mean of the two middle values for even counts.
func Median(values []int64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

// Series emits one point per calendar day in loc that has at least one
// event inside [start, end), ascending by date.
func Series(events []clicks.ClickEvent, start, end time.Time, loc *time.Location) []domain.SeriesPoint {
	byDay := map[time.Time]*domain.SeriesPoint{}

	for _, ev := range events {
		if !inWindow(ev.OccurredAt, start, end) {
			continue
		}
		y, m, d := ev.OccurredAt.In(loc).Date()
		key := time.Date(y, m, d, 0, 0, 0, 0, loc)
		p, ok := byDay[key]
		if !ok {
			p = &domain.SeriesPoint{Date: key}
			byDay[key] = p
		}
		p.Counts.Add(ev.Category, 1)
	}

	points := make([]domain.SeriesPoint, 0, len(byDay))
	for _, p := range byDay {
		points = append(points, *p)
	}
	slices.SortFunc(points, func(a, b domain.SeriesPoint) int {
		return a.Date.Compare(b.Date)
	})
	return points
}
