package domain

import (
	"time"

	clicks "click-stats-service/internal/clicks/core/domain"
)

const HoursPerDay = 24

// CategoryCounts holds one counter per category.
type CategoryCounts struct {
	A int64
	B int64
	C int64
	D int64
}

func (c *CategoryCounts) Add(cat clicks.Category, n int64) {
	switch cat {
	case clicks.CategoryA:
		c.A += n
	case clicks.CategoryB:
		c.B += n
	case clicks.CategoryC:
		c.C += n
	case clicks.CategoryD:
		c.D += n
	}
}

func (c CategoryCounts) Get(cat clicks.Category) int64 {
	switch cat {
	case clicks.CategoryA:
		return c.A
	case clicks.CategoryB:
		return c.B
	case clicks.CategoryC:
		return c.C
	case clicks.CategoryD:
		return c.D
	}
	return 0
}

func (c CategoryCounts) Sum() int64 {
	return c.A + c.B + c.C + c.D
}

type HourBucket struct {
	Hour   int
	Counts CategoryCounts
}

type KPIs struct {
	PeakHour  int
	PeakTotal int64
	// TopCategory is nil when the day has no clicks.
	TopCategory   *clicks.Category
	MedianPerHour float64
}

// DayAggregate is one calendar day of clicks. Hourly always has 24 entries.
type DayAggregate struct {
	Date   time.Time // local midnight
	Hourly [HoursPerDay]HourBucket
	Totals CategoryCounts
	KPIs   KPIs
}

type SeriesPoint struct {
	Date   time.Time // local midnight
	Counts CategoryCounts
}

// Series is the sparse per-day breakdown of [From, To).
type Series struct {
	From   time.Time
	To     time.Time
	Days   int
	Points []SeriesPoint
}
