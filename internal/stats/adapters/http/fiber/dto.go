package fiber

import (
	"time"

	"click-stats-service/internal/stats/core/domain"
	"click-stats-service/internal/stats/core/usecase"
)

type CountsResponse struct {
	A int64 `json:"A" example:"12"`
	B int64 `json:"B" example:"4"`
	C int64 `json:"C" example:"0"`
	D int64 `json:"D" example:"7"`
}

type HourlyResponse struct {
	Hour int   `json:"hour" example:"14"`
	A    int64 `json:"A" example:"3"`
	B    int64 `json:"B" example:"1"`
	C    int64 `json:"C" example:"0"`
	D    int64 `json:"D" example:"2"`
}

type KPIsResponse struct {
	PeakHour      int     `json:"peakHour" example:"14"`
	PeakTotal     int64   `json:"peakTotal" example:"6"`
	TopCategory   *string `json:"topCategory" example:"A"`
	MedianPerHour float64 `json:"medianPerHour" example:"0.5"`
}

type DayResponse struct {
	Date   string           `json:"date" example:"2026-10-17"`
	Hourly []HourlyResponse `json:"hourly"`
	Totals CountsResponse   `json:"totals"`
	KPIs   KPIsResponse     `json:"kpis"`
}

type SeriesPointResponse struct {
	Date string `json:"date" example:"2026-10-17"`
	A    int64  `json:"A" example:"12"`
	B    int64  `json:"B" example:"4"`
	C    int64  `json:"C" example:"0"`
	D    int64  `json:"D" example:"7"`
}

type SeriesResponse struct {
	Days   int                   `json:"days" example:"30"`
	From   time.Time             `json:"from"`
	To     time.Time             `json:"to"`
	Series []SeriesPointResponse `json:"series"`
}

type DashboardResponse struct {
	Day    DayResponse    `json:"day"`
	Series SeriesResponse `json:"series"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"validation error: date must be YYYY-MM-DD"`
}

func counts(c domain.CategoryCounts) CountsResponse {
	return CountsResponse{A: c.A, B: c.B, C: c.C, D: c.D}
}

func newDayResponse(agg *domain.DayAggregate) DayResponse {
	resp := DayResponse{
		Date:   agg.Date.Format(usecase.DateLayout),
		Hourly: make([]HourlyResponse, 0, len(agg.Hourly)),
		Totals: counts(agg.Totals),
		KPIs: KPIsResponse{
			PeakHour:      agg.KPIs.PeakHour,
			PeakTotal:     agg.KPIs.PeakTotal,
			MedianPerHour: agg.KPIs.MedianPerHour,
		},
	}
	if agg.KPIs.TopCategory != nil {
		top := string(*agg.KPIs.TopCategory)
		resp.KPIs.TopCategory = &top
	}
	for _, b := range agg.Hourly {
		resp.Hourly = append(resp.Hourly, HourlyResponse{
			Hour: b.Hour,
			A:    b.Counts.A,
			B:    b.Counts.B,
			C:    b.Counts.C,
			D:    b.Counts.D,
		})
	}
	return resp
}

func newSeriesResponse(s *domain.Series) SeriesResponse {
	resp := SeriesResponse{
		Days:   s.Days,
		From:   s.From,
		To:     s.To,
		Series: make([]SeriesPointResponse, 0, len(s.Points)),
	}
	for _, p := range s.Points {
		resp.Series = append(resp.Series, SeriesPointResponse{
			Date: p.Date.Format(usecase.DateLayout),
			A:    p.Counts.A,
			B:    p.Counts.B,
			C:    p.Counts.C,
			D:    p.Counts.D,
		})
	}
	return resp
}
