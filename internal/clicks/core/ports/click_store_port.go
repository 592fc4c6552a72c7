package ports

import (
	"context"
	"time"

	"click-stats-service/internal/clicks/core/domain"
)

type ClickStorePort interface {
	// Append persists one click atomically and returns it with id and
	// occurredAt filled in. Failures wrap domain.ErrStorage.
	Append(ctx context.Context, c domain.NewClick) (domain.ClickEvent, error)

	// QueryRange returns clicks with occurredAt in [start, end), ordered by
	// occurredAt then id. An empty range yields an empty slice.
	QueryRange(ctx context.Context, start, end time.Time) ([]domain.ClickEvent, error)
}
