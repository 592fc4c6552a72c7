package ports

import (
	"context"
	"time"

	clicks "click-stats-service/internal/clicks/core/domain"
)

// ClickReaderPort is the read side of the click store.
type ClickReaderPort interface {
	QueryRange(ctx context.Context, start, end time.Time) ([]clicks.ClickEvent, error)
}
