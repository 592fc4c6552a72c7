package usecase

import (
	"context"
	"time"

	"click-stats-service/internal/clicks/core/domain"
	"click-stats-service/internal/clicks/core/ports"
)

type SubmitClickUseCase struct {
	store ports.ClickStorePort
}

func NewSubmitClickUseCase(store ports.ClickStorePort) *SubmitClickUseCase {
	return &SubmitClickUseCase{store: store}
}

type SubmitClickInput struct {
	Category      string
	SourceAddress string
	AgentString   string

	// OccurredAt is optional; zero means store time.
	OccurredAt time.Time
}

// Execute normalizes and validates the category, then appends the click.
// It never retries: a repeated append would record the click twice.
func (uc *SubmitClickUseCase) Execute(ctx context.Context, in SubmitClickInput) (domain.ClickEvent, error) {
	category, err := domain.ParseCategory(in.Category)
	if err != nil {
		return domain.ClickEvent{}, err
	}

	c := domain.NewClick{
		Category:      category,
		SourceAddress: in.SourceAddress,
		AgentString:   domain.TruncateAgent(in.AgentString),
	}
	if !in.OccurredAt.IsZero() {
		c.OccurredAt = in.OccurredAt.UTC()
	}

	return uc.store.Append(ctx, c)
}
