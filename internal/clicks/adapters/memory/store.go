// Package memory is a process-local click store. It enforces the same
// category constraint as the database schemas and is safe for concurrent use.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"click-stats-service/internal/clicks/core/domain"
	"click-stats-service/internal/clicks/core/ports"
)

type ClickStore struct {
	mu     sync.RWMutex
	events []domain.ClickEvent
	nextID int64
	now    func() time.Time
}

func NewClickStore() *ClickStore {
	return &ClickStore{nextID: 1, now: time.Now}
}

// WithClock replaces the store clock used for default timestamps.
func (s *ClickStore) WithClock(now func() time.Time) *ClickStore {
	s.now = now
	return s
}

var _ ports.ClickStorePort = (*ClickStore)(nil)

func (s *ClickStore) Append(ctx context.Context, c domain.NewClick) (domain.ClickEvent, error) {
	if err := ctx.Err(); err != nil {
		return domain.ClickEvent{}, fmt.Errorf("%w: insert click: %w", domain.ErrStorage, err)
	}
	if !c.Category.Valid() {
		return domain.ClickEvent{}, fmt.Errorf("%w: insert click: category %q violates domain constraint", domain.ErrStorage, c.Category)
	}

	occurredAt := c.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ev := domain.ClickEvent{
		ID:            s.nextID,
		Category:      c.Category,
		SourceAddress: c.SourceAddress,
		AgentString:   domain.TruncateAgent(c.AgentString),
		OccurredAt:    occurredAt.UTC(),
	}
	s.nextID++
	s.events = append(s.events, ev)

	return ev, nil
}

func (s *ClickStore) QueryRange(ctx context.Context, start, end time.Time) ([]domain.ClickEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: query clicks: %w", domain.ErrStorage, err)
	}

	s.mu.RLock()
	out := []domain.ClickEvent{}
	for _, ev := range s.events {
		if !ev.OccurredAt.Before(start) && ev.OccurredAt.Before(end) {
			out = append(out, ev)
		}
	}
	s.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b domain.ClickEvent) int {
		if c := a.OccurredAt.Compare(b.OccurredAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return out, nil
}

// Ping reports whether the store is usable; the memory store always is.
func (s *ClickStore) Ping(ctx context.Context) error {
	return ctx.Err()
}
