package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"click-stats-service/internal/clicks/core/domain"
	"click-stats-service/internal/clicks/core/ports"

	"github.com/lib/pq"
)

type ClickRepository struct {
	db DB
}

func NewClickRepository(db DB) *ClickRepository {
	return &ClickRepository{db: db}
}

var _ ports.ClickStorePort = (*ClickRepository)(nil)

// The category CHECK constraint lives in the migration; a bad category that
// slips past the use case is rejected here with a check_violation.
const insertClickSQL = `
INSERT INTO clicks (
    category,
    source_address,
    agent_string,
    occurred_at
) VALUES (
    $1, $2, $3,
    COALESCE($4::timestamptz, now())
)
RETURNING id, occurred_at;
`

const selectRangeSQL = `
SELECT id, category, source_address, agent_string, occurred_at
FROM clicks
WHERE occurred_at >= $1 AND occurred_at < $2
ORDER BY occurred_at, id;
`

func (r *ClickRepository) Append(ctx context.Context, c domain.NewClick) (domain.ClickEvent, error) {
	c.AgentString = domain.TruncateAgent(c.AgentString)

	var occurredAt any
	if !c.OccurredAt.IsZero() {
		occurredAt = c.OccurredAt.UTC()
	}

	rows, err := r.db.QueryContext(ctx, insertClickSQL,
		string(c.Category),
		nullable(c.SourceAddress),
		nullable(c.AgentString),
		occurredAt,
	)
	if err != nil {
		return domain.ClickEvent{}, storageError("insert click", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.ClickEvent{}, storageError("insert click", err)
		}
		return domain.ClickEvent{}, storageError("insert click", errors.New("no row returned"))
	}

	ev := domain.ClickEvent{
		Category:      c.Category,
		SourceAddress: c.SourceAddress,
		AgentString:   c.AgentString,
	}
	if err := rows.Scan(&ev.ID, &ev.OccurredAt); err != nil {
		return domain.ClickEvent{}, storageError("scan inserted click", err)
	}
	if err := rows.Err(); err != nil {
		return domain.ClickEvent{}, storageError("insert click", err)
	}

	return ev, nil
}

func (r *ClickRepository) QueryRange(ctx context.Context, start, end time.Time) ([]domain.ClickEvent, error) {
	out := []domain.ClickEvent{}
	if !start.Before(end) {
		return out, nil
	}

	rows, err := r.db.QueryContext(ctx, selectRangeSQL, start.UTC(), end.UTC())
	if err != nil {
		return nil, storageError("query clicks", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ev       domain.ClickEvent
			category string
			source   sql.NullString
			agent    sql.NullString
		)
		if err := rows.Scan(&ev.ID, &category, &source, &agent, &ev.OccurredAt); err != nil {
			return nil, storageError("scan click", err)
		}
		ev.Category = domain.Category(category)
		ev.SourceAddress = source.String
		ev.AgentString = agent.String
		out = append(out, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("query clicks", err)
	}

	return out, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func storageError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return fmt.Errorf("%w: %s: constraint %q violated: %w", domain.ErrStorage, op, pqErr.Constraint, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, op, err)
}
