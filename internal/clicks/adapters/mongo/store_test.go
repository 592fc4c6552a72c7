package mongo

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"click-stats-service/internal/clicks/core/domain"
)

func counterResponse(seq int64) bson.D {
	return mtest.CreateSuccessResponse(bson.E{
		Key:   "value",
		Value: bson.D{{Key: "_id", Value: clicksCollection}, {Key: "seq", Value: seq}},
	})
}

func TestClickStore_Append(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns counter id and store time", func(mt *mtest.T) {
		now := time.Date(2026, 10, 17, 14, 15, 16, 999_999_999, time.UTC)
		store := NewClickStore(mt.DB).WithClock(func() time.Time { return now })

		mt.AddMockResponses(counterResponse(7), mtest.CreateSuccessResponse())

		ev, err := store.Append(context.Background(), domain.NewClick{
			Category:      domain.CategoryC,
			SourceAddress: "203.0.113.9",
		})

		require.NoError(mt, err)
		assert.Equal(mt, int64(7), ev.ID)
		assert.Equal(mt, domain.CategoryC, ev.Category)
		assert.True(mt, ev.OccurredAt.Equal(now.Truncate(time.Millisecond)))
	})

	mt.Run("truncates agent before insert", func(mt *mtest.T) {
		store := NewClickStore(mt.DB)
		mt.AddMockResponses(counterResponse(9), mtest.CreateSuccessResponse())

		ev, err := store.Append(context.Background(), domain.NewClick{
			Category:    domain.CategoryB,
			AgentString: strings.Repeat("x", domain.MaxAgentLength+1),
		})

		require.NoError(mt, err)
		assert.Len(mt, ev.AgentString, domain.MaxAgentLength)
	})

	mt.Run("validator rejection is a storage error", func(mt *mtest.T) {
		store := NewClickStore(mt.DB)

		mt.AddMockResponses(
			counterResponse(8),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 121, Message: "Document failed validation"}),
		)

		_, err := store.Append(context.Background(), domain.NewClick{Category: "Q"})

		require.Error(mt, err)
		assert.ErrorIs(mt, err, domain.ErrStorage)
	})

	mt.Run("counter failure is a storage error", func(mt *mtest.T) {
		store := NewClickStore(mt.DB)

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 11600, Name: "InterruptedAtShutdown", Message: "interrupted at shutdown",
		}))

		_, err := store.Append(context.Background(), domain.NewClick{Category: domain.CategoryA})

		assert.ErrorIs(mt, err, domain.ErrStorage)
	})
}

func TestClickStore_QueryRange(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes documents in order", func(mt *mtest.T) {
		store := NewClickStore(mt.DB)
		day := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".clicks", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: int64(1)}, {Key: "category", Value: "A"}, {Key: "occurred_at", Value: day.Add(time.Hour)}},
			bson.D{{Key: "_id", Value: int64(2)}, {Key: "category", Value: "D"}, {Key: "agent_string", Value: "ua"}, {Key: "occurred_at", Value: day.Add(2 * time.Hour)}},
		))

		got, err := store.QueryRange(context.Background(), day, day.Add(24*time.Hour))

		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, int64(1), got[0].ID)
		assert.Equal(mt, domain.CategoryD, got[1].Category)
		assert.Equal(mt, "ua", got[1].AgentString)
		assert.True(mt, got[1].OccurredAt.Equal(day.Add(2*time.Hour)))
	})

	mt.Run("empty range skips the round trip", func(mt *mtest.T) {
		store := NewClickStore(mt.DB)
		at := time.Now()

		got, err := store.QueryRange(context.Background(), at, at)

		require.NoError(mt, err)
		assert.NotNil(mt, got)
		assert.Empty(mt, got)
	})
}

func TestCategoryValidator(t *testing.T) {
	schema, ok := categoryValidator()["$jsonSchema"].(bson.M)
	require.True(t, ok)
	props := schema["properties"].(bson.M)
	category := props["category"].(bson.M)

	assert.Equal(t, bson.A{"A", "B", "C", "D"}, category["enum"])
}
