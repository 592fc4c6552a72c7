package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"click-stats-service/internal/clicks/core/domain"
	"click-stats-service/internal/clicks/core/ports"
)

const (
	clicksCollection   = "clicks"
	countersCollection = "counters"

	codeNamespaceExists = 48
)

type clickDocument struct {
	ID            int64     `bson:"_id"`
	Category      string    `bson:"category"`
	SourceAddress string    `bson:"source_address,omitempty"`
	AgentString   string    `bson:"agent_string,omitempty"`
	OccurredAt    time.Time `bson:"occurred_at"`
}

type counterDocument struct {
	Seq int64 `bson:"seq"`
}

type ClickStore struct {
	db       *mongo.Database
	clicks   *mongo.Collection
	counters *mongo.Collection
	now      func() time.Time
}

func NewClickStore(db *mongo.Database) *ClickStore {
	return &ClickStore{
		db:       db,
		clicks:   db.Collection(clicksCollection),
		counters: db.Collection(countersCollection),
		now:      time.Now,
	}
}

// WithClock replaces the clock used for default timestamps.
func (s *ClickStore) WithClock(now func() time.Time) *ClickStore {
	s.now = now
	return s
}

var _ ports.ClickStorePort = (*ClickStore)(nil)

// Connect dials uri and verifies the deployment answers a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// categoryValidator rejects documents outside the category domain at the
// storage layer, mirroring the CHECK constraint of the SQL schema.
func categoryValidator() bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"_id", "category", "occurred_at"},
		"properties": bson.M{
			"_id":            bson.M{"bsonType": "long"},
			"category":       bson.M{"enum": bson.A{"A", "B", "C", "D"}},
			"source_address": bson.M{"bsonType": "string"},
			"agent_string":   bson.M{"bsonType": "string", "maxLength": domain.MaxAgentLength},
			"occurred_at":    bson.M{"bsonType": "date"},
		},
	}}
}

// EnsureSchema creates the clicks collection with its validator, or
// refreshes the validator on an existing one, and indexes occurred_at.
func (s *ClickStore) EnsureSchema(ctx context.Context) error {
	validator := categoryValidator()

	err := s.db.CreateCollection(ctx, clicksCollection,
		options.CreateCollection().
			SetValidator(validator).
			SetValidationLevel("strict").
			SetValidationAction("error"),
	)
	if err != nil {
		var cmdErr mongo.CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Code != codeNamespaceExists {
			return fmt.Errorf("%w: create clicks collection: %w", domain.ErrStorage, err)
		}
		cmd := bson.D{
			{Key: "collMod", Value: clicksCollection},
			{Key: "validator", Value: validator},
			{Key: "validationLevel", Value: "strict"},
		}
		if err := s.db.RunCommand(ctx, cmd).Err(); err != nil {
			return fmt.Errorf("%w: update clicks validator: %w", domain.ErrStorage, err)
		}
	}

	_, err = s.clicks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "occurred_at", Value: 1}, {Key: "_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("%w: create occurred_at index: %w", domain.ErrStorage, err)
	}
	return nil
}

func (s *ClickStore) nextID(ctx context.Context) (int64, error) {
	var c counterDocument
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": clicksCollection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return 0, err
	}
	return c.Seq, nil
}

// Append allocates the next id and inserts one document. A failed insert
// leaves a gap in the id sequence but never a partial click.
func (s *ClickStore) Append(ctx context.Context, c domain.NewClick) (domain.ClickEvent, error) {
	id, err := s.nextID(ctx)
	if err != nil {
		return domain.ClickEvent{}, fmt.Errorf("%w: allocate click id: %w", domain.ErrStorage, err)
	}

	occurredAt := c.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = s.now()
	}
	// BSON dates carry millisecond precision.
	occurredAt = occurredAt.UTC().Truncate(time.Millisecond)

	doc := clickDocument{
		ID:            id,
		Category:      string(c.Category),
		SourceAddress: c.SourceAddress,
		AgentString:   domain.TruncateAgent(c.AgentString),
		OccurredAt:    occurredAt,
	}
	if _, err := s.clicks.InsertOne(ctx, doc); err != nil {
		return domain.ClickEvent{}, fmt.Errorf("%w: insert click: %w", domain.ErrStorage, err)
	}

	return toDomain(doc), nil
}

func (s *ClickStore) QueryRange(ctx context.Context, start, end time.Time) ([]domain.ClickEvent, error) {
	out := []domain.ClickEvent{}
	if !start.Before(end) {
		return out, nil
	}

	filter := bson.M{"occurred_at": bson.M{"$gte": start.UTC(), "$lt": end.UTC()}}
	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := s.clicks.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: query clicks: %w", domain.ErrStorage, err)
	}
	defer cur.Close(ctx)

	var docs []clickDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode clicks: %w", domain.ErrStorage, err)
	}

	for _, d := range docs {
		out = append(out, toDomain(d))
	}
	return out, nil
}

func (s *ClickStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

func toDomain(d clickDocument) domain.ClickEvent {
	return domain.ClickEvent{
		ID:            d.ID,
		Category:      domain.Category(d.Category),
		SourceAddress: d.SourceAddress,
		AgentString:   d.AgentString,
		OccurredAt:    d.OccurredAt.UTC(),
	}
}
