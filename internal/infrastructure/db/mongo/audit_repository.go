package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/homekeeper/account-service/internal/core/domain"
)

const eventsCollection = "account_events"

// AuditRepository appends account events to the audit trail collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(eventsCollection)}
}

type mongoAccountEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Action    string             `bson:"action"`
	Actor     string             `bson:"actor,omitempty"`
	Timestamp int64              `bson:"timestamp"`
}

// InsertEvent appends one event. The trail is append-only.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AccountEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAccountEvent{
		Username:  event.Username,
		Action:    string(event.Action),
		Actor:     event.Actor,
		Timestamp: event.Timestamp.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert account event: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup indexes for the audit trail.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
