package services

import (
	"context"
	"time"

	"github.com/AnshRaj112/calsum-backend/internal/models"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	auditCollection   = "audit_events"
	DefaultAuditLimit = 50
	MaxAuditLimit     = 200
)

// AuditLog records administrative actions.
type AuditLog interface {
	Record(ctx context.Context, event models.AuditEvent)
	Recent(ctx context.Context, limit int64) ([]models.AuditEvent, error)
}

// NopAuditLog is used when no MongoDB is configured.
type NopAuditLog struct{}

func (NopAuditLog) Record(context.Context, models.AuditEvent) {}

func (NopAuditLog) Recent(context.Context, int64) ([]models.AuditEvent, error) {
	return []models.AuditEvent{}, nil
}

// MongoAuditLog stores audit events in the audit_events collection.
type MongoAuditLog struct {
	col *mongo.Collection
}

func NewMongoAuditLog(db *mongo.Database) *MongoAuditLog {
	return &MongoAuditLog{col: db.Collection(auditCollection)}
}

// EnsureIndexes creates the timestamp index used by Recent.
// Called on startup from main after Mongo has connected.
func (l *MongoAuditLog) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_timestamp"),
		},
		{
			Keys:    bson.D{{Key: "target_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_target_timestamp"),
		},
	}
	_, err := l.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// Record persists the event asynchronously; failures are logged, never returned.
func (l *MongoAuditLog) Record(ctx context.Context, event models.AuditEvent) {
	logger := log.Ctx(ctx)
	go func(ev models.AuditEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if ev.Timestamp.IsZero() {
			ev.Timestamp = time.Now().UTC()
		}
		if _, err := l.col.InsertOne(ctx, ev); err != nil {
			logger.Warn().Err(err).Str("action", ev.Action).Msg("audit event not stored")
		}
	}(event)
}

// Recent returns the newest events first.
func (l *MongoAuditLog) Recent(ctx context.Context, limit int64) ([]models.AuditEvent, error) {
	if limit <= 0 || limit > MaxAuditLimit {
		limit = DefaultAuditLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cur, err := l.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeError(err)
	}
	defer cur.Close(ctx)

	events := []models.AuditEvent{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, storeError(err)
	}
	return events, nil
}
