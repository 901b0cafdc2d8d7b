package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const AuditActionUserDeleted = "admin.user.deleted"

// AuditEvent records an administrative action.
type AuditEvent struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action           string             `bson:"action" json:"action"`
	ActorID          string             `bson:"actor_id" json:"actor_id"`
	ActorUsername    string             `bson:"actor_username" json:"actor_username"`
	TargetID         string             `bson:"target_id" json:"target_id"`
	TargetUsername   string             `bson:"target_username,omitempty" json:"target_username,omitempty"`
	FoodsRemoved     int64              `bson:"foods_removed" json:"foods_removed"`
	ExercisesRemoved int64              `bson:"exercises_removed" json:"exercises_removed"`
	IPAddress        string             `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	Timestamp        time.Time          `bson:"timestamp" json:"timestamp"`
}
