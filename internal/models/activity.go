package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActivityAction string

const (
	ActivityJobStatusChanged         ActivityAction = "job.status_changed"
	ActivityJobDeleted               ActivityAction = "job.deleted"
	ActivityApplicationCreated       ActivityAction = "application.created"
	ActivityApplicationStatusChanged ActivityAction = "application.status_changed"
)

// Activity is an audit record of a lifecycle change, stored in mongo.
type Activity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActorID     string             `bson:"actor_id" json:"actorId"`
	RecruiterID string             `bson:"recruiter_id,omitempty" json:"recruiterId,omitempty"`
	EntityType  string             `bson:"entity_type" json:"entityType"` // job|application
	EntityID    string             `bson:"entity_id" json:"entityId"`
	Action      ActivityAction     `bson:"action" json:"action"`
	From        string             `bson:"from,omitempty" json:"from,omitempty"`
	To          string             `bson:"to,omitempty" json:"to,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	ExpiresAt   time.Time          `bson:"expires_at" json:"-"`
}
