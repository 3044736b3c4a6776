package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditLog holds the structure for the auditlogs collection in mongo. Entries are append only.
type AuditLog struct {
	ID         primitive.ObjectID     `json:"_id" bson:"_id"`
	ActorID    string                 `json:"actorId" bson:"actorId"`
	Action     string                 `json:"action" bson:"action"`
	TargetType string                 `json:"targetType" bson:"targetType"`
	TargetID   string                 `json:"targetId" bson:"targetId"`
	Details    map[string]interface{} `json:"details,omitempty" bson:"details,omitempty"`
	CreatedAt  time.Time              `json:"createdAt" bson:"createdAt"`
}
