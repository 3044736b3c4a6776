package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldChange records the old and new value of one edited field
type FieldChange struct {
	From interface{} `json:"from" bson:"from"`
	To   interface{} `json:"to" bson:"to"`
}

// CaseVersion holds the structure for the caseversions collection in mongo. It is an
// immutable snapshot written before every authorized non-status edit.
type CaseVersion struct {
	ID        primitive.ObjectID     `json:"_id" bson:"_id"`
	CaseID    primitive.ObjectID     `json:"caseId" bson:"caseId"`
	Version   int                    `json:"version" bson:"version"`
	Changes   map[string]FieldChange `json:"changes" bson:"changes"`
	EditedBy  string                 `json:"editedBy" bson:"editedBy"`
	Reason    string                 `json:"reason,omitempty" bson:"reason,omitempty"`
	CreatedAt time.Time              `json:"createdAt" bson:"createdAt"`
}
