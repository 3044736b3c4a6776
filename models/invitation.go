package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Invitee names a party group invited to a meeting
type Invitee string

// Meeting invitees
const (
	InviteeClaimant  Invitee = "claimant"
	InviteeDefendant Invitee = "defendant"
	InviteeWitnesses Invitee = "witnesses"
)

// Invitation holds the structure for the invitations collection in mongo: a meeting
// scheduled on a case. District is copied from the case for visibility scoping.
type Invitation struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	CaseID     primitive.ObjectID `json:"caseId" bson:"caseId"`
	ClaimID    string             `json:"claimId" bson:"claimId"`
	Invitees   []Invitee          `json:"invitees" bson:"invitees"`
	DateTime   time.Time          `json:"dateTime" bson:"dateTime"`
	Location   string             `json:"location" bson:"location"`
	District   string             `json:"district" bson:"district"`
	Level      Level              `json:"level" bson:"level"`
	IsCanceled bool               `json:"isCanceled" bson:"isCanceled"`
	CanceledAt *time.Time         `json:"canceledAt,omitempty" bson:"canceledAt,omitempty"`
	CreatedBy  string             `json:"createdBy" bson:"createdBy"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// InvitationFilter scopes meeting listings the same way cases are scoped
type InvitationFilter struct {
	CaseID          *primitive.ObjectID
	CaseIDs         []primitive.ObjectID
	District        string
	ExcludeLevels   []Level
	IncludeCanceled bool
}

// Matches reports whether inv satisfies the filter
func (f InvitationFilter) Matches(inv *Invitation) bool {
	if f.CaseID != nil && inv.CaseID != *f.CaseID {
		return false
	}
	if len(f.CaseIDs) > 0 {
		found := false
		for _, id := range f.CaseIDs {
			if id == inv.CaseID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.District != "" && inv.District != f.District {
		return false
	}
	for _, l := range f.ExcludeLevels {
		if inv.Level == l {
			return false
		}
	}
	return f.IncludeCanceled || !inv.IsCanceled
}
