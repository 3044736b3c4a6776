package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CaseStatus is the lifecycle status of a dispute
type CaseStatus string

// Case statuses
const (
	StatusOpen       CaseStatus = "open"
	StatusProcessing CaseStatus = "processing"
	StatusResolved   CaseStatus = "resolved"
	StatusRejected   CaseStatus = "rejected"
	StatusAppealed   CaseStatus = "appealed"
	StatusWithdrawn  CaseStatus = "withdrawn"
	StatusClosed     CaseStatus = "closed"
)

// AllStatuses lists every status in display order
var AllStatuses = []CaseStatus{
	StatusOpen, StatusProcessing, StatusResolved, StatusRejected,
	StatusAppealed, StatusWithdrawn, StatusClosed,
}

// Level is the jurisdiction tier handling a case
type Level string

// Jurisdiction tiers, lowest first
const (
	LevelDistrict Level = "district"
	LevelNLA      Level = "nla"
	LevelCourt    Level = "court"
)

// Rank orders tiers. An empty level counts as district.
func (l Level) Rank() int {
	switch l {
	case LevelNLA:
		return 1
	case LevelCourt:
		return 2
	default:
		return 0
	}
}

// Normalize maps a missing level to district
func (l Level) Normalize() Level {
	if l == "" {
		return LevelDistrict
	}
	return l
}

// Defendant registration statuses
const (
	RegistrationPending    = "PENDING_REGISTRATION"
	RegistrationRegistered = "REGISTERED"
)

// Case holds the structure for the cases collection in mongo
type Case struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	ClaimID string             `json:"claimId" bson:"claimId"`

	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`

	Status   CaseStatus `json:"status" bson:"status"`
	Level    Level      `json:"level" bson:"level"`
	District string     `json:"district" bson:"district"`
	Land     LandInfo   `json:"land" bson:"land"`

	Claimant  string    `json:"claimant" bson:"claimant"`
	Defendant Defendant `json:"defendant" bson:"defendant"`
	Witnesses []Witness `json:"witnesses" bson:"witnesses"`

	OpenedBy   string `json:"openedBy,omitempty" bson:"openedBy,omitempty"`
	ResolvedBy string `json:"resolvedBy,omitempty" bson:"resolvedBy,omitempty"`
	RejectedBy string `json:"rejectedBy,omitempty" bson:"rejectedBy,omitempty"`
	ClosedBy   string `json:"closedBy,omitempty" bson:"closedBy,omitempty"`

	LastDecisionBy string `json:"lastDecisionBy,omitempty" bson:"lastDecisionBy,omitempty"`

	Feedback       string `json:"feedback,omitempty" bson:"feedback,omitempty"`
	RejectReason   string `json:"rejectReason,omitempty" bson:"rejectReason,omitempty"`
	AppealReason   string `json:"appealReason,omitempty" bson:"appealReason,omitempty"`
	WithdrawReason string `json:"withdrawReason,omitempty" bson:"withdrawReason,omitempty"`
	CloseReason    string `json:"closeReason,omitempty" bson:"closeReason,omitempty"`

	ResolutionLetter *StoredDocument `json:"resolutionLetter,omitempty" bson:"resolutionLetter,omitempty"`
	RejectionLetter  *StoredDocument `json:"rejectionLetter,omitempty" bson:"rejectionLetter,omitempty"`

	AppealedAt      *time.Time       `json:"appealedAt,omitempty" bson:"appealedAt,omitempty"`
	SharedDocuments []SharedDocument `json:"sharedDocuments" bson:"sharedDocuments"`

	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	LastUpdated time.Time  `json:"lastUpdated" bson:"lastUpdated"`
	DeletedAt   *time.Time `json:"-" bson:"deletedAt,omitempty"`

	Version int64 `json:"__v" bson:"__v"`
}

// LandInfo is the land record snapshot the case was filed against
type LandInfo struct {
	UPI      string `json:"upi" bson:"upi"`
	District string `json:"district" bson:"district"`
	Sector   string `json:"sector" bson:"sector"`
	Cell     string `json:"cell,omitempty" bson:"cell,omitempty"`
	Village  string `json:"village,omitempty" bson:"village,omitempty"`
}

// Defendant is the counterparty named on a case
type Defendant struct {
	FullName           string     `json:"fullName" bson:"fullName"`
	PhoneNumber        string     `json:"phoneNumber" bson:"phoneNumber"`
	Email              string     `json:"email,omitempty" bson:"email,omitempty"`
	NationalID         string     `json:"nationalId,omitempty" bson:"nationalId,omitempty"`
	UserID             string     `json:"userId,omitempty" bson:"userId,omitempty"`
	AssignedAt         *time.Time `json:"assignedAt,omitempty" bson:"assignedAt,omitempty"`
	SignupToken        string     `json:"-" bson:"signupToken,omitempty"`
	RegistrationStatus string     `json:"registrationStatus,omitempty" bson:"registrationStatus,omitempty"`
}

// Witness is a non-party contact notified about case events
type Witness struct {
	FullName    string `json:"fullName" bson:"fullName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" bson:"phoneNumber" validate:"required"`
}

// StoredDocument is a file persisted through the storage port
type StoredDocument struct {
	URL        string    `json:"url" bson:"url"`
	Name       string    `json:"name" bson:"name"`
	UploadedAt time.Time `json:"uploadedAt" bson:"uploadedAt"`
}

// RecipientType selects who receives shared documents
type RecipientType string

// Recipient types for document sharing
const (
	RecipientCommittee RecipientType = "committee"
	RecipientDefendant RecipientType = "defendant"
	RecipientClaimant  RecipientType = "claimant"
)

// SharedDocument is one entry of the append-only shared documents list
type SharedDocument struct {
	URL            string          `json:"url" bson:"url"`
	Name           string          `json:"name" bson:"name"`
	SharedAt       time.Time       `json:"sharedAt" bson:"sharedAt"`
	SharedBy       string          `json:"sharedBy,omitempty" bson:"sharedBy,omitempty"`
	RecipientTypes []RecipientType `json:"recipientType" bson:"recipientType"`
}

// CaseView is a case as returned to callers, with derived fields filled in
type CaseView struct {
	Case
	OverdueDays int `json:"overdueDays"`
}

// IsParty reports whether userID is the claimant or the registered defendant
func (c *Case) IsParty(userID string) bool {
	if userID == "" {
		return false
	}
	return c.Claimant == userID || c.Defendant.UserID == userID
}
