package disputes

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/storage"
)

// PartyInput names the defendant at filing time
type PartyInput struct {
	FullName    string `json:"fullName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	NationalID  string `json:"nationalId"`
}

// CreateClaimInput is everything a claimant provides when filing
type CreateClaimInput struct {
	Title       string           `json:"title" validate:"required,max=200"`
	Description string           `json:"description" validate:"required"`
	UPI         string           `json:"upi" validate:"required"`
	Defendant   PartyInput       `json:"defendant"`
	Witnesses   []models.Witness `json:"witnesses" validate:"dive"`
}

// Event is a lifecycle trigger
type Event string

// Lifecycle events
const (
	EventProcess  Event = "process"
	EventResolve  Event = "resolve"
	EventReject   Event = "reject"
	EventAppeal   Event = "appeal"
	EventWithdraw Event = "withdraw"
)

// TransitionInput carries the payload of one lifecycle event. Letter is the signed and
// stamped decision letter, required by resolve and reject.
type TransitionInput struct {
	Feedback string
	Reason   string
	Letter   *storage.File
}

// CloseInput is the payload of the administrative close
type CloseInput struct {
	Reason string `json:"reason"`
}

// EditInput lists the fields that may change outside the lifecycle. Nil means unchanged.
type EditInput struct {
	Title       *string           `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string           `json:"description" validate:"omitempty,min=1"`
	Witnesses   *[]models.Witness `json:"witnesses"`
	Reason      string            `json:"reason"`
}

// AssignDefendantInput identifies the defendant being invited
type AssignDefendantInput struct {
	Email       string `json:"email" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	FullName    string `json:"fullName" validate:"required"`
	NationalID  string `json:"nationalId"`
}

// ShareInput are documents to store and the groups to send them to
type ShareInput struct {
	Documents      []storage.File
	RecipientTypes []models.RecipientType
	Message        string
}

// ScheduleInput plans a meeting on a case
type ScheduleInput struct {
	Invitees []models.Invitee `json:"invitees" validate:"required,min=1,dive,oneof=claimant defendant witnesses"`
	DateTime time.Time        `json:"dateTime"`
	Location string           `json:"location" validate:"required"`
}

// ListQuery refines a case listing. TargetUserID lets an admin look at one user's cases.
type ListQuery struct {
	TargetUserID string
	Statuses     []models.CaseStatus
	From         *time.Time
	To           *time.Time
	Page         models.Page
}

// StatsQuery is the inclusive createdAt window of a statistics request
type StatsQuery struct {
	From *time.Time
	To   *time.Time
}

// checkStruct runs the validator and folds the failure into InvalidPayload
func (s *Service) checkStruct(in interface{}) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Namespace()+" ("+fe.Tag()+")")
		}
		return invalidPayload("invalid fields: %s", strings.Join(fields, ", "))
	}
	return errors.Mark(err, models.InvalidPayloadError)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
