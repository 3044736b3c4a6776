package handlers

// go generate: mockery --name DisputeService

import (
	"context"
	"time"

	"github.com/landauthority/dispute-api/disputes"
	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/tokens"
)

// DisputeService is the part of disputes.Service the routes call
type DisputeService interface {
	CreateClaim(ctx context.Context, actor models.Actor, in disputes.CreateClaimInput) (models.CaseView, error)
	ListCases(ctx context.Context, actor models.Actor, q disputes.ListQuery) (disputes.CaseList, error)
	GetCase(ctx context.Context, actor models.Actor, caseID string) (models.CaseView, error)
	EditCase(ctx context.Context, actor models.Actor, caseID string, in disputes.EditInput) (models.CaseView, error)
	ListVersions(ctx context.Context, actor models.Actor, caseID string) ([]models.CaseVersion, error)
	Transition(ctx context.Context, actor models.Actor, caseID string, ev disputes.Event, in disputes.TransitionInput) (models.CaseView, error)
	Close(ctx context.Context, actor models.Actor, caseID string, in disputes.CloseInput) (models.CaseView, error)
	SoftDelete(ctx context.Context, actor models.Actor, caseID string) error
	AssignDefendant(ctx context.Context, actor models.Actor, caseID string, in disputes.AssignDefendantInput) (disputes.AssignmentResult, error)
	AcceptDefendantInvitation(ctx context.Context, actor models.Actor, token string) (models.CaseView, error)
	ShareDocuments(ctx context.Context, actor models.Actor, caseID string, in disputes.ShareInput) (disputes.ShareResult, error)
	ScheduleInvitation(ctx context.Context, actor models.Actor, caseID string, in disputes.ScheduleInput) (models.Invitation, error)
	CancelInvitation(ctx context.Context, actor models.Actor, invitationID string) (models.Invitation, error)
	ListInvitations(ctx context.Context, actor models.Actor, caseID string, includeCanceled bool) ([]models.Invitation, error)
	Statistics(ctx context.Context, actor models.Actor, q disputes.StatsQuery) (disputes.Statistics, error)
}

// SessionManager verifies and issues session tokens
type SessionManager interface {
	VerifySession(token string) (*tokens.SessionClaims, error)
	SignSession(claims tokens.SessionClaims, ttl time.Duration) (string, error)
}
