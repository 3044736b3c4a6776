package disputes

import (
	"context"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/landauthority/dispute-api/audit"
	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/notify"
	"github.com/landauthority/dispute-api/policy"
	templates "github.com/landauthority/dispute-api/templates/html"
	"github.com/landauthority/dispute-api/tokens"
)

// Assignment outcomes
const (
	AssignmentSuccess        = "SUCCESS"
	AssignmentPartialSuccess = "PARTIAL_SUCCESS"
)

// AssignmentResult reports the assigned case and whether every invitation channel
// delivered
type AssignmentResult struct {
	Case           models.CaseView  `json:"case"`
	Status         string           `json:"status"`
	FailedChannels []notify.Channel `json:"failedChannels,omitempty"`
}

func canAssign(actor models.Actor, c *models.Case) bool {
	if isClaimant(actor, c) {
		return true
	}
	role := actor.Role()
	return (role == models.RoleManager || role == models.RoleAdmin) && policy.CanRead(actor, c)
}

// AssignDefendant binds a third party to a case through a signed invitation. Validation
// runs in a fixed order and each step has its own failure. Delivery of the invitation
// is awaited so the caller learns which channel failed, but a failed delivery never
// undoes the assignment.
func (s *Service) AssignDefendant(ctx context.Context, actor models.Actor, caseID string, in AssignDefendantInput) (AssignmentResult, error) {
	c, err := s.load(ctx, caseID)
	if err != nil {
		return AssignmentResult{}, err
	}
	if !canAssign(actor, c) {
		return AssignmentResult{}, forbidden("%s may not assign a defendant on case %s", actor.ID, c.ClaimID)
	}

	if err := s.checkStruct(in); err != nil {
		return AssignmentResult{}, err
	}
	email := normalizeEmail(in.Email)
	if err := s.validate.Var(email, "email"); err != nil {
		return AssignmentResult{}, invalidPayload("%q is not a valid email address", in.Email)
	}
	phone, ok := models.NormalizePhone(in.PhoneNumber)
	if !ok {
		return AssignmentResult{}, invalidPayload("%q is not a valid mobile number", in.PhoneNumber)
	}
	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return AssignmentResult{}, errors.Wrapf(models.DuplicateEmailError, "%s already belongs to an account", email)
	case err != nil && !errors.Is(err, models.NotFoundError):
		return AssignmentResult{}, errors.Wrap(err, "failed to look up user by email")
	}
	if current := normalizeEmail(c.Defendant.Email); current != "" && current != email {
		return AssignmentResult{}, errors.Wrapf(models.DefendantAlreadyAssignedError, "case %s already has a defendant", c.ClaimID)
	}

	token, err := s.tokens.SignInvitation(tokens.InvitationClaims{
		CaseID:      c.ID.Hex(),
		Email:       email,
		PhoneNumber: phone,
		FullName:    in.FullName,
		CaseCode:    c.ClaimID,
		NationalID:  in.NationalID,
	}, tokens.InvitationTTL)
	if err != nil {
		return AssignmentResult{}, errors.Mark(errors.Wrap(err, "failed to sign invitation"), models.UpstreamFailureError)
	}

	expected := c.Version
	now := s.now().UTC()
	c.Defendant = models.Defendant{
		FullName:           in.FullName,
		PhoneNumber:        phone,
		Email:              email,
		NationalID:         in.NationalID,
		AssignedAt:         &now,
		SignupToken:        token,
		RegistrationStatus: models.RegistrationPending,
	}
	if err := s.save(ctx, c, expected); err != nil {
		return AssignmentResult{}, err
	}

	link := s.registrationLink(token)
	results := s.dispatcher.Submit(
		notify.Message{
			Channel:   notify.ChannelEmail,
			Recipient: email,
			Subject:   "You are invited to respond to land dispute " + c.ClaimID,
			Body:      templates.RenderDefendantInvitationEmail(in.FullName, c.ClaimID, c.Title, link),
		},
		notify.Message{
			Channel:   notify.ChannelSMS,
			Recipient: phone,
			Body:      "You have been named defendant in land dispute " + c.ClaimID + ". Register within 7 days: " + link,
		},
	).Wait()

	res := AssignmentResult{Case: s.view(c), Status: AssignmentSuccess}
	for _, f := range notify.Failures(results) {
		res.FailedChannels = append(res.FailedChannels, f.Message.Channel)
	}
	if len(res.FailedChannels) > 0 {
		res.Status = AssignmentPartialSuccess
	}

	s.audit.Record(ctx, actor, "assign_defendant", audit.TargetCase, c.ID.Hex(), map[string]interface{}{
		"claimId":        c.ClaimID,
		"email":          email,
		"status":         res.Status,
		"failedChannels": res.FailedChannels,
	})
	return res, nil
}

func (s *Service) registrationLink(token string) string {
	return strings.TrimSuffix(s.frontendURL, "/") + "/register?token=" + url.QueryEscape(token)
}

// AcceptDefendantInvitation completes registration: actor is the account the defendant
// just created, token the invitation they received. Only the most recent invitation of
// the case is honored.
func (s *Service) AcceptDefendantInvitation(ctx context.Context, actor models.Actor, token string) (models.CaseView, error) {
	claims, err := s.tokens.VerifyInvitation(token)
	if err != nil {
		return models.CaseView{}, err
	}
	c, err := s.load(ctx, claims.CaseID)
	if err != nil {
		return models.CaseView{}, err
	}
	if c.Defendant.SignupToken != token || c.Defendant.RegistrationStatus != models.RegistrationPending {
		return models.CaseView{}, errors.Wrapf(models.ErrTokenInvalid, "invitation for %s is no longer pending", c.ClaimID)
	}
	if normalizeEmail(actor.Email) != normalizeEmail(claims.Email) {
		return models.CaseView{}, forbidden("invitation for %s was issued to another email", c.ClaimID)
	}

	expected := c.Version
	c.Defendant.UserID = actor.ID
	c.Defendant.RegistrationStatus = models.RegistrationRegistered
	c.Defendant.SignupToken = ""
	if err := s.save(ctx, c, expected); err != nil {
		return models.CaseView{}, err
	}
	s.audit.Record(ctx, actor, "accept_defendant_invitation", audit.TargetCase, c.ID.Hex(), map[string]interface{}{
		"claimId": c.ClaimID,
	})
	return s.view(c), nil
}
