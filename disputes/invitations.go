package disputes

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/landauthority/dispute-api/audit"
	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/notify"
	"github.com/landauthority/dispute-api/policy"
	templates "github.com/landauthority/dispute-api/templates/html"
)

const meetingTimeLayout = "Mon 2 Jan 2006 15:04 MST"

var schedulableStatuses = []models.CaseStatus{models.StatusOpen, models.StatusProcessing, models.StatusAppealed}

// ScheduleInvitation plans a meeting on a case the actor adjudicates and invites the
// chosen parties
func (s *Service) ScheduleInvitation(ctx context.Context, actor models.Actor, caseID string, in ScheduleInput) (models.Invitation, error) {
	c, err := s.load(ctx, caseID)
	if err != nil {
		return models.Invitation{}, err
	}
	if !policy.CanAdjudicate(actor, c) {
		return models.Invitation{}, forbidden("%s may not schedule meetings on case %s", actor.ID, c.ClaimID)
	}
	if !statusIn(c.Status, schedulableStatuses) {
		return models.Invitation{}, errors.Wrapf(models.InvalidTransitionError, "cannot schedule a meeting on a case that is %s", c.Status)
	}
	if err := s.checkStruct(in); err != nil {
		return models.Invitation{}, err
	}
	now := s.now().UTC()
	if in.DateTime.IsZero() || !in.DateTime.After(now) {
		return models.Invitation{}, invalidPayload("meeting time must be in the future")
	}

	inv := models.Invitation{
		ID:        primitive.NewObjectID(),
		CaseID:    c.ID,
		ClaimID:   c.ClaimID,
		Invitees:  uniqueInvitees(in.Invitees),
		DateTime:  in.DateTime.UTC(),
		Location:  strings.TrimSpace(in.Location),
		District:  c.District,
		Level:     c.Level.Normalize(),
		CreatedBy: actor.ID,
		CreatedAt: now,
	}
	if err := s.invitations.Insert(ctx, &inv); err != nil {
		return models.Invitation{}, errors.Wrap(err, "failed to store invitation")
	}

	s.audit.Record(ctx, actor, "schedule_meeting", audit.TargetInvitation, inv.ID.Hex(), map[string]interface{}{
		"claimId":  c.ClaimID,
		"dateTime": inv.DateTime,
		"invitees": inv.Invitees,
	})
	s.notifyInvitees(ctx, c, &inv, false)
	return inv, nil
}

// CancelInvitation cancels a meeting. Cancellation is final.
func (s *Service) CancelInvitation(ctx context.Context, actor models.Actor, invitationID string) (models.Invitation, error) {
	id, err := primitive.ObjectIDFromHex(invitationID)
	if err != nil {
		return models.Invitation{}, errors.Wrapf(models.ErrInvitationNotFound, "malformed invitation id %q", invitationID)
	}
	inv, err := s.invitations.FindByID(ctx, id)
	if err != nil {
		return models.Invitation{}, err
	}
	c, err := s.cases.FindByID(ctx, inv.CaseID)
	if err != nil {
		return models.Invitation{}, err
	}
	if inv.CreatedBy != actor.ID && !policy.CanAdjudicate(actor, c) {
		return models.Invitation{}, forbidden("%s may not cancel meetings on case %s", actor.ID, c.ClaimID)
	}
	if inv.IsCanceled {
		return models.Invitation{}, errors.Wrap(models.InvalidTransitionError, "meeting is already canceled")
	}

	now := s.now().UTC()
	ok, err := s.invitations.Cancel(ctx, inv.ID, now)
	if err != nil {
		return models.Invitation{}, errors.Wrap(err, "failed to cancel invitation")
	}
	if !ok {
		return models.Invitation{}, errors.Wrap(models.InvalidTransitionError, "meeting is already canceled")
	}
	inv.IsCanceled = true
	inv.CanceledAt = &now

	s.audit.Record(ctx, actor, "cancel_meeting", audit.TargetInvitation, inv.ID.Hex(), map[string]interface{}{
		"claimId": inv.ClaimID,
	})
	s.notifyInvitees(ctx, c, inv, true)
	return *inv, nil
}

// ListInvitations lists meetings. With a case id only that case's meetings are
// returned, otherwise meetings are scoped like cases.
func (s *Service) ListInvitations(ctx context.Context, actor models.Actor, caseID string, includeCanceled bool) ([]models.Invitation, error) {
	if caseID != "" {
		c, err := s.load(ctx, caseID)
		if err != nil {
			return nil, err
		}
		if !policy.CanRead(actor, c) {
			return nil, forbidden("%s may not read case %s", actor.ID, c.ClaimID)
		}
		return s.invitations.Find(ctx, models.InvitationFilter{CaseID: &c.ID, IncludeCanceled: includeCanceled})
	}

	filter, ok := policy.InvitationScope(actor)
	if !ok {
		if actor.Role() == models.RoleManager {
			return []models.Invitation{}, nil
		}
		cases, _, err := s.cases.FindByFilter(ctx, policy.Scope(actor, ""), models.Page{})
		if err != nil {
			return nil, errors.Wrap(err, "failed to list own cases")
		}
		if len(cases) == 0 {
			return []models.Invitation{}, nil
		}
		for _, c := range cases {
			filter.CaseIDs = append(filter.CaseIDs, c.ID)
		}
	}
	filter.IncludeCanceled = includeCanceled
	return s.invitations.Find(ctx, filter)
}

func (s *Service) notifyInvitees(ctx context.Context, c *models.Case, inv *models.Invitation, canceled bool) {
	when := inv.DateTime.Format(meetingTimeLayout)
	sms := "Meeting on land dispute " + c.ClaimID + " on " + when + " at " + inv.Location + "."
	if canceled {
		sms = "The meeting on land dispute " + c.ClaimID + " on " + when + " is canceled."
	}

	var msgs []notify.Message
	for _, invitee := range inv.Invitees {
		switch invitee {
		case models.InviteeClaimant:
			u, err := s.users.FindByID(ctx, c.Claimant)
			if err != nil {
				s.log.Warnw("claimant not invited", "claimId", c.ClaimID, "error", err)
				continue
			}
			msgs = append(msgs, meetingChannels(u.FullName, u.PhoneNumber, u.Email, c.ClaimID, when, inv.Location, sms, canceled)...)
		case models.InviteeDefendant:
			d := c.Defendant
			msgs = append(msgs, meetingChannels(d.FullName, d.PhoneNumber, d.Email, c.ClaimID, when, inv.Location, sms, canceled)...)
		case models.InviteeWitnesses:
			for _, w := range c.Witnesses {
				msgs = append(msgs, meetingChannels(w.FullName, w.PhoneNumber, "", c.ClaimID, when, inv.Location, sms, canceled)...)
			}
		}
	}
	if len(msgs) > 0 {
		s.dispatcher.Submit(msgs...)
	}
}

func meetingChannels(name, phone, email, claimID, when, location, sms string, canceled bool) []notify.Message {
	var msgs []notify.Message
	if phone != "" {
		msgs = append(msgs, notify.Message{Channel: notify.ChannelSMS, Recipient: phone, Body: sms})
	}
	if email != "" {
		subject := "Meeting scheduled for land dispute " + claimID
		if canceled {
			subject = "Meeting canceled for land dispute " + claimID
		}
		msgs = append(msgs, notify.Message{
			Channel:   notify.ChannelEmail,
			Recipient: email,
			Subject:   subject,
			Body:      templates.RenderMeetingEmail(name, claimID, when, location, canceled),
		})
	}
	return msgs
}

func uniqueInvitees(in []models.Invitee) []models.Invitee {
	seen := map[models.Invitee]bool{}
	out := make([]models.Invitee, 0, len(in))
	for _, i := range in {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	return out
}

