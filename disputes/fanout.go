package disputes

import (
	"context"

	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/notify"
	templates "github.com/landauthority/dispute-api/templates/html"
)

// caseEvent describes what happened to a case for every party
type caseEvent struct {
	name    string
	subject string
	sms     string
	note    string
}

// notifyParties fans one event out to the claimant, the defendant and every witness.
// Delivery is queued on the dispatcher and never awaited.
func (s *Service) notifyParties(ctx context.Context, c *models.Case, ev caseEvent) {
	msgs := s.partyMessages(ctx, c, ev)
	if len(msgs) == 0 {
		return
	}
	s.dispatcher.Submit(msgs...)
}

func (s *Service) partyMessages(ctx context.Context, c *models.Case, ev caseEvent) []notify.Message {
	var msgs []notify.Message
	payload := map[string]interface{}{
		"caseId":  c.ID.Hex(),
		"claimId": c.ClaimID,
		"status":  c.Status,
		"level":   c.Level,
	}

	if c.Claimant != "" {
		claimant, err := s.users.FindByID(ctx, c.Claimant)
		if err != nil {
			s.log.Warnw("claimant not notified", "claimId", c.ClaimID, "claimant", c.Claimant, "error", err)
		} else {
			msgs = append(msgs, partyChannels(claimant.FullName, claimant.PhoneNumber, claimant.Email, claimant.ID, c, ev, payload)...)
		}
	}

	d := c.Defendant
	msgs = append(msgs, partyChannels(d.FullName, d.PhoneNumber, d.Email, d.UserID, c, ev, payload)...)

	for _, w := range c.Witnesses {
		if w.PhoneNumber != "" {
			msgs = append(msgs, notify.Message{Channel: notify.ChannelSMS, Recipient: w.PhoneNumber, Body: ev.sms})
		}
	}
	return msgs
}

// partyChannels is one SMS, one email when the address is known and one in-app push when
// the party has an account
func partyChannels(name, phone, email, userID string, c *models.Case, ev caseEvent, payload map[string]interface{}) []notify.Message {
	var msgs []notify.Message
	if phone != "" {
		msgs = append(msgs, notify.Message{Channel: notify.ChannelSMS, Recipient: phone, Body: ev.sms})
	}
	if email != "" {
		msgs = append(msgs, notify.Message{
			Channel:   notify.ChannelEmail,
			Recipient: email,
			Subject:   ev.subject,
			Body:      templates.RenderCaseStatusEmail(name, c.ClaimID, string(c.Status), ev.note),
		})
	}
	if userID != "" {
		msgs = append(msgs, notify.Message{Channel: notify.ChannelInApp, Recipient: userID, Event: ev.name, Data: payload})
	}
	return msgs
}
