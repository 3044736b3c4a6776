package disputes

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/landauthority/dispute-api/audit"
	"github.com/landauthority/dispute-api/metrics"
	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/policy"
	"github.com/landauthority/dispute-api/storage"
)

// rule is one row of the transition table
type rule struct {
	from        []models.CaseStatus
	to          models.CaseStatus
	allowed     func(actor models.Actor, c *models.Case) bool
	needsLetter bool
	needsReason bool
	// reachable runs after the status check and before the payload checks
	reachable func(c *models.Case) error
	apply       func(c *models.Case, actor models.Actor, in TransitionInput, letter *models.StoredDocument, now time.Time) error
}

func isClaimant(actor models.Actor, c *models.Case) bool {
	return actor.ID != "" && actor.ID == c.Claimant
}

var rules = map[Event]rule{
	EventProcess: {
		from:    []models.CaseStatus{models.StatusOpen, models.StatusAppealed},
		to:      models.StatusProcessing,
		allowed: policy.CanAdjudicate,
		apply: func(c *models.Case, actor models.Actor, _ TransitionInput, _ *models.StoredDocument, _ time.Time) error {
			if c.OpenedBy == "" {
				c.OpenedBy = actor.ID
			}
			return nil
		},
	},
	EventResolve: {
		from:        []models.CaseStatus{models.StatusProcessing},
		to:          models.StatusResolved,
		allowed:     policy.CanAdjudicate,
		needsLetter: true,
		apply: func(c *models.Case, actor models.Actor, in TransitionInput, letter *models.StoredDocument, _ time.Time) error {
			recordDecision(c, actor, models.StatusResolved)
			if in.Feedback != "" {
				c.Feedback = in.Feedback
			}
			c.ResolutionLetter = letter
			return nil
		},
	},
	EventReject: {
		from:        []models.CaseStatus{models.StatusOpen, models.StatusProcessing, models.StatusAppealed},
		to:          models.StatusRejected,
		allowed:     policy.CanAdjudicate,
		needsLetter: true,
		needsReason: true,
		apply: func(c *models.Case, actor models.Actor, in TransitionInput, letter *models.StoredDocument, _ time.Time) error {
			recordDecision(c, actor, models.StatusRejected)
			c.RejectReason = in.Reason
			c.RejectionLetter = letter
			return nil
		},
	},
	EventAppeal: {
		from:        []models.CaseStatus{models.StatusResolved, models.StatusRejected},
		to:          models.StatusAppealed,
		allowed:     isClaimant,
		needsReason: true,
		reachable: func(c *models.Case) error {
			_, err := policy.Escalate(c.Level)
			return err
		},
		apply: func(c *models.Case, _ models.Actor, in TransitionInput, _ *models.StoredDocument, now time.Time) error {
			next, err := policy.Escalate(c.Level)
			if err != nil {
				return err
			}
			c.Level = next
			c.AppealReason = in.Reason
			if c.AppealedAt == nil {
				c.AppealedAt = &now
			}
			return nil
		},
	},
	EventWithdraw: {
		from:    []models.CaseStatus{models.StatusOpen, models.StatusAppealed},
		to:      models.StatusWithdrawn,
		allowed: isClaimant,
		apply: func(c *models.Case, _ models.Actor, in TransitionInput, _ *models.StoredDocument, _ time.Time) error {
			if in.Reason != "" {
				c.WithdrawReason = in.Reason
			}
			return nil
		},
	},
}

// recordDecision sets resolvedBy or rejectedBy. The first decision owns these fields;
// lastDecisionBy always names the author of the latest one.
func recordDecision(c *models.Case, actor models.Actor, outcome models.CaseStatus) {
	c.LastDecisionBy = actor.ID
	if c.ResolvedBy != "" || c.RejectedBy != "" {
		return
	}
	if outcome == models.StatusResolved {
		c.ResolvedBy = actor.ID
	} else {
		c.RejectedBy = actor.ID
	}
}

// ParseEvent maps a route segment to an Event
func ParseEvent(raw string) (Event, error) {
	ev := Event(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := rules[ev]; !ok {
		return "", invalidPayload("unknown lifecycle event %q", raw)
	}
	return ev, nil
}

func statusIn(s models.CaseStatus, set []models.CaseStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// Transition applies one lifecycle event. Checks run in a fixed order and fail before
// anything is written: unknown case, actor guard, disallowed source status or tier,
// then payload. The letter is stored before the case is written and the
// write only succeeds if nobody else changed the case in between.
func (s *Service) Transition(ctx context.Context, actor models.Actor, caseID string, ev Event, in TransitionInput) (models.CaseView, error) {
	r, ok := rules[ev]
	if !ok {
		return models.CaseView{}, invalidPayload("unknown lifecycle event %q", ev)
	}
	c, err := s.load(ctx, caseID)
	if err != nil {
		return models.CaseView{}, err
	}
	s.backfillDistrict(ctx, c)
	expected := c.Version
	from := c.Status

	if !r.allowed(actor, c) {
		return models.CaseView{}, forbidden("%s may not %s case %s", actor.ID, ev, c.ClaimID)
	}
	if !statusIn(c.Status, r.from) {
		return models.CaseView{}, errors.Wrapf(models.InvalidTransitionError, "cannot %s a case that is %s", ev, c.Status)
	}
	if r.reachable != nil {
		if err := r.reachable(c); err != nil {
			return models.CaseView{}, err
		}
	}
	if r.needsLetter && (in.Letter == nil || len(in.Letter.Data) == 0) {
		return models.CaseView{}, errors.Wrapf(models.ErrLetterRequired, "%s", ev)
	}
	if r.needsReason && strings.TrimSpace(in.Reason) == "" {
		return models.CaseView{}, invalidPayload("a reason is required to %s", ev)
	}

	now := s.now().UTC()
	var letter *models.StoredDocument
	if r.needsLetter {
		docs, err := storage.PutAll(ctx, s.storage, []storage.File{*in.Letter}, now)
		if err != nil {
			return models.CaseView{}, err
		}
		letter = &docs[0]
	}

	if err := r.apply(c, actor, in, letter, now); err != nil {
		return models.CaseView{}, err
	}
	c.Status = r.to
	if err := s.save(ctx, c, expected); err != nil {
		return models.CaseView{}, err
	}
	metrics.Transitions.WithLabelValues(string(ev)).Inc()

	details := map[string]interface{}{
		"claimId": c.ClaimID,
		"from":    from,
		"to":      c.Status,
		"level":   c.Level,
	}
	if in.Reason != "" {
		details["reason"] = in.Reason
	}
	if letter != nil {
		details["letter"] = letter.URL
	}
	s.audit.Record(ctx, actor, "case_"+string(ev), audit.TargetCase, c.ID.Hex(), details)

	note := in.Feedback
	if note == "" {
		note = in.Reason
	}
	s.notifyParties(ctx, c, caseEvent{
		name:    "case_" + string(c.Status),
		subject: "Land dispute " + c.ClaimID + " is now " + string(c.Status),
		sms:     statusSMS(c, note),
		note:    note,
	})
	return s.view(c), nil
}

func statusSMS(c *models.Case, note string) string {
	text := "Land dispute " + c.ClaimID + " is now " + string(c.Status) + "."
	if note != "" {
		text += " " + note
	}
	return text
}

// Close is the administrative path into closed, outside the transition table
func (s *Service) Close(ctx context.Context, actor models.Actor, caseID string, in CloseInput) (models.CaseView, error) {
	c, err := s.load(ctx, caseID)
	if err != nil {
		return models.CaseView{}, err
	}
	if actor.Role() != models.RoleAdmin {
		return models.CaseView{}, forbidden("only an admin may close case %s", c.ClaimID)
	}
	closable := []models.CaseStatus{models.StatusResolved, models.StatusRejected, models.StatusWithdrawn}
	if !statusIn(c.Status, closable) {
		return models.CaseView{}, errors.Wrapf(models.InvalidTransitionError, "cannot close a case that is %s", c.Status)
	}

	expected := c.Version
	from := c.Status
	c.Status = models.StatusClosed
	c.ClosedBy = actor.ID
	c.CloseReason = in.Reason
	if err := s.save(ctx, c, expected); err != nil {
		return models.CaseView{}, err
	}
	metrics.Transitions.WithLabelValues("close").Inc()

	s.audit.Record(ctx, actor, "case_close", audit.TargetCase, c.ID.Hex(), map[string]interface{}{
		"claimId": c.ClaimID,
		"from":    from,
		"reason":  in.Reason,
	})
	s.notifyParties(ctx, c, caseEvent{
		name:    "case_closed",
		subject: "Land dispute " + c.ClaimID + " is closed",
		sms:     statusSMS(c, in.Reason),
		note:    in.Reason,
	})
	return s.view(c), nil
}

// SoftDelete hides a case from every read path. Admin only.
func (s *Service) SoftDelete(ctx context.Context, actor models.Actor, caseID string) error {
	c, err := s.load(ctx, caseID)
	if err != nil {
		return err
	}
	if actor.Role() != models.RoleAdmin {
		return forbidden("only an admin may delete case %s", c.ClaimID)
	}
	expected := c.Version
	now := s.now().UTC()
	c.DeletedAt = &now
	if err := s.save(ctx, c, expected); err != nil {
		return err
	}
	s.audit.Record(ctx, actor, "case_delete", audit.TargetCase, c.ID.Hex(), map[string]interface{}{"claimId": c.ClaimID})
	return nil
}
