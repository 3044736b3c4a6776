package disputes

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/landauthority/dispute-api/audit"
	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/notify"
	"github.com/landauthority/dispute-api/policy"
	"github.com/landauthority/dispute-api/storage"
	templates "github.com/landauthority/dispute-api/templates/html"
)

// DocumentRef is a stored shared document as returned to the caller
type DocumentRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ShareResult reports how many distinct recipients were addressed and what was stored
type ShareResult struct {
	SharedWith int           `json:"sharedWith"`
	Documents  []DocumentRef `json:"documents"`
}

type recipient struct {
	Email string
	Name  string
}

// recipientResolver expands one recipient type into addresses for case c
type recipientResolver func(ctx context.Context, s *Service, c *models.Case) ([]recipient, error)

var recipientResolvers = map[models.RecipientType]recipientResolver{
	models.RecipientCommittee: resolveCommittee,
	models.RecipientDefendant: resolveDefendant,
	models.RecipientClaimant:  resolveClaimant,
}

// resolveCommittee returns every committee member who may see the case: admins, and
// the other committee roles of the case's district
func resolveCommittee(ctx context.Context, s *Service, c *models.Case) ([]recipient, error) {
	users, err := s.users.FindByRoles(ctx, s.committeeRoles, c.District)
	if err != nil {
		return nil, err
	}
	out := make([]recipient, 0, len(users))
	for _, u := range users {
		if u.Email != "" {
			out = append(out, recipient{Email: u.Email, Name: u.FullName})
		}
	}
	return out, nil
}

func resolveDefendant(_ context.Context, _ *Service, c *models.Case) ([]recipient, error) {
	if c.Defendant.Email == "" {
		return nil, nil
	}
	return []recipient{{Email: c.Defendant.Email, Name: c.Defendant.FullName}}, nil
}

func resolveClaimant(ctx context.Context, s *Service, c *models.Case) ([]recipient, error) {
	u, err := s.users.FindByID(ctx, c.Claimant)
	if err != nil {
		return nil, err
	}
	if u.Email == "" {
		return nil, nil
	}
	return []recipient{{Email: u.Email, Name: u.FullName}}, nil
}

// ShareDocuments stores every document, appends them to the case in one write and emails
// the resolved recipients. Storage is all or nothing: a single failed upload aborts the
// operation before the case is touched. Emails are best effort.
func (s *Service) ShareDocuments(ctx context.Context, actor models.Actor, caseID string, in ShareInput) (ShareResult, error) {
	c, err := s.load(ctx, caseID)
	if err != nil {
		return ShareResult{}, err
	}
	if !policy.CanRead(actor, c) {
		return ShareResult{}, forbidden("%s may not share documents on case %s", actor.ID, c.ClaimID)
	}
	if len(in.Documents) == 0 {
		return ShareResult{}, models.ErrNoDocuments
	}
	types, err := uniqueRecipientTypes(in.RecipientTypes)
	if err != nil {
		return ShareResult{}, err
	}
	for _, d := range in.Documents {
		if d.Name == "" || len(d.Data) == 0 {
			return ShareResult{}, invalidPayload("document %q is empty", d.Name)
		}
	}

	now := s.now().UTC()
	stored, err := storage.PutAll(ctx, s.storage, in.Documents, now)
	if err != nil {
		return ShareResult{}, err
	}

	expected := c.Version
	refs := make([]DocumentRef, 0, len(stored))
	links := make([]templates.DocumentLink, 0, len(stored))
	for _, d := range stored {
		c.SharedDocuments = append(c.SharedDocuments, models.SharedDocument{
			URL:            d.URL,
			Name:           d.Name,
			SharedAt:       now,
			SharedBy:       actor.ID,
			RecipientTypes: types,
		})
		refs = append(refs, DocumentRef{Name: d.Name, URL: d.URL})
		links = append(links, templates.DocumentLink{Name: d.Name, URL: d.URL})
	}
	if err := s.save(ctx, c, expected); err != nil {
		return ShareResult{}, err
	}

	recipients := s.resolveRecipients(ctx, c, types)
	msgs := make([]notify.Message, 0, len(recipients))
	for _, r := range recipients {
		msgs = append(msgs, notify.Message{
			Channel:   notify.ChannelEmail,
			Recipient: r.Email,
			Subject:   "Documents shared on land dispute " + c.ClaimID,
			Body:      templates.RenderSharedDocumentsEmail(r.Name, c.ClaimID, in.Message, links),
		})
	}
	if len(msgs) > 0 {
		s.dispatcher.Submit(msgs...)
	}

	s.audit.Record(ctx, actor, "share_documents", audit.TargetCase, c.ID.Hex(), map[string]interface{}{
		"claimId":        c.ClaimID,
		"documentCount":  len(stored),
		"recipientTypes": types,
		"recipientCount": len(recipients),
	})
	return ShareResult{SharedWith: len(recipients), Documents: refs}, nil
}

// resolveRecipients runs the resolver of every type and removes duplicate addresses. A
// failing resolver only costs its own recipients.
func (s *Service) resolveRecipients(ctx context.Context, c *models.Case, types []models.RecipientType) []recipient {
	seen := map[string]bool{}
	var out []recipient
	for _, t := range types {
		found, err := recipientResolvers[t](ctx, s, c)
		if err != nil {
			s.log.Warnw("could not resolve recipients", "claimId", c.ClaimID, "recipientType", t, "error", err)
			continue
		}
		for _, r := range found {
			key := normalizeEmail(r.Email)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, r)
		}
	}
	return out
}

func uniqueRecipientTypes(in []models.RecipientType) ([]models.RecipientType, error) {
	if len(in) == 0 {
		return nil, models.ErrNoRecipients
	}
	seen := map[models.RecipientType]bool{}
	out := make([]models.RecipientType, 0, len(in))
	for _, t := range in {
		if _, ok := recipientResolvers[t]; !ok {
			return nil, errors.Wrapf(models.InvalidPayloadError, "unknown recipient type %q", t)
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out, nil
}
