package disputes

import (
	"context"
	"reflect"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/landauthority/dispute-api/audit"
	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/policy"
)

// canEdit: staff while the case is being processed, the claimant after a rejection
func canEdit(actor models.Actor, c *models.Case) bool {
	switch c.Status {
	case models.StatusProcessing:
		role := actor.Role()
		return (role == models.RoleManager || role == models.RoleAdmin) && policy.CanRead(actor, c)
	case models.StatusRejected:
		return isClaimant(actor, c)
	default:
		return false
	}
}

// EditCase changes non-status fields. A CaseVersion holding the delta is written before
// the case; if the case write loses a race the version is removed again.
func (s *Service) EditCase(ctx context.Context, actor models.Actor, caseID string, in EditInput) (models.CaseView, error) {
	c, err := s.load(ctx, caseID)
	if err != nil {
		return models.CaseView{}, err
	}
	if !canEdit(actor, c) {
		return models.CaseView{}, forbidden("%s may not edit case %s while it is %s", actor.ID, c.ClaimID, c.Status)
	}
	if err := s.checkStruct(in); err != nil {
		return models.CaseView{}, err
	}

	changes := map[string]models.FieldChange{}
	if in.Title != nil && *in.Title != c.Title {
		changes["title"] = models.FieldChange{From: c.Title, To: *in.Title}
		c.Title = *in.Title
	}
	if in.Description != nil && *in.Description != c.Description {
		changes["description"] = models.FieldChange{From: c.Description, To: *in.Description}
		c.Description = *in.Description
	}
	if in.Witnesses != nil {
		witnesses := make([]models.Witness, 0, len(*in.Witnesses))
		for _, w := range *in.Witnesses {
			if err := s.checkStruct(w); err != nil {
				return models.CaseView{}, err
			}
			phone, ok := models.NormalizePhone(w.PhoneNumber)
			if !ok {
				return models.CaseView{}, invalidPayload("witness %s has an invalid phone number", w.FullName)
			}
			witnesses = append(witnesses, models.Witness{FullName: w.FullName, PhoneNumber: phone})
		}
		same := len(witnesses) == 0 && len(c.Witnesses) == 0
		if !same && !reflect.DeepEqual(witnesses, c.Witnesses) {
			changes["witnesses"] = models.FieldChange{From: c.Witnesses, To: witnesses}
			c.Witnesses = witnesses
		}
	}
	if len(changes) == 0 {
		return models.CaseView{}, invalidPayload("no field of case %s would change", c.ClaimID)
	}

	expected := c.Version
	version := &models.CaseVersion{
		ID:        primitive.NewObjectID(),
		CaseID:    c.ID,
		Version:   int(expected + 1),
		Changes:   changes,
		EditedBy:  actor.ID,
		Reason:    in.Reason,
		CreatedAt: s.now().UTC(),
	}
	if err := s.versions.Insert(ctx, version); err != nil {
		return models.CaseView{}, err
	}
	if err := s.save(ctx, c, expected); err != nil {
		if derr := s.versions.Delete(ctx, version.ID); derr != nil {
			s.log.Errorw("failed to remove orphaned case version", "claimId", c.ClaimID, "version", version.Version, "error", derr)
		}
		return models.CaseView{}, err
	}

	fields := make([]string, 0, len(changes))
	for k := range changes {
		fields = append(fields, k)
	}
	s.audit.Record(ctx, actor, "case_edit", audit.TargetCase, c.ID.Hex(), map[string]interface{}{
		"claimId": c.ClaimID,
		"version": version.Version,
		"fields":  fields,
		"reason":  in.Reason,
	})
	return s.view(c), nil
}

// ListVersions returns the edit history of a case, oldest first
func (s *Service) ListVersions(ctx context.Context, actor models.Actor, caseID string) ([]models.CaseVersion, error) {
	c, err := s.load(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if !policy.CanRead(actor, c) {
		return nil, forbidden("%s may not read case %s", actor.ID, c.ClaimID)
	}
	versions, err := s.versions.FindByCase(ctx, c.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list versions of %s", c.ClaimID)
	}
	return versions, nil
}
