package disputes

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/landauthority/dispute-api/audit"
	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/policy"
)

const (
	claimIDPrefix = "LD-"
	claimIDLength = 8
	// no 0/O or 1/I so codes survive being read out over the phone
	claimIDAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	claimIDAttempts = 5
)

// newClaimID draws a random human facing code such as LD-7K2M9QXA
func newClaimID() (string, error) {
	b := make([]byte, claimIDLength)
	size := big.NewInt(int64(len(claimIDAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", errors.Wrap(err, "failed to draw claim id")
		}
		b[i] = claimIDAlphabet[n.Int64()]
	}
	return claimIDPrefix + string(b), nil
}

// CreateClaim files a new dispute for actor against a land parcel. The district is
// taken from the land record.
func (s *Service) CreateClaim(ctx context.Context, actor models.Actor, in CreateClaimInput) (models.CaseView, error) {
	if err := s.checkStruct(in); err != nil {
		return models.CaseView{}, err
	}
	defendantPhone, ok := models.NormalizePhone(in.Defendant.PhoneNumber)
	if !ok {
		return models.CaseView{}, invalidPayload("defendant phone number %q is not a valid mobile number", in.Defendant.PhoneNumber)
	}
	witnesses := make([]models.Witness, 0, len(in.Witnesses))
	for _, w := range in.Witnesses {
		phone, ok := models.NormalizePhone(w.PhoneNumber)
		if !ok {
			return models.CaseView{}, invalidPayload("witness %s has an invalid phone number", w.FullName)
		}
		witnesses = append(witnesses, models.Witness{FullName: w.FullName, PhoneNumber: phone})
	}

	land, err := s.lands.Lookup(ctx, in.UPI)
	if errors.Is(err, models.NotFoundError) {
		return models.CaseView{}, invalidPayload("no land record for upi %s", in.UPI)
	}
	if err != nil {
		return models.CaseView{}, errors.Wrap(err, "failed to look up land record")
	}
	district := policy.NormalizeDistrict(land.District)
	if district == "" {
		return models.CaseView{}, invalidPayload("land record %s has no district", in.UPI)
	}

	now := s.now().UTC()
	c := &models.Case{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      models.StatusOpen,
		Level:       models.LevelDistrict,
		District:    district,
		Land: models.LandInfo{
			UPI:      land.UPI,
			District: district,
			Sector:   land.Sector,
			Cell:     land.Cell,
			Village:  land.Village,
		},
		Claimant: actor.ID,
		Defendant: models.Defendant{
			FullName:    in.Defendant.FullName,
			PhoneNumber: defendantPhone,
			Email:       normalizeEmail(in.Defendant.Email),
			NationalID:  in.Defendant.NationalID,
		},
		Witnesses:       witnesses,
		SharedDocuments: []models.SharedDocument{},
		CreatedAt:       now,
		LastUpdated:     now,
	}

	err = retry.Do(
		func() error {
			id, err := newClaimID()
			if err != nil {
				return retry.Unrecoverable(err)
			}
			c.ClaimID = id
			return s.cases.Insert(ctx, c)
		},
		retry.RetryIf(func(err error) bool { return errors.Is(err, models.ErrDuplicateClaimID) }),
		retry.Attempts(claimIDAttempts),
		retry.Delay(0),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return models.CaseView{}, errors.Wrap(err, "failed to create case")
	}

	s.audit.Record(ctx, actor, "create_claim", audit.TargetCase, c.ID.Hex(), map[string]interface{}{
		"claimId":  c.ClaimID,
		"district": c.District,
		"upi":      c.Land.UPI,
	})
	s.notifyParties(ctx, c, caseEvent{
		name:    "case_created",
		subject: "Land dispute " + c.ClaimID + " filed",
		sms:     "Land dispute " + c.ClaimID + " has been filed in " + c.District + " and is awaiting review.",
		note:    c.Title,
	})
	return s.view(c), nil
}
