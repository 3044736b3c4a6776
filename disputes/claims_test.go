package disputes

import (
	"context"
	"regexp"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landauthority/dispute-api/models"
)

var claimIDPattern = regexp.MustCompile(`^LD-[23456789A-HJ-NP-Z]{8}$`)

func claimInput() CreateClaimInput {
	return CreateClaimInput{
		Title:       "Boundary encroachment",
		Description: "Neighbour moved the boundary markers",
		UPI:         testUPI,
		Defendant:   PartyInput{FullName: "Jean Bosco", PhoneNumber: "0788 000 010"},
		Witnesses: []models.Witness{
			{FullName: "Witness One", PhoneNumber: "+250788000021"},
		},
	}
}

func TestCreateClaim(t *testing.T) {
	f := newFixture(t)

	v, err := f.svc.CreateClaim(context.Background(), claimant, claimInput())
	require.NoError(t, err)
	assert.Regexp(t, claimIDPattern, v.ClaimID)
	assert.Equal(t, models.StatusOpen, v.Status)
	assert.Equal(t, models.LevelDistrict, v.Level)
	assert.Equal(t, "gasabo", v.District)
	assert.Equal(t, "Kimironko", v.Land.Sector)
	assert.Equal(t, "u1", v.Claimant)
	assert.Equal(t, "250788000010", v.Defendant.PhoneNumber)
	assert.Equal(t, "250788000021", v.Witnesses[0].PhoneNumber)
	assert.Zero(t, v.OverdueDays)
	assert.Equal(t, []string{"create_claim"}, f.audit.actions())

	// the manager of the land's district sees it straight away
	list, err := f.svc.ListCases(context.Background(), gasaboMgr, ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)

	f.dispatcher.Flush()
	sms, _ := f.notifier.sent()
	assert.ElementsMatch(t, []string{"0788000001", "250788000010", "250788000021"}, sms)
}

func TestCreateClaimRetriesClaimIDCollision(t *testing.T) {
	f := newFixture(t)
	f.cases.insertErrs = []error{
		errors.Wrap(models.ErrDuplicateClaimID, "taken"),
		errors.Wrap(models.ErrDuplicateClaimID, "taken"),
	}

	v, err := f.svc.CreateClaim(context.Background(), claimant, claimInput())
	require.NoError(t, err)
	assert.Regexp(t, claimIDPattern, v.ClaimID)
	assert.Equal(t, v.ClaimID, f.cases.get(v.ID).ClaimID)
}

func TestCreateClaimGivesUpOnOtherErrors(t *testing.T) {
	f := newFixture(t)
	f.cases.insertErrs = []error{errors.New("connection reset")}

	_, err := f.svc.CreateClaim(context.Background(), claimant, claimInput())
	require.Error(t, err)
	assert.Equal(t, "Internal", models.ErrorKind(err))
	assert.Empty(t, f.audit.actions())
}

func TestCreateClaimValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *CreateClaimInput)
	}{
		{name: "missing title", mutate: func(in *CreateClaimInput) { in.Title = "" }},
		{name: "missing defendant name", mutate: func(in *CreateClaimInput) { in.Defendant.FullName = "" }},
		{name: "defendant landline", mutate: func(in *CreateClaimInput) { in.Defendant.PhoneNumber = "0252000000" }},
		{name: "bad defendant email", mutate: func(in *CreateClaimInput) { in.Defendant.Email = "nope" }},
		{name: "witness without phone", mutate: func(in *CreateClaimInput) {
			in.Witnesses = append(in.Witnesses, models.Witness{FullName: "Silent"})
		}},
		{name: "unknown parcel", mutate: func(in *CreateClaimInput) { in.UPI = "9/99/99/99/999" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			in := claimInput()
			tt.mutate(&in)

			_, err := f.svc.CreateClaim(context.Background(), claimant, in)
			assert.Equal(t, "InvalidPayload", models.ErrorKind(err), "%v", err)
		})
	}
}

func TestNewClaimID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id, err := newClaimID()
		require.NoError(t, err)
		assert.Regexp(t, claimIDPattern, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 190)
}
