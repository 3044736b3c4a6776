package disputes

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/storage"
)

func documents(names ...string) []storage.File {
	out := make([]storage.File, 0, len(names))
	for _, n := range names {
		out = append(out, storage.File{Name: n, MimeType: "application/pdf", Data: []byte("%PDF " + n)})
	}
	return out
}

func TestShareDocumentsIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	c := f.seed(models.StatusProcessing, models.LevelDistrict)
	f.storage.fail["survey.pdf"] = true

	_, err := f.svc.ShareDocuments(context.Background(), claimant, c.ID.Hex(), ShareInput{
		Documents:      documents("deed.pdf", "survey.pdf", "photo.pdf"),
		RecipientTypes: []models.RecipientType{models.RecipientCommittee},
	})
	assert.Equal(t, "UpstreamFailure", models.ErrorKind(err))

	stored := f.cases.get(c.ID)
	assert.Empty(t, stored.SharedDocuments)
	assert.Equal(t, int64(0), stored.Version)

	f.dispatcher.Flush()
	_, emails := f.notifier.sent()
	assert.Empty(t, emails)
}

func TestShareDocumentsWithCommitteeAndClaimant(t *testing.T) {
	f := newFixture(t)
	c := f.seed(models.StatusProcessing, models.LevelDistrict)

	res, err := f.svc.ShareDocuments(context.Background(), gasaboMgr, c.ID.Hex(), ShareInput{
		Documents: documents("deed.pdf", "survey.pdf"),
		RecipientTypes: []models.RecipientType{
			models.RecipientCommittee, models.RecipientClaimant, models.RecipientCommittee,
		},
		Message: "Please review before the hearing",
	})
	require.NoError(t, err)
	// gasabo manager, admin and claimant; kicukiro manager is outside the district
	assert.Equal(t, 3, res.SharedWith)
	require.Len(t, res.Documents, 2)
	assert.Equal(t, "deed.pdf", res.Documents[0].Name)
	assert.Equal(t, "survey.pdf", res.Documents[1].Name)

	stored := f.cases.get(c.ID)
	require.Len(t, stored.SharedDocuments, 2)
	assert.Equal(t, "m1", stored.SharedDocuments[0].SharedBy)
	assert.Equal(t, []models.RecipientType{models.RecipientCommittee, models.RecipientClaimant}, stored.SharedDocuments[0].RecipientTypes)

	f.dispatcher.Flush()
	_, emails := f.notifier.sent()
	assert.ElementsMatch(t, []string{"m1@nla.gov.rw", "a1@nla.gov.rw", "aline@example.rw"}, emails)
}

func TestShareDocumentsDefendantWithoutEmail(t *testing.T) {
	f := newFixture(t)
	c := f.seed(models.StatusOpen, models.LevelDistrict)

	res, err := f.svc.ShareDocuments(context.Background(), claimant, c.ID.Hex(), ShareInput{
		Documents:      documents("deed.pdf"),
		RecipientTypes: []models.RecipientType{models.RecipientDefendant},
	})
	require.NoError(t, err)
	assert.Zero(t, res.SharedWith)
	assert.Len(t, f.cases.get(c.ID).SharedDocuments, 1)
}

func TestShareDocumentsValidation(t *testing.T) {
	f := newFixture(t)
	c := f.seed(models.StatusOpen, models.LevelDistrict)

	tests := []struct {
		name  string
		actor models.Actor
		in    ShareInput
		want  error
	}{
		{
			name:  "stranger",
			actor: otherUser,
			in:    ShareInput{Documents: documents("a.pdf"), RecipientTypes: []models.RecipientType{models.RecipientClaimant}},
			want:  models.ForbiddenError,
		},
		{
			name:  "no documents",
			actor: claimant,
			in:    ShareInput{RecipientTypes: []models.RecipientType{models.RecipientClaimant}},
			want:  models.ErrNoDocuments,
		},
		{
			name:  "no recipients",
			actor: claimant,
			in:    ShareInput{Documents: documents("a.pdf")},
			want:  models.ErrNoRecipients,
		},
		{
			name:  "unknown recipient type",
			actor: claimant,
			in:    ShareInput{Documents: documents("a.pdf"), RecipientTypes: []models.RecipientType{"press"}},
			want:  models.InvalidPayloadError,
		},
		{
			name:  "empty document",
			actor: claimant,
			in: ShareInput{
				Documents:      []storage.File{{Name: "empty.pdf"}},
				RecipientTypes: []models.RecipientType{models.RecipientClaimant},
			},
			want: models.InvalidPayloadError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.ShareDocuments(context.Background(), tt.actor, c.ID.Hex(), tt.in)
			assert.True(t, errors.Is(err, tt.want), "%v", err)
		})
	}
	assert.Empty(t, f.storage.stored)
}
