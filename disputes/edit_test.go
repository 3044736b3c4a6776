package disputes

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landauthority/dispute-api/models"
)

func strPtr(s string) *string { return &s }

func TestEditCaseWritesVersion(t *testing.T) {
	f := newFixture(t)
	c := f.seed(models.StatusProcessing, models.LevelDistrict)

	v, err := f.svc.EditCase(context.Background(), gasaboMgr, c.ID.Hex(), EditInput{
		Title:  strPtr("Boundary encroachment on plot 567"),
		Reason: "clarify plot",
	})
	require.NoError(t, err)
	assert.Equal(t, "Boundary encroachment on plot 567", v.Title)

	versions, err := f.svc.ListVersions(context.Background(), gasaboMgr, c.ID.Hex())
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, 1, versions[0].Version)
	assert.Equal(t, "m1", versions[0].EditedBy)
	assert.Equal(t, models.FieldChange{From: "Boundary encroachment", To: "Boundary encroachment on plot 567"}, versions[0].Changes["title"])
	assert.NotContains(t, versions[0].Changes, "description")
	assert.Contains(t, f.audit.actions(), "case_edit")
}

func TestEditCaseWitnessesAreNormalized(t *testing.T) {
	f := newFixture(t)
	c := f.seed(models.StatusRejected, models.LevelDistrict)

	witnesses := []models.Witness{{FullName: "New Witness", PhoneNumber: "+250 788 000 030"}}
	v, err := f.svc.EditCase(context.Background(), claimant, c.ID.Hex(), EditInput{Witnesses: &witnesses})
	require.NoError(t, err)
	assert.Equal(t, []models.Witness{{FullName: "New Witness", PhoneNumber: "250788000030"}}, v.Witnesses)

	bad := []models.Witness{{FullName: "Bad", PhoneNumber: "12345"}}
	_, err = f.svc.EditCase(context.Background(), claimant, c.ID.Hex(), EditInput{Witnesses: &bad})
	assert.True(t, errors.Is(err, models.InvalidPayloadError))
}

func TestEditCaseGuards(t *testing.T) {
	f := newFixture(t)
	open := f.seed(models.StatusOpen, models.LevelDistrict)
	processing := f.seed(models.StatusProcessing, models.LevelDistrict)

	_, err := f.svc.EditCase(context.Background(), gasaboMgr, open.ID.Hex(), EditInput{Title: strPtr("x")})
	assert.True(t, errors.Is(err, models.ForbiddenError))

	_, err = f.svc.EditCase(context.Background(), claimant, processing.ID.Hex(), EditInput{Title: strPtr("x")})
	assert.True(t, errors.Is(err, models.ForbiddenError))

	_, err = f.svc.EditCase(context.Background(), kicukiroMgr, processing.ID.Hex(), EditInput{Title: strPtr("x")})
	assert.True(t, errors.Is(err, models.ForbiddenError))

	_, err = f.svc.EditCase(context.Background(), gasaboMgr, processing.ID.Hex(), EditInput{Title: strPtr(processing.Title)})
	assert.True(t, errors.Is(err, models.InvalidPayloadError), "nothing changes")

	assert.Empty(t, f.versions.versions)
}

func TestEditCaseStaleWriteRemovesVersion(t *testing.T) {
	f := newFixture(t)
	c := f.seed(models.StatusProcessing, models.LevelDistrict)
	f.cases.loseNextUpdate = true

	_, err := f.svc.EditCase(context.Background(), gasaboMgr, c.ID.Hex(), EditInput{Title: strPtr("Changed")})
	assert.Equal(t, "Conflict", models.ErrorKind(err))
	assert.Empty(t, f.versions.versions)
	assert.Equal(t, "Boundary encroachment", f.cases.get(c.ID).Title)
}

func TestEditCaseVersionClash(t *testing.T) {
	f := newFixture(t)
	c := f.seed(models.StatusProcessing, models.LevelDistrict)

	// another writer already produced version 1 of the history
	require.NoError(t, f.versions.Insert(context.Background(), &models.CaseVersion{CaseID: c.ID, Version: 1}))

	_, err := f.svc.EditCase(context.Background(), gasaboMgr, c.ID.Hex(), EditInput{Title: strPtr("Changed")})
	assert.Equal(t, "Conflict", models.ErrorKind(err))
	assert.Equal(t, "Boundary encroachment", f.cases.get(c.ID).Title)
}

func TestListVersionsRequiresRead(t *testing.T) {
	f := newFixture(t)
	c := f.seed(models.StatusProcessing, models.LevelDistrict)

	_, err := f.svc.ListVersions(context.Background(), otherUser, c.ID.Hex())
	assert.True(t, errors.Is(err, models.ForbiddenError))

	versions, err := f.svc.ListVersions(context.Background(), claimant, c.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, versions)
}
