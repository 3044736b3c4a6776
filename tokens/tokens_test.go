package tokens

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landauthority/dispute-api/models"
)

func fixedManager(secret string, at time.Time) *Manager {
	m := NewManager(secret)
	m.now = func() time.Time { return at }
	return m
}

func TestInvitationRoundTrip(t *testing.T) {
	issued := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	m := fixedManager("secret", issued)

	token, err := m.SignInvitation(InvitationClaims{
		CaseID:      "665f1c2e8b3e4a0012345678",
		Email:       "jean@example.rw",
		PhoneNumber: "0788123456",
		FullName:    "Jean Bosco",
		CaseCode:    "LD-7K2M9QXA",
	}, InvitationTTL)
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(6 * 24 * time.Hour) }
	claims, err := m.VerifyInvitation(token)
	require.NoError(t, err)
	assert.Equal(t, "defendant", claims.Role)
	assert.Equal(t, "LD-7K2M9QXA", claims.CaseCode)
	assert.Equal(t, issued.Unix(), claims.IssuedAt)
}

func TestInvitationExpired(t *testing.T) {
	issued := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	m := fixedManager("secret", issued)
	token, err := m.SignInvitation(InvitationClaims{CaseID: "c1", Email: "a@b.rw"}, InvitationTTL)
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(8 * 24 * time.Hour) }
	_, err = m.VerifyInvitation(token)
	assert.True(t, errors.Is(err, models.ErrTokenExpired))
}

func TestInvitationWrongSecret(t *testing.T) {
	now := time.Now()
	token, err := fixedManager("one", now).SignInvitation(InvitationClaims{CaseID: "c1"}, time.Hour)
	require.NoError(t, err)

	_, err = fixedManager("two", now).VerifyInvitation(token)
	assert.True(t, errors.Is(err, models.ErrTokenInvalid))
}

func TestSessionIsNotAnInvitation(t *testing.T) {
	m := fixedManager("secret", time.Now())
	token, err := m.SignSession(SessionClaims{UserID: "u1", ActualRole: models.RoleUser}, time.Hour)
	require.NoError(t, err)

	_, err = m.VerifyInvitation(token)
	assert.True(t, errors.Is(err, models.ErrTokenInvalid))
}

func TestSessionActor(t *testing.T) {
	m := fixedManager("secret", time.Now())
	token, err := m.SignSession(SessionClaims{
		UserID:        "m1",
		ActualRole:    models.RoleManager,
		EffectiveRole: models.RoleUser,
		District:      "gasabo",
	}, time.Hour)
	require.NoError(t, err)

	claims, err := m.VerifySession(token)
	require.NoError(t, err)
	actor := claims.Actor()
	assert.Equal(t, models.RoleManager, actor.ActualRole)
	assert.Equal(t, models.RoleUser, actor.Role())
	assert.Equal(t, "gasabo", actor.District)
}

func TestSessionRejectsUnknownRole(t *testing.T) {
	m := fixedManager("secret", time.Now())
	token, err := m.SignSession(SessionClaims{UserID: "u1", ActualRole: "superuser"}, time.Hour)
	require.NoError(t, err)

	_, err = m.VerifySession(token)
	assert.Error(t, err)
}

func TestExtractBearer(t *testing.T) {
	tok, err := ExtractBearer("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", tok)

	_, err = ExtractBearer("Basic abc")
	assert.Error(t, err)
	_, err = ExtractBearer("Bearer ")
	assert.Error(t, err)
}
