package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/landauthority/dispute-api/models"
)

func TestScope(t *testing.T) {
	tests := []struct {
		name   string
		actor  models.Actor
		target string
		want   models.CaseFilter
	}{
		{
			name:  "admin sees everything",
			actor: models.Actor{ID: "a1", ActualRole: models.RoleAdmin},
			want:  models.CaseFilter{},
		},
		{
			name:  "manager is limited to district level of own district",
			actor: models.Actor{ID: "m1", ActualRole: models.RoleManager, District: " Gasabo "},
			want:  models.CaseFilter{District: "gasabo", ExcludeLevels: []models.Level{models.LevelNLA, models.LevelCourt}},
		},
		{
			name:  "manager without district sees nothing",
			actor: models.Actor{ID: "m2", ActualRole: models.RoleManager},
			want:  models.CaseFilter{None: true},
		},
		{
			name:  "user sees own claims",
			actor: models.Actor{ID: "u1", ActualRole: models.RoleUser},
			want:  models.CaseFilter{ClaimantID: "u1"},
		},
		{
			name:  "manager acting as user sees own claims",
			actor: models.Actor{ID: "m3", ActualRole: models.RoleManager, EffectiveRole: models.RoleUser, District: "gasabo"},
			want:  models.CaseFilter{ClaimantID: "m3"},
		},
		{
			name:   "target user overrides role scope",
			actor:  models.Actor{ID: "a1", ActualRole: models.RoleAdmin},
			target: "u9",
			want:   models.CaseFilter{ClaimantID: "u9"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Scope(tt.actor, tt.target))
		})
	}
}

func TestScopeManagerNeverSeesEscalatedCases(t *testing.T) {
	manager := models.Actor{ID: "m1", ActualRole: models.RoleManager, District: "gasabo"}
	filter := Scope(manager, "")

	assert.True(t, filter.Matches(&models.Case{District: "gasabo", Level: models.LevelDistrict}))
	assert.True(t, filter.Matches(&models.Case{District: "gasabo"}))
	assert.False(t, filter.Matches(&models.Case{District: "gasabo", Level: models.LevelNLA}))
	assert.False(t, filter.Matches(&models.Case{District: "gasabo", Level: models.LevelCourt}))
	assert.False(t, filter.Matches(&models.Case{District: "kicukiro", Level: models.LevelDistrict}))
}

func TestCanRead(t *testing.T) {
	c := &models.Case{Claimant: "u1", District: "gasabo", Defendant: models.Defendant{UserID: "d1"}}

	assert.True(t, CanRead(models.Actor{ID: "u1", ActualRole: models.RoleUser}, c))
	assert.True(t, CanRead(models.Actor{ID: "d1", ActualRole: models.RoleUser}, c))
	assert.False(t, CanRead(models.Actor{ID: "u2", ActualRole: models.RoleUser}, c))
	assert.True(t, CanRead(models.Actor{ID: "m1", ActualRole: models.RoleManager, District: "Gasabo"}, c))
	assert.False(t, CanRead(models.Actor{ID: "m2", ActualRole: models.RoleManager, District: "kicukiro"}, c))
	assert.True(t, CanRead(models.Actor{ID: "a1", ActualRole: models.RoleAdmin}, c))
}

func TestCanAdjudicate(t *testing.T) {
	district := &models.Case{District: "gasabo", Level: models.LevelDistrict}
	nla := &models.Case{District: "gasabo", Level: models.LevelNLA}
	manager := models.Actor{ID: "m1", ActualRole: models.RoleManager, District: "GASABO"}
	other := models.Actor{ID: "m2", ActualRole: models.RoleManager, District: "kicukiro"}
	admin := models.Actor{ID: "a1", ActualRole: models.RoleAdmin}
	user := models.Actor{ID: "u1", ActualRole: models.RoleUser}

	assert.True(t, CanAdjudicate(manager, district))
	assert.True(t, CanAdjudicate(manager, &models.Case{District: "gasabo"}))
	assert.False(t, CanAdjudicate(manager, nla))
	assert.False(t, CanAdjudicate(other, district))
	assert.True(t, CanAdjudicate(admin, nla))
	assert.False(t, CanAdjudicate(admin, district))
	assert.False(t, CanAdjudicate(user, district))
}

func TestInvitationScope(t *testing.T) {
	f, ok := InvitationScope(models.Actor{ActualRole: models.RoleManager, District: "Gasabo"})
	assert.True(t, ok)
	assert.Equal(t, "gasabo", f.District)

	_, ok = InvitationScope(models.Actor{ActualRole: models.RoleManager})
	assert.False(t, ok)

	_, ok = InvitationScope(models.Actor{ActualRole: models.RoleUser})
	assert.False(t, ok)
}

func TestCanSwitchRole(t *testing.T) {
	assert.True(t, CanSwitchRole(models.RoleManager, models.RoleUser))
	assert.True(t, CanSwitchRole(models.RoleManager, models.RoleManager))
	assert.True(t, CanSwitchRole(models.RoleAdmin, models.RoleUser))
	assert.False(t, CanSwitchRole(models.RoleUser, models.RoleManager))
	assert.False(t, CanSwitchRole(models.RoleManager, models.RoleAdmin))
	assert.False(t, CanSwitchRole(models.RoleManager, "auditor"))
}
