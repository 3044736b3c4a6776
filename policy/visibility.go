// Package policy holds the pure rules shared by listing, statistics and the lifecycle:
// who may see which cases, and when a case is overdue.
package policy

import (
	"strings"

	"github.com/landauthority/dispute-api/models"
)

// escalatedLevels are hidden from district managers
var escalatedLevels = []models.Level{models.LevelNLA, models.LevelCourt}

// Scope turns an actor into the case predicate every listing and every statistic must
// use. A non-empty targetUserID (an admin inspecting one user's cases) bypasses role
// scoping and restricts to that user's cases.
func Scope(actor models.Actor, targetUserID string) models.CaseFilter {
	if targetUserID != "" {
		return models.CaseFilter{ClaimantID: targetUserID}
	}
	switch actor.Role() {
	case models.RoleAdmin:
		return models.CaseFilter{}
	case models.RoleManager:
		district := NormalizeDistrict(actor.District)
		if district == "" {
			return models.CaseFilter{None: true}
		}
		return models.CaseFilter{
			District:      district,
			ExcludeLevels: escalatedLevels,
		}
	default:
		return models.CaseFilter{ClaimantID: actor.ID}
	}
}

// InvitationScope mirrors Scope for meetings, which carry a denormalized district
func InvitationScope(actor models.Actor) (models.InvitationFilter, bool) {
	switch actor.Role() {
	case models.RoleAdmin:
		return models.InvitationFilter{}, true
	case models.RoleManager:
		district := NormalizeDistrict(actor.District)
		if district == "" {
			return models.InvitationFilter{}, false
		}
		return models.InvitationFilter{District: district, ExcludeLevels: escalatedLevels}, true
	default:
		// plain users only see meetings of their own cases, resolved by the caller
		return models.InvitationFilter{}, false
	}
}

// CanRead reports whether actor may read c. It agrees with Scope.
func CanRead(actor models.Actor, c *models.Case) bool {
	if c.Defendant.UserID != "" && c.Defendant.UserID == actor.ID {
		return true
	}
	return Scope(actor, "").Matches(c)
}

// CanAdjudicate is the guard shared by process, resolve and reject: a manager of the
// case's district while it sits at district level, or an admin once it is at nla.
func CanAdjudicate(actor models.Actor, c *models.Case) bool {
	switch actor.Role() {
	case models.RoleManager:
		return c.Level.Normalize() == models.LevelDistrict &&
			actor.District != "" &&
			NormalizeDistrict(actor.District) == c.District
	case models.RoleAdmin:
		return c.Level == models.LevelNLA
	default:
		return false
	}
}

// NormalizeDistrict lower-cases and trims a district name
func NormalizeDistrict(d string) string {
	return strings.ToLower(strings.TrimSpace(d))
}

// CanSwitchRole reports whether an account whose real role is actual may act as target.
// Any account may drop to the user view of itself and return to its own role.
func CanSwitchRole(actual, target models.Role) bool {
	if !target.Valid() {
		return false
	}
	return target == actual || target == models.RoleUser
}
