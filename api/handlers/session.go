package handlers

import (
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/landauthority/dispute-api/config"
	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/policy"
	"github.com/landauthority/dispute-api/tokens"
)

// Session re-issues session tokens
type Session struct {
	Tokens SessionManager
	TTL    time.Duration
}

type switchRoleRequest struct {
	Role models.Role `json:"role"`
}

type switchRoleResponse struct {
	Token         string      `json:"token"`
	EffectiveRole models.Role `json:"effectiveRole"`
}

// SwitchRoleHandler issues a session acting as another role of the same account. An
// account may only drop to the user view or return to its own role.
func (s Session) SwitchRoleHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	var body switchRoleRequest
	if err := decodeJSON(r, &body); err != nil {
		badRequest("failed to decode request body", w, err)
		return
	}
	if !policy.CanSwitchRole(actor.ActualRole, body.Role) {
		config.ErrorKindStatus("role switch not allowed", "Forbidden", http.StatusForbidden, w,
			errors.Newf("%s may not act as %q", actor.ActualRole, body.Role))
		return
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = sessionTTLFallback
	}
	token, err := s.Tokens.SignSession(tokens.SessionClaims{
		UserID:        actor.ID,
		Name:          actor.Name,
		Email:         actor.Email,
		ActualRole:    actor.ActualRole,
		EffectiveRole: body.Role,
		District:      actor.District,
	}, ttl)
	if err != nil {
		config.ErrorStatus("failed to sign session", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, switchRoleResponse{Token: token, EffectiveRole: body.Role})
}
