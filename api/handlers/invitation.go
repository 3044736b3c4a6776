package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/landauthority/dispute-api/disputes"
)

// Invitation exposes the meeting invitation routes
type Invitation struct {
	Svc DisputeService
}

// ScheduleInvitationHandler plans a meeting on a case
func (i Invitation) ScheduleInvitationHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	var in disputes.ScheduleInput
	if err := decodeJSON(r, &in); err != nil {
		badRequest("failed to decode request body", w, err)
		return
	}
	inv, err := i.Svc.ScheduleInvitation(r.Context(), actor, mux.Vars(r)["case_id"], in)
	if err != nil {
		serviceError("failed to schedule invitation", w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

// InvitationsHandler lists the invitations visible to the caller, optionally for one case
func (i Invitation) InvitationsHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	includeCanceled, _ := strconv.ParseBool(r.URL.Query().Get("includeCanceled"))
	invs, err := i.Svc.ListInvitations(r.Context(), actor, r.URL.Query().Get("caseId"), includeCanceled)
	if err != nil {
		serviceError("failed to list invitations", w, err)
		return
	}
	writeJSON(w, http.StatusOK, invs)
}

// CancelInvitationHandler cancels a scheduled meeting
func (i Invitation) CancelInvitationHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	inv, err := i.Svc.CancelInvitation(r.Context(), actor, mux.Vars(r)["invitation_id"])
	if err != nil {
		serviceError("failed to cancel invitation", w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}
