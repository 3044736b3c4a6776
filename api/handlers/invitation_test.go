package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/landauthority/dispute-api/api/handlers"
	"github.com/landauthority/dispute-api/api/handlers/mocks"
	"github.com/landauthority/dispute-api/disputes"
	"github.com/landauthority/dispute-api/models"
)

func TestInvitation_ScheduleInvitationHandler(t *testing.T) {
	svc := mocks.NewDisputeService(t)
	when := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	svc.On("ScheduleInvitation", mock.Anything, manager, caseID, mock.MatchedBy(func(in disputes.ScheduleInput) bool {
		return in.DateTime.Equal(when) && in.Location == "Gasabo district office" && len(in.Invitees) == 2
	})).Return(models.Invitation{Location: "Gasabo district office"}, nil)

	req := jsonRequest(t, http.MethodPost, "/", map[string]interface{}{
		"invitees": []string{"claimant", "defendant"},
		"dateTime": "2024-07-01T10:00:00Z",
		"location": "Gasabo district office",
	})
	req = mux.SetURLVars(req, map[string]string{"case_id": caseID})
	rr := httptest.NewRecorder()
	handlers.Invitation{Svc: svc}.ScheduleInvitationHandler(rr, asActor(req, manager))

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestInvitation_InvitationsHandler(t *testing.T) {
	svc := mocks.NewDisputeService(t)
	svc.On("ListInvitations", mock.Anything, claimant, caseID, true).Return([]models.Invitation{}, nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/invitations?caseId="+caseID+"&includeCanceled=true", nil)
	handlers.Invitation{Svc: svc}.InvitationsHandler(rr, asActor(req, claimant))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestInvitation_CancelInvitationHandlerAlreadyCanceled(t *testing.T) {
	svc := mocks.NewDisputeService(t)
	svc.On("CancelInvitation", mock.Anything, manager, "inv1").
		Return(models.Invitation{}, models.ErrInvitationNotFound)

	req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/", nil), map[string]string{"invitation_id": "inv1"})
	rr := httptest.NewRecorder()
	handlers.Invitation{Svc: svc}.CancelInvitationHandler(rr, asActor(req, manager))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatistics_StatisticsHandler(t *testing.T) {
	svc := mocks.NewDisputeService(t)
	svc.On("Statistics", mock.Anything, manager, mock.MatchedBy(func(q disputes.StatsQuery) bool {
		return q.From != nil && q.To == nil
	})).Return(disputes.Statistics{Total: 4, StatusCounts: map[models.CaseStatus]int{models.StatusOpen: 4}}, nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/statistics?startDate=2024-01-01T00:00:00Z", nil)
	handlers.Statistics{Svc: svc}.StatisticsHandler(rr, asActor(req, manager))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total":4`)
}
