package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/landauthority/dispute-api/api/handlers"
	"github.com/landauthority/dispute-api/api/handlers/mocks"
	"github.com/landauthority/dispute-api/config"
	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/notify"
	"github.com/landauthority/dispute-api/tokens"
)

func newTestApp(t *testing.T) (*handlers.App, *mocks.DisputeService, *tokens.Manager) {
	svc := mocks.NewDisputeService(t)
	mgr := tokens.NewManager("test-secret")
	a := &handlers.App{
		Config:   config.Config{SessionTTL: time.Hour, RequestTimeout: 5 * time.Second},
		Disputes: svc,
		Sessions: mgr,
		Hub:      notify.NewHub(),
	}
	a.Router = a.New()
	return a, svc, mgr
}

func TestApp_HealthCheck(t *testing.T) {
	a, _, _ := newTestApp(t)
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"alive":true}`, rr.Body.String())
}

func TestApp_RoutesRequireSession(t *testing.T) {
	a, _, _ := newTestApp(t)
	for _, target := range []string{"/api/v1/cases", "/api/v1/statistics", "/api/v1/invitations"} {
		rr := httptest.NewRecorder()
		a.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, target)
	}
}

func TestApp_AuthenticatedRouteReachesService(t *testing.T) {
	a, svc, mgr := newTestApp(t)
	token, err := mgr.SignSession(tokens.SessionClaims{UserID: "m1", ActualRole: models.RoleManager, District: "Gasabo"}, time.Hour)
	require.NoError(t, err)

	svc.On("GetCase", mock.Anything, mock.MatchedBy(func(actor models.Actor) bool {
		return actor.ID == "m1" && actor.Role() == models.RoleManager
	}), caseID).Return(models.CaseView{Case: models.Case{ClaimID: "LD-7K2M9QXA"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cases/"+caseID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "LD-7K2M9QXA")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestApp_WebsocketRequiresToken(t *testing.T) {
	a, _, _ := newTestApp(t)
	for _, target := range []string{"/ws/notifications", "/ws/notifications?token=forged"} {
		rr := httptest.NewRecorder()
		a.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, target)
	}
}
