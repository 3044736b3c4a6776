package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/landauthority/dispute-api/api"
	"github.com/landauthority/dispute-api/api/scheduler"
	"github.com/landauthority/dispute-api/audit"
	"github.com/landauthority/dispute-api/config"
	"github.com/landauthority/dispute-api/databases"
	"github.com/landauthority/dispute-api/disputes"
	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/notify"
	"github.com/landauthority/dispute-api/policy"
	"github.com/landauthority/dispute-api/storage"
	"github.com/landauthority/dispute-api/tokens"
)

// App stores the router and the long lived collaborators, so they can be reused
type App struct {
	Router *mux.Router
	Config config.Config

	Disputes DisputeService
	Sessions SessionManager
	Hub      *notify.Hub

	client     databases.ClientHelper
	dbHelper   databases.DatabaseHelper
	dispatcher *notify.Dispatcher
	scheduler  *scheduler.Scheduler
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	auth := api.Auth{Sessions: a.Sessions}

	c := Case{Svc: a.Disputes}
	inv := Invitation{Svc: a.Disputes}
	st := Statistics{Svc: a.Disputes}
	s := Session{Tokens: a.Sessions, TTL: a.Config.SessionTTL}
	n := Notification{Hub: a.Hub, Sessions: a.Sessions}

	r := mux.NewRouter()
	r.Use(api.MetricsMiddleware)
	if a.Config.RequestTimeout > 0 {
		r.Use(api.TimeoutMiddleware(a.Config.RequestTimeout))
	}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/ws/notifications", n.WebsocketHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/cases", auth.Middleware(http.HandlerFunc(c.CreateCaseHandler))).Methods("POST")
	apiCreate.Handle("/cases", auth.Middleware(http.HandlerFunc(c.CasesHandler))).Methods("GET")
	apiCreate.Handle("/cases/{case_id}", auth.Middleware(http.HandlerFunc(c.CaseByIDHandler))).Methods("GET")
	apiCreate.Handle("/cases/{case_id}", auth.Middleware(http.HandlerFunc(c.UpdateCaseHandler))).Methods("PATCH")
	apiCreate.Handle("/cases/{case_id}", auth.Middleware(http.HandlerFunc(c.DeleteCaseHandler))).Methods("DELETE")
	apiCreate.Handle("/cases/{case_id}/versions", auth.Middleware(http.HandlerFunc(c.CaseVersionsHandler))).Methods("GET")
	apiCreate.Handle("/cases/{case_id}/transitions/{event}", auth.Middleware(http.HandlerFunc(c.TransitionHandler))).Methods("POST")
	apiCreate.Handle("/cases/{case_id}/close", auth.Middleware(http.HandlerFunc(c.CloseCaseHandler))).Methods("POST")
	apiCreate.Handle("/cases/{case_id}/defendant", auth.Middleware(http.HandlerFunc(c.AssignDefendantHandler))).Methods("POST")
	apiCreate.Handle("/cases/{case_id}/documents", auth.Middleware(http.HandlerFunc(c.ShareDocumentsHandler))).Methods("POST")
	apiCreate.Handle("/cases/{case_id}/invitations", auth.Middleware(http.HandlerFunc(inv.ScheduleInvitationHandler))).Methods("POST")

	apiCreate.Handle("/invitations", auth.Middleware(http.HandlerFunc(inv.InvitationsHandler))).Methods("GET")
	apiCreate.Handle("/invitations/{invitation_id}/cancel", auth.Middleware(http.HandlerFunc(inv.CancelInvitationHandler))).Methods("POST")

	apiCreate.Handle("/statistics", auth.Middleware(http.HandlerFunc(st.StatisticsHandler))).Methods("GET")

	apiCreate.Handle("/defendant/accept", auth.Middleware(http.HandlerFunc(c.AcceptDefendantHandler))).Methods("POST")
	apiCreate.Handle("/session/role", auth.Middleware(http.HandlerFunc(s.SwitchRoleHandler))).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database, wire every collaborator
// and create a router
func (a *App) Initialize(ctx context.Context) error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}
	a.client = client

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect(ctx)
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("dispute-api has connected to the database")

	cases := databases.NewCaseDatabase(a.dbHelper)
	versions := databases.NewCaseVersionDatabase(a.dbHelper)
	if err := cases.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := versions.EnsureIndexes(ctx); err != nil {
		return err
	}

	store, err := storage.New(ctx, &a.Config)
	if err != nil {
		zap.S().With(err).Error("failed to open document storage")
		return err
	}

	if a.Config.JWTSecret == "" {
		zap.S().Warn("JWT_SECRET is not set, every session will be rejected")
	}
	signer := tokens.NewManager(a.Config.JWTSecret)
	a.Sessions = signer
	a.Hub = notify.NewHub()
	a.dispatcher = notify.NewDispatcher(notify.NewGateway(&a.Config), a.Hub, a.Config.NotifyWorkers, a.Config.NotifyQueueSize)

	committee := make([]models.Role, 0, len(a.Config.CommitteeRoles))
	for _, role := range a.Config.CommitteeRoles {
		committee = append(committee, models.Role(role))
	}

	svc := disputes.New(disputes.Deps{
		Cases:       cases,
		Versions:    versions,
		Invitations: databases.NewInvitationDatabase(a.dbHelper),
		Users:       databases.NewUserDatabase(a.dbHelper),
		Lands:       databases.NewLandDatabase(a.dbHelper),
		Storage:     store,
		Dispatcher:  a.dispatcher,
		Audit:       audit.New(databases.NewAuditLogDatabase(a.dbHelper)),
		Tokens:      signer,
	}, disputes.Config{
		Thresholds: policy.Thresholds{
			District: a.Config.DistrictThresholdDays,
			NLA:      a.Config.NLAThresholdDays,
		},
		CommitteeRoles: committee,
		FrontendURL:    a.Config.FrontendURL,
	})
	a.Disputes = svc

	a.scheduler, err = scheduler.NewScheduler(a.Config.OverdueSweepCron, svc, databases.NewSchedulerLockDatabase(a.dbHelper))
	if err != nil {
		zap.S().With(err).Error("failed to register overdue sweep")
		return err
	}
	a.scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil
}

// Shutdown stops the background jobs, delivers queued notifications and disconnects
func (a *App) Shutdown(ctx context.Context) {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.dispatcher != nil {
		a.dispatcher.Close()
	}
	if a.client != nil {
		if err := a.client.Disconnect(ctx); err != nil {
			zap.S().Errorw("failed to disconnect from database", "error", err)
		}
	}
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}

// sessionTTLFallback applies when the config does not set a session lifetime
const sessionTTLFallback = 12 * time.Hour
