package api

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/landauthority/dispute-api/models"
	"github.com/landauthority/dispute-api/tokens"
)

type actorKey struct{}

// SessionVerifier validates a bearer session token
type SessionVerifier interface {
	VerifySession(token string) (*tokens.SessionClaims, error)
}

// Auth resolves the caller of every protected route from its session token
type Auth struct {
	Sessions SessionVerifier
}

// Middleware rejects requests without a valid bearer session and puts the resolved
// actor in the request context
func (a Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		token, err := tokens.ExtractBearer(r.Header.Get("Authorization"))
		if err != nil {
			unauthorized(w, r, err.Error())
			return
		}
		claims, err := a.Sessions.VerifySession(token)
		if err != nil {
			unauthorized(w, r, err.Error())
			return
		}
		actor := claims.Actor()
		zap.S().Debugf("user %s authenticated as %s", actor.ID, actor.Role())
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func unauthorized(w http.ResponseWriter, r *http.Request, reason string) {
	zap.S().Errorw("unauthorized",
		"url", r.URL.Path,
		"reason", reason)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error": "unauthorized"}`))
}

// WithActor stores the authenticated actor in ctx
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor put there by Middleware
func ActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(models.Actor)
	return actor, ok && actor.ID != ""
}
