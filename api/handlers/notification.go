package handlers

import (
	"net/http"

	"github.com/landauthority/dispute-api/config"
	"github.com/landauthority/dispute-api/notify"
	"github.com/landauthority/dispute-api/tokens"
)

// Notification serves the live notification socket
type Notification struct {
	Hub      *notify.Hub
	Sessions SessionManager
}

// WebsocketHandler upgrades an authenticated request. Browsers cannot set headers on a
// websocket handshake, so the session may come in the "token" query parameter.
func (n Notification) WebsocketHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		var err error
		token, err = tokens.ExtractBearer(r.Header.Get("Authorization"))
		if err != nil {
			config.ErrorStatus("missing session token", http.StatusUnauthorized, w, err)
			return
		}
	}
	claims, err := n.Sessions.VerifySession(token)
	if err != nil {
		config.ErrorStatus("invalid session token", http.StatusUnauthorized, w, err)
		return
	}
	n.Hub.Serve(w, r, claims.UserID)
}
