package notify

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/landauthority/dispute-api/logging"
)

// PushTimeout bounds a websocket write when the caller's context has no earlier deadline
const PushTimeout = 10 * time.Second

// ErrNotConnected is returned by Push when the user has no open socket
var ErrNotConnected = errors.New("user is not connected")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// client is one registered socket. A websocket supports a single concurrent writer, so
// writes to the same socket go through writeMu.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// Hub keeps one websocket per connected user (userId -> client). The hub lock only
// guards the map and is never held during a write.
type Hub struct {
	clients map[string]*client
	mutex   sync.Mutex
	log     *zap.SugaredLogger
}

// NewHub returns an empty hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
		log:     logging.New("hub"),
	}
}

// Serve upgrades the request and keeps the socket registered for userID until the
// client goes away
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn}

	h.mutex.Lock()
	old := h.clients[userID]
	h.clients[userID] = c
	h.mutex.Unlock()
	if old != nil {
		old.conn.Close()
	}
	h.log.Infow("user connected to /ws/notifications", "userId", userID)

	for {
		if _, _, err := conn.NextReader(); err != nil {
			break
		}
	}

	h.remove(userID, c)
	h.log.Infow("user disconnected from /ws/notifications", "userId", userID)
}

// Connected reports whether userID has an open socket
func (h *Hub) Connected(userID string) bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	_, ok := h.clients[userID]
	return ok
}

// Push writes one event to userID. The write deadline is the earlier of ctx's deadline
// and PushTimeout; a socket that misses it is dropped.
func (h *Hub) Push(ctx context.Context, userID, event string, data interface{}) error {
	h.mutex.Lock()
	c, ok := h.clients[userID]
	h.mutex.Unlock()
	if !ok {
		return ErrNotConnected
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, "push %s to %s", event, userID)
	}

	deadline := time.Now().Add(PushTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	c.writeMu.Lock()
	err := c.conn.SetWriteDeadline(deadline)
	if err == nil {
		err = c.conn.WriteJSON(map[string]interface{}{
			"event": event,
			"data":  data,
		})
	}
	c.writeMu.Unlock()

	if err != nil {
		h.remove(userID, c)
		return errors.Wrapf(err, "failed to push %s to %s", event, userID)
	}
	return nil
}

// remove unregisters c if it is still the socket of userID and closes it
func (h *Hub) remove(userID string, c *client) {
	h.mutex.Lock()
	if h.clients[userID] == c {
		delete(h.clients, userID)
	}
	h.mutex.Unlock()
	c.conn.Close()
}
