package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPush(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, r.URL.Query().Get("userId"))
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?userId=u1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool { return hub.Connected("u1") }, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Push(context.Background(), "u1", "case_updated", map[string]string{"claimId": "LD-7K2M9QXA"}))

	var msg struct {
		Event string            `json:"event"`
		Data  map[string]string `json:"data"`
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "case_updated", msg.Event)
	assert.Equal(t, "LD-7K2M9QXA", msg.Data["claimId"])
}

func TestHubPushNotConnected(t *testing.T) {
	err := NewHub().Push(context.Background(), "nobody", "case_updated", nil)
	assert.True(t, errors.Is(err, ErrNotConnected))
}

func dialHub(t *testing.T, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?userId=" + userID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubStalledClientDoesNotBlockOthers(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, r.URL.Query().Get("userId"))
	}))
	defer srv.Close()

	// u1 never reads, so its socket buffers fill up
	dialHub(t, srv, "u1")
	reader := dialHub(t, srv, "u2")
	assert.Eventually(t, func() bool { return hub.Connected("u1") && hub.Connected("u2") }, time.Second, 10*time.Millisecond)

	bulk := strings.Repeat("x", 1<<20)
	stalled := make(chan error, 1)
	go func() {
		for i := 0; i < 64; i++ {
			ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
			err := hub.Push(ctx, "u1", "bulk", bulk)
			cancel()
			if err != nil {
				stalled <- err
				return
			}
		}
		stalled <- nil
	}()
	time.Sleep(100 * time.Millisecond)

	start := time.Now()
	require.NoError(t, hub.Push(context.Background(), "u2", "case_updated", map[string]string{"claimId": "LD-7K2M9QXA"}))
	assert.Less(t, time.Since(start), 2*time.Second)

	var msg struct {
		Event string `json:"event"`
	}
	require.NoError(t, reader.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, reader.ReadJSON(&msg))
	assert.Equal(t, "case_updated", msg.Event)

	select {
	case err := <-stalled:
		assert.Error(t, err)
	case <-time.After(30 * time.Second):
		t.Fatal("write to the stalled socket never timed out")
	}
	assert.False(t, hub.Connected("u1"))
	assert.True(t, hub.Connected("u2"))
}

func TestHubPushHonoursCanceledContext(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, r.URL.Query().Get("userId"))
	}))
	defer srv.Close()
	dialHub(t, srv, "u1")
	assert.Eventually(t, func() bool { return hub.Connected("u1") }, time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, hub.Push(ctx, "u1", "case_updated", nil), context.Canceled)
}
