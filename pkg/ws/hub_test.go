package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, hub *Hub, compress bool) *httptest.Server {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		NewClient(conn, r.URL.Query().Get("channel"), compress).Serve(hub, nil)
	}))
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server, channel string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/?channel=" + channel
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClients(t *testing.T, hub *Hub, n int) {
	require.Eventually(t, func() bool { return hub.Len() == n }, time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastByChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)
	server := newTestServer(t, hub, false)

	priya := dial(t, server, "user-1")
	arjun := dial(t, server, "user-2")
	waitClients(t, hub, 2)

	hub.BroadcastByChannel("user-1", []byte("only priya"))
	hub.Broadcast([]byte("everyone"))

	priya.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := priya.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, "only priya", string(msg))
	_, msg, err = priya.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, "everyone", string(msg))

	arjun.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err = arjun.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, "everyone", string(msg))

	priya.Close()
	waitClients(t, hub, 1)
}

func TestHub_Compression(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)
	server := newTestServer(t, hub, true)

	conn := dial(t, server, "user-1")
	waitClients(t, hub, 1)

	hub.Broadcast([]byte(`{"version":1}`))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	plain, err := Decompress(msg)
	require.NoError(t, err)
	require.Equal(t, `{"version":1}`, string(plain))
}

func TestClient_RegisterBeforeFirstMessage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		client := NewClient(conn, "user-1", false)
		if !client.Register(hub) {
			return
		}
		hub.BroadcastByChannel("user-1", []byte("welcome"))
		client.Serve(hub, nil)
	}))
	t.Cleanup(server.Close)

	conn := dial(t, server, "user-1")
	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, "welcome", string(msg))
}

func TestClient_RegisterOnStoppedHub(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	registered := make(chan bool, 1)
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		registered <- NewClient(conn, "user-1", false).Register(hub)
	}))
	t.Cleanup(server.Close)

	dial(t, server, "user-1")
	require.False(t, <-registered)
}
