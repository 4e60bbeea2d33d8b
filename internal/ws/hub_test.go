package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// Push est appelé depuis les goroutines des handlers : les écritures
// vers une même connexion doivent être sérialisées.
func TestPushConcurrentWriters(t *testing.T) {
	registered := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		Register("u1", conn)
		registered <- conn
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	dialed, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer dialed.Close()

	serverConn := <-registered
	defer func() {
		Unregister("u1", serverConn)
		serverConn.Close()
	}()

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Push("u1", map[string]string{"type": "ping"})
		}()
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		var msg map[string]string
		require.NoError(t, dialed.ReadJSON(&msg))
		require.Equal(t, "ping", msg["type"])
	}
}

func TestUnregisterRemovesConnection(t *testing.T) {
	conn := &websocket.Conn{}
	Register("u2", conn)
	Unregister("u2", conn)

	hub.mu.RLock()
	_, ok := hub.conns["u2"]
	hub.mu.RUnlock()
	require.False(t, ok)
}
