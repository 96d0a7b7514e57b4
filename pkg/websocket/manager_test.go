package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startManager(t *testing.T, handler Handler) (*Manager, string, context.CancelFunc) {
	t.Helper()
	m := NewManager(handler, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go m.Start(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.Serve(w, r, r.URL.Query().Get("user"))
	}))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return m, "ws" + strings.TrimPrefix(srv.URL, "http"), cancel
}

func dial(t *testing.T, url, user string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url+"/?user="+user, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	return string(msg)
}

func TestReplyOnlyReachesSender(t *testing.T) {
	m, url, _ := startManager(t, func(c *Client, message []byte) {
		c.Reply(append([]byte("echo:"), message...))
	})

	conn := dial(t, url, "1")
	require.Eventually(t, func() bool { return m.Connected("1") }, time.Second, 10*time.Millisecond)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hi")))
	assert.Equal(t, "echo:hi", read(t, conn))
}

func TestSendToEveryConnectionOfUser(t *testing.T) {
	m, url, _ := startManager(t, nil)

	a := dial(t, url, "7")
	b := dial(t, url, "7")
	other := dial(t, url, "8")
	require.Eventually(t, func() bool {
		m.mutex.Lock()
		defer m.mutex.Unlock()
		return len(m.clients["7"]) == 2 && len(m.clients["8"]) == 1
	}, time.Second, 10*time.Millisecond)

	m.SendTo("7", []byte("ping"))
	assert.Equal(t, "ping", read(t, a))
	assert.Equal(t, "ping", read(t, b))

	require.NoError(t, other.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := other.ReadMessage()
	assert.Error(t, err)
}

func TestDisconnectUnregisters(t *testing.T) {
	m, url, _ := startManager(t, nil)

	conn := dial(t, url, "3")
	require.Eventually(t, func() bool { return m.Connected("3") }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return !m.Connected("3") }, time.Second, 10*time.Millisecond)
}

func TestStopClosesConnections(t *testing.T) {
	m, url, cancel := startManager(t, nil)

	conn := dial(t, url, "5")
	require.Eventually(t, func() bool { return m.Connected("5") }, time.Second, 10*time.Millisecond)

	cancel()
	require.Eventually(t, m.Stopped, time.Second, 10*time.Millisecond)
	assert.False(t, m.Connected("5"))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	// 停止後投遞不阻塞
	m.SendTo("5", []byte("late"))
}
