package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"SkillSphere/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T, verify auth.VerifyFunc) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	r := gin.New()
	r.GET("/api/ws", NewHandler(hub, verify).Serve)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
}

func TestHandshakeRejectsBadToken(t *testing.T) {
	_, srv := newTestServer(t, func(token string) (uint64, error) {
		return 0, auth.ErrUnauthorized
	})

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token=bogus", nil)
	if err == nil {
		conn.Close()
		t.Fatal("dial should fail before upgrade")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("resp=%v, want 401", resp)
	}
}

func TestHandshakeRejectsMissingToken(t *testing.T) {
	_, srv := newTestServer(t, func(token string) (uint64, error) {
		if token == "" {
			return 0, auth.ErrUnauthorized
		}
		return 7, nil
	})

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err == nil {
		conn.Close()
		t.Fatal("anonymous dial should fail")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("resp=%v, want 401", resp)
	}
}

func TestConnectedClientReceivesEmit(t *testing.T) {
	hub, srv := newTestServer(t, func(token string) (uint64, error) {
		if token != "good" {
			return 0, auth.ErrUnauthorized
		}
		return 7, nil
	})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token=good", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	waitConnections(t, hub, 7, 1)

	hub.EmitTo(7, EventNotification, NotificationEvent{ID: 11, Recipient: 7, Message: "hi"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var env struct {
		Event string            `json:"event"`
		Data  NotificationEvent `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Event != EventNotification || env.Data.ID != 11 || env.Data.Recipient != 7 {
		t.Fatalf("frame=%+v, want notification 11 for user 7", env)
	}
}

func TestDisconnectLeavesHub(t *testing.T) {
	hub, srv := newTestServer(t, func(token string) (uint64, error) {
		return 7, nil
	})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token=x", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	waitConnections(t, hub, 7, 1)

	conn.Close()
	waitConnections(t, hub, 7, 0)
}

// waitConnections 轮询到连接数符合预期，服务端 Join/Leave 和拨号是异步的
func waitConnections(t *testing.T, hub *Hub, userID uint64, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.Connections(userID) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("connections=%d, want %d", hub.Connections(userID), want)
}
