package ws

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ZEBR0Z/Gamejam2025-sub000/internal/app"
	"github.com/ZEBR0Z/Gamejam2025-sub000/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testHub(t *testing.T) *app.Hub {
	t.Helper()
	hub := app.NewHub(app.NewSoundCatalog(), domain.DefaultSessionSettings(), 4, testLogger())
	t.Cleanup(hub.Close)
	return hub
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readServerMessage reads one frame and decodes the envelope with the
// payload left raw
func readServerMessage(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return msg.Type, msg.Payload
}

func TestReconnectUnknownPlayerGetsPlayerNotFound(t *testing.T) {
	hub := testHub(t)
	session, err := hub.CreateSession()
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	srv := httptest.NewServer(NewHandler(hub, testLogger()))
	t.Cleanup(srv.Close)

	conn := dial(t, srv, "sessionCode="+session.Code()+"&playerId=ghost")

	msgType, payload := readServerMessage(t, conn)
	if msgType != MsgError {
		t.Fatalf("want %s message, got %s", MsgError, msgType)
	}
	var errPayload ErrorPayload
	if err := json.Unmarshal(payload, &errPayload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if errPayload.Code != ErrCodePlayerNotFound {
		t.Fatalf("bad identity must not read as a dead session: want %s, got %s",
			ErrCodePlayerNotFound, errPayload.Code)
	}
}

func TestJoinOverWebsocket(t *testing.T) {
	hub := testHub(t)
	session, err := hub.CreateSession()
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	srv := httptest.NewServer(NewHandler(hub, testLogger()))
	t.Cleanup(srv.Close)

	conn := dial(t, srv, "sessionCode="+session.Code())

	join, _ := json.Marshal(&ClientMessage{
		Type:    MsgJoinSession,
		Payload: json.RawMessage(`{"name":"ana"}`),
	})
	if err := conn.WriteMessage(websocket.TextMessage, join); err != nil {
		t.Fatalf("write join: %v", err)
	}

	msgType, payload := readServerMessage(t, conn)
	if msgType != MsgConnected {
		t.Fatalf("want %s message, got %s", MsgConnected, msgType)
	}
	var connected ConnectedPayload
	if err := json.Unmarshal(payload, &connected); err != nil {
		t.Fatalf("decode connected payload: %v", err)
	}
	if connected.PlayerID == "" || connected.SessionCode != session.Code() {
		t.Fatalf("unexpected connected payload: %+v", connected)
	}
}
