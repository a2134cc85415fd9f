package ws

import (
	"aulaquiz/internal/logger"
	"aulaquiz/internal/metrics"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(logger.Nop(), metrics.New())
	handler := NewHandler(hub, logger.Nop(), nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handler.ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		hub.Close()
	})
	return hub, server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readNext(t *testing.T, conn *websocket.Conn, expect MessageType) json.RawMessage {
	t.Helper()
	var msg Message
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s (%s)", expect, msg.Type, msg.Payload)
	}
	return msg.Payload
}

func join(t *testing.T, conn *websocket.Conn, payload interface{}) {
	t.Helper()
	if err := conn.WriteJSON(map[string]interface{}{"type": "join_room", "payload": payload}); err != nil {
		t.Fatalf("write join: %v", err)
	}
}

func TestJoinRoomTwiceAcksEachTimeKeepsOneMembership(t *testing.T) {
	hub, server := newTestServer(t)
	conn := dial(t, server)

	for i := 0; i < 2; i++ {
		join(t, conn, "ABC123")
		payload := readNext(t, conn, MsgJoinedRoom)

		var ack RoomPayload
		require.NoError(t, json.Unmarshal(payload, &ack))
		assert.Equal(t, "ABC123", ack.Room)
	}

	assert.Equal(t, 1, hub.RoomSize("ABC123"))
	assert.Equal(t, 1, hub.RoomCount())
}

func TestJoinAckGoesOnlyToJoiner(t *testing.T) {
	_, server := newTestServer(t)
	alice := dial(t, server)
	bob := dial(t, server)

	join(t, bob, "SALA1")
	readNext(t, bob, MsgJoinedRoom)
	join(t, alice, "SALA1")
	readNext(t, alice, MsgJoinedRoom)

	_ = bob.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := bob.ReadMessage()
	require.Error(t, err, "bob must not see alice's ack")
}

func TestBroadcastReachesRoomMembersOnly(t *testing.T) {
	hub, server := newTestServer(t)
	member := dial(t, server)
	outsider := dial(t, server)

	join(t, member, map[string]string{"room": "PIN234"})
	readNext(t, member, MsgJoinedRoom)
	join(t, outsider, "OTRA")
	readNext(t, outsider, MsgJoinedRoom)

	hub.BroadcastToRoom("PIN234", "game_state", map[string]string{"estado": "active"})

	payload := readNext(t, member, "game_state")
	assert.JSONEq(t, `{"estado":"active"}`, string(payload))

	_ = outsider.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := outsider.ReadMessage()
	require.Error(t, err)
}

func TestLeaveAndInvalidMessages(t *testing.T) {
	hub, server := newTestServer(t)
	conn := dial(t, server)

	join(t, conn, "")
	readNext(t, conn, MsgError)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "dance"}))
	readNext(t, conn, MsgError)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{nope")))
	readNext(t, conn, MsgError)

	join(t, conn, "R1")
	readNext(t, conn, MsgJoinedRoom)
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "leave_room", "payload": "R1"}))
	readNext(t, conn, MsgLeftRoom)

	assert.Equal(t, 0, hub.RoomSize("R1"))
	assert.Equal(t, 0, hub.RoomCount())
}

func TestDisconnectDropsMembership(t *testing.T) {
	hub, server := newTestServer(t)
	conn := dial(t, server)

	join(t, conn, "R2")
	readNext(t, conn, MsgJoinedRoom)
	require.Equal(t, 1, hub.RoomSize("R2"))

	conn.Close()
	require.Eventually(t, func() bool {
		return hub.RoomSize("R2") == 0 && hub.ConnectionCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHubUpdatesGauges(t *testing.T) {
	m := metrics.New()
	hub := NewHub(logger.Nop(), m)
	defer hub.Close()

	c := NewClient("c1")
	hub.Register(c)
	hub.Join(c, "X")
	<-c.Send // ack

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(m.WSConnections) == 1 && testutil.ToFloat64(m.WSRooms) == 1
	}, time.Second, 5*time.Millisecond)
}
