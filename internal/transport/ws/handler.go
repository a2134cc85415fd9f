package ws

import (
	"aulaquiz/internal/logger"
	"aulaquiz/internal/metrics"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	maxRoomLength  = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // The SPA is served from another origin
	},
}

// Handler upgrades HTTP requests and pumps messages between the socket and the hub
type Handler struct {
	hub     *Hub
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewHandler creates a new WebSocket handler. m may be nil.
func NewHandler(hub *Hub, log *logger.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		hub:     hub,
		log:     log,
		metrics: m,
	}
}

// ServeWS handles GET /ws
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := NewClient(uuid.NewString())
	h.hub.Register(client)
	h.log.Info().Str("client", client.ID).Str("remote", r.RemoteAddr).Msg("websocket connected")

	go h.writePump(wsConn, client)
	go h.readPump(wsConn, client)
}

func (h *Handler) readPump(wsConn *websocket.Conn, client *Client) {
	defer func() {
		h.hub.Unregister(client)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn().Err(err).Str("client", client.ID).Msg("websocket error")
			}
			break
		}
		h.dispatch(client, data)
	}
}

func (h *Handler) dispatch(client *Client, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		h.hub.Reply(client, MsgError, ErrorPayload{Message: "mensaje no válido"})
		return
	}
	if h.metrics != nil {
		h.metrics.WSMessagesTotal.WithLabelValues("in", string(msg.Type)).Inc()
	}

	switch msg.Type {
	case MsgJoinRoom, MsgLeaveRoom:
		room, ok := parseRoom(msg.Payload)
		if !ok {
			h.hub.Reply(client, MsgError, ErrorPayload{Message: "nombre de sala no válido"})
			return
		}
		if msg.Type == MsgJoinRoom {
			h.hub.Join(client, room)
		} else {
			h.hub.Leave(client, room)
		}
	default:
		h.hub.Reply(client, MsgError, ErrorPayload{Message: "tipo de mensaje desconocido: " + string(msg.Type)})
	}
}

// parseRoom accepts "ROOM" or {"room":"ROOM"}
func parseRoom(raw json.RawMessage) (string, bool) {
	var room string
	if err := json.Unmarshal(raw, &room); err != nil {
		var obj RoomPayload
		if err := json.Unmarshal(raw, &obj); err != nil {
			return "", false
		}
		room = obj.Room
	}
	room = strings.TrimSpace(room)
	if room == "" || len(room) > maxRoomLength {
		return "", false
	}
	return room, true
}

func (h *Handler) writePump(wsConn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
