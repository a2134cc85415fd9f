package ws

import (
	"aulaquiz/internal/logger"
	"aulaquiz/internal/metrics"
	"encoding/json"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Client -> server
const (
	MsgJoinRoom  MessageType = "join_room"
	MsgLeaveRoom MessageType = "leave_room"
)

// Server -> client
const (
	MsgJoinedRoom MessageType = "joined_room"
	MsgLeftRoom   MessageType = "left_room"
	MsgError      MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RoomPayload acknowledges a membership change
type RoomPayload struct {
	Room string `json:"room"`
}

// ErrorPayload reports a rejected client message
type ErrorPayload struct {
	Message string `json:"message"`
}

// Client is one WebSocket connection
type Client struct {
	ID   string
	Send chan []byte

	// rooms is owned by the hub goroutine
	rooms map[string]struct{}
}

// NewClient creates a client with a buffered outbound queue
func NewClient(id string) *Client {
	return &Client{
		ID:    id,
		Send:  make(chan []byte, 256),
		rooms: make(map[string]struct{}),
	}
}

type membership struct {
	client *Client
	room   string
}

type direct struct {
	client *Client
	data   []byte
}

// BroadcastMessage is a message to fan out to a room
type BroadcastMessage struct {
	Room string
	Data []byte
}

// Hub owns every connection and the room membership sets.
// All mutations happen on the run goroutine.
type Hub struct {
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}

	mu sync.RWMutex

	register   chan *Client
	unregister chan *Client
	join       chan membership
	leave      chan membership
	reply      chan direct
	broadcast  chan *BroadcastMessage
	stop       chan struct{}
	done       chan struct{}
	stopOnce   sync.Once

	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewHub creates a new WebSocket hub and starts its loop. m may be nil.
func NewHub(log *logger.Logger, m *metrics.Metrics) *Hub {
	h := &Hub{
		clients:    make(map[*Client]struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan membership),
		leave:      make(chan membership),
		reply:      make(chan direct, 64),
		broadcast:  make(chan *BroadcastMessage, 256),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		log:        log,
		metrics:    m,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			h.mu.Unlock()
			h.log.Debug().Str("client", c.ID).Msg("client connected")

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				for room := range c.rooms {
					h.removeFromRoom(c, room)
				}
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()
			h.log.Info().Str("client", c.ID).Msg("client disconnected")

		case m := <-h.join:
			h.mu.Lock()
			if _, ok := h.clients[m.client]; ok {
				members := h.rooms[m.room]
				if members == nil {
					members = make(map[*Client]struct{})
					h.rooms[m.room] = members
				}
				members[m.client] = struct{}{}
				m.client.rooms[m.room] = struct{}{}
				h.send(m.client, encode(MsgJoinedRoom, RoomPayload{Room: m.room}))
			}
			h.mu.Unlock()
			h.log.Debug().Str("client", m.client.ID).Str("room", m.room).Msg("joined room")

		case m := <-h.leave:
			h.mu.Lock()
			if _, ok := h.clients[m.client]; ok {
				h.removeFromRoom(m.client, m.room)
				h.send(m.client, encode(MsgLeftRoom, RoomPayload{Room: m.room}))
			}
			h.mu.Unlock()

		case d := <-h.reply:
			h.mu.RLock()
			if _, ok := h.clients[d.client]; ok {
				h.send(d.client, d.data)
			}
			h.mu.RUnlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			for c := range h.rooms[msg.Room] {
				h.send(c, msg.Data)
			}
			h.mu.RUnlock()

		case <-h.stop:
			h.mu.Lock()
			for c := range h.clients {
				close(c.Send)
			}
			h.clients = make(map[*Client]struct{})
			h.rooms = make(map[string]map[*Client]struct{})
			h.mu.Unlock()
			h.observe()
			return
		}
		h.observe()
	}
}

// removeFromRoom must be called with mu held
func (h *Hub) removeFromRoom(c *Client, room string) {
	delete(c.rooms, room)
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

func (h *Hub) send(c *Client, data []byte) {
	select {
	case c.Send <- data:
	default:
		// Drop message if buffer full
		h.log.Warn().Str("client", c.ID).Msg("send buffer full, message dropped")
	}
}

func (h *Hub) observe() {
	if h.metrics == nil {
		return
	}
	h.mu.RLock()
	h.metrics.WSConnections.Set(float64(len(h.clients)))
	h.metrics.WSRooms.Set(float64(len(h.rooms)))
	h.mu.RUnlock()
}

func encode(t MessageType, payload interface{}) []byte {
	raw, _ := json.Marshal(payload)
	data, _ := json.Marshal(&Message{Type: t, Payload: raw})
	return data
}

// Register adds a connection
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.Send)
	}
}

// Unregister removes a connection from the hub and every room it held
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Join adds c to room and acknowledges to c only. Joining twice keeps one membership.
func (h *Hub) Join(c *Client, room string) {
	select {
	case h.join <- membership{client: c, room: room}:
	case <-h.done:
	}
}

// Leave removes c from room and acknowledges to c only
func (h *Hub) Leave(c *Client, room string) {
	select {
	case h.leave <- membership{client: c, room: room}:
	case <-h.done:
	}
}

// Reply sends a message to a single connection
func (h *Hub) Reply(c *Client, t MessageType, payload interface{}) {
	select {
	case h.reply <- direct{client: c, data: encode(t, payload)}:
	case <-h.done:
	}
}

// BroadcastToRoom sends a message to every member of room (implements service.Broadcaster)
func (h *Hub) BroadcastToRoom(room string, msgType string, payload interface{}) {
	data := encode(MessageType(msgType), payload)
	if h.metrics != nil {
		h.metrics.WSMessagesTotal.WithLabelValues("out", msgType).Inc()
	}
	select {
	case h.broadcast <- &BroadcastMessage{Room: room, Data: data}:
	case <-h.done:
	}
}

// RoomSize returns how many connections are in room
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// RoomCount returns the number of non-empty rooms (implements service.RoomReporter)
func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

// ConnectionCount returns the number of open connections (implements service.RoomReporter)
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and stops the hub loop
func (h *Hub) Close() {
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done
}
