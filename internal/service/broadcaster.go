package service

// Broadcaster fans game events out to a realtime room (avoids import cycle)
type Broadcaster interface {
	BroadcastToRoom(room string, msgType string, payload interface{})
}

// RoomReporter exposes live gateway counters to the dashboard
type RoomReporter interface {
	RoomCount() int
	ConnectionCount() int
}

// Game events sent to the room named after the game PIN
const (
	EventGameState   = "game_state"
	EventGameUpdated = "game_updated"
	EventGameDeleted = "game_deleted"
)

type noopBroadcaster struct{}

func (noopBroadcaster) BroadcastToRoom(string, string, interface{}) {}
