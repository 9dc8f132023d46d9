package types

// Participant holds the display attributes of a joined connection.
type Participant struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Room data structure type used by the room directory.
// Participants is keyed by connection id.
type Room struct {
	ID           string
	Participants map[string]Participant
}

// Keep this here as NewRoom does not have any higher-level logic and is tightly
// coupled with the Room struct.
func NewRoom(id string) *Room {
	return &Room{
		ID:           id,
		Participants: make(map[string]Participant),
	}
}

// Cursor is an ephemeral pointer position, never stored.
type Cursor struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color string  `json:"color"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// RoomInfo is a read-only snapshot of a room served over HTTP.
type RoomInfo struct {
	ID           string `json:"id"`
	Participants int    `json:"participants"`
	Strokes      int    `json:"strokes"`
	Undone       int    `json:"undone"`
}
