package types

// Message type used for unmarshalling WebSocket messages sent by a client.
// Only the fields relevant to Type are set.
type Message struct {
	Type   string  `json:"type"`
	Name   string  `json:"name,omitempty"`
	Color  string  `json:"color,omitempty"`
	Room   string  `json:"room,omitempty"`
	Stroke *Stroke `json:"stroke,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
}

// Type of WebSocket messages.
// MsgJoin: client joins a room
// MsgDraw: client commits a stroke, relayed to the other room members
// MsgUndo, MsgRedo: group-wide history moves
// MsgCursor: ephemeral pointer position
// MsgInit: history sent to a joining client
// MsgUsers: participant set of a room
// MsgSync: full committed history after undo/redo
const (
	MsgJoin   = "join"
	MsgDraw   = "draw"
	MsgUndo   = "undo"
	MsgRedo   = "redo"
	MsgCursor = "cursor"
	MsgInit   = "init"
	MsgUsers  = "users"
	MsgSync   = "sync"
)

// InitMessage carries the committed history to a late joiner.
type InitMessage struct {
	Type    string   `json:"type"`
	Strokes []Stroke `json:"strokes"`
}

// SyncMessage replaces the whole committed history on every replica.
type SyncMessage struct {
	Type    string   `json:"type"`
	Strokes []Stroke `json:"strokes"`
}

// UsersMessage maps connection id to display attributes.
type UsersMessage struct {
	Type  string                 `json:"type"`
	Users map[string]Participant `json:"users"`
}

// DrawMessage is the delta broadcast for a single new stroke.
type DrawMessage struct {
	Type   string `json:"type"`
	Stroke Stroke `json:"stroke"`
}

// CursorMessage is relayed to everyone in the room except its owner.
type CursorMessage struct {
	Type string `json:"type"`
	Cursor
}

func NewInitMessage(strokes []Stroke) InitMessage {
	return InitMessage{Type: MsgInit, Strokes: nonNil(strokes)}
}

func NewSyncMessage(strokes []Stroke) SyncMessage {
	return SyncMessage{Type: MsgSync, Strokes: nonNil(strokes)}
}

func NewUsersMessage(users map[string]Participant) UsersMessage {
	if users == nil {
		users = map[string]Participant{}
	}
	return UsersMessage{Type: MsgUsers, Users: users}
}

func NewDrawMessage(stroke Stroke) DrawMessage {
	return DrawMessage{Type: MsgDraw, Stroke: stroke}
}

func NewCursorMessage(cursor Cursor) CursorMessage {
	return CursorMessage{Type: MsgCursor, Cursor: cursor}
}

// Empty histories go out as [] rather than null.
func nonNil(strokes []Stroke) []Stroke {
	if strokes == nil {
		return []Stroke{}
	}
	return strokes
}
