// Package coordinator turns client events into room directory and stroke
// history mutations, and decides which connections hear about each change.
package coordinator

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"qerplunk/garin-draw/history"
	"qerplunk/garin-draw/rooms"
	"qerplunk/garin-draw/types"
)

var (
	ErrInvalidJoin   = errors.New("join requires name, color and room")
	ErrInvalidStroke = errors.New("invalid stroke")
	ErrNotJoined     = errors.New("connection has not joined the room")
	ErrUnknownType   = errors.New("unknown message type")
)

// Sender delivers outbound messages. Neither method may block; delivery
// and backpressure belong to the transport. Broadcast encodes msg once for
// every recipient.
type Sender interface {
	Send(connID string, msg any)
	Broadcast(connIDs []string, msg any)
}

type Option func(*Coordinator)

// WithRetainEmptyRooms keeps a room's stroke history after its last
// participant leaves. By default the history is purged with the room.
func WithRetainEmptyRooms(retain bool) Option {
	return func(c *Coordinator) {
		c.retainEmptyRooms = retain
	}
}

// Coordinator is the single serialization point for every room.
// One event is processed at a time, from mutation through broadcast.
type Coordinator struct {
	mu sync.Mutex

	rooms   *rooms.RoomService
	strokes *history.Store
	sender  Sender

	// connection id -> room ids it joined
	memberships map[string]map[string]struct{}

	retainEmptyRooms bool
}

func New(sender Sender, opts ...Option) *Coordinator {
	c := &Coordinator{
		rooms:       rooms.NewRoomService(),
		strokes:     history.NewStore(),
		sender:      sender,
		memberships: make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Handle dispatches a decoded client message. A non-nil error only
// classifies why the event was dropped; state is never left half-updated.
func (c *Coordinator) Handle(connID string, msg types.Message) error {
	switch msg.Type {
	case types.MsgJoin:
		return c.Join(connID, msg.Name, msg.Color, msg.Room)
	case types.MsgDraw:
		if msg.Stroke == nil {
			return ErrInvalidStroke
		}
		return c.Draw(connID, msg.Room, *msg.Stroke)
	case types.MsgUndo:
		return c.Undo(connID, msg.Room)
	case types.MsgRedo:
		return c.Redo(connID, msg.Room)
	case types.MsgCursor:
		return c.Cursor(connID, msg.Room, msg.X, msg.Y)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, msg.Type)
	}
}

func (c *Coordinator) Join(connID, name, color, roomID string) error {
	if name == "" || color == "" || roomID == "" {
		return ErrInvalidJoin
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	joined, ok := c.memberships[connID]
	if !ok {
		joined = make(map[string]struct{})
		c.memberships[connID] = joined
	}
	joined[roomID] = struct{}{}

	users := c.rooms.AddParticipant(roomID, connID, name, color)
	c.strokes.Ensure(roomID)

	log.Printf("JOIN: '%s' room '%s' (%d users)\n", name, roomID, len(users))

	c.sender.Send(connID, types.NewInitMessage(c.strokes.History(roomID)))
	c.broadcast(roomID, "", types.NewUsersMessage(users))
	return nil
}

// Draw commits a stroke and relays it to every other member.
// The sender already rendered it locally.
func (c *Coordinator) Draw(connID, roomID string, stroke types.Stroke) error {
	if !stroke.Valid() {
		return ErrInvalidStroke
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isMember(connID, roomID) {
		return ErrNotJoined
	}

	c.strokes.Append(roomID, stroke)
	c.broadcast(roomID, connID, types.NewDrawMessage(stroke))
	return nil
}

// Undo removes the room's last committed stroke and forces every member,
// the requester included, onto the new history.
func (c *Coordinator) Undo(connID, roomID string) error {
	return c.move(connID, roomID, c.strokes.Undo)
}

func (c *Coordinator) Redo(connID, roomID string) error {
	return c.move(connID, roomID, c.strokes.Redo)
}

func (c *Coordinator) move(connID, roomID string, op func(string) ([]types.Stroke, bool)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isMember(connID, roomID) {
		return ErrNotJoined
	}

	committed, ok := op(roomID)
	if !ok {
		return nil
	}
	c.broadcast(roomID, "", types.NewSyncMessage(committed))
	return nil
}

// Cursor relays a pointer position to the other members. Never stored.
func (c *Coordinator) Cursor(connID, roomID string, x, y float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.rooms.GetParticipant(roomID, connID)
	if !ok {
		return ErrNotJoined
	}

	c.broadcast(roomID, connID, types.NewCursorMessage(types.Cursor{
		ID:    connID,
		Name:  p.Name,
		Color: p.Color,
		X:     x,
		Y:     y,
	}))
	return nil
}

// Disconnect removes the connection from every room it joined and tells
// the remaining members. Safe to call more than once, or for a connection
// that never joined.
func (c *Coordinator) Disconnect(connID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	joined, ok := c.memberships[connID]
	if !ok {
		return
	}
	delete(c.memberships, connID)

	for _, roomID := range sortedKeys(joined) {
		if _, member := c.rooms.GetParticipant(roomID, connID); !member {
			continue
		}
		users, exists := c.rooms.RemoveParticipant(roomID, connID)
		if !exists {
			continue
		}

		if len(users) == 0 {
			if !c.retainEmptyRooms {
				c.strokes.Drop(roomID)
			}
			continue
		}

		log.Printf("USERLEAVE: '%s' room '%s' (%d users left)\n", connID, roomID, len(users))
		c.broadcast(roomID, "", types.NewUsersMessage(users))
	}
}

// Rooms returns a snapshot of every tracked room, sorted by id.
func (c *Coordinator) Rooms() []types.RoomInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]struct{})
	for _, id := range c.rooms.AllRoomIDs() {
		seen[id] = struct{}{}
	}
	for _, id := range c.strokes.RoomIDs() {
		seen[id] = struct{}{}
	}

	infos := make([]types.RoomInfo, 0, len(seen))
	for _, id := range sortedKeys(seen) {
		infos = append(infos, c.info(id))
	}
	return infos
}

// Room returns a snapshot of one room. False if neither store knows it.
func (c *Coordinator) Room(roomID string) (types.RoomInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	info := c.info(roomID)
	if info.Participants == 0 && !c.strokes.Has(roomID) {
		return types.RoomInfo{}, false
	}
	return info, true
}

func (c *Coordinator) info(roomID string) types.RoomInfo {
	committed, undone := c.strokes.Depth(roomID)
	return types.RoomInfo{
		ID:           roomID,
		Participants: len(c.rooms.Members(roomID)),
		Strokes:      committed,
		Undone:       undone,
	}
}

func (c *Coordinator) isMember(connID, roomID string) bool {
	_, ok := c.rooms.GetParticipant(roomID, connID)
	return ok
}

// Sends msg to every member of the room except the given connection.
// An empty except reaches everyone.
func (c *Coordinator) broadcast(roomID, except string, msg any) {
	members := c.rooms.Members(roomID)
	recipients := make([]string, 0, len(members))
	for _, id := range members {
		if id == except {
			continue
		}
		recipients = append(recipients, id)
	}
	if len(recipients) == 0 {
		return
	}
	c.sender.Broadcast(recipients, msg)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
