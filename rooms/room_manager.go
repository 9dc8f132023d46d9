package rooms

import (
	"log"
	"sort"

	"qerplunk/garin-draw/types"
)

// Room service type for NewRoomService.
// Tracks the participants of every room. Holds no drawing data.
// Not safe for concurrent use; the coordinator serializes every call.
type RoomService struct {
	rooms map[string]*types.Room
}

// Create a new, empty room directory.
func NewRoomService() *RoomService {
	return &RoomService{
		rooms: make(map[string]*types.Room),
	}
}

// Returns the room, creating an empty one if it does not exist.
func (roomService *RoomService) Ensure(roomID string) *types.Room {
	room, exists := roomService.rooms[roomID]
	if !exists {
		room = types.NewRoom(roomID)
		roomService.rooms[roomID] = room
	}
	return room
}

// Inserts or overwrites a participant and returns the updated participant set.
// Name and color are expected to be validated by the caller.
func (roomService *RoomService) AddParticipant(roomID, connID, name, color string) map[string]types.Participant {
	room := roomService.Ensure(roomID)
	room.Participants[connID] = types.Participant{Name: name, Color: color}
	return copyParticipants(room.Participants)
}

// Removes a participant from a room.
// Returns false if the room does not exist, meaning there is nothing to notify.
// A room left with no participants is deleted from the directory.
func (roomService *RoomService) RemoveParticipant(roomID, connID string) (map[string]types.Participant, bool) {
	room, exists := roomService.rooms[roomID]
	if !exists {
		return nil, false
	}

	delete(room.Participants, connID)

	if len(room.Participants) == 0 {
		delete(roomService.rooms, roomID)
		log.Printf("Room '%s' is empty, closing\n", roomID)
	}
	return copyParticipants(room.Participants), true
}

func (roomService *RoomService) GetParticipant(roomID, connID string) (types.Participant, bool) {
	room, exists := roomService.rooms[roomID]
	if !exists {
		return types.Participant{}, false
	}
	p, ok := room.Participants[connID]
	return p, ok
}

// Returns the participant set of a room, empty if the room does not exist.
func (roomService *RoomService) Participants(roomID string) map[string]types.Participant {
	room, exists := roomService.rooms[roomID]
	if !exists {
		return map[string]types.Participant{}
	}
	return copyParticipants(room.Participants)
}

// Returns the connection ids of a room in a stable order.
func (roomService *RoomService) Members(roomID string) []string {
	room, exists := roomService.rooms[roomID]
	if !exists {
		return nil
	}
	ids := make([]string, 0, len(room.Participants))
	for id := range room.Participants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Returns every tracked room id, sorted.
func (roomService *RoomService) AllRoomIDs() []string {
	ids := make([]string, 0, len(roomService.rooms))
	for id := range roomService.rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func copyParticipants(src map[string]types.Participant) map[string]types.Participant {
	dst := make(map[string]types.Participant, len(src))
	for id, p := range src {
		dst[id] = p
	}
	return dst
}
