// Package history keeps one linear undo/redo history of strokes per room.
package history

import "qerplunk/garin-draw/types"

type state struct {
	committed []types.Stroke
	undone    []types.Stroke
}

// Store maps room ids to their stroke history.
// Not safe for concurrent use; the coordinator serializes every call.
type Store struct {
	rooms map[string]*state
}

func NewStore() *Store {
	return &Store{rooms: make(map[string]*state)}
}

// Ensure creates an empty history for roomID if none exists.
func (s *Store) Ensure(roomID string) {
	s.ensure(roomID)
}

func (s *Store) ensure(roomID string) *state {
	st, ok := s.rooms[roomID]
	if !ok {
		st = &state{}
		s.rooms[roomID] = st
	}
	return st
}

// Append commits a stroke and invalidates the redo buffer.
// Returns the full committed sequence.
func (s *Store) Append(roomID string, stroke types.Stroke) []types.Stroke {
	st := s.ensure(roomID)
	st.committed = append(st.committed, stroke)
	st.undone = nil
	return snapshot(st.committed)
}

// Undo moves the last committed stroke onto the redo buffer.
// The bool is false when there is nothing to undo; callers must not broadcast then.
func (s *Store) Undo(roomID string) ([]types.Stroke, bool) {
	st, ok := s.rooms[roomID]
	if !ok || len(st.committed) == 0 {
		return nil, false
	}
	last := len(st.committed) - 1
	st.undone = append(st.undone, st.committed[last])
	st.committed = st.committed[:last]
	return snapshot(st.committed), true
}

// Redo moves the most recently undone stroke back onto the committed sequence.
func (s *Store) Redo(roomID string) ([]types.Stroke, bool) {
	st, ok := s.rooms[roomID]
	if !ok || len(st.undone) == 0 {
		return nil, false
	}
	last := len(st.undone) - 1
	st.committed = append(st.committed, st.undone[last])
	st.undone = st.undone[:last]
	return snapshot(st.committed), true
}

// History returns a copy of the committed sequence. Never includes undone strokes.
func (s *Store) History(roomID string) []types.Stroke {
	st, ok := s.rooms[roomID]
	if !ok {
		return []types.Stroke{}
	}
	return snapshot(st.committed)
}

// Depth reports the committed and redo buffer lengths of a room.
func (s *Store) Depth(roomID string) (committed, undone int) {
	st, ok := s.rooms[roomID]
	if !ok {
		return 0, 0
	}
	return len(st.committed), len(st.undone)
}

// Drop forgets a room's history.
func (s *Store) Drop(roomID string) {
	delete(s.rooms, roomID)
}

func snapshot(strokes []types.Stroke) []types.Stroke {
	out := make([]types.Stroke, len(strokes))
	copy(out, strokes)
	return out
}

// RoomIDs returns every room that has a history, in no particular order.
func (s *Store) RoomIDs() []string {
	ids := make([]string, 0, len(s.rooms))
	for id := range s.rooms {
		ids = append(ids, id)
	}
	return ids
}

func (s *Store) Has(roomID string) bool {
	_, ok := s.rooms[roomID]
	return ok
}
