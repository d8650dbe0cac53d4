package runtime

import (
	"log/slog"
	"sync"

	"chat-relay/contract"
)

type session struct {
	userID string
	sink   contract.EventSink
	rooms  map[string]struct{}
}

// Registry owns the ephemeral projection of who is connected where:
// room subscriptions, per-user personal channels and, through Presence,
// the active-user sets. The external store remains the source of truth
// for room membership; the registry only answers "who is listening now".
//
// All mutations run under one mutex so a join racing a disconnect for the
// same connection always leaves subscriptions and presence coherent with
// whichever completed last. Reads used by the dispatcher reflect the
// latest join/leave synchronously.
type Registry struct {
	mu           sync.RWMutex
	log          *slog.Logger
	sessions     map[string]*session            // sessionID -> session
	roomSessions map[string]map[string]struct{} // roomID -> sessionIDs
	userSessions map[string]map[string]struct{} // userID -> sessionIDs (personal channel)
	presence     *Presence
}

func NewRegistry(log *slog.Logger, presence *Presence) *Registry {
	return &Registry{
		log:          log,
		sessions:     make(map[string]*session),
		roomSessions: make(map[string]map[string]struct{}),
		userSessions: make(map[string]map[string]struct{}),
		presence:     presence,
	}
}

// Admit registers an authenticated connection and subscribes it to the
// user's personal channel, enabling direct-to-user events such as room
// invitations across all of the user's devices.
func (r *Registry) Admit(sessionID, userID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionID] = &session{
		userID: userID,
		sink:   sink,
		rooms:  make(map[string]struct{}),
	}
	if _, ok := r.userSessions[userID]; !ok {
		r.userSessions[userID] = make(map[string]struct{})
	}
	r.userSessions[userID][sessionID] = struct{}{}
}

// Join subscribes the connection to a room. It is idempotent per
// connection and reports whether this was the user's first connection in
// the room, i.e. whether the user just came online there.
func (r *Registry) Join(sessionID, roomID string) (first bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		r.log.Warn("join for unknown session", "session_id", sessionID, "room_id", roomID)
		return false
	}
	if _, joined := s.rooms[roomID]; joined {
		return false
	}
	s.rooms[roomID] = struct{}{}

	if _, ok := r.roomSessions[roomID]; !ok {
		r.roomSessions[roomID] = make(map[string]struct{})
	}
	r.roomSessions[roomID][sessionID] = struct{}{}

	return r.presence.track(roomID, s.userID)
}

// Leave removes the connection from a room and reports whether the user's
// last connection just left it.
func (r *Registry) Leave(sessionID, roomID string) (last bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leaveLocked(sessionID, roomID)
}

func (r *Registry) leaveLocked(sessionID, roomID string) bool {
	s, ok := r.sessions[sessionID]
	if !ok {
		return false
	}
	if _, joined := s.rooms[roomID]; !joined {
		return false
	}
	delete(s.rooms, roomID)

	if members, ok := r.roomSessions[roomID]; ok {
		delete(members, sessionID)
		if len(members) == 0 {
			delete(r.roomSessions, roomID)
		}
	}
	return r.presence.untrack(roomID, s.userID)
}

// Drop tears a connection down: every room subscription is released, the
// personal channel entry is removed and presence is decremented. It runs
// unconditionally on transport close, cooperative or abrupt, and returns
// the rooms where the user just went offline so the caller can emit the
// matching events.
func (r *Registry) Drop(sessionID string) (offlineRooms []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil
	}

	for roomID := range s.rooms {
		if r.leaveLocked(sessionID, roomID) {
			offlineRooms = append(offlineRooms, roomID)
		}
	}

	if ids, ok := r.userSessions[s.userID]; ok {
		delete(ids, sessionID)
		if len(ids) == 0 {
			delete(r.userSessions, s.userID)
		}
	}
	delete(r.sessions, sessionID)
	return offlineRooms
}

// MembersOf returns the sinks of every connection currently joined to the
// room.
func (r *Registry) MembersOf(roomID string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids, ok := r.roomSessions[roomID]
	if !ok {
		return nil
	}
	sinks := make([]contract.EventSink, 0, len(ids))
	for sessionID := range ids {
		if s, ok := r.sessions[sessionID]; ok {
			sinks = append(sinks, s.sink)
		}
	}
	return sinks
}

// UserSinks returns the sinks of every connection bound to the user's
// personal channel.
func (r *Registry) UserSinks(userID string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids, ok := r.userSessions[userID]
	if !ok {
		return nil
	}
	sinks := make([]contract.EventSink, 0, len(ids))
	for sessionID := range ids {
		if s, ok := r.sessions[sessionID]; ok {
			sinks = append(sinks, s.sink)
		}
	}
	return sinks
}
