package runtime

import "sync"

// Presence tracks which users are currently active in which rooms.
//
// A user with two devices joined to the same room must not flicker
// offline when only one disconnects, so presence is a reference count
// per (room, user), not a boolean. Counts move only on join, leave and
// disconnect transitions, never on message traffic.
//
// Mutations happen exclusively inside the Registry's critical section so
// a connection can never be observed subscribed but absent from
// presence, or the other way around.
type Presence struct {
	mu     sync.RWMutex
	counts map[string]map[string]int // roomID -> userID -> live connections
}

func NewPresence() *Presence {
	return &Presence{counts: make(map[string]map[string]int)}
}

// IsActive reports whether the user has at least one live connection
// joined to the room.
func (p *Presence) IsActive(roomID, userID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.counts[roomID][userID] > 0
}

// ActiveUsers returns the ids of every user currently active in the room.
func (p *Presence) ActiveUsers(roomID string) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	users := make([]string, 0, len(p.counts[roomID]))
	for userID := range p.counts[roomID] {
		users = append(users, userID)
	}
	return users
}

// track increments the user's connection count for the room and reports
// whether the user just came online there.
func (p *Presence) track(roomID, userID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.counts[roomID]; !ok {
		p.counts[roomID] = make(map[string]int)
	}
	p.counts[roomID][userID]++
	return p.counts[roomID][userID] == 1
}

// untrack decrements the count and reports whether the user just went
// offline in the room. Empty maps are removed to avoid unbounded growth.
func (p *Presence) untrack(roomID, userID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	users, ok := p.counts[roomID]
	if !ok || users[userID] == 0 {
		return false
	}
	users[userID]--
	if users[userID] > 0 {
		return false
	}
	delete(users, userID)
	if len(users) == 0 {
		delete(p.counts, roomID)
	}
	return true
}
