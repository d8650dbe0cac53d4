package domain

// ChatRoom is the canonical room entity as returned by the external store.
// The relay never holds an authoritative copy; instances of this type are
// always the direct result of a store query or mutation.
type ChatRoom struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Participants []User `json:"participants"`
}

// HasParticipant reports whether the given user belongs to the room.
func (r ChatRoom) HasParticipant(userID string) bool {
	for _, p := range r.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// ParticipantIDs returns the ids of every participant, in store order.
func (r ChatRoom) ParticipantIDs() []string {
	ids := make([]string, 0, len(r.Participants))
	for _, p := range r.Participants {
		ids = append(ids, p.ID)
	}
	return ids
}

// RoomSummary is a room listing entry: the room plus its latest message,
// as produced by the caller-scoped listing query.
type RoomSummary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Participants  []User   `json:"participants"`
	LatestMessage *Message `json:"latestMessage,omitempty"`
}
