package domain

// Scope selects the set of connections an event is delivered to.
type Scope string

const (
	// ScopeRoom delivers to every connection currently joined to the room.
	ScopeRoom Scope = "room"
	// ScopeUser delivers to every connection of one user (multi-device).
	ScopeUser Scope = "user"
)

// Event names pushed to connected clients. Payloads are the canonical
// entities returned by the triggering store mutation.
const (
	EventNewMessage         = "new-message"
	EventNewChatRoom        = "new-chat-room"
	EventChatRoomUpdated    = "chat-room-updated"
	EventChatRoomDeleted    = "chat-room-deleted"
	EventParticipantAdded   = "participant-added"
	EventParticipantRemoved = "participant-removed"
	EventUserOnline         = "user-online"
	EventUserOffline        = "user-offline"
)

// Event is a delivery request handed to the dispatcher. It is transient:
// a connection that is offline at dispatch time simply misses it.
type Event struct {
	Name     string
	Scope    Scope
	TargetID string
	Payload  any
}

// PresenceChange is the payload of user-online and user-offline events.
type PresenceChange struct {
	UserID     string `json:"userId"`
	ChatRoomID string `json:"chatRoomId"`
}

// RoomDeletion is the payload of chat-room-deleted events.
type RoomDeletion struct {
	ID string `json:"id"`
}

// ParticipantChange is the payload of participant-added and
// participant-removed events.
type ParticipantChange struct {
	ChatRoom ChatRoom `json:"chatRoom"`
	UserIDs  []string `json:"userIds"`
}
