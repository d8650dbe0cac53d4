package domain

import "time"

type Message struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	Sender     User      `json:"sender"`
	ChatRoomID string    `json:"chatRoomId,omitempty"`
	// TempID echoes the client-side placeholder id so optimistic UI
	// updates can be reconciled. Never stored.
	TempID  string      `json:"tempId,omitempty"`
	ReplyTo *MessageRef `json:"replyTo,omitempty"`
}

// MessageRef is the shallow view of a message being replied to.
type MessageRef struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Sender  User   `json:"sender"`
}
