package gateway

import "encoding/json"

// Client to relay actions.
const (
	ActionJoinRoom    = "join-room"
	ActionLeaveRoom   = "leave-room"
	ActionSendMessage = "send-message"
)

type inboundFrame struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type roomFrame struct {
	ChatRoomID string `json:"chatRoomId"`
}

type sendMessageFrame struct {
	ChatRoomID string `json:"chatRoomId"`
	Content    string `json:"content"`
	TempID     string `json:"tempId"`
	ReplyToID  string `json:"replyTo"`
}

// envelope is the relay-to-client wire shape for every pushed event.
type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}
