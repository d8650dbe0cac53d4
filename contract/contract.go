//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-relay/domain"
	"context"
)

// EventSink is one delivery endpoint, typically a live connection.
// Consume must not block: a sink that cannot keep up drops the event.
type EventSink interface {
	Consume(ctx context.Context, e domain.Event) error
}

// Dispatcher fans an event out to every sink currently subscribed to the
// event's scope. Delivery is best-effort and at-most-once per connection
// per call: no retry, no acknowledgment, no durable queue.
type Dispatcher interface {
	Dispatch(ctx context.Context, e domain.Event)
}

// Presence answers whether a user currently has at least one live
// connection joined to a room. Used to annotate participant listings.
type Presence interface {
	IsActive(roomID, userID string) bool
}
