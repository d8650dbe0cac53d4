package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"chat-relay/domain"
	"chat-relay/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDispatcher_Dispatch(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	t.Run("should deliver a room event to joined sessions only", func(t *testing.T) {
		// Given: two sessions in the room, one outside
		ctrl := gomock.NewController(t)
		inRoomA := mocks.NewMockEventSink(ctrl)
		inRoomB := mocks.NewMockEventSink(ctrl)
		outside := mocks.NewMockEventSink(ctrl)

		registry := NewRegistry(log, NewPresence())
		registry.Admit("session-a", "user-1", inRoomA)
		registry.Admit("session-b", "user-2", inRoomB)
		registry.Admit("session-c", "user-3", outside)
		registry.Join("session-a", "room-1")
		registry.Join("session-b", "room-1")

		evt := domain.Event{Name: domain.EventNewMessage, Scope: domain.ScopeRoom, TargetID: "room-1"}
		inRoomA.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1)
		inRoomB.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1)

		// When
		dispatcher := NewDispatcher(log, registry)
		dispatcher.Dispatch(ctx, evt)
	})

	t.Run("should deliver a user event to every device of that user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		deviceA := mocks.NewMockEventSink(ctrl)
		deviceB := mocks.NewMockEventSink(ctrl)
		other := mocks.NewMockEventSink(ctrl)

		registry := NewRegistry(log, NewPresence())
		registry.Admit("session-a", "user-1", deviceA)
		registry.Admit("session-b", "user-1", deviceB)
		registry.Admit("session-c", "user-2", other)

		evt := domain.Event{Name: domain.EventNewChatRoom, Scope: domain.ScopeUser, TargetID: "user-1"}
		deviceA.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1)
		deviceB.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1)

		dispatcher := NewDispatcher(log, registry)
		dispatcher.Dispatch(ctx, evt)
	})

	t.Run("should keep delivering when one sink drops the event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		slow := mocks.NewMockEventSink(ctrl)
		healthy := mocks.NewMockEventSink(ctrl)

		registry := NewRegistry(log, NewPresence())
		registry.Admit("session-a", "user-1", slow)
		registry.Admit("session-b", "user-2", healthy)
		registry.Join("session-a", "room-1")
		registry.Join("session-b", "room-1")

		evt := domain.Event{Name: domain.EventNewMessage, Scope: domain.ScopeRoom, TargetID: "room-1"}
		slow.EXPECT().Consume(gomock.Any(), evt).Return(fmt.Errorf("buffer full")).Times(1)
		healthy.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1)

		dispatcher := NewDispatcher(log, registry)
		dispatcher.Dispatch(ctx, evt)
	})

	t.Run("should deliver nothing for an empty scope target", func(t *testing.T) {
		registry := NewRegistry(log, NewPresence())
		dispatcher := NewDispatcher(log, registry)

		// No sinks registered: nothing to assert beyond not panicking.
		dispatcher.Dispatch(ctx, domain.Event{Name: domain.EventNewMessage, Scope: domain.ScopeRoom, TargetID: "room-1"})
		req.NotNil(dispatcher)
	})
}
