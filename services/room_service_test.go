package services_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/mocks"
	"chat-relay/services"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testToken = "bearer-token"

var (
	alice = domain.User{ID: "user-1", Name: "Alice"}
	bob   = domain.User{ID: "user-2", Name: "Bob"}
	clara = domain.User{ID: "user-3", Name: "Clara"}

	aliceIdentity = domain.Identity{UserID: "user-1", DisplayName: "Alice"}
)

func newRoomServiceUnderTest(t *testing.T) (*services.RoomService, *mocks.MockIRoomRepository, *mocks.MockDispatcher, *mocks.MockPresence) {
	ctrl := gomock.NewController(t)
	rooms := mocks.NewMockIRoomRepository(ctrl)
	dispatcher := mocks.NewMockDispatcher(ctrl)
	presence := mocks.NewMockPresence(ctrl)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	return services.NewRoomService(log, rooms, dispatcher, presence), rooms, dispatcher, presence
}

func TestRoomService_Create(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	t.Run("should merge the creator into the participants", func(t *testing.T) {
		// Given
		service, rooms, dispatcher, _ := newRoomServiceUnderTest(t)
		created := domain.ChatRoom{ID: "room-1", Name: "general", Participants: []domain.User{alice, bob}}

		rooms.EXPECT().
			CreateRoom(ctx, testToken, "general", []string{"user-2", "user-1"}).
			Return(created, nil)
		dispatcher.EXPECT().
			Dispatch(ctx, domain.Event{Name: domain.EventNewChatRoom, Scope: domain.ScopeUser, TargetID: "user-1", Payload: created})
		dispatcher.EXPECT().
			Dispatch(ctx, domain.Event{Name: domain.EventNewChatRoom, Scope: domain.ScopeUser, TargetID: "user-2", Payload: created})

		// When
		room, err := service.Create(ctx, aliceIdentity, testToken, services.CreateRoomInput{
			Name:           "general",
			ParticipantIDs: []string{"user-2"},
		})

		// Then
		req.NoError(err)
		req.Equal(created, room)
	})

	t.Run("should not dispatch when the store rejects the creation", func(t *testing.T) {
		service, rooms, _, _ := newRoomServiceUnderTest(t)
		rooms.EXPECT().
			CreateRoom(ctx, testToken, "general", gomock.Any()).
			Return(domain.ChatRoom{}, fmt.Errorf("%w: boom", errors.ErrUpstream))

		_, err := service.Create(ctx, aliceIdentity, testToken, services.CreateRoomInput{Name: "general"})
		req.ErrorIs(err, errors.ErrUpstream)
	})

	t.Run("should not duplicate the creator when the client already sent it", func(t *testing.T) {
		service, rooms, dispatcher, _ := newRoomServiceUnderTest(t)
		created := domain.ChatRoom{ID: "room-1", Name: "solo", Participants: []domain.User{alice}}

		rooms.EXPECT().
			CreateRoom(ctx, testToken, "solo", []string{"user-1"}).
			Return(created, nil)
		dispatcher.EXPECT().Dispatch(ctx, gomock.Any()).Times(1)

		_, err := service.Create(ctx, aliceIdentity, testToken, services.CreateRoomInput{
			Name:           "solo",
			ParticipantIDs: []string{"user-1"},
		})
		req.NoError(err)
	})
}

func TestRoomService_Rename(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	t.Run("should rename and notify every participant", func(t *testing.T) {
		// Given
		service, rooms, dispatcher, _ := newRoomServiceUnderTest(t)
		current := domain.ChatRoom{ID: "room-1", Name: "old", Participants: []domain.User{alice, bob}}
		renamed := domain.ChatRoom{ID: "room-1", Name: "new", Participants: []domain.User{alice, bob}}

		rooms.EXPECT().GetRoom(ctx, testToken, "room-1").Return(current, nil)
		rooms.EXPECT().RenameRoom(ctx, testToken, "room-1", "new").Return(renamed, nil)
		dispatcher.EXPECT().
			Dispatch(ctx, domain.Event{Name: domain.EventChatRoomUpdated, Scope: domain.ScopeUser, TargetID: "user-1", Payload: renamed})
		dispatcher.EXPECT().
			Dispatch(ctx, domain.Event{Name: domain.EventChatRoomUpdated, Scope: domain.ScopeUser, TargetID: "user-2", Payload: renamed})

		// When
		room, err := service.Rename(ctx, aliceIdentity, testToken, "room-1", "new")

		// Then
		req.NoError(err)
		req.Equal(renamed, room)
	})

	t.Run("should reject a rename from a non-participant", func(t *testing.T) {
		service, rooms, _, _ := newRoomServiceUnderTest(t)
		current := domain.ChatRoom{ID: "room-1", Name: "old", Participants: []domain.User{bob}}

		rooms.EXPECT().GetRoom(ctx, testToken, "room-1").Return(current, nil)

		_, err := service.Rename(ctx, aliceIdentity, testToken, "room-1", "new")
		req.ErrorIs(err, errors.ErrUnauthorized)
	})

	t.Run("should propagate an unknown room", func(t *testing.T) {
		service, rooms, _, _ := newRoomServiceUnderTest(t)
		rooms.EXPECT().GetRoom(ctx, testToken, "room-404").Return(domain.ChatRoom{}, errors.ErrNotFound)

		_, err := service.Rename(ctx, aliceIdentity, testToken, "room-404", "new")
		req.ErrorIs(err, errors.ErrNotFound)
	})
}

func TestRoomService_Delete(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	t.Run("should notify every prior participant after deletion", func(t *testing.T) {
		// Given
		service, rooms, dispatcher, _ := newRoomServiceUnderTest(t)
		current := domain.ChatRoom{ID: "room-1", Name: "general", Participants: []domain.User{alice, bob}}
		deletion := domain.RoomDeletion{ID: "room-1"}

		rooms.EXPECT().GetRoom(ctx, testToken, "room-1").Return(current, nil)
		rooms.EXPECT().DeleteRoom(ctx, testToken, "room-1").Return("room-1", nil)
		dispatcher.EXPECT().
			Dispatch(ctx, domain.Event{Name: domain.EventChatRoomDeleted, Scope: domain.ScopeUser, TargetID: "user-1", Payload: deletion})
		dispatcher.EXPECT().
			Dispatch(ctx, domain.Event{Name: domain.EventChatRoomDeleted, Scope: domain.ScopeUser, TargetID: "user-2", Payload: deletion})

		// When
		deletedID, err := service.Delete(ctx, aliceIdentity, testToken, "room-1")

		// Then
		req.NoError(err)
		req.Equal("room-1", deletedID)
	})

	t.Run("should reject a delete from a non-participant", func(t *testing.T) {
		service, rooms, _, _ := newRoomServiceUnderTest(t)
		current := domain.ChatRoom{ID: "room-1", Name: "general", Participants: []domain.User{bob}}

		rooms.EXPECT().GetRoom(ctx, testToken, "room-1").Return(current, nil)

		_, err := service.Delete(ctx, aliceIdentity, testToken, "room-1")
		req.ErrorIs(err, errors.ErrUnauthorized)
	})

	t.Run("should not dispatch when the store fails the deletion", func(t *testing.T) {
		service, rooms, _, _ := newRoomServiceUnderTest(t)
		current := domain.ChatRoom{ID: "room-1", Name: "general", Participants: []domain.User{alice}}

		rooms.EXPECT().GetRoom(ctx, testToken, "room-1").Return(current, nil)
		rooms.EXPECT().DeleteRoom(ctx, testToken, "room-1").Return("", errors.ErrUpstream)

		_, err := service.Delete(ctx, aliceIdentity, testToken, "room-1")
		req.ErrorIs(err, errors.ErrUpstream)
	})
}

func TestRoomService_Participants(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	t.Run("should announce newcomers to the room and introduce the room to them", func(t *testing.T) {
		// Given: Clara is added to Alice and Bob's room
		service, rooms, dispatcher, _ := newRoomServiceUnderTest(t)
		before := domain.ChatRoom{ID: "room-1", Name: "general", Participants: []domain.User{alice, bob}}
		after := domain.ChatRoom{ID: "room-1", Name: "general", Participants: []domain.User{alice, bob, clara}}

		rooms.EXPECT().GetRoom(ctx, testToken, "room-1").Return(before, nil)
		rooms.EXPECT().
			AddParticipants(ctx, testToken, "room-1", []string{"user-3", "user-1"}).
			Return(after, nil)
		dispatcher.EXPECT().Dispatch(ctx, domain.Event{
			Name:     domain.EventParticipantAdded,
			Scope:    domain.ScopeRoom,
			TargetID: "room-1",
			Payload:  domain.ParticipantChange{ChatRoom: after, UserIDs: []string{"user-3"}},
		})
		dispatcher.EXPECT().Dispatch(ctx, domain.Event{
			Name:     domain.EventNewChatRoom,
			Scope:    domain.ScopeUser,
			TargetID: "user-3",
			Payload:  after,
		})

		// When
		room, err := service.AddParticipants(ctx, aliceIdentity, testToken, "room-1", []string{"user-3"})

		// Then
		req.NoError(err)
		req.Equal(after, room)
	})

	t.Run("should tell the room and the removed users about a removal", func(t *testing.T) {
		service, rooms, dispatcher, _ := newRoomServiceUnderTest(t)
		after := domain.ChatRoom{ID: "room-1", Name: "general", Participants: []domain.User{alice}}
		change := domain.ParticipantChange{ChatRoom: after, UserIDs: []string{"user-2"}}

		rooms.EXPECT().
			RemoveParticipants(ctx, testToken, "room-1", []string{"user-2"}).
			Return(after, nil)
		dispatcher.EXPECT().Dispatch(ctx, domain.Event{
			Name: domain.EventParticipantRemoved, Scope: domain.ScopeRoom, TargetID: "room-1", Payload: change,
		})
		dispatcher.EXPECT().Dispatch(ctx, domain.Event{
			Name: domain.EventParticipantRemoved, Scope: domain.ScopeUser, TargetID: "user-2", Payload: change,
		})

		room, err := service.RemoveParticipants(ctx, aliceIdentity, testToken, "room-1", []string{"user-2"})
		req.NoError(err)
		req.Equal(after, room)
	})

	t.Run("should annotate the participant listing with live presence", func(t *testing.T) {
		service, rooms, _, presence := newRoomServiceUnderTest(t)
		room := domain.ChatRoom{ID: "room-1", Name: "general", Participants: []domain.User{alice, bob}}

		rooms.EXPECT().GetRoom(ctx, testToken, "room-1").Return(room, nil)
		presence.EXPECT().IsActive("room-1", "user-1").Return(true)
		presence.EXPECT().IsActive("room-1", "user-2").Return(false)

		participants, err := service.ListParticipants(ctx, aliceIdentity, testToken, "room-1")
		req.NoError(err)
		req.Equal([]services.ParticipantStatus{
			{User: alice, Active: true},
			{User: bob, Active: false},
		}, participants)
	})
}
