//go:generate go run go.uber.org/mock/mockgen -source=room_service.go -destination=../mocks/mock_room_service.go -package=mocks
package services

import (
	"context"
	"log/slog"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/repositories"

	"github.com/samber/lo"
)

type CreateRoomInput struct {
	Name           string
	ParticipantIDs []string
}

// ParticipantStatus is a room participant annotated with live presence.
type ParticipantStatus struct {
	domain.User
	Active bool `json:"active"`
}

type IRoomService interface {
	Create(ctx context.Context, identity domain.Identity, token string, input CreateRoomInput) (domain.ChatRoom, error)
	ListForUser(ctx context.Context, identity domain.Identity, token string) ([]domain.RoomSummary, error)
	Rename(ctx context.Context, identity domain.Identity, token, roomID, name string) (domain.ChatRoom, error)
	Delete(ctx context.Context, identity domain.Identity, token, roomID string) (string, error)
	AddParticipants(ctx context.Context, identity domain.Identity, token, roomID string, userIDs []string) (domain.ChatRoom, error)
	RemoveParticipants(ctx context.Context, identity domain.Identity, token, roomID string, userIDs []string) (domain.ChatRoom, error)
	ListParticipants(ctx context.Context, identity domain.Identity, token, roomID string) ([]ParticipantStatus, error)
}

// RoomService coordinates room mutations: the store write comes first, the
// fan-out second, and the affected recipients are always computed from the
// canonical store response, never from the request.
type RoomService struct {
	log        *slog.Logger
	rooms      repositories.IRoomRepository
	dispatcher contract.Dispatcher
	presence   contract.Presence
}

func NewRoomService(log *slog.Logger, rooms repositories.IRoomRepository, dispatcher contract.Dispatcher, presence contract.Presence) *RoomService {
	return &RoomService{log: log, rooms: rooms, dispatcher: dispatcher, presence: presence}
}

func (s *RoomService) Create(ctx context.Context, identity domain.Identity, token string, input CreateRoomInput) (domain.ChatRoom, error) {
	// 1. The creator is always a participant, whatever the client sent.
	participantIDs := lo.Uniq(append(input.ParticipantIDs, identity.UserID))

	room, err := s.rooms.CreateRoom(ctx, token, input.Name, participantIDs)
	if err != nil {
		return domain.ChatRoom{}, err
	}

	// 2. Announce on each participant's personal channel so every device
	// learns about the room before its owner ever joins it.
	for _, userID := range room.ParticipantIDs() {
		s.dispatcher.Dispatch(ctx, domain.Event{
			Name:     domain.EventNewChatRoom,
			Scope:    domain.ScopeUser,
			TargetID: userID,
			Payload:  room,
		})
	}
	return room, nil
}

func (s *RoomService) ListForUser(ctx context.Context, identity domain.Identity, token string) ([]domain.RoomSummary, error) {
	return s.rooms.ListRoomsForUser(ctx, token, identity.UserID)
}

func (s *RoomService) Rename(ctx context.Context, identity domain.Identity, token, roomID, name string) (domain.ChatRoom, error) {
	// 1. Participant-only. Read-then-act: the store offers no conditional
	// update keyed on membership, so a concurrent removal between this read
	// and the write below can slip through. The window is accepted.
	room, err := s.rooms.GetRoom(ctx, token, roomID)
	if err != nil {
		return domain.ChatRoom{}, err
	}
	if !room.HasParticipant(identity.UserID) {
		s.log.Warn("rename rejected for non-participant", "room_id", roomID, "user_id", identity.UserID)
		return domain.ChatRoom{}, errors.ErrUnauthorized
	}

	// 2. Mutate, then notify every participant of the canonical result.
	updated, err := s.rooms.RenameRoom(ctx, token, roomID, name)
	if err != nil {
		return domain.ChatRoom{}, err
	}
	for _, userID := range updated.ParticipantIDs() {
		s.dispatcher.Dispatch(ctx, domain.Event{
			Name:     domain.EventChatRoomUpdated,
			Scope:    domain.ScopeUser,
			TargetID: userID,
			Payload:  updated,
		})
	}
	return updated, nil
}

func (s *RoomService) Delete(ctx context.Context, identity domain.Identity, token, roomID string) (string, error) {
	// 1. Same participant-only gate and the same accepted race window as
	// Rename. The pre-delete read is also the last canonical view of the
	// participant list, needed for the fan-out once the room is gone.
	room, err := s.rooms.GetRoom(ctx, token, roomID)
	if err != nil {
		return "", err
	}
	if !room.HasParticipant(identity.UserID) {
		s.log.Warn("delete rejected for non-participant", "room_id", roomID, "user_id", identity.UserID)
		return "", errors.ErrUnauthorized
	}

	deletedID, err := s.rooms.DeleteRoom(ctx, token, roomID)
	if err != nil {
		return "", err
	}

	// 2. Every prior participant hears about the deletion on their personal
	// channel, whether or not they were joined to the room.
	for _, userID := range room.ParticipantIDs() {
		s.dispatcher.Dispatch(ctx, domain.Event{
			Name:     domain.EventChatRoomDeleted,
			Scope:    domain.ScopeUser,
			TargetID: userID,
			Payload:  domain.RoomDeletion{ID: deletedID},
		})
	}
	return deletedID, nil
}

func (s *RoomService) AddParticipants(ctx context.Context, identity domain.Identity, token, roomID string, userIDs []string) (domain.ChatRoom, error) {
	// 1. Read the current participant set so the newly added users can be
	// told apart from the canonical result afterwards.
	before, err := s.rooms.GetRoom(ctx, token, roomID)
	if err != nil {
		return domain.ChatRoom{}, err
	}

	// 2. The requester rides along, matching room creation.
	requested := lo.Uniq(append(userIDs, identity.UserID))
	updated, err := s.rooms.AddParticipants(ctx, token, roomID, requested)
	if err != nil {
		return domain.ChatRoom{}, err
	}

	addedIDs := lo.Filter(updated.ParticipantIDs(), func(id string, _ int) bool {
		return !before.HasParticipant(id)
	})

	// 3. The room hears who arrived; each newcomer is introduced to the
	// room on their personal channel as if it were brand new to them.
	s.dispatcher.Dispatch(ctx, domain.Event{
		Name:     domain.EventParticipantAdded,
		Scope:    domain.ScopeRoom,
		TargetID: updated.ID,
		Payload:  domain.ParticipantChange{ChatRoom: updated, UserIDs: addedIDs},
	})
	for _, userID := range addedIDs {
		s.dispatcher.Dispatch(ctx, domain.Event{
			Name:     domain.EventNewChatRoom,
			Scope:    domain.ScopeUser,
			TargetID: userID,
			Payload:  updated,
		})
	}
	return updated, nil
}

func (s *RoomService) RemoveParticipants(ctx context.Context, identity domain.Identity, token, roomID string, userIDs []string) (domain.ChatRoom, error) {
	removedIDs := lo.Uniq(userIDs)

	updated, err := s.rooms.RemoveParticipants(ctx, token, roomID, removedIDs)
	if err != nil {
		return domain.ChatRoom{}, err
	}

	change := domain.ParticipantChange{ChatRoom: updated, UserIDs: removedIDs}
	s.dispatcher.Dispatch(ctx, domain.Event{
		Name:     domain.EventParticipantRemoved,
		Scope:    domain.ScopeRoom,
		TargetID: updated.ID,
		Payload:  change,
	})
	// Removed users no longer receive room-scoped events, so they are told
	// directly.
	for _, userID := range removedIDs {
		s.dispatcher.Dispatch(ctx, domain.Event{
			Name:     domain.EventParticipantRemoved,
			Scope:    domain.ScopeUser,
			TargetID: userID,
			Payload:  change,
		})
	}
	return updated, nil
}

func (s *RoomService) ListParticipants(ctx context.Context, identity domain.Identity, token, roomID string) ([]ParticipantStatus, error) {
	room, err := s.rooms.GetRoom(ctx, token, roomID)
	if err != nil {
		return nil, err
	}
	return lo.Map(room.Participants, func(user domain.User, _ int) ParticipantStatus {
		return ParticipantStatus{User: user, Active: s.presence.IsActive(roomID, user.ID)}
	}), nil
}
