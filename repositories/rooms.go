//go:generate go run go.uber.org/mock/mockgen -source=rooms.go -destination=../mocks/mock_room_repository.go -package=mocks
package repositories

import (
	"context"

	"chat-relay/domain"
	"chat-relay/errors"

	"github.com/samber/lo"
)

type IRoomRepository interface {
	CreateRoom(ctx context.Context, token, name string, participantIDs []string) (domain.ChatRoom, error)
	GetRoom(ctx context.Context, token, roomID string) (domain.ChatRoom, error)
	RenameRoom(ctx context.Context, token, roomID, name string) (domain.ChatRoom, error)
	DeleteRoom(ctx context.Context, token, roomID string) (string, error)
	ListRoomsForUser(ctx context.Context, token, userID string) ([]domain.RoomSummary, error)
	AddParticipants(ctx context.Context, token, roomID string, participantIDs []string) (domain.ChatRoom, error)
	RemoveParticipants(ctx context.Context, token, roomID string, participantIDs []string) (domain.ChatRoom, error)
}

type RoomRepository struct {
	client *Client
}

func NewRoomRepository(client *Client) RoomRepository {
	return RoomRepository{client: client}
}

const createRoomMutation = `
mutation CreateChatRoom($name: String!, $participants: [UserWhereUniqueInput!]!) {
  createChatRoom(data: { name: $name, participants: { connect: $participants } }) {
    id
    name
    participants { id name imageUrl }
  }
}`

const getRoomQuery = `
query GetChatRoom($chatRoomId: ID!) {
  chatRoom(where: { id: $chatRoomId }) {
    id
    name
    participants { id name imageUrl }
  }
}`

const renameRoomMutation = `
mutation RenameChatRoom($id: ID!, $name: String!) {
  updateChatRoom(where: { id: $id }, data: { name: $name }) {
    id
    name
    participants { id name imageUrl }
  }
}`

const deleteRoomMutation = `
mutation DeleteChatRoom($id: ID!) {
  deleteChatRoom(where: { id: $id }) { id }
}`

const listRoomsQuery = `
query GetUserChatRooms($userId: ID!) {
  chatRooms(where: { participants: { some: { id: { equals: $userId } } } }) {
    id
    name
    participants { id name imageUrl }
    messages(orderBy: { createdAt: desc }, take: 1) {
      id
      content
      createdAt
      sender { id name imageUrl }
    }
  }
}`

const connectParticipantsMutation = `
mutation AddParticipants($id: ID!, $participants: [UserWhereUniqueInput!]!) {
  updateChatRoom(where: { id: $id }, data: { participants: { connect: $participants } }) {
    id
    name
    participants { id name imageUrl }
  }
}`

const disconnectParticipantsMutation = `
mutation RemoveParticipants($id: ID!, $participants: [UserWhereUniqueInput!]!) {
  updateChatRoom(where: { id: $id }, data: { participants: { disconnect: $participants } }) {
    id
    name
    participants { id name imageUrl }
  }
}`

func uniqueIDs(ids []string) []map[string]string {
	return lo.Map(lo.Uniq(ids), func(id string, _ int) map[string]string {
		return map[string]string{"id": id}
	})
}

func (r RoomRepository) CreateRoom(ctx context.Context, token, name string, participantIDs []string) (domain.ChatRoom, error) {
	var resp struct {
		CreateChatRoom *domain.ChatRoom `json:"createChatRoom"`
	}
	err := r.client.Execute(ctx, createRoomMutation, map[string]any{
		"name":         name,
		"participants": uniqueIDs(participantIDs),
	}, token, &resp)
	if err != nil {
		return domain.ChatRoom{}, err
	}
	if resp.CreateChatRoom == nil {
		return domain.ChatRoom{}, errors.ErrUpstream
	}
	return *resp.CreateChatRoom, nil
}

func (r RoomRepository) GetRoom(ctx context.Context, token, roomID string) (domain.ChatRoom, error) {
	var resp struct {
		ChatRoom *domain.ChatRoom `json:"chatRoom"`
	}
	err := r.client.Execute(ctx, getRoomQuery, map[string]any{"chatRoomId": roomID}, token, &resp)
	if err != nil {
		return domain.ChatRoom{}, err
	}
	if resp.ChatRoom == nil {
		return domain.ChatRoom{}, errors.ErrNotFound
	}
	return *resp.ChatRoom, nil
}

func (r RoomRepository) RenameRoom(ctx context.Context, token, roomID, name string) (domain.ChatRoom, error) {
	var resp struct {
		UpdateChatRoom *domain.ChatRoom `json:"updateChatRoom"`
	}
	err := r.client.Execute(ctx, renameRoomMutation, map[string]any{
		"id":   roomID,
		"name": name,
	}, token, &resp)
	if err != nil {
		return domain.ChatRoom{}, err
	}
	if resp.UpdateChatRoom == nil {
		return domain.ChatRoom{}, errors.ErrNotFound
	}
	return *resp.UpdateChatRoom, nil
}

func (r RoomRepository) DeleteRoom(ctx context.Context, token, roomID string) (string, error) {
	var resp struct {
		DeleteChatRoom *struct {
			ID string `json:"id"`
		} `json:"deleteChatRoom"`
	}
	err := r.client.Execute(ctx, deleteRoomMutation, map[string]any{"id": roomID}, token, &resp)
	if err != nil {
		return "", err
	}
	if resp.DeleteChatRoom == nil {
		return "", errors.ErrNotFound
	}
	return resp.DeleteChatRoom.ID, nil
}

func (r RoomRepository) ListRoomsForUser(ctx context.Context, token, userID string) ([]domain.RoomSummary, error) {
	var resp struct {
		ChatRooms []struct {
			ID           string           `json:"id"`
			Name         string           `json:"name"`
			Participants []domain.User    `json:"participants"`
			Messages     []domain.Message `json:"messages"`
		} `json:"chatRooms"`
	}
	err := r.client.Execute(ctx, listRoomsQuery, map[string]any{"userId": userID}, token, &resp)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.RoomSummary, 0, len(resp.ChatRooms))
	for _, room := range resp.ChatRooms {
		summary := domain.RoomSummary{
			ID:           room.ID,
			Name:         room.Name,
			Participants: room.Participants,
		}
		if len(room.Messages) > 0 {
			latest := room.Messages[0]
			summary.LatestMessage = &latest
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (r RoomRepository) AddParticipants(ctx context.Context, token, roomID string, participantIDs []string) (domain.ChatRoom, error) {
	return r.updateParticipants(ctx, connectParticipantsMutation, token, roomID, participantIDs)
}

func (r RoomRepository) RemoveParticipants(ctx context.Context, token, roomID string, participantIDs []string) (domain.ChatRoom, error) {
	return r.updateParticipants(ctx, disconnectParticipantsMutation, token, roomID, participantIDs)
}

func (r RoomRepository) updateParticipants(ctx context.Context, mutation, token, roomID string, participantIDs []string) (domain.ChatRoom, error) {
	var resp struct {
		UpdateChatRoom *domain.ChatRoom `json:"updateChatRoom"`
	}
	err := r.client.Execute(ctx, mutation, map[string]any{
		"id":           roomID,
		"participants": uniqueIDs(participantIDs),
	}, token, &resp)
	if err != nil {
		return domain.ChatRoom{}, err
	}
	if resp.UpdateChatRoom == nil {
		return domain.ChatRoom{}, errors.ErrNotFound
	}
	return *resp.UpdateChatRoom, nil
}
