//go:generate go run go.uber.org/mock/mockgen -source=messages.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"context"

	"chat-relay/domain"
	"chat-relay/errors"
)

type CreateMessageInput struct {
	ChatRoomID string
	SenderID   string
	Content    string
	ReplyToID  string
}

type IMessageRepository interface {
	CreateMessage(ctx context.Context, token string, input CreateMessageInput) (domain.Message, error)
	ListMessages(ctx context.Context, token, roomID string) ([]domain.Message, error)
	GetMessageSender(ctx context.Context, token, messageID string) (string, error)
	DeleteMessage(ctx context.Context, token, messageID string) (string, error)
}

type MessageRepository struct {
	client *Client
}

func NewMessageRepository(client *Client) MessageRepository {
	return MessageRepository{client: client}
}

const createMessageMutation = `
mutation CreateMessage($data: MessageCreateInput!) {
  createMessage(data: $data) {
    id
    content
    createdAt
    sender { id name imageUrl }
    chatRoom { id }
    replyTo {
      id
      content
      sender { id name }
    }
  }
}`

const listMessagesQuery = `
query GetMessages($chatRoomId: IDFilter!) {
  messages(where: { chatRoom: { id: $chatRoomId } }, orderBy: { createdAt: asc }) {
    id
    content
    createdAt
    sender { id name imageUrl }
    replyTo {
      id
      content
      sender { id name }
    }
  }
}`

const getMessageSenderQuery = `
query CheckSender($messageId: ID!) {
  message(where: { id: $messageId }) {
    id
    sender { id }
  }
}`

const deleteMessageMutation = `
mutation DeleteMessage($where: MessageWhereUniqueInput!) {
  deleteMessage(where: $where) { id }
}`

// storedMessage is the raw store shape; the room reference arrives as a
// nested object rather than a plain id.
type storedMessage struct {
	domain.Message
	ChatRoom *struct {
		ID string `json:"id"`
	} `json:"chatRoom"`
}

func (m storedMessage) toDomain() domain.Message {
	msg := m.Message
	if m.ChatRoom != nil {
		msg.ChatRoomID = m.ChatRoom.ID
	}
	return msg
}

func (r MessageRepository) CreateMessage(ctx context.Context, token string, input CreateMessageInput) (domain.Message, error) {
	data := map[string]any{
		"content":  input.Content,
		"chatRoom": map[string]any{"connect": map[string]string{"id": input.ChatRoomID}},
		"sender":   map[string]any{"connect": map[string]string{"id": input.SenderID}},
	}
	if input.ReplyToID != "" {
		data["replyTo"] = map[string]any{"connect": map[string]string{"id": input.ReplyToID}}
	}

	var resp struct {
		CreateMessage *storedMessage `json:"createMessage"`
	}
	err := r.client.Execute(ctx, createMessageMutation, map[string]any{"data": data}, token, &resp)
	if err != nil {
		return domain.Message{}, err
	}
	if resp.CreateMessage == nil {
		return domain.Message{}, errors.ErrUpstream
	}
	return resp.CreateMessage.toDomain(), nil
}

func (r MessageRepository) ListMessages(ctx context.Context, token, roomID string) ([]domain.Message, error) {
	var resp struct {
		Messages []domain.Message `json:"messages"`
	}
	err := r.client.Execute(ctx, listMessagesQuery, map[string]any{
		"chatRoomId": map[string]string{"equals": roomID},
	}, token, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

func (r MessageRepository) GetMessageSender(ctx context.Context, token, messageID string) (string, error) {
	var resp struct {
		Message *struct {
			ID     string `json:"id"`
			Sender struct {
				ID string `json:"id"`
			} `json:"sender"`
		} `json:"message"`
	}
	err := r.client.Execute(ctx, getMessageSenderQuery, map[string]any{"messageId": messageID}, token, &resp)
	if err != nil {
		return "", err
	}
	if resp.Message == nil {
		return "", errors.ErrNotFound
	}
	return resp.Message.Sender.ID, nil
}

func (r MessageRepository) DeleteMessage(ctx context.Context, token, messageID string) (string, error) {
	var resp struct {
		DeleteMessage *struct {
			ID string `json:"id"`
		} `json:"deleteMessage"`
	}
	err := r.client.Execute(ctx, deleteMessageMutation, map[string]any{
		"where": map[string]string{"id": messageID},
	}, token, &resp)
	if err != nil {
		return "", err
	}
	if resp.DeleteMessage == nil {
		return "", errors.ErrNotFound
	}
	return resp.DeleteMessage.ID, nil
}
