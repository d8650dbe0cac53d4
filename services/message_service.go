//go:generate go run go.uber.org/mock/mockgen -source=message_service.go -destination=../mocks/mock_message_service.go -package=mocks
package services

import (
	"context"
	"log/slog"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/repositories"
)

type SendMessageInput struct {
	ChatRoomID string
	SenderID   string
	Content    string
	TempID     string
	ReplyToID  string
}

type IMessageService interface {
	Send(ctx context.Context, identity domain.Identity, token string, input SendMessageInput) (domain.Message, error)
	List(ctx context.Context, token, roomID string) ([]domain.Message, error)
	Delete(ctx context.Context, identity domain.Identity, token, messageID string) (string, error)
}

type MessageService struct {
	log        *slog.Logger
	messages   repositories.IMessageRepository
	dispatcher contract.Dispatcher
}

func NewMessageService(log *slog.Logger, messages repositories.IMessageRepository, dispatcher contract.Dispatcher) *MessageService {
	return &MessageService{log: log, messages: messages, dispatcher: dispatcher}
}

func (s *MessageService) Send(ctx context.Context, identity domain.Identity, token string, input SendMessageInput) (domain.Message, error) {
	// 1. A client may omit the sender id, but it may never speak for
	// someone else.
	if input.SenderID != "" && input.SenderID != identity.UserID {
		s.log.Warn("sender id does not match authenticated user",
			"sender_id", input.SenderID, "user_id", identity.UserID)
		return domain.Message{}, errors.ErrMalformedInput
	}

	message, err := s.messages.CreateMessage(ctx, token, repositories.CreateMessageInput{
		ChatRoomID: input.ChatRoomID,
		SenderID:   identity.UserID,
		Content:    input.Content,
		ReplyToID:  input.ReplyToID,
	})
	if err != nil {
		return domain.Message{}, err
	}

	// 2. The temp id is an opaque client correlation token; it rides the
	// event untouched so the sender can reconcile its optimistic copy.
	message.TempID = input.TempID

	s.dispatcher.Dispatch(ctx, domain.Event{
		Name:     domain.EventNewMessage,
		Scope:    domain.ScopeRoom,
		TargetID: message.ChatRoomID,
		Payload:  message,
	})
	return message, nil
}

func (s *MessageService) List(ctx context.Context, token, roomID string) ([]domain.Message, error) {
	return s.messages.ListMessages(ctx, token, roomID)
}

func (s *MessageService) Delete(ctx context.Context, identity domain.Identity, token, messageID string) (string, error) {
	senderID, err := s.messages.GetMessageSender(ctx, token, messageID)
	if err != nil {
		return "", err
	}
	if senderID != identity.UserID {
		s.log.Warn("delete rejected, requester is not the sender",
			"message_id", messageID, "user_id", identity.UserID)
		return "", errors.ErrUnauthorized
	}
	return s.messages.DeleteMessage(ctx, token, messageID)
}
