package services_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/mocks"
	"chat-relay/repositories"
	"chat-relay/services"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMessageServiceUnderTest(t *testing.T) (*services.MessageService, *mocks.MockIMessageRepository, *mocks.MockDispatcher) {
	ctrl := gomock.NewController(t)
	messages := mocks.NewMockIMessageRepository(ctrl)
	dispatcher := mocks.NewMockDispatcher(ctrl)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	return services.NewMessageService(log, messages, dispatcher), messages, dispatcher
}

func TestMessageService_Send(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	t.Run("should persist then broadcast with the temp id attached", func(t *testing.T) {
		// Given
		service, messages, dispatcher := newMessageServiceUnderTest(t)
		stored := domain.Message{
			ID:         "msg-1",
			Content:    "hello",
			CreatedAt:  time.Now(),
			Sender:     alice,
			ChatRoomID: "room-1",
		}
		broadcast := stored
		broadcast.TempID = "tmp-42"

		messages.EXPECT().
			CreateMessage(ctx, testToken, repositories.CreateMessageInput{
				ChatRoomID: "room-1",
				SenderID:   "user-1",
				Content:    "hello",
			}).
			Return(stored, nil)
		dispatcher.EXPECT().Dispatch(ctx, domain.Event{
			Name:     domain.EventNewMessage,
			Scope:    domain.ScopeRoom,
			TargetID: "room-1",
			Payload:  broadcast,
		})

		// When
		message, err := service.Send(ctx, aliceIdentity, testToken, services.SendMessageInput{
			ChatRoomID: "room-1",
			Content:    "hello",
			TempID:     "tmp-42",
		})

		// Then
		req.NoError(err)
		req.Equal(broadcast, message)
	})

	t.Run("should reject a sender id that is not the authenticated user", func(t *testing.T) {
		service, _, _ := newMessageServiceUnderTest(t)

		_, err := service.Send(ctx, aliceIdentity, testToken, services.SendMessageInput{
			ChatRoomID: "room-1",
			SenderID:   "user-2",
			Content:    "spoofed",
		})
		req.ErrorIs(err, errors.ErrMalformedInput)
	})

	t.Run("should accept an omitted sender id", func(t *testing.T) {
		service, messages, dispatcher := newMessageServiceUnderTest(t)
		stored := domain.Message{ID: "msg-1", ChatRoomID: "room-1", Sender: alice}

		messages.EXPECT().
			CreateMessage(ctx, testToken, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, input repositories.CreateMessageInput) (domain.Message, error) {
				require.Equal(t, "user-1", input.SenderID)
				return stored, nil
			})
		dispatcher.EXPECT().Dispatch(ctx, gomock.Any())

		_, err := service.Send(ctx, aliceIdentity, testToken, services.SendMessageInput{ChatRoomID: "room-1", Content: "hi"})
		req.NoError(err)
	})

	t.Run("should not dispatch when the store rejects the message", func(t *testing.T) {
		service, messages, _ := newMessageServiceUnderTest(t)
		messages.EXPECT().
			CreateMessage(ctx, testToken, gomock.Any()).
			Return(domain.Message{}, errors.ErrUpstream)

		_, err := service.Send(ctx, aliceIdentity, testToken, services.SendMessageInput{ChatRoomID: "room-1", Content: "hi"})
		req.ErrorIs(err, errors.ErrUpstream)
	})

	t.Run("should forward the reply reference to the store", func(t *testing.T) {
		service, messages, dispatcher := newMessageServiceUnderTest(t)
		messages.EXPECT().
			CreateMessage(ctx, testToken, repositories.CreateMessageInput{
				ChatRoomID: "room-1",
				SenderID:   "user-1",
				Content:    "replying",
				ReplyToID:  "msg-9",
			}).
			Return(domain.Message{ID: "msg-10", ChatRoomID: "room-1"}, nil)
		dispatcher.EXPECT().Dispatch(ctx, gomock.Any())

		_, err := service.Send(ctx, aliceIdentity, testToken, services.SendMessageInput{
			ChatRoomID: "room-1",
			Content:    "replying",
			ReplyToID:  "msg-9",
		})
		req.NoError(err)
	})
}

func TestMessageService_Delete(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	t.Run("should delete a message owned by the requester", func(t *testing.T) {
		service, messages, _ := newMessageServiceUnderTest(t)
		messages.EXPECT().GetMessageSender(ctx, testToken, "msg-1").Return("user-1", nil)
		messages.EXPECT().DeleteMessage(ctx, testToken, "msg-1").Return("msg-1", nil)

		deletedID, err := service.Delete(ctx, aliceIdentity, testToken, "msg-1")
		req.NoError(err)
		req.Equal("msg-1", deletedID)
	})

	t.Run("should reject deleting someone else's message", func(t *testing.T) {
		service, messages, _ := newMessageServiceUnderTest(t)
		messages.EXPECT().GetMessageSender(ctx, testToken, "msg-1").Return("user-2", nil)

		_, err := service.Delete(ctx, aliceIdentity, testToken, "msg-1")
		req.ErrorIs(err, errors.ErrUnauthorized)
	})

	t.Run("should propagate an unknown message", func(t *testing.T) {
		service, messages, _ := newMessageServiceUnderTest(t)
		messages.EXPECT().GetMessageSender(ctx, testToken, "msg-404").Return("", errors.ErrNotFound)

		_, err := service.Delete(ctx, aliceIdentity, testToken, "msg-404")
		req.ErrorIs(err, errors.ErrNotFound)
	})
}
