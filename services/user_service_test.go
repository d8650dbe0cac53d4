package services_test

import (
	"context"
	"testing"

	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/mocks"
	"chat-relay/services"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUserService_List(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	t.Run("should exclude the caller from the listing", func(t *testing.T) {
		// Given
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserRepository(ctrl)
		service := services.NewUserService(users)

		users.EXPECT().
			ListUsers(ctx, testToken).
			Return([]domain.User{alice, bob, clara}, nil)

		// When
		got, err := service.List(ctx, aliceIdentity, testToken)

		// Then
		req.NoError(err)
		req.Equal([]domain.User{bob, clara}, got)
	})

	t.Run("should propagate a store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserRepository(ctrl)
		service := services.NewUserService(users)

		users.EXPECT().ListUsers(ctx, testToken).Return(nil, errors.ErrUpstream)

		_, err := service.List(ctx, aliceIdentity, testToken)
		req.ErrorIs(err, errors.ErrUpstream)
	})
}
