//go:generate go run go.uber.org/mock/mockgen -source=user_service.go -destination=../mocks/mock_user_service.go -package=mocks
package services

import (
	"context"

	"chat-relay/domain"
	"chat-relay/repositories"

	"github.com/samber/lo"
)

type IUserService interface {
	List(ctx context.Context, identity domain.Identity, token string) ([]domain.User, error)
}

type UserService struct {
	users repositories.IUserRepository
}

func NewUserService(users repositories.IUserRepository) *UserService {
	return &UserService{users: users}
}

// List returns every known user except the caller; a contact picker has no
// use for the caller's own entry.
func (s *UserService) List(ctx context.Context, identity domain.Identity, token string) ([]domain.User, error) {
	users, err := s.users.ListUsers(ctx, token)
	if err != nil {
		return nil, err
	}
	return lo.Filter(users, func(user domain.User, _ int) bool {
		return user.ID != identity.UserID
	}), nil
}
