//go:generate go run go.uber.org/mock/mockgen -source=users.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"context"

	"chat-relay/domain"
)

type IUserRepository interface {
	ListUsers(ctx context.Context, token string) ([]domain.User, error)
}

type UserRepository struct {
	client *Client
}

func NewUserRepository(client *Client) UserRepository {
	return UserRepository{client: client}
}

const listUsersQuery = `
query ListUsers {
  users {
    id
    name
    email
  }
}`

func (r UserRepository) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	var resp struct {
		Users []domain.User `json:"users"`
	}
	if err := r.client.Execute(ctx, listUsersQuery, nil, token, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}
