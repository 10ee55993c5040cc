package ports

import (
	"context"

	"github.com/adboard/advertisement-service/internal/core/domain"
)

// RegisterUserInput carries the data needed to create an account.
type RegisterUserInput struct {
	Username string
	Password string
	Role     domain.Role
}

// ListUsersInput carries pagination for the admin user listing.
type ListUsersInput struct {
	Limit  int
	Offset int
}

// UserService defines use-case operations for users. Mutations take the
// authenticated actor and enforce self-or-admin.
type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context, input ListUsersInput) ([]*domain.User, error)
	UpdateUser(ctx context.Context, actor *domain.User, id int64, patch domain.UserPatch) (*domain.User, error)
	DeleteUser(ctx context.Context, actor *domain.User, id int64) error
}
