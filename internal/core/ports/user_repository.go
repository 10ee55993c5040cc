package ports

import (
	"context"

	"github.com/adboard/advertisement-service/internal/core/domain"
)

// UserRepository defines persistence operations for users.
//
// Update and Delete load the row and call the supplied function inside the
// same transaction, so the caller's checks and the write commit together.
// A missing row is reported as domain.ErrUserNotFound before fn runs.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
	Update(ctx context.Context, id int64, fn func(*domain.User) error) (*domain.User, error)
	// Delete removes the user and every advertisement they authored.
	Delete(ctx context.Context, id int64, fn func(*domain.User) error) error
}
