package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/adboard/advertisement-service/internal/core/domain"
	"github.com/adboard/advertisement-service/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Register hashes the password and stores a new user. Role defaults to user.
func (s *UserService) Register(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	if strings.TrimSpace(input.Username) == "" {
		return nil, domain.NewValidationError("username", "is required")
	}
	if utf8.RuneCountInString(input.Username) > domain.MaxUsernameLength {
		return nil, domain.NewValidationError("username", fmt.Sprintf("must be at most %d characters", domain.MaxUsernameLength))
	}
	if input.Password == "" {
		return nil, domain.NewValidationError("password", "is required")
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.NewValidationError("role", "must be one of: user admin")
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:       input.Username,
		HashedPassword: hash,
		Role:           role,
		CreatedAt:      storedNow(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, input ports.ListUsersInput) ([]*domain.User, error) {
	limit, offset := clampPage(input.Limit, input.Offset)
	return s.repo.List(ctx, limit, offset)
}

// UpdateUser applies patch to the user with the given id. Existence is
// checked before permission, and both before the write, in one transaction.
func (s *UserService) UpdateUser(ctx context.Context, actor *domain.User, id int64, patch domain.UserPatch) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	// bcrypt is slow; hash before the transaction opens.
	var hashed string
	if patch.Password.Set {
		h, err := HashPassword(patch.Password.Value)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		hashed = h
	}

	updated, err := s.repo.Update(ctx, id, func(u *domain.User) error {
		if !domain.CanMutateUser(actor, u.ID) {
			return domain.ErrForbidden
		}
		// Only admins grant or revoke roles, their own included.
		if patch.Role.Set && !actor.IsAdmin() {
			return domain.ErrForbidden
		}
		return patch.Apply(u, func(string) (string, error) { return hashed, nil })
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", id).Int64("actor_id", actor.ID).Msg("user updated")
	return updated, nil
}

// DeleteUser removes the user and, in the same transaction, every
// advertisement they authored.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, id int64) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}

	err := s.repo.Delete(ctx, id, func(u *domain.User) error {
		if !domain.CanMutateUser(actor, u.ID) {
			return domain.ErrForbidden
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", id).Int64("actor_id", actor.ID).Msg("user deleted")
	return nil
}

// EnsureAdmin creates an admin account named username unless a user with
// that name already exists. An existing account is left untouched.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		if !existing.IsAdmin() {
			s.logger.Warn().Str("username", username).Msg("bootstrap admin exists without admin role; leaving it unchanged")
		}
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("ensure admin: %w", err)
	}

	if _, err := s.Register(ctx, ports.RegisterUserInput{
		Username: username,
		Password: password,
		Role:     domain.RoleAdmin,
	}); err != nil && !errors.Is(err, domain.ErrUserExists) {
		return fmt.Errorf("ensure admin: %w", err)
	}
	return nil
}
