package ports

import (
	"context"

	"github.com/adboard/advertisement-service/internal/core/domain"
)

// AccessToken is what a successful login hands back to the client.
type AccessToken struct {
	Token     string
	TokenType string
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*AccessToken, error)
	// ResolveIdentity returns (nil, nil) for an empty token and
	// domain.ErrUnauthorized for any token that cannot be trusted.
	ResolveIdentity(ctx context.Context, token string) (*domain.User, error)
}
