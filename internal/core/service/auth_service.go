package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/adboard/advertisement-service/internal/core/domain"
	"github.com/adboard/advertisement-service/internal/core/ports"
)

const (
	defaultTokenTTL = 30 * time.Minute
	tokenTypeBearer = "bearer"
)

// AccessClaims is the payload of an access token. Subject holds the username.
type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthConfig holds the token settings read once at startup.
type AuthConfig struct {
	Secret    string
	Algorithm string // HS256, HS384 or HS512
	TokenTTL  time.Duration
}

// AuthService implements login, token issuance and identity resolution.
type AuthService struct {
	users    ports.UserRepository
	secret   []byte
	method   jwt.SigningMethod
	tokenTTL time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(users ports.UserRepository, cfg AuthConfig, log zerolog.Logger) (*AuthService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth: empty signing secret")
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("auth: unsupported signing algorithm %q", alg)
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &AuthService{
		users:    users,
		secret:   []byte(cfg.Secret),
		method:   method,
		tokenTTL: ttl,
		log:      log,
		now:      time.Now,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AccessToken, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !VerifyPassword(password, user.HashedPassword) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.CreateAccessToken(user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return &ports.AccessToken{Token: token, TokenType: tokenTypeBearer}, nil
}

// CreateAccessToken signs a token for username carrying role, expiring
// after the configured TTL.
func (s *AuthService) CreateAccessToken(username string, role domain.Role) (string, error) {
	now := s.now()
	claims := AccessClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// ResolveIdentity verifies token and loads the user it names. The role
// claim must be present, but callers authorise against the loaded user's
// role so a demotion applies immediately.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}

	claims := &AccessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		s.log.Debug().Err(err).Msg("token rejected")
		return nil, domain.ErrUnauthorized
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	return user, nil
}
