package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/adboard/advertisement-service/internal/api/metrics"
	"github.com/adboard/advertisement-service/internal/core/domain"
)

const identityKey = "identity"

// IdentityResolver turns a bearer token into the user it names.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*domain.User, error)
}

// Auth requires a valid bearer token and stores the resolved user in the
// context. Any missing, malformed or untrusted credential yields
// domain.ErrUnauthorized; store failures pass through unchanged.
func Auth(resolver IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.IdentityFailuresTotal.WithLabelValues("missing_header").Inc()
				return domain.ErrUnauthorized
			}

			token, ok := bearerToken(authHeader)
			if !ok {
				metrics.IdentityFailuresTotal.WithLabelValues("malformed_header").Inc()
				return domain.ErrUnauthorized
			}

			user, err := resolver.ResolveIdentity(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					metrics.IdentityFailuresTotal.WithLabelValues("invalid_token").Inc()
				}
				return err
			}
			if user == nil {
				return domain.ErrUnauthorized
			}

			SetCurrentUser(c, user)
			return next(c)
		}
	}
}

// bearerToken extracts the credentials from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// CurrentUser returns the user stored by Auth, or nil.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(identityKey).(*domain.User)
	return u
}

func SetCurrentUser(c echo.Context, u *domain.User) {
	c.Set(identityKey, u)
}
