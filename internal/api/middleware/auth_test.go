package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/adboard/advertisement-service/internal/core/domain"
)

type stubResolver struct {
	resolveFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubResolver) ResolveIdentity(ctx context.Context, token string) (*domain.User, error) {
	return s.resolveFn(ctx, token)
}

func newAuthContext(header string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	alice := &domain.User{ID: 1, Username: "alice", Role: domain.RoleAdmin}
	resolver := &stubResolver{
		resolveFn: func(_ context.Context, token string) (*domain.User, error) {
			if token != "good" {
				t.Fatalf("unexpected token %q", token)
			}
			return alice, nil
		},
	}
	c, rec := newAuthContext("Bearer good")

	called := false
	handler := Auth(resolver)(func(c echo.Context) error {
		called = true
		if CurrentUser(c) != alice {
			t.Fatalf("user not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	resolver := &stubResolver{
		resolveFn: func(context.Context, string) (*domain.User, error) {
			return &domain.User{ID: 1}, nil
		},
	}
	c, _ := newAuthContext("bearer tok")

	err := Auth(resolver)(func(echo.Context) error { return nil })(c)
	if err != nil {
		t.Fatalf("expected lower-case scheme to be accepted, got %v", err)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	resolver := &stubResolver{
		resolveFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUnauthorized
		},
	}

	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Token abc",
		"empty token":    "Bearer ",
		"no token":       "Bearer",
		"bad token":      "Bearer expired",
	} {
		t.Run(name, func(t *testing.T) {
			c, _ := newAuthContext(header)
			handler := Auth(resolver)(func(echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestAuthMiddleware_StoreErrorPassesThrough(t *testing.T) {
	boom := errors.New("db down")
	resolver := &stubResolver{
		resolveFn: func(context.Context, string) (*domain.User, error) { return nil, boom },
	}
	c, _ := newAuthContext("Bearer tok")

	err := Auth(resolver)(func(echo.Context) error { return nil })(c)
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
