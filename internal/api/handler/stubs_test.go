package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/adboard/advertisement-service/internal/api/middleware"
	"github.com/adboard/advertisement-service/internal/core/domain"
	"github.com/adboard/advertisement-service/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, username, password string) (*ports.AccessToken, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.AccessToken, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) ResolveIdentity(context.Context, string) (*domain.User, error) {
	return nil, nil
}

type stubUserService struct {
	registerFn func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error)
	getFn      func(ctx context.Context, id int64) (*domain.User, error)
	listFn     func(ctx context.Context, in ports.ListUsersInput) ([]*domain.User, error)
	updateFn   func(ctx context.Context, actor *domain.User, id int64, patch domain.UserPatch) (*domain.User, error)
	deleteFn   func(ctx context.Context, actor *domain.User, id int64) error
}

func (s *stubUserService) Register(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) ListUsers(ctx context.Context, in ports.ListUsersInput) ([]*domain.User, error) {
	return s.listFn(ctx, in)
}

func (s *stubUserService) UpdateUser(ctx context.Context, actor *domain.User, id int64, patch domain.UserPatch) (*domain.User, error) {
	return s.updateFn(ctx, actor, id, patch)
}

func (s *stubUserService) DeleteUser(ctx context.Context, actor *domain.User, id int64) error {
	return s.deleteFn(ctx, actor, id)
}

type stubAdvertisementService struct {
	createFn func(ctx context.Context, actor *domain.User, in ports.CreateAdvertisementInput) (*ports.AdvertisementResult, error)
	getFn    func(ctx context.Context, id int64) (*domain.Advertisement, error)
	updateFn func(ctx context.Context, actor *domain.User, id int64, patch domain.AdvertisementPatch) (*domain.Advertisement, error)
	deleteFn func(ctx context.Context, actor *domain.User, id int64) error
	searchFn func(ctx context.Context, in ports.SearchAdvertisementsInput) ([]*domain.Advertisement, error)
}

func (s *stubAdvertisementService) CreateAdvertisement(ctx context.Context, actor *domain.User, in ports.CreateAdvertisementInput) (*ports.AdvertisementResult, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubAdvertisementService) GetAdvertisement(ctx context.Context, id int64) (*domain.Advertisement, error) {
	return s.getFn(ctx, id)
}

func (s *stubAdvertisementService) UpdateAdvertisement(ctx context.Context, actor *domain.User, id int64, patch domain.AdvertisementPatch) (*domain.Advertisement, error) {
	return s.updateFn(ctx, actor, id, patch)
}

func (s *stubAdvertisementService) DeleteAdvertisement(ctx context.Context, actor *domain.User, id int64) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubAdvertisementService) SearchAdvertisements(ctx context.Context, in ports.SearchAdvertisementsInput) ([]*domain.Advertisement, error) {
	return s.searchFn(ctx, in)
}

// newTestContext builds an echo.Context for target with an optional JSON
// body, path id and authenticated user.
func newTestContext(method, target, body, id string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	if user != nil {
		middleware.SetCurrentUser(c, user)
	}
	return c, rec
}
