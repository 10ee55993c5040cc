package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/adboard/advertisement-service/internal/core/domain"
	"github.com/adboard/advertisement-service/internal/core/ports"
)

func TestUserHandler_Register_Success(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(_ context.Context, in ports.RegisterUserInput) (*domain.User, error) {
			if in.Username != "alice" || in.Password != "pw" || in.Role != domain.RoleUser {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: 1, Username: "alice", HashedPassword: "$2a$hash", Role: domain.RoleUser}, nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/user", `{"username":"alice","password":"pw"}`, "", nil)

	if err := NewUserHandler(stub).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "hash") || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response leaks credentials: %s", rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(1) || resp["username"] != "alice" || len(resp) != 2 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Register_Validation(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(context.Context, ports.RegisterUserInput) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	for _, body := range []string{
		`{"password":"pw"}`,
		`{"username":"bob"}`,
		`{"username":"bob","password":"pw","role":"superuser"}`,
	} {
		c, _ := newTestContext(http.MethodPost, "/user", body, "", nil)
		if err := h.Register(c); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", body, err)
		}
	}
}

func TestUserHandler_Register_Duplicate(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(context.Context, ports.RegisterUserInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	c, _ := newTestContext(http.MethodPost, "/user", `{"username":"bob","password":"pw"}`, "", nil)

	if err := NewUserHandler(stub).Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserHandler_Update_PassesPatch(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(_ context.Context, actor *domain.User, id int64, p domain.UserPatch) (*domain.User, error) {
			if actor != alice || id != 7 {
				t.Fatalf("unexpected actor/id: %v %d", actor, id)
			}
			if !p.Role.Set || p.Role.Value != domain.RoleAdmin || p.Username.Set || p.Password.Set {
				t.Fatalf("unexpected patch: %+v", p)
			}
			return &domain.User{ID: 7, Username: "alice", Role: domain.RoleAdmin}, nil
		},
	}
	c, rec := newTestContext(http.MethodPatch, "/user/7", `{"role":"admin"}`, "7", alice)

	if err := NewUserHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Delete_RequiresIdentity(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(context.Context, *domain.User, int64) error {
			t.Fatalf("service must not be called")
			return nil
		},
	}
	c, _ := newTestContext(http.MethodDelete, "/user/7", "", "7", nil)

	if err := NewUserHandler(stub).Delete(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestUserHandler_List(t *testing.T) {
	stub := &stubUserService{
		listFn: func(_ context.Context, in ports.ListUsersInput) ([]*domain.User, error) {
			if in.Limit != 2 || in.Offset != 0 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return []*domain.User{{ID: 1, Username: "a"}, {ID: 2, Username: "b"}}, nil
		},
	}
	c, rec := newTestContext(http.MethodGet, "/user?limit=2", "", "", alice)

	if err := NewUserHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[1]["username"] != "b" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
