package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adboard/advertisement-service/internal/core/domain"
	"github.com/adboard/advertisement-service/internal/core/ports"
)

var alice = &domain.User{ID: 7, Username: "alice", Role: domain.RoleUser}

func TestAdvertisementHandler_Create_Success(t *testing.T) {
	stub := &stubAdvertisementService{
		createFn: func(_ context.Context, actor *domain.User, in ports.CreateAdvertisementInput) (*ports.AdvertisementResult, error) {
			if actor != alice {
				t.Fatalf("expected alice as actor")
			}
			if in.Title != "Bike" || in.Price != 50 || in.Description != nil || in.IdempotencyKey != "" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AdvertisementResult{Advertisement: &domain.Advertisement{
				ID: 1, Title: in.Title, Price: in.Price, AuthorID: actor.ID, CreatedAt: time.Now(),
			}}, nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/advertisement", `{"title":"Bike","price":50,"author_id":999}`, "", alice)

	if err := NewAdvertisementHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["author_id"] != float64(7) || resp["title"] != "Bike" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["description"]; !ok {
		t.Fatalf("description must be present (as null)")
	}
	if rec.Header().Get("Idempotent-Replayed") != "" {
		t.Fatalf("fresh create must not be marked as replay")
	}
}

func TestAdvertisementHandler_Create_Replay(t *testing.T) {
	stub := &stubAdvertisementService{
		createFn: func(_ context.Context, _ *domain.User, in ports.CreateAdvertisementInput) (*ports.AdvertisementResult, error) {
			if in.IdempotencyKey != "k1" {
				t.Fatalf("expected idempotency key, got %q", in.IdempotencyKey)
			}
			return &ports.AdvertisementResult{Advertisement: &domain.Advertisement{ID: 3, Title: "Bike"}, AlreadyExisted: true}, nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/advertisement", `{"title":"Bike","price":50}`, "", alice)
	c.Request().Header.Set("Idempotency-Key", "k1")

	if err := NewAdvertisementHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated || rec.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatalf("expected 201 replay, got %d %q", rec.Code, rec.Header().Get("Idempotent-Replayed"))
	}
}

func TestAdvertisementHandler_Create_Rejects(t *testing.T) {
	stub := &stubAdvertisementService{
		createFn: func(context.Context, *domain.User, ports.CreateAdvertisementInput) (*ports.AdvertisementResult, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewAdvertisementHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/advertisement", `{"title":"Bike","price":50}`, "", nil)
	if err := h.Create(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("anonymous: expected ErrUnauthorized, got %v", err)
	}

	c, _ = newTestContext(http.MethodPost, "/advertisement", `{"title":"Bike"}`, "", alice)
	if err := h.Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing price: expected ErrValidation, got %v", err)
	}

	c, _ = newTestContext(http.MethodPost, "/advertisement", `{"title":`, "", alice)
	var he *echo.HTTPError
	if err := h.Create(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: expected 400, got %v", err)
	}
}

func TestAdvertisementHandler_Get(t *testing.T) {
	stub := &stubAdvertisementService{
		getFn: func(_ context.Context, id int64) (*domain.Advertisement, error) {
			if id == 1 {
				return &domain.Advertisement{ID: 1, Title: "Bike"}, nil
			}
			return nil, domain.ErrAdvertisementNotFound
		},
	}
	h := NewAdvertisementHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/advertisement/1", "", "1", nil)
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newTestContext(http.MethodGet, "/advertisement/2", "", "2", nil)
	if err := h.Get(c); !errors.Is(err, domain.ErrAdvertisementNotFound) {
		t.Fatalf("expected ErrAdvertisementNotFound, got %v", err)
	}

	c, _ = newTestContext(http.MethodGet, "/advertisement/abc", "", "abc", nil)
	if err := h.Get(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for non-numeric id, got %v", err)
	}
}

func TestAdvertisementHandler_Update_PassesPresence(t *testing.T) {
	stub := &stubAdvertisementService{
		updateFn: func(_ context.Context, _ *domain.User, id int64, p domain.AdvertisementPatch) (*domain.Advertisement, error) {
			if id != 5 {
				t.Fatalf("unexpected id %d", id)
			}
			if p.Title.Set || !p.Price.Set || p.Price.Value != 40 || !p.Description.Set || !p.Description.Null {
				t.Fatalf("unexpected patch: %+v", p)
			}
			return &domain.Advertisement{ID: 5, Title: "Bike", Price: 40}, nil
		},
	}
	c, rec := newTestContext(http.MethodPatch, "/advertisement/5", `{"price":40,"description":null}`, "5", alice)

	if err := NewAdvertisementHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdvertisementHandler_Delete(t *testing.T) {
	stub := &stubAdvertisementService{
		deleteFn: func(_ context.Context, actor *domain.User, id int64) error {
			if actor.ID != alice.ID {
				return domain.ErrForbidden
			}
			return nil
		},
	}
	h := NewAdvertisementHandler(stub)

	c, rec := newTestContext(http.MethodDelete, "/advertisement/1", "", "1", alice)
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if rec.Code != http.StatusOK || resp["message"] != "Advertisement deleted successfully" {
		t.Fatalf("unexpected response %d %+v", rec.Code, resp)
	}

	c, _ = newTestContext(http.MethodDelete, "/advertisement/1", "", "1", &domain.User{ID: 8})
	if err := h.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAdvertisementHandler_Search_BindsQuery(t *testing.T) {
	var got ports.SearchAdvertisementsInput
	stub := &stubAdvertisementService{
		searchFn: func(_ context.Context, in ports.SearchAdvertisementsInput) ([]*domain.Advertisement, error) {
			got = in
			return []*domain.Advertisement{}, nil
		},
	}
	c, rec := newTestContext(http.MethodGet, "/advertisement?title=bike&price_max=40&username_author=ali&offset=2", "", "", nil)

	if err := NewAdvertisementHandler(stub).Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || rec.Body.String() != "[]\n" {
		t.Fatalf("expected 200 with empty list, got %d %q", rec.Code, rec.Body.String())
	}
	if got.Title != "bike" || got.Author != "ali" || got.Limit != 50 || got.Offset != 2 {
		t.Fatalf("unexpected input: %+v", got)
	}
	if got.PriceMin != nil || got.PriceMax == nil || *got.PriceMax != 40 {
		t.Fatalf("unexpected price bounds: %v %v", got.PriceMin, got.PriceMax)
	}
}

func TestAdvertisementHandler_Search_Rejects(t *testing.T) {
	stub := &stubAdvertisementService{
		searchFn: func(context.Context, ports.SearchAdvertisementsInput) ([]*domain.Advertisement, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewAdvertisementHandler(stub)

	for _, target := range []string{"/advertisement?limit=0", "/advertisement?limit=101", "/advertisement?offset=-1"} {
		c, _ := newTestContext(http.MethodGet, target, "", "", nil)
		if err := h.Search(c); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", target, err)
		}
	}

	c, _ := newTestContext(http.MethodGet, "/advertisement?price_min=cheap", "", "", nil)
	var he *echo.HTTPError
	if err := h.Search(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unparsable price, got %v", err)
	}
}
