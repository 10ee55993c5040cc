package service

import (
	"context"
	"errors"
	"sort"

	"github.com/adboard/advertisement-service/internal/core/domain"
	"github.com/adboard/advertisement-service/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[int64]*domain.User
	nextID  int64
	ads     *stubAdvertisementRepo // cascade target, may be nil
	findErr error                  // if set, FindByUsername returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.nextID++
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, limit, offset int) ([]*domain.User, error) {
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*domain.User
	for i, id := range ids {
		if i < offset || len(out) >= limit {
			continue
		}
		out = append(out, cloneUser(r.users[id]))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id int64, fn func(*domain.User) error) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	working := cloneUser(u)
	if err := fn(working); err != nil {
		return nil, err
	}
	for otherID, other := range r.users {
		if otherID != id && other.Username == working.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.users[id] = working
	return cloneUser(working), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64, fn func(*domain.User) error) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if err := fn(cloneUser(u)); err != nil {
		return err
	}
	if r.ads != nil {
		for adID, ad := range r.ads.ads {
			if ad.AuthorID == id {
				delete(r.ads.ads, adID)
			}
		}
	}
	delete(r.users, id)
	return nil
}

type stubAdvertisementRepo struct {
	ads        map[int64]*domain.Advertisement
	nextID     int64
	createErr  error
	lastFilter ports.AdvertisementFilter
}

func newStubAdvertisementRepo() *stubAdvertisementRepo {
	return &stubAdvertisementRepo{ads: make(map[int64]*domain.Advertisement), nextID: 1}
}

func (r *stubAdvertisementRepo) Create(_ context.Context, ad *domain.Advertisement) error {
	if r.createErr != nil {
		return r.createErr
	}
	ad.ID = r.nextID
	r.nextID++
	clone := *ad
	r.ads[ad.ID] = &clone
	return nil
}

func (r *stubAdvertisementRepo) FindByID(_ context.Context, id int64) (*domain.Advertisement, error) {
	ad, ok := r.ads[id]
	if !ok {
		return nil, domain.ErrAdvertisementNotFound
	}
	clone := *ad
	return &clone, nil
}

func (r *stubAdvertisementRepo) Update(_ context.Context, id int64, fn func(*domain.Advertisement) error) (*domain.Advertisement, error) {
	ad, ok := r.ads[id]
	if !ok {
		return nil, domain.ErrAdvertisementNotFound
	}
	working := *ad
	if err := fn(&working); err != nil {
		return nil, err
	}
	r.ads[id] = &working
	out := working
	return &out, nil
}

func (r *stubAdvertisementRepo) Delete(_ context.Context, id int64, fn func(*domain.Advertisement) error) error {
	ad, ok := r.ads[id]
	if !ok {
		return domain.ErrAdvertisementNotFound
	}
	clone := *ad
	if err := fn(&clone); err != nil {
		return err
	}
	delete(r.ads, id)
	return nil
}

// Search records the filter it was called with; filtering itself is
// covered by the postgres package tests.
func (r *stubAdvertisementRepo) Search(_ context.Context, f ports.AdvertisementFilter) ([]*domain.Advertisement, error) {
	r.lastFilter = f
	return nil, nil
}

type stubIdempotencyStore struct {
	keys      map[int64]map[string]int64
	lookupErr error
}

func newStubIdempotencyStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{keys: make(map[int64]map[string]int64)}
}

func (s *stubIdempotencyStore) Lookup(_ context.Context, actorID int64, key string) (int64, bool, error) {
	if s.lookupErr != nil {
		return 0, false, s.lookupErr
	}
	id, ok := s.keys[actorID][key]
	return id, ok, nil
}

func (s *stubIdempotencyStore) Remember(_ context.Context, actorID int64, key string, id int64) error {
	if s.keys[actorID] == nil {
		s.keys[actorID] = make(map[string]int64)
	}
	s.keys[actorID][key] = id
	return nil
}

var errStoreDown = errors.New("store unavailable")
