package ports

import (
	"context"

	"github.com/adboard/advertisement-service/internal/core/domain"
)

// AdvertisementFilter carries the search criteria. Empty strings and nil
// bounds impose no constraint; everything present is ANDed together.
type AdvertisementFilter struct {
	Title       string   // case-insensitive substring
	Description string   // case-insensitive substring
	PriceMin    *float64 // inclusive
	PriceMax    *float64 // inclusive
	Author      string   // case-insensitive substring of the author's username
	Limit       int
	Offset      int
}

// AdvertisementRepository defines persistence operations for advertisements.
// Update and Delete follow the same transactional contract as UserRepository.
type AdvertisementRepository interface {
	Create(ctx context.Context, ad *domain.Advertisement) error
	FindByID(ctx context.Context, id int64) (*domain.Advertisement, error)
	Update(ctx context.Context, id int64, fn func(*domain.Advertisement) error) (*domain.Advertisement, error)
	Delete(ctx context.Context, id int64, fn func(*domain.Advertisement) error) error
	// Search returns matches newest first.
	Search(ctx context.Context, filter AdvertisementFilter) ([]*domain.Advertisement, error)
}
