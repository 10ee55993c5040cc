package ports

import (
	"context"

	"github.com/adboard/advertisement-service/internal/core/domain"
)

// CreateAdvertisementInput carries all data needed to create an advertisement.
// The author is always the actor passed alongside it.
type CreateAdvertisementInput struct {
	Title          string
	Description    *string
	Price          float64
	IdempotencyKey string
}

// AdvertisementResult is returned by the service after creating an advertisement.
type AdvertisementResult struct {
	Advertisement *domain.Advertisement
	// AlreadyExisted is true when the Idempotency-Key matched an earlier create.
	AlreadyExisted bool
}

// SearchAdvertisementsInput carries the query parameters of the search endpoint.
type SearchAdvertisementsInput struct {
	Title       string
	Description string
	PriceMin    *float64
	PriceMax    *float64
	Author      string
	Limit       int
	Offset      int
}

// AdvertisementService defines use-case operations for advertisements.
type AdvertisementService interface {
	CreateAdvertisement(ctx context.Context, actor *domain.User, input CreateAdvertisementInput) (*AdvertisementResult, error)
	GetAdvertisement(ctx context.Context, id int64) (*domain.Advertisement, error)
	UpdateAdvertisement(ctx context.Context, actor *domain.User, id int64, patch domain.AdvertisementPatch) (*domain.Advertisement, error)
	DeleteAdvertisement(ctx context.Context, actor *domain.User, id int64) error
	SearchAdvertisements(ctx context.Context, input SearchAdvertisementsInput) ([]*domain.Advertisement, error)
}
