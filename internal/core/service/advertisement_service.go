package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adboard/advertisement-service/internal/core/domain"
	"github.com/adboard/advertisement-service/internal/core/ports"
)

// IdempotencyStore remembers which advertisement an actor created under a
// given Idempotency-Key. Implemented by the Redis adapter.
type IdempotencyStore interface {
	Lookup(ctx context.Context, actorID int64, key string) (int64, bool, error)
	Remember(ctx context.Context, actorID int64, key string, advertisementID int64) error
}

type AdvertisementService struct {
	repo        ports.AdvertisementRepository
	idempotency IdempotencyStore // nil disables Idempotency-Key handling
	logger      zerolog.Logger
}

func NewAdvertisementService(repo ports.AdvertisementRepository, idempotency IdempotencyStore, logger zerolog.Logger) *AdvertisementService {
	return &AdvertisementService{
		repo:        repo,
		idempotency: idempotency,
		logger:      logger,
	}
}

// CreateAdvertisement stores a new advertisement authored by actor.
// A repeated IdempotencyKey from the same actor returns the earlier
// advertisement instead of creating another one. Store failures are logged
// and the request proceeds without deduplication.
func (s *AdvertisementService) CreateAdvertisement(ctx context.Context, actor *domain.User, input ports.CreateAdvertisementInput) (*ports.AdvertisementResult, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.NewValidationError("title", "is required")
	}

	useKey := input.IdempotencyKey != "" && s.idempotency != nil
	if useKey {
		existingID, found, err := s.idempotency.Lookup(ctx, actor.ID, input.IdempotencyKey)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Int64("actor_id", actor.ID).Msg("idempotency lookup failed; proceeding without deduplication")
		case found:
			ad, err := s.repo.FindByID(ctx, existingID)
			if err == nil {
				s.logger.Info().Int64("advertisement_id", ad.ID).Msg("idempotent replay")
				return &ports.AdvertisementResult{Advertisement: ad, AlreadyExisted: true}, nil
			}
			// The earlier advertisement has since been deleted; create afresh.
			if !errors.Is(err, domain.ErrAdvertisementNotFound) {
				return nil, fmt.Errorf("create advertisement: %w", err)
			}
		}
	}

	ad := &domain.Advertisement{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		AuthorID:    actor.ID,
		CreatedAt:   storedNow(),
	}
	if err := s.repo.Create(ctx, ad); err != nil {
		return nil, fmt.Errorf("create advertisement: %w", err)
	}

	if useKey {
		if err := s.idempotency.Remember(ctx, actor.ID, input.IdempotencyKey, ad.ID); err != nil {
			s.logger.Warn().Err(err).Int64("advertisement_id", ad.ID).Msg("could not store idempotency key")
		}
	}

	s.logger.Info().
		Int64("advertisement_id", ad.ID).
		Int64("author_id", ad.AuthorID).
		Msg("advertisement created")

	return &ports.AdvertisementResult{Advertisement: ad}, nil
}

func (s *AdvertisementService) GetAdvertisement(ctx context.Context, id int64) (*domain.Advertisement, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateAdvertisement applies patch when actor is the author or an admin.
// A missing advertisement is reported before the permission check.
func (s *AdvertisementService) UpdateAdvertisement(ctx context.Context, actor *domain.User, id int64, patch domain.AdvertisementPatch) (*domain.Advertisement, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, func(ad *domain.Advertisement) error {
		if !domain.CanMutateAdvertisement(actor, ad) {
			return domain.ErrForbidden
		}
		patch.Apply(ad)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("advertisement_id", id).Int64("actor_id", actor.ID).Msg("advertisement updated")
	return updated, nil
}

func (s *AdvertisementService) DeleteAdvertisement(ctx context.Context, actor *domain.User, id int64) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}

	err := s.repo.Delete(ctx, id, func(ad *domain.Advertisement) error {
		if !domain.CanMutateAdvertisement(actor, ad) {
			return domain.ErrForbidden
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("advertisement_id", id).Int64("actor_id", actor.ID).Msg("advertisement deleted")
	return nil
}

// SearchAdvertisements returns advertisements matching every supplied
// criterion, newest first. The result is never nil.
func (s *AdvertisementService) SearchAdvertisements(ctx context.Context, input ports.SearchAdvertisementsInput) ([]*domain.Advertisement, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	ads, err := s.repo.Search(ctx, ports.AdvertisementFilter{
		Title:       input.Title,
		Description: input.Description,
		PriceMin:    input.PriceMin,
		PriceMax:    input.PriceMax,
		Author:      input.Author,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, fmt.Errorf("search advertisements: %w", err)
	}
	if ads == nil {
		ads = []*domain.Advertisement{}
	}
	return ads, nil
}
