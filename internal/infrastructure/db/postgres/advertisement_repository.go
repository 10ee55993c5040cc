package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/adboard/advertisement-service/internal/core/domain"
	"github.com/adboard/advertisement-service/internal/core/ports"
)

type AdvertisementRepository struct {
	db *gorm.DB
}

func NewAdvertisementRepository(db *gorm.DB) *AdvertisementRepository {
	return &AdvertisementRepository{db: db}
}

// Create inserts ad and writes the assigned id and timestamp back into it.
func (r *AdvertisementRepository) Create(ctx context.Context, ad *domain.Advertisement) error {
	rec := newAdvertisementRecord(ad)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert advertisement: %w", err)
	}
	ad.ID = rec.ID
	ad.CreatedAt = rec.CreatedAt.UTC()
	return nil
}

func (r *AdvertisementRepository) FindByID(ctx context.Context, id int64) (*domain.Advertisement, error) {
	var rec advertisementRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrAdvertisementNotFound
		}
		return nil, fmt.Errorf("find advertisement: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *AdvertisementRepository) Update(ctx context.Context, id int64, fn func(*domain.Advertisement) error) (*domain.Advertisement, error) {
	var updated *domain.Advertisement
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec advertisementRecord
		if err := tx.First(&rec, id).Error; err != nil {
			if isNotFound(err) {
				return domain.ErrAdvertisementNotFound
			}
			return fmt.Errorf("load advertisement: %w", err)
		}

		ad := rec.toDomain()
		if err := fn(ad); err != nil {
			return err
		}

		// A map so that a nil description is written as NULL.
		err := tx.Model(&rec).Updates(map[string]interface{}{
			"title":       ad.Title,
			"description": ad.Description,
			"price":       ad.Price,
		}).Error
		if err != nil {
			return fmt.Errorf("update advertisement: %w", err)
		}

		updated = ad
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *AdvertisementRepository) Delete(ctx context.Context, id int64, fn func(*domain.Advertisement) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec advertisementRecord
		if err := tx.First(&rec, id).Error; err != nil {
			if isNotFound(err) {
				return domain.ErrAdvertisementNotFound
			}
			return fmt.Errorf("load advertisement: %w", err)
		}

		if err := fn(rec.toDomain()); err != nil {
			return err
		}

		if err := tx.Delete(&advertisementRecord{}, id).Error; err != nil {
			return fmt.Errorf("delete advertisement: %w", err)
		}
		return nil
	})
}

func (r *AdvertisementRepository) Search(ctx context.Context, filter ports.AdvertisementFilter) ([]*domain.Advertisement, error) {
	var recs []advertisementRecord
	err := r.db.WithContext(ctx).
		Model(&advertisementRecord{}).
		Select("advertisements.*").
		Scopes(searchScope(filter)).
		Order("advertisements.created_at DESC").
		Order("advertisements.id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("search advertisements: %w", err)
	}

	ads := make([]*domain.Advertisement, 0, len(recs))
	for _, rec := range recs {
		ads = append(ads, rec.toDomain())
	}
	return ads, nil
}
