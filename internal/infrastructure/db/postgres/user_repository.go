package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/adboard/advertisement-service/internal/core/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	rec := newUserRecord(user)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&rec).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return rec.toDomain(), nil
}

// List returns users ordered by id.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	var recs []userRecord
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]*domain.User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, rec.toDomain())
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, fn func(*domain.User) error) (*domain.User, error) {
	var updated *domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec userRecord
		if err := tx.First(&rec, id).Error; err != nil {
			if isNotFound(err) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("load user: %w", err)
		}

		user := rec.toDomain()
		if err := fn(user); err != nil {
			return err
		}

		err := tx.Model(&rec).Updates(map[string]interface{}{
			"username":        user.Username,
			"hashed_password": user.HashedPassword,
			"role":            string(user.Role),
		}).Error
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrUserExists
			}
			return fmt.Errorf("update user: %w", err)
		}

		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the user's advertisements and then the user. The explicit
// advertisement delete keeps the cascade independent of the FK setting.
func (r *UserRepository) Delete(ctx context.Context, id int64, fn func(*domain.User) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec userRecord
		if err := tx.First(&rec, id).Error; err != nil {
			if isNotFound(err) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("load user: %w", err)
		}

		if err := fn(rec.toDomain()); err != nil {
			return err
		}

		if err := tx.Where("author_id = ?", id).Delete(&advertisementRecord{}).Error; err != nil {
			return fmt.Errorf("delete user advertisements: %w", err)
		}
		if err := tx.Delete(&userRecord{}, id).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}
