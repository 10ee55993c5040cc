package postgres

import (
	"time"

	"github.com/adboard/advertisement-service/internal/core/domain"
)

type userRecord struct {
	ID             int64     `gorm:"primaryKey"`
	Username       string    `gorm:"size:255;uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Role           string    `gorm:"size:16;not null;default:'user'"`
	CreatedAt      time.Time `gorm:"not null"`

	Advertisements []advertisementRecord `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

func (userRecord) TableName() string { return "users" }

type advertisementRecord struct {
	ID          int64  `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description *string
	Price       float64   `gorm:"not null"`
	AuthorID    int64     `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

func (advertisementRecord) TableName() string { return "advertisements" }

func newUserRecord(u *domain.User) userRecord {
	return userRecord{
		ID:             u.ID,
		Username:       u.Username,
		HashedPassword: u.HashedPassword,
		Role:           string(u.Role),
		CreatedAt:      u.CreatedAt,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:             r.ID,
		Username:       r.Username,
		HashedPassword: r.HashedPassword,
		Role:           domain.Role(r.Role),
		CreatedAt:      r.CreatedAt.UTC(),
	}
}

func newAdvertisementRecord(ad *domain.Advertisement) advertisementRecord {
	return advertisementRecord{
		ID:          ad.ID,
		Title:       ad.Title,
		Description: ad.Description,
		Price:       ad.Price,
		AuthorID:    ad.AuthorID,
		CreatedAt:   ad.CreatedAt,
	}
}

func (r advertisementRecord) toDomain() *domain.Advertisement {
	return &domain.Advertisement{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		AuthorID:    r.AuthorID,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}
