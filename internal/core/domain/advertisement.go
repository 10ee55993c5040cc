package domain

import (
	"strings"
	"time"
)

// Advertisement is a classified ad owned by the user who created it.
type Advertisement struct {
	ID          int64
	Title       string
	Description *string // nil when the author left it out
	Price       float64
	AuthorID    int64
	CreatedAt   time.Time
}

// AdvertisementPatch carries a partial update for an advertisement.
// AuthorID and CreatedAt are immutable and have no patch field.
type AdvertisementPatch struct {
	Title       Optional[string]
	Description Optional[string]
	Price       Optional[float64]
}

// Empty reports whether no field is present.
func (p AdvertisementPatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Price.Set
}

// Validate rejects present fields that would leave the advertisement invalid.
// Description is nullable; title and price are not.
func (p AdvertisementPatch) Validate() error {
	if p.Title.Set && (p.Title.Null || strings.TrimSpace(p.Title.Value) == "") {
		return NewValidationError("title", "must not be empty")
	}
	if p.Price.Set && p.Price.Null {
		return NewValidationError("price", "must not be null")
	}
	return nil
}

// Apply overwrites every present field of ad.
func (p AdvertisementPatch) Apply(ad *Advertisement) {
	if p.Title.Set {
		ad.Title = p.Title.Value
	}
	if p.Description.Set {
		ad.Description = p.Description.Ptr()
	}
	if p.Price.Set {
		ad.Price = p.Price.Value
	}
}
