package handler

import (
	"time"

	"github.com/adboard/advertisement-service/internal/core/domain"
)

// --- Request / Response types ---

type createAdvertisementRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"required"`
}

// updateAdvertisementRequest distinguishes an absent field from an explicit
// null. Only present fields are applied.
type updateAdvertisementRequest struct {
	Title       domain.Optional[string]  `json:"title" swaggertype:"string"`
	Description domain.Optional[string]  `json:"description" swaggertype:"string"`
	Price       domain.Optional[float64] `json:"price" swaggertype:"number"`
}

type advertisementResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	AuthorID    int64     `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// searchAdvertisementsQuery documents the query string of GET /advertisement.
// author and username_author are aliases.
type searchAdvertisementsQuery struct {
	Title          string   `query:"title"`
	Description    string   `query:"description"`
	PriceMin       *float64 `query:"price_min"`
	PriceMax       *float64 `query:"price_max"`
	Author         string   `query:"author"`
	UsernameAuthor string   `query:"username_author"`
	Limit          int      `query:"limit"`
	Offset         int      `query:"offset"`
}
