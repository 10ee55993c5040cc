package handler

import (
	"github.com/adboard/advertisement-service/internal/core/domain"
	"github.com/adboard/advertisement-service/internal/core/ports"
)

// --- Request → Service input ---

func toCreateAdvertisementInput(req createAdvertisementRequest, idempotencyKey string) ports.CreateAdvertisementInput {
	in := ports.CreateAdvertisementInput{
		Title:          req.Title,
		Description:    req.Description,
		IdempotencyKey: idempotencyKey,
	}
	if req.Price != nil {
		in.Price = *req.Price
	}
	return in
}

func toAdvertisementPatch(req updateAdvertisementRequest) domain.AdvertisementPatch {
	return domain.AdvertisementPatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	}
}

func toSearchInput(q searchAdvertisementsQuery) ports.SearchAdvertisementsInput {
	author := q.Author
	if author == "" {
		author = q.UsernameAuthor
	}
	return ports.SearchAdvertisementsInput{
		Title:       q.Title,
		Description: q.Description,
		PriceMin:    q.PriceMin,
		PriceMax:    q.PriceMax,
		Author:      author,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
}

// --- Domain → Response ---

func toAdvertisementResponse(ad *domain.Advertisement) advertisementResponse {
	return advertisementResponse{
		ID:          ad.ID,
		Title:       ad.Title,
		Description: ad.Description,
		Price:       ad.Price,
		AuthorID:    ad.AuthorID,
		CreatedAt:   ad.CreatedAt,
	}
}

func toAdvertisementResponses(ads []*domain.Advertisement) []advertisementResponse {
	out := make([]advertisementResponse, 0, len(ads))
	for _, ad := range ads {
		out = append(out, toAdvertisementResponse(ad))
	}
	return out
}
