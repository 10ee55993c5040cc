package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adboard/advertisement-service/internal/api/metrics"
	"github.com/adboard/advertisement-service/internal/core/domain"
	"github.com/adboard/advertisement-service/internal/core/ports"
	"github.com/adboard/advertisement-service/internal/core/service"
)

const (
	headerIdempotencyKey     = "Idempotency-Key"
	headerIdempotentReplayed = "Idempotent-Replayed"
)

// AdvertisementHandler handles HTTP requests for advertisement operations.
type AdvertisementHandler struct {
	service ports.AdvertisementService
}

func NewAdvertisementHandler(service ports.AdvertisementService) *AdvertisementHandler {
	return &AdvertisementHandler{service: service}
}

// Create handles POST /advertisement.
//
// @Summary      Create an advertisement
// @Tags         advertisements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                      false  "Replays the earlier result for a repeated key"
// @Param        body             body      createAdvertisementRequest  true   "Advertisement"
// @Success      201              {object}  advertisementResponse
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Failure      422              {object}  map[string]string
// @Router       /advertisement [post]
func (h *AdvertisementHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createAdvertisementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	key := c.Request().Header.Get(headerIdempotencyKey)
	result, err := h.service.CreateAdvertisement(c.Request().Context(), actor, toCreateAdvertisementInput(req, key))
	if err != nil {
		return err
	}

	switch {
	case result.AlreadyExisted:
		metrics.IdempotencyTotal.WithLabelValues("replay").Inc()
		c.Response().Header().Set(headerIdempotentReplayed, "true")
	case key != "":
		metrics.IdempotencyTotal.WithLabelValues("new").Inc()
		metrics.AdvertisementsCreatedTotal.Inc()
	default:
		metrics.AdvertisementsCreatedTotal.Inc()
	}

	return c.JSON(http.StatusCreated, toAdvertisementResponse(result.Advertisement))
}

// Get handles GET /advertisement/:id.
//
// @Summary      Get an advertisement
// @Tags         advertisements
// @Produce      json
// @Param        id   path      int  true  "Advertisement ID"
// @Success      200  {object}  advertisementResponse
// @Failure      404  {object}  map[string]string
// @Router       /advertisement/{id} [get]
func (h *AdvertisementHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ad, err := h.service.GetAdvertisement(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdvertisementResponse(ad))
}

// Update handles PATCH /advertisement/:id. Absent fields are left alone;
// "description": null clears the description.
//
// @Summary      Update an advertisement
// @Tags         advertisements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                         true  "Advertisement ID"
// @Param        body  body      updateAdvertisementRequest  true  "Fields to change"
// @Success      200   {object}  advertisementResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /advertisement/{id} [patch]
func (h *AdvertisementHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateAdvertisementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ad, err := h.service.UpdateAdvertisement(c.Request().Context(), actor, id, toAdvertisementPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdvertisementResponse(ad))
}

// Delete handles DELETE /advertisement/:id.
//
// @Summary      Delete an advertisement
// @Tags         advertisements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Advertisement ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /advertisement/{id} [delete]
func (h *AdvertisementHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteAdvertisement(c.Request().Context(), actor, id); err != nil {
		return err
	}

	metrics.AdvertisementsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Advertisement deleted successfully"})
}

// Search handles GET /advertisement.
//
// @Summary      Search advertisements
// @Description  All filters are optional and combine with AND. Results are newest first.
// @Tags         advertisements
// @Produce      json
// @Param        title            query     string  false  "Case-insensitive title substring"
// @Param        description      query     string  false  "Case-insensitive description substring"
// @Param        price_min        query     number  false  "Inclusive lower price bound"
// @Param        price_max        query     number  false  "Inclusive upper price bound"
// @Param        author           query     string  false  "Case-insensitive author username substring"
// @Param        username_author  query     string  false  "Alias of author"
// @Param        limit            query     int     false  "Page size (1-100)"  default(50)
// @Param        offset           query     int     false  "Rows to skip"       default(0)
// @Success      200              {array}   advertisementResponse
// @Failure      400              {object}  map[string]string
// @Failure      422              {object}  map[string]string
// @Router       /advertisement [get]
func (h *AdvertisementHandler) Search(c echo.Context) error {
	q, err := bindSearchQuery(c)
	if err != nil {
		return err
	}

	ads, err := h.service.SearchAdvertisements(c.Request().Context(), toSearchInput(q))
	if err != nil {
		return err
	}

	metrics.SearchResultSize.Observe(float64(len(ads)))
	return c.JSON(http.StatusOK, toAdvertisementResponses(ads))
}

// bindSearchQuery reads the search query string. Unparsable values are a
// 400; well-formed but out-of-range paging is a validation error.
func bindSearchQuery(c echo.Context) (searchAdvertisementsQuery, error) {
	q := searchAdvertisementsQuery{Limit: service.DefaultPageLimit}
	var priceMin, priceMax float64

	err := echo.QueryParamsBinder(c).
		String("title", &q.Title).
		String("description", &q.Description).
		String("author", &q.Author).
		String("username_author", &q.UsernameAuthor).
		Float64("price_min", &priceMin).
		Float64("price_max", &priceMax).
		Int("limit", &q.Limit).
		Int("offset", &q.Offset).
		BindError()
	if err != nil {
		var be *echo.BindingError
		if errors.As(err, &be) {
			return q, echo.NewHTTPError(http.StatusBadRequest, "invalid query parameter: "+be.Field)
		}
		return q, echo.NewHTTPError(http.StatusBadRequest, "invalid query string")
	}

	if c.QueryParam("price_min") != "" {
		q.PriceMin = &priceMin
	}
	if c.QueryParam("price_max") != "" {
		q.PriceMax = &priceMax
	}

	if q.Limit < 1 || q.Limit > service.MaxPageLimit {
		return q, domain.NewValidationError("limit", "must be between 1 and 100")
	}
	if q.Offset < 0 {
		return q, domain.NewValidationError("offset", "must not be negative")
	}
	return q, nil
}
