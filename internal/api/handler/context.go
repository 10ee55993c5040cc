package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/adboard/advertisement-service/internal/api/middleware"
	"github.com/adboard/advertisement-service/internal/core/domain"
)

// currentUser returns the user resolved by the Auth middleware. A route
// that forgot the middleware fails closed with 401.
func currentUser(c echo.Context) (*domain.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.NewValidationError("id", "must be an integer")
	}
	return id, nil
}

type messageResponse struct {
	Message string `json:"message"`
}
