package handler

import (
	"github.com/adboard/advertisement-service/internal/core/domain"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type updateUserRequest struct {
	Username domain.Optional[string]      `json:"username" swaggertype:"string"`
	Password domain.Optional[string]      `json:"password" swaggertype:"string"`
	Role     domain.Optional[domain.Role] `json:"role" swaggertype:"string" enums:"user,admin"`
}

// userResponse is the public view of a user. The password hash and role are
// never exposed.
type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toUserPatch(req updateUserRequest) domain.UserPatch {
	return domain.UserPatch{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	}
}
