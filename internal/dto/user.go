package dto

import (
	"github.com/finsight/finsight-backend/internal/models"
)

type CreateUserRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Balance  *float64 `json:"balance"`
	Avatar   *string  `json:"avatar"`
}

// UpdateUserRequest patches only the fields present in the body.
type UpdateUserRequest struct {
	Name     *string  `json:"name"`
	Email    *string  `json:"email"`
	Password *string  `json:"password"`
	Balance  *float64 `json:"balance"`
	Avatar   *string  `json:"avatar"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type DeleteUserResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}
