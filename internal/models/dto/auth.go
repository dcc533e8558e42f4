package dto

import "github.com/hongminglow/attendance-be/internal/models"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token,omitempty"`
	User    models.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
