package dto

import "github.com/MetinovAdik/kopuro-frontend/internal/domain"

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a worker registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"omitempty,min=2"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// UserResponse is the profile shape returned to the browser
type UserResponse struct {
	ID                 int64       `json:"id"`
	Email              string      `json:"email"`
	FullName           string      `json:"full_name,omitempty"`
	IsActive           bool        `json:"is_active"`
	IsConfirmedByAdmin bool        `json:"is_confirmed_by_admin"`
	Role               domain.Role `json:"role"`
}

// NewUserResponse converts a domain user to its response shape
func NewUserResponse(user *domain.User) *UserResponse {
	return &UserResponse{
		ID:                 user.ID,
		Email:              user.Email,
		FullName:           user.FullName,
		IsActive:           user.IsActive,
		IsConfirmedByAdmin: user.IsConfirmedByAdmin,
		Role:               user.Role,
	}
}

// LoginResponse carries the profile and the area the browser should open
type LoginResponse struct {
	User     *UserResponse `json:"user"`
	Redirect string        `json:"redirect"`
}
