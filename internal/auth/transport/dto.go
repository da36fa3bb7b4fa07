// Package transport defines the auth module's request/response DTOs.
package transport

import (
	"time"

	"colabatr_backend/internal/auth/repository"
)

// MagicLinkRequest is the body of POST /auth/magic-link.
type MagicLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SessionResponse carries an issued session token plus the account.
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the public shape of a user record.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	IsSeller  bool      `json:"isSeller"`
	CreatedAt time.Time `json:"createdAt"`
}

// EntitlementsRequest is the body of PUT /admin/users/:id/entitlements.
type EntitlementsRequest struct {
	IsAdmin  *bool `json:"isAdmin" validate:"required"`
	IsSeller *bool `json:"isSeller" validate:"required"`
}

// NewUserResponse maps a repository user to its public shape.
func NewUserResponse(user repository.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		IsAdmin:   user.IsAdmin,
		IsSeller:  user.IsSeller,
		CreatedAt: user.CreatedAt,
	}
}
