package model

import (
	"encoding/json"
	"time"
)

// Role is a user's authorisation level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a storefront account. PasswordHash is never serialised.
type User struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	PasswordHash   string          `json:"-"`
	Phone          string          `json:"phone,omitempty"`
	Role           Role            `json:"role"`
	IsDeleted      bool            `json:"isDeleted"`
	Cart           json.RawMessage `json:"cart,omitempty"`
	ProfilePicture string          `json:"profilePicture,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// RegisterRequest represents the request payload for creating an account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest represents the request payload for signing in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// ProfileUpdate is a partial profile update.
type ProfileUpdate struct {
	Name           *string `json:"name,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// RoleUpdate changes a user's role.
type RoleUpdate struct {
	Role Role `json:"role" validate:"required,oneof=user admin"`
}
