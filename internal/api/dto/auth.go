package dto

import "time"

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest represents a refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         *UserDTO `json:"user"`
}

// UserDTO is the public view of a user
type UserDTO struct {
	ID              int64      `json:"id"`
	Email           string     `json:"email"`
	Username        string     `json:"username,omitempty"`
	Role            string     `json:"role"`
	PlanType        string     `json:"planType"`
	IsEarlyUser     bool       `json:"isEarlyUser"`
	EarlyUserNumber *int       `json:"earlyUserNumber,omitempty"`
	CurrentStreak   int        `json:"currentStreak"`
	LongestStreak   int        `json:"longestStreak"`
	CreatedAt       time.Time  `json:"createdAt"`
	LastActivity    *time.Time `json:"lastActivity,omitempty"`
}
