package auth

import (
	"time"

	"friendbot/companion-api/internal/domain/user"
)

// UserResponse is the public view of an account. The password hash
// never leaves the domain layer.
type UserResponse struct {
	ID                uint       `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	PersonaPreference string     `json:"persona_preference"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// TokenResponse is returned from login.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

func NewUserResponse(usr *user.User) UserResponse {
	return UserResponse{
		ID:                usr.ID,
		Username:          usr.Username,
		Email:             usr.Email,
		PersonaPreference: string(usr.PersonaPreference),
		LastLoginAt:       usr.LastLoginAt,
		CreatedAt:         usr.CreatedAt,
	}
}

func NewTokenResponse(token string, expiresAt time.Time, usr *user.User) TokenResponse {
	return TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        NewUserResponse(usr),
	}
}
