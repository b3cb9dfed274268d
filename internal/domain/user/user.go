// Package user provides account domain models and behaviors.
package user

import (
	"context"
	"time"
)

// PersonaPreference selects which friend persona replies to the user.
type PersonaPreference string

const (
	PersonaMale    PersonaPreference = "male"
	PersonaFemale  PersonaPreference = "female"
	PersonaNeutral PersonaPreference = "neutral"
)

// Valid reports whether the preference is one of the known personas.
func (p PersonaPreference) Valid() bool {
	switch p {
	case PersonaMale, PersonaFemale, PersonaNeutral:
		return true
	}
	return false
}

// User models a registered account with locally stored credentials.
type User struct {
	ID                uint
	Username          string
	Email             string
	PasswordHash      string
	PersonaPreference PersonaPreference
	LastLoginAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Repository defines storage operations for users.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}
