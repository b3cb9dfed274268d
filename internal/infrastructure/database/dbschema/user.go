package dbschema

import (
	"time"

	"friendbot/companion-api/internal/domain/user"
	"friendbot/companion-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

// User represents a persisted account with locally stored credentials.
type User struct {
	BaseModel
	Username          string     `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email             string     `gorm:"type:varchar(320);not null;uniqueIndex"`
	PasswordHash      string     `gorm:"type:varchar(255);not null"`
	PersonaPreference string     `gorm:"type:varchar(16);not null;default:'neutral'"`
	LastLoginAt       *time.Time `gorm:"index"`
}

// NewSchemaUser converts a domain user into a schema instance.
func NewSchemaUser(u *user.User) *User {
	if u == nil {
		return nil
	}

	return &User{
		BaseModel: BaseModel{
			ID:        u.ID,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		Username:          u.Username,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		PersonaPreference: string(u.PersonaPreference),
		LastLoginAt:       u.LastLoginAt,
	}
}

// EtoD converts a schema user back to the domain representation.
func (u *User) EtoD() *user.User {
	if u == nil {
		return nil
	}

	return &user.User{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		PersonaPreference: user.PersonaPreference(u.PersonaPreference),
		LastLoginAt:       u.LastLoginAt,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}
