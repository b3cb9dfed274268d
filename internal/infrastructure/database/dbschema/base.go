// Package dbschema holds the gorm persistence models and their
// conversions to and from the domain types.
package dbschema

import "time"

// BaseModel carries the surrogate key and timestamps shared by all tables.
type BaseModel struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
