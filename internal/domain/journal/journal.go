// Package journal implements the journaling feature: private per-user
// entries with text search and an optional similarity index.
package journal

import (
	"context"
	"time"

	"friendbot/companion-api/internal/domain/query"
)

// Journal is one journal entry owned by a single user.
type Journal struct {
	ID        uint
	PublicID  string
	UserID    uint
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter narrows repository lookups. Nil fields are ignored.
type Filter struct {
	UserID *uint
	// Keyword matches title or content, case-insensitively.
	Keyword *string
	// Tag matches entries carrying the exact tag.
	Tag *string
}

// Repository persists journal entries. Find methods return nil, nil when
// no row matches.
type Repository interface {
	Create(ctx context.Context, entry *Journal) error
	Update(ctx context.Context, entry *Journal) error
	Delete(ctx context.Context, id uint) error
	FindByPublicID(ctx context.Context, publicID string) (*Journal, error)
	FindByFilter(ctx context.Context, filter Filter, pagination *query.Pagination) ([]*Journal, error)
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Indexer mirrors journal entries into an external similarity index.
// Implementations must tolerate the index being unavailable.
type Indexer interface {
	Index(ctx context.Context, entry *Journal) error
	Remove(ctx context.Context, publicID string) error
	Similar(ctx context.Context, userID uint, text string, limit int) ([]string, error)
}
