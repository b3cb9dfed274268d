package chat

import (
	"context"
	"time"

	"friendbot/companion-api/internal/domain/query"
)

// Turn is one exchange unit in a user's conversation history. A turn is
// created with a null response when the user's message is accepted, and the
// response is attached once generation completes. A turn with an attached
// response is never mutated again; turns are removed only by a bulk clear.
type Turn struct {
	ID        uint
	PublicID  string
	UserID    uint
	Message   string
	Response  *string
	Metadata  map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Answered reports whether a response has been attached.
func (t *Turn) Answered() bool {
	return t.Response != nil
}

// TurnFilter contains filter options for querying turns.
type TurnFilter struct {
	UserID *uint
}

// TurnRepository defines storage operations for turns. All reads and writes
// are scoped by the owning user where a filter carries a UserID.
type TurnRepository interface {
	Create(ctx context.Context, turn *Turn) error
	Update(ctx context.Context, turn *Turn) error
	FindByID(ctx context.Context, id uint) (*Turn, error)
	FindByPublicID(ctx context.Context, publicID string) (*Turn, error)
	// RecentByUserID returns up to limit turns for the user, newest first.
	RecentByUserID(ctx context.Context, userID uint, limit int) ([]*Turn, error)
	FindByFilter(ctx context.Context, filter TurnFilter, pagination *query.Pagination) ([]*Turn, error)
	Count(ctx context.Context, filter TurnFilter) (int64, error)
	// DeleteByUserID removes every turn owned by the user and reports the count.
	DeleteByUserID(ctx context.Context, userID uint) (int64, error)
}
