package journal

import (
	"time"

	domainjournal "friendbot/companion-api/internal/domain/journal"
	"friendbot/companion-api/internal/utils/functional"
)

// JournalResponse is the public view of one entry.
type JournalResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JournalListResponse is a paginated entry listing.
type JournalListResponse struct {
	Journals []JournalResponse `json:"journals"`
	Total    int64             `json:"total"`
}

func NewJournalResponse(entry *domainjournal.Journal) JournalResponse {
	return JournalResponse{
		ID:        entry.PublicID,
		Title:     entry.Title,
		Content:   entry.Content,
		Tags:      entry.Tags,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}

func NewJournalListResponse(entries []*domainjournal.Journal, total int64) JournalListResponse {
	return JournalListResponse{
		Journals: functional.Map(entries, NewJournalResponse),
		Total:    total,
	}
}
