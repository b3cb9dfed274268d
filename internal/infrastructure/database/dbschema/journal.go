package dbschema

import (
	"github.com/lib/pq"

	"friendbot/companion-api/internal/domain/journal"
	"friendbot/companion-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Journal{})
}

// Journal represents a persisted journal entry.
type Journal struct {
	BaseModel
	PublicID string         `gorm:"size:64;not null;uniqueIndex"`
	UserID   uint           `gorm:"not null;index"`
	Title    string         `gorm:"type:varchar(255);not null"`
	Content  string         `gorm:"type:text;not null"`
	Tags     pq.StringArray `gorm:"type:text[]"`
}

// NewSchemaJournal converts a domain entry into a schema instance.
func NewSchemaJournal(j *journal.Journal) *Journal {
	if j == nil {
		return nil
	}

	return &Journal{
		BaseModel: BaseModel{
			ID:        j.ID,
			CreatedAt: j.CreatedAt,
			UpdatedAt: j.UpdatedAt,
		},
		PublicID: j.PublicID,
		UserID:   j.UserID,
		Title:    j.Title,
		Content:  j.Content,
		Tags:     pq.StringArray(j.Tags),
	}
}

// EtoD converts a schema entry back to the domain representation.
func (j *Journal) EtoD() *journal.Journal {
	if j == nil {
		return nil
	}

	return &journal.Journal{
		ID:        j.ID,
		PublicID:  j.PublicID,
		UserID:    j.UserID,
		Title:     j.Title,
		Content:   j.Content,
		Tags:      []string(j.Tags),
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}
