package dbschema

import (
	"encoding/json"

	"gorm.io/datatypes"

	"friendbot/companion-api/internal/domain/chat"
	"friendbot/companion-api/internal/infrastructure/database"
	"friendbot/companion-api/internal/infrastructure/logger"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Turn{})
}

// Turn holds one exchange: the user message and, once generation
// succeeds, the companion's response on the same row.
type Turn struct {
	BaseModel
	PublicID string         `gorm:"size:64;not null;uniqueIndex"`
	UserID   uint           `gorm:"not null;index:idx_turns_user_created,priority:1"`
	Message  string         `gorm:"type:text;not null"`
	Response *string        `gorm:"type:text"`
	Metadata datatypes.JSON `gorm:"type:jsonb"`
}

// NewSchemaTurn converts a domain turn into a schema instance.
func NewSchemaTurn(t *chat.Turn) *Turn {
	if t == nil {
		return nil
	}

	var metadataJSON datatypes.JSON
	if len(t.Metadata) > 0 {
		if data, err := json.Marshal(t.Metadata); err == nil {
			metadataJSON = datatypes.JSON(data)
		}
	}

	return &Turn{
		BaseModel: BaseModel{
			ID:        t.ID,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		},
		PublicID: t.PublicID,
		UserID:   t.UserID,
		Message:  t.Message,
		Response: t.Response,
		Metadata: metadataJSON,
	}
}

// EtoD converts a schema turn back to the domain representation.
func (t *Turn) EtoD() *chat.Turn {
	if t == nil {
		return nil
	}

	var metadata map[string]string
	if len(t.Metadata) > 0 {
		if err := json.Unmarshal(t.Metadata, &metadata); err != nil {
			log := logger.GetLogger()
			log.Warn().Err(err).Uint("turn_id", t.ID).Msg("failed to decode turn metadata")
			metadata = nil
		}
	}

	return &chat.Turn{
		ID:        t.ID,
		PublicID:  t.PublicID,
		UserID:    t.UserID,
		Message:   t.Message,
		Response:  t.Response,
		Metadata:  metadata,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
