package dbschema

import (
	"friendbot/companion-api/internal/domain/tokenusage"
	"friendbot/companion-api/internal/infrastructure/database"
)

// The token usage model carries its own gorm tags; only registration
// for auto-migration lives here.
func init() {
	database.RegisterSchemaForAutoMigrate(tokenusage.TokenUsage{})
}
