package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"friendbot/companion-api/internal/config"
	"friendbot/companion-api/internal/domain/chat"
	"friendbot/companion-api/internal/domain/journal"
	"friendbot/companion-api/internal/infrastructure/auth"
	"friendbot/companion-api/internal/infrastructure/crontab"
	"friendbot/companion-api/internal/infrastructure/database"
	"friendbot/companion-api/internal/infrastructure/database/repository"
	"friendbot/companion-api/internal/infrastructure/database/transaction"
	"friendbot/companion-api/internal/infrastructure/inference"
	"friendbot/companion-api/internal/infrastructure/journalindex"
	"friendbot/companion-api/internal/infrastructure/logger"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideLogger builds the service logger from configuration.
func ProvideLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.LogFormat)
}

// ProvideTokenService provides the JWT issuer and validator
func ProvideTokenService(cfg *config.Config, log zerolog.Logger) (*auth.TokenService, error) {
	return auth.NewTokenService(cfg.JWTSecret, cfg.TokenIssuer, cfg.TokenTTL, cfg.AuthClockSkew, log)
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.DatabaseURL, cfg.DBPostgresqlRead1DSN)
	if err != nil {
		return nil, err
	}

	// Run migrations if AUTO_MIGRATE is enabled
	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.AutoMigrate(db); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideTransactionDatabase provides a transaction database wrapper
func ProvideTransactionDatabase(db *gorm.DB) *transaction.Database {
	return transaction.NewDatabase(db)
}

// ProvideGenerator provides the completion backend for the chat pipeline.
func ProvideGenerator(cfg *config.Config, log zerolog.Logger) (chat.Generator, error) {
	return inference.NewOpenAIGenerator(cfg, log)
}

// ProvideJournalIndexer returns the similarity index client, or nil when
// the index is disabled.
func ProvideJournalIndexer(cfg *config.Config) journal.Indexer {
	if !cfg.JournalIndexEnabled {
		return nil
	}
	return journalindex.NewClient(cfg.JournalIndexURL, cfg.JournalIndexTimeout)
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Logger
	ProvideLogger,

	// Database
	ProvideDatabase,
	ProvideTransactionDatabase,

	// Repositories
	repository.RepositoryProvider,

	// Generation backend
	ProvideGenerator,

	// Auth tokens
	ProvideTokenService,

	// Journal index
	ProvideJournalIndexer,

	// Crontab for index reconciliation
	crontab.NewCrontab,
)
