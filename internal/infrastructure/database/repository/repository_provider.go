package repository

import (
	"friendbot/companion-api/internal/infrastructure/database/repository/journalrepo"
	"friendbot/companion-api/internal/infrastructure/database/repository/turnrepo"
	"friendbot/companion-api/internal/infrastructure/database/repository/usagerepo"
	"friendbot/companion-api/internal/infrastructure/database/repository/userrepo"

	"github.com/google/wire"
)

var RepositoryProvider = wire.NewSet(
	userrepo.NewUserGormRepository,
	turnrepo.NewTurnGormRepository,
	journalrepo.NewJournalGormRepository,
	usagerepo.NewUsageGormRepository,
)
