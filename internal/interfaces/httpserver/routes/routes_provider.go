package routes

import (
	"github.com/google/wire"

	"friendbot/companion-api/internal/application/audit"
	"friendbot/companion-api/internal/interfaces/httpserver/handlers/authhandler"
	"friendbot/companion-api/internal/interfaces/httpserver/handlers/chathandler"
	"friendbot/companion-api/internal/interfaces/httpserver/handlers/journalhandler"
	"friendbot/companion-api/internal/interfaces/httpserver/handlers/usagehandler"
	"friendbot/companion-api/internal/interfaces/httpserver/routes/auth"
	v1 "friendbot/companion-api/internal/interfaces/httpserver/routes/v1"
	"friendbot/companion-api/internal/interfaces/httpserver/routes/v1/chat"
	"friendbot/companion-api/internal/interfaces/httpserver/routes/v1/journal"
	"friendbot/companion-api/internal/interfaces/httpserver/routes/v1/usage"
)

var RouteProvider = wire.NewSet(
	// Handlers
	audit.NewAccountAuditLogger,
	authhandler.NewAuthHandler,
	chathandler.NewChatHandler,
	journalhandler.NewJournalHandler,
	usagehandler.NewUsageHandler,

	// Routes
	auth.NewAuthRoute,
	v1.NewV1Route,
	chat.NewChatRoute,
	journal.NewJournalRoute,
	usage.NewUsageRoute,
)
