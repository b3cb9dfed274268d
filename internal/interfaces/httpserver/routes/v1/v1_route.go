package v1

import (
	"github.com/gin-gonic/gin"

	"friendbot/companion-api/internal/interfaces/httpserver/routes/v1/chat"
	"friendbot/companion-api/internal/interfaces/httpserver/routes/v1/journal"
	"friendbot/companion-api/internal/interfaces/httpserver/routes/v1/usage"
)

// V1Route groups every versioned route under /v1.
type V1Route struct {
	chat    *chat.ChatRoute
	journal *journal.JournalRoute
	usage   *usage.UsageRoute
}

func NewV1Route(
	chat *chat.ChatRoute,
	journal *journal.JournalRoute,
	usage *usage.UsageRoute,
) *V1Route {
	return &V1Route{
		chat:    chat,
		journal: journal,
		usage:   usage,
	}
}

// RegisterRouter registers every v1 route on the protected group.
func (r *V1Route) RegisterRouter(protectedRouter gin.IRouter) {
	v1Group := protectedRouter.Group("/v1")
	r.chat.RegisterRouter(v1Group)
	r.journal.RegisterRouter(v1Group)
	r.usage.RegisterRouter(v1Group)
}
