package usage

import (
	"github.com/gin-gonic/gin"

	"friendbot/companion-api/internal/interfaces/httpserver/handlers/usagehandler"
)

// UsageRoute handles token usage reporting routes.
type UsageRoute struct {
	usageHandler *usagehandler.UsageHandler
}

func NewUsageRoute(usageHandler *usagehandler.UsageHandler) *UsageRoute {
	return &UsageRoute{usageHandler: usageHandler}
}

// RegisterRouter registers usage routes on the protected group.
func (r *UsageRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/usage/me", r.usageHandler.GetMyUsage)
}
