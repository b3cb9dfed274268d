package journal

import (
	"github.com/gin-gonic/gin"

	"friendbot/companion-api/internal/interfaces/httpserver/handlers/journalhandler"
)

// JournalRoute handles journal entry routes.
type JournalRoute struct {
	journalHandler *journalhandler.JournalHandler
}

func NewJournalRoute(journalHandler *journalhandler.JournalHandler) *JournalRoute {
	return &JournalRoute{journalHandler: journalHandler}
}

// RegisterRouter registers journal routes on the protected group.
func (r *JournalRoute) RegisterRouter(router gin.IRouter) {
	journals := router.Group("/journals")
	journals.POST("", r.journalHandler.Create)
	journals.GET("", r.journalHandler.List)
	journals.POST("/similar", r.journalHandler.Similar)
	journals.GET("/:id", r.journalHandler.Get)
	journals.PATCH("/:id", r.journalHandler.Update)
	journals.DELETE("/:id", r.journalHandler.Delete)
}
