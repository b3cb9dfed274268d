package chat

import (
	"github.com/gin-gonic/gin"

	"friendbot/companion-api/internal/interfaces/httpserver/handlers/chathandler"
)

// ChatRoute handles conversational exchange routes.
type ChatRoute struct {
	chatHandler *chathandler.ChatHandler
}

func NewChatRoute(chatHandler *chathandler.ChatHandler) *ChatRoute {
	return &ChatRoute{chatHandler: chatHandler}
}

// RegisterRouter registers chat routes on the protected group.
func (r *ChatRoute) RegisterRouter(router gin.IRouter) {
	chat := router.Group("/chat")
	chat.POST("/send", r.chatHandler.SendMessage)
	chat.GET("/history", r.chatHandler.ListHistory)
	chat.GET("/history/:id", r.chatHandler.GetTurn)
	chat.DELETE("/history", r.chatHandler.ClearHistory)
	chat.GET("/preferences", r.chatHandler.GetPreference)
	chat.PUT("/preferences", r.chatHandler.UpdatePreference)
}
