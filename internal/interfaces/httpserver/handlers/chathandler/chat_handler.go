package chathandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"friendbot/companion-api/internal/domain/chat"
	"friendbot/companion-api/internal/domain/user"
	"friendbot/companion-api/internal/infrastructure/metrics"
	"friendbot/companion-api/internal/interfaces/httpserver/middlewares"
	"friendbot/companion-api/internal/interfaces/httpserver/requests"
	chatrequests "friendbot/companion-api/internal/interfaces/httpserver/requests/chat"
	"friendbot/companion-api/internal/interfaces/httpserver/responses"
	chatresponses "friendbot/companion-api/internal/interfaces/httpserver/responses/chat"
	"friendbot/companion-api/internal/utils/platformerrors"
)

// ChatHandler handles conversational exchange and history requests.
type ChatHandler struct {
	chatService *chat.Service
	userService *user.Service
}

func NewChatHandler(chatService *chat.Service, userService *user.Service) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		userService: userService,
	}
}

func (h *ChatHandler) resolveUser(c *gin.Context) (*user.User, error) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		return nil, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeUnauthorized,
			"missing principal",
			nil,
			"7e2b9f4a-1c6d-4e83-b0a5-9d3f7c2e8b61",
		)
	}
	return h.userService.GetByID(c.Request.Context(), principal.UserID)
}

// SendMessage runs one exchange: the message is recorded, a reply is
// generated against recent history, and both sides are returned.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	usr, err := h.resolveUser(c)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	var req chatrequests.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleError(c, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation,
			"invalid message payload",
			err,
			"9f3a6c1e-4d2b-4f57-8e90-b1c5a7d3f246",
		))
		return
	}

	result, err := h.chatService.SendMessage(c.Request.Context(), usr, req.Message)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	metrics.TurnsCreatedTotal.WithLabelValues(string(usr.PersonaPreference)).Inc()
	c.JSON(http.StatusOK, chatresponses.NewSendMessageResponse(result))
}

// ListHistory returns the caller's stored exchanges, newest first.
func (h *ChatHandler) ListHistory(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.HandleErrorWithStatus(c, http.StatusUnauthorized, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeUnauthorized,
			"missing principal",
			nil,
			"2d8e5b7f-9a1c-4d64-83f0-c6b2e9a4d715",
		))
		return
	}

	pagination, err := requests.GetPaginationFromQuery(c)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	turns, total, err := h.chatService.ListHistory(c.Request.Context(), principal.UserID, pagination)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, chatresponses.NewHistoryResponse(turns, total))
}

// GetTurn returns a single stored exchange by its public id.
func (h *ChatHandler) GetTurn(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.HandleErrorWithStatus(c, http.StatusUnauthorized, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeUnauthorized,
			"missing principal",
			nil,
			"a1d7c3f9-6e28-4b05-9d4a-c8b2e5f0a176",
		))
		return
	}

	turn, err := h.chatService.GetTurn(c.Request.Context(), principal.UserID, c.Param("id"))
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, chatresponses.NewTurnResponse(turn))
}

// ClearHistory deletes every stored exchange for the caller.
func (h *ChatHandler) ClearHistory(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.HandleErrorWithStatus(c, http.StatusUnauthorized, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeUnauthorized,
			"missing principal",
			nil,
			"b5f2c8d1-3e7a-4906-a4b8-d9e1f6c3a572",
		))
		return
	}

	deleted, err := h.chatService.ClearHistory(c.Request.Context(), principal.UserID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, chatresponses.ClearHistoryResponse{Deleted: deleted})
}

// GetPreference returns the persona currently selected by the caller.
func (h *ChatHandler) GetPreference(c *gin.Context) {
	usr, err := h.resolveUser(c)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, chatresponses.PreferenceResponse{
		PersonaPreference: string(usr.PersonaPreference),
	})
}

// UpdatePreference switches the persona used for future exchanges.
func (h *ChatHandler) UpdatePreference(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.HandleErrorWithStatus(c, http.StatusUnauthorized, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeUnauthorized,
			"missing principal",
			nil,
			"e7a4d2b9-5c1f-4e38-90d6-a3b8f5c7e124",
		))
		return
	}

	var req chatrequests.UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleError(c, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation,
			"invalid preference payload",
			err,
			"4c9e1f7b-8d3a-4b52-a6e0-f2d5c8b1a937",
		))
		return
	}

	usr, err := h.userService.UpdatePersonaPreference(
		c.Request.Context(),
		principal.UserID,
		user.PersonaPreference(req.PersonaPreference),
	)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, chatresponses.PreferenceResponse{
		PersonaPreference: string(usr.PersonaPreference),
	})
}
