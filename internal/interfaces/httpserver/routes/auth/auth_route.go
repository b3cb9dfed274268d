package auth

import (
	"github.com/gin-gonic/gin"

	"friendbot/companion-api/internal/interfaces/httpserver/handlers/authhandler"
)

// AuthRoute handles account and session routes.
type AuthRoute struct {
	authHandler *authhandler.AuthHandler
}

func NewAuthRoute(authHandler *authhandler.AuthHandler) *AuthRoute {
	return &AuthRoute{authHandler: authHandler}
}

// RegisterRouter registers auth routes on the public and protected groups.
func (a *AuthRoute) RegisterRouter(router gin.IRouter, protectedRouter gin.IRouter) {
	router.POST("/auth/register", a.authHandler.Register)
	router.POST("/auth/login", a.authHandler.Login)

	protectedRouter.GET("/auth/me", a.authHandler.Me)
	protectedRouter.PATCH("/auth/me", a.authHandler.UpdateProfile)
}
