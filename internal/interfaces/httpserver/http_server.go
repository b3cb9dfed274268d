package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"friendbot/companion-api/internal/config"
	infraauth "friendbot/companion-api/internal/infrastructure/auth"
	middleware "friendbot/companion-api/internal/interfaces/httpserver/middlewares"
	"friendbot/companion-api/internal/interfaces/httpserver/routes/auth"
	v1 "friendbot/companion-api/internal/interfaces/httpserver/routes/v1"
)

type HTTPServer struct {
	engine       *gin.Engine
	v1Route      *v1.V1Route
	authRoute    *auth.AuthRoute
	tokenService *infraauth.TokenService
	config       *config.Config
}

func NewHttpServer(
	v1Route *v1.V1Route,
	authRoute *auth.AuthRoute,
	tokenService *infraauth.TokenService,
	cfg *config.Config,
	log zerolog.Logger,
) *HTTPServer {
	if !config.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	server := HTTPServer{
		engine:       gin.New(),
		v1Route:      v1Route,
		authRoute:    authRoute,
		tokenService: tokenService,
		config:       cfg,
	}
	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(log))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.CORSMiddleware())

	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server.engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	return &server
}

func (httpServer *HTTPServer) Run() error {
	// Public routes (no auth required)
	root := httpServer.engine.Group("/")

	// Protected routes (auth middleware applied)
	protected := httpServer.engine.Group("/")
	protected.Use(middleware.AuthMiddleware(httpServer.tokenService))

	httpServer.authRoute.RegisterRouter(root, protected)
	httpServer.v1Route.RegisterRouter(protected)

	return httpServer.engine.Run(fmt.Sprintf(":%d", httpServer.config.HTTPPort))
}
