package router

import (
	"github.com/gin-gonic/gin"
	"github.com/incidentline/authcore/config"
	"github.com/incidentline/authcore/internal/handler"
	"github.com/incidentline/authcore/internal/middleware"
)

type Router struct {
	authHandler       *handler.AuthHandler
	secureLinkHandler *handler.SecureLinkHandler
	userHandler       *handler.UserHandler
	healthHandler     *handler.HealthHandler

	authMw  *middleware.AuthMiddleware
	limiter *middleware.RateLimiter
	Config  *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	secureLink *handler.SecureLinkHandler,
	user *handler.UserHandler,
	health *handler.HealthHandler,
	authMw *middleware.AuthMiddleware,
	limiter *middleware.RateLimiter,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:       auth,
		secureLinkHandler: secureLink,
		userHandler:       user,
		healthHandler:     health,
		authMw:            authMw,
		limiter:           limiter,
		Config:            cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestContextMiddleware())
	router.Use(middleware.CORS())

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.HealthCheck)

		r.authRoutes(api)
		r.secureLinkRoutes(api)
		r.userRoutes(api)
	}

	return router
}
