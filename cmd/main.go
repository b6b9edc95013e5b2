package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/incidentline/authcore/config"
	"github.com/incidentline/authcore/internal/handler"
	"github.com/incidentline/authcore/internal/middleware"
	"github.com/incidentline/authcore/internal/repository"
	"github.com/incidentline/authcore/internal/router"
	"github.com/incidentline/authcore/internal/service"
	"github.com/incidentline/authcore/pkg/database"
	"github.com/incidentline/authcore/pkg/logger"
	"github.com/incidentline/authcore/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	if err := logger.InitLogger(cfg.App.Environment); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.GetLogger()

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := database.Seed(db); err != nil {
		log.Fatal("Failed to seed database", zap.Error(err))
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Warn("Redis unavailable, throttling falls back to in-process windows", zap.Error(err))
		redisClient = &redis.Client{}
	}
	defer redisClient.Close()

	if err := middleware.RegisterCustomValidators(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	clientRoleRepo := repository.NewClientRoleRepository(db)
	tokenRepo := repository.NewAccessTokenRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Services
	codec, err := service.NewTokenCodec(cfg.Session.Secret, cfg.App.Name, cfg.Session.TTL)
	if err != nil {
		log.Fatal("Invalid session configuration", zap.Error(err))
	}
	issuer := service.NewSessionIssuer(codec, service.DefaultCookieVariants(), cfg.Session.CookieDomain, cfg.BaseURLIsSecure())
	auditService := service.NewAuditService(auditRepo)
	authService := service.NewAuthService(userRepo, tokenRepo, issuer, auditService)
	temporaryService := service.NewTemporaryAccessService(tokenRepo, auditService, cfg.App.BaseURL, cfg.Session.TemporaryTTL)
	secureLinkService := service.NewSecureLinkService(tokenRepo, auditService, cfg.App.BaseURL, cfg.Session.MaxLinkHours)
	userService := service.NewUserService(userRepo, clientRoleRepo, auditService)

	// Middleware
	authMw := middleware.NewAuthMiddleware(issuer, userRepo, clientRoleRepo)
	limiter := middleware.NewRateLimiter(redisClient, "ratelimit")

	// Handlers
	authHandler := handler.NewAuthHandler(authService, temporaryService, issuer)
	secureLinkHandler := handler.NewSecureLinkHandler(secureLinkService)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	r := router.NewRouter(authHandler, secureLinkHandler, userHandler, healthHandler, authMw, limiter, cfg)
	engine := r.SetupRoutes()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.App.Timeout,
		WriteTimeout: cfg.App.Timeout,
	}

	go func() {
		log.Info("Server starting",
			zap.String("port", cfg.App.Port),
			zap.String("environment", cfg.App.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
