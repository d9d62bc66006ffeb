package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"buddylist/backend/internal/auth"
	"buddylist/backend/internal/config"
	"buddylist/backend/internal/database"
	"buddylist/backend/internal/handler"
	"buddylist/backend/internal/middleware"
	"buddylist/backend/internal/repository"
	"buddylist/backend/internal/service"
	"buddylist/backend/internal/session"
	"buddylist/backend/pkg/idgen"
	"buddylist/backend/pkg/jwt"
	pkglog "buddylist/backend/pkg/log"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	// Swagger imports
	_ "buddylist/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Buddylist API
// @version         1.0
// @description     Friend relationships and presence for the Buddylist service.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	pkglog.Init(pkglog.Config{
		Level:       cfg.LogLevel,
		Pretty:      cfg.LogPretty,
		ServiceName: "buddylist",
	})
	l := pkglog.L()

	db, err := database.Connect(database.Config{
		Driver:          cfg.DatabaseDriver,
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DatabaseMaxIdleConns,
		MaxOpenConns:    cfg.DatabaseMaxOpenConns,
		ConnMaxLifetime: cfg.DatabaseConnMaxLifetime,
	}, l)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to connect to database")
	}
	l.Info().Str("driver", cfg.DatabaseDriver).Msg("database connected")

	sessions, err := session.NewStore(session.Config{
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("failed to init session store")
	}
	defer sessions.Close()

	ids, err := idgen.New(cfg.SnowflakeNode)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to init id generator")
	}

	friendRepo := repository.NewGormFriendshipRepository(db)
	statusRepo := repository.NewGormStatusRepository(db)
	userRepo := repository.NewGormUserRepository(db)

	presenceService := service.NewPresenceService(friendRepo, statusRepo, userRepo, ids)
	friendshipService := service.NewFriendshipService(friendRepo, userRepo, presenceService)
	userService := service.NewUserService(userRepo, presenceService)

	authenticator := auth.NewAuthenticator(jwt.NewManager(cfg.JWTSecret, cfg.SessionTTL), sessions)
	h := handler.NewHandler(userService, friendshipService, presenceService, authenticator, cfg.CookieSecure)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), pkglog.GinMiddleware(l))
	if cfg.RateLimitRPS > 0 {
		router.Use(middleware.RateLimit(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))
	}

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	h.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		l.Info().Str("addr", cfg.ServerAddr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// Block until SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("server forced to shutdown")
	}

	l.Info().Msg("server stopped")
}
