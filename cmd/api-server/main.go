package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"bookhub/database"
	"bookhub/internal/catalog"
	"bookhub/internal/config"
	"bookhub/internal/http-api/handler"
	"bookhub/internal/http-api/middleware"
	"bookhub/internal/http-api/repository"
	"bookhub/internal/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// Redis is optional; without it the filter listing hits the database.
	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	itemRepo := repository.NewItemRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	requestRepo := repository.NewRequestRepository(db)

	// Catalog source and vocabulary store
	source := catalog.NewSource(cfg.DataPath)
	vocabs := catalog.NewVocabStore(cfg.DataPath)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	progressService := service.NewProgressService(progressRepo)
	catalogService := service.NewCatalogService(itemRepo, cache, cfg.CacheTTL)
	importService := service.NewImportService(source, vocabs, itemRepo, catalogService, logger)
	requestService := service.NewRequestService(requestRepo)

	isAdmin := middleware.AdminChecker(cfg.AdminEmails)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	progressHandler := handler.NewProgressHandler(progressService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	importHandler := handler.NewImportHandler(importService, isAdmin)
	requestHandler := handler.NewRequestHandler(requestService)

	if cfg.GoEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	authHandler.RegisterRoutes(api.Group("/auth"))

	authed := api.Group("", middleware.AuthMiddleware(authService))
	catalogHandler.RegisterRoutes(authed)
	progressHandler.RegisterRoutes(authed.Group("/reading"))
	requestHandler.RegisterRoutes(authed.Group("/requests"))
	importHandler.RegisterRoutes(authed.Group("/import"), middleware.RequireAdmin(isAdmin))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
