package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tintuc/newsapi/internal/api"
	"github.com/tintuc/newsapi/internal/cache"
	"github.com/tintuc/newsapi/internal/config"
	"github.com/tintuc/newsapi/internal/logger"
	"github.com/tintuc/newsapi/internal/middleware"
	"github.com/tintuc/newsapi/internal/publish"
	"github.com/tintuc/newsapi/internal/repository"
	"github.com/tintuc/newsapi/internal/upload"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: "stdout",
		Pretty: !cfg.IsProduction(),
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Msg("Starting application...")

	// Connect to MongoDB
	db, err := repository.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		log.Info().Msg("Disconnecting from MongoDB...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Client().Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()

	// Response cache: Redis when configured, in-memory otherwise
	var respCache cache.Cache
	if cfg.RedisURL != "" {
		respCache, err = cache.NewRedisCache(cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis cache")
		}
	} else {
		log.Warn().Msg("REDIS_URL not set, using in-memory cache")
		respCache = cache.NewMockCache()
	}
	defer func() {
		if err := respCache.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing cache")
		}
	}()

	// Upload store: R2 when configured, local disk otherwise
	var uploadStore upload.Store
	if cfg.R2Endpoint != "" {
		uploadStore, err = upload.NewR2Store(context.Background(), cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 upload store")
		}
	} else {
		log.Warn().Msg("R2_ENDPOINT not set, storing uploads on local disk")
		uploadStore, err = upload.NewLocalStore("./data/uploads", "/uploads")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize local upload store")
		}
	}

	// Create Fiber app with custom config
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: middleware.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(string) bool { return true },
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger())

	// Local uploads need to be reachable when R2 is not configured
	app.Static("/uploads", "./data/uploads")

	// Setup API routes
	handlers := api.NewHandlers(api.Deps{
		Config:     cfg,
		Articles:   repository.NewMongoArticleRepository(db),
		Users:      repository.NewMongoUserRepository(db),
		Categories: repository.NewMongoCategoryRepository(db),
		Cache:      respCache,
		Uploads:    uploadStore,
		Publisher:  publish.NewPublisher(cfg.PublishTimeout),
		Auth:       middleware.NewAuth(cfg),
	})
	api.SetupRoutes(app, handlers)

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
