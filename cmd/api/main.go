package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizquest/internal/adapter"
	"quizquest/internal/cache"
	"quizquest/internal/config"
	"quizquest/internal/database"
	"quizquest/internal/domain"
	"quizquest/internal/handler"
	"quizquest/internal/logger"
	"quizquest/internal/middleware"
	"quizquest/internal/repository"
	"quizquest/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database and apply migrations
	db, err := database.NewSQLiteDB(cfg.DB)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis is optional; without it the server runs uncached.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("RedisCacheAdapter initialized", zap.String("address", cfg.Redis.Address))
	} else {
		appLogger.Warn("No Redis address configured, running without cache")
	}

	// Initialize repositories
	challengeRepository := repository.NewSQLXChallengeRepository(db)
	attemptRepository := repository.NewSQLXAttemptRepository(db)
	userRepository := repository.NewSQLXUserRepository(db)

	// Initialize services
	challengeService := service.NewChallengeService(challengeRepository, cacheAdapter, cfg.Cache.ChallengeTTL)

	resultCacheService := service.NewNoopResultCache()
	if cacheAdapter != nil {
		resultCacheService = service.NewResultCacheService(cacheAdapter, cfg.Cache.ResultTTL)
	}

	attemptService := service.NewAttemptService(challengeRepository, attemptRepository, userRepository, resultCacheService)
	userService := service.NewUserService(userRepository, attemptRepository)

	// Initialize handlers
	challengeHandler := handler.NewChallengeHandler(challengeService)
	attemptHandler := handler.NewAttemptHandler(attemptService, resultCacheService)
	userHandler := handler.NewUserHandler(userService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())
	app.Use(middleware.OptionalIdentity(cfg.Auth.JWTSecret))

	// API group
	apiGroup := app.Group("/api")

	apiGroup.Get("/challenges", challengeHandler.ListChallenges)
	apiGroup.Post("/challenges", challengeHandler.CreateChallenge)
	apiGroup.Get("/challenges/:id", challengeHandler.GetChallenge)

	apiGroup.Post("/attempts", attemptHandler.SubmitAttempt)
	apiGroup.Get("/attempts/:id", attemptHandler.GetAttemptResult)

	apiGroup.Get("/users/:uid", userHandler.GetProfile)
	apiGroup.Get("/leaderboard", userHandler.GetLeaderboard)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
