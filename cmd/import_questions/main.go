package main

import (
	"context"
	"flag"
	"log"
	"time"

	"quizquest/internal/config"
	"quizquest/internal/database"
	"quizquest/internal/importer"
	"quizquest/internal/logger"
	"quizquest/internal/repository"
	"quizquest/internal/service"

	"go.uber.org/zap"
)

func main() {
	amount := flag.Int("amount", 10, "questions per difficulty batch")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLiteDB(cfg.DB)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	challengeRepository := repository.NewSQLXChallengeRepository(db)
	challengeService := service.NewChallengeService(challengeRepository, nil, 0)

	imp := importer.NewImporter(importer.NewClient("", nil), challengeService)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ids, err := imp.ImportChallenges(ctx, *amount)
	if err != nil {
		appLogger.Fatal("Import failed", zap.Error(err))
	}
	appLogger.Info("Import complete", zap.Strings("challenge_ids", ids))
}
