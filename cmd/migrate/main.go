package main

import (
	"flag"
	"log"

	"quizquest/internal/config"
	"quizquest/internal/database"
	"quizquest/internal/logger"

	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "roll back all migrations instead of applying them")
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

	if *down {
		if err := database.RollbackMigrations(db); err != nil {
			appLogger.Fatal("Rollback failed", zap.Error(err))
		}
		appLogger.Info("Migrations rolled back", zap.String("db_path", cfg.DB.Path))
		return
	}

	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Migration failed", zap.Error(err))
	}
	appLogger.Info("Migrations applied", zap.String("db_path", cfg.DB.Path))
}
