package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MiluneSadakaChrispinus/househunter/internal/app"
	"github.com/MiluneSadakaChrispinus/househunter/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := app.Run(cfg, logger); err != nil {
		logger.Fatal("app", zap.Error(err))
	}
}
