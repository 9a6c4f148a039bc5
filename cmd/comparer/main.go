package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/arnodenuijl/DistanceComparer-sub001/internal/config"
	"github.com/arnodenuijl/DistanceComparer-sub001/internal/db"
	"github.com/arnodenuijl/DistanceComparer-sub001/internal/pruner"
	"github.com/arnodenuijl/DistanceComparer-sub001/internal/server"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("failed to load config: %w", err))
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(fmt.Errorf("failed to create logger: %w", err))
	}

	database, err := db.New(cfg.DatabasePath, logger)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		return
	}
	defer database.Close()

	pruner.New(logger, database, cfg.HistoryRetention, cfg.PruneInterval).
		Start(context.Background())

	s := server.New(logger, cfg, database)
	if err := s.Run(); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
	}
}
