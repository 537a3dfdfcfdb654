package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"servicehub/cmd"
	"servicehub/internal/data/repository"
	"servicehub/internal/wire"
	"servicehub/pkg/backend"
	"servicehub/pkg/database"
	"servicehub/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Apply migrations before the pool is opened
	if err := database.Migrate(config.Database.MigrationsPath, config.Database); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)
	api := backend.NewClient(config.Backend.BaseURL, config.Backend.Timeout, logger)

	// Wire all dependencies
	app, err := wire.Wiring(repos, api, config, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}
	defer app.Close()

	logger.Info("Starting HTTP server",
		zap.String("port", config.App.Port),
		zap.String("backend", config.Backend.BaseURL),
	)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
