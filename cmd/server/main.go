// Package main implements the entry point for the vocabulary progression
// API server: spaced-repetition scheduling plus the coin/pet/mission
// economy around study sessions.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/truongtuankiet1/AIFlashCard/internal/config"
	"github.com/truongtuankiet1/AIFlashCard/internal/platform/logger"
)

func main() {
	// A missing .env file is fine; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, connects to the
// database, runs migrations, and wires the application dependencies.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := app.runMigrations(); err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return app, nil
}
