package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/truongtuankiet1/AIFlashCard/internal/config"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain/srs"
	"github.com/truongtuankiet1/AIFlashCard/internal/platform/postgres"
	"github.com/truongtuankiet1/AIFlashCard/internal/service/progression"
	"github.com/truongtuankiet1/AIFlashCard/internal/service/review"
	"github.com/truongtuankiet1/AIFlashCard/internal/service/shop"
)

// application holds the server's wired dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	reviewService      review.Service
	progressionService progression.Service
	shopService        shop.Service
}

// newApplication connects to the database and wires stores, services,
// and handlers together.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("database URL is empty: check your configuration")
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	accountStore := postgres.NewPostgresAccountStore(db, logger)
	reviewStore := postgres.NewPostgresReviewStateStore(db, logger)
	petStore := postgres.NewPostgresPetStore(db, logger)
	missionStore := postgres.NewPostgresMissionStore(db, logger)
	shopStore := postgres.NewPostgresShopStore(db, logger)

	srsService := srs.NewDefaultService()

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		reviewService: review.NewService(
			db,
			reviewStore,
			srsService,
			logger,
		),
		progressionService: progression.NewService(
			db,
			accountStore,
			petStore,
			missionStore,
			cfg.Rewards,
			logger,
		),
		shopService: shop.NewService(
			db,
			accountStore,
			petStore,
			shopStore,
			cfg.Promo,
			logger,
		),
	}

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
}
