package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/truongtuankiet1/AIFlashCard/migrations"
)

// slogGooseLogger adapts the goose logger interface to use slog
type slogGooseLogger struct{}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

// runMigrations applies any pending embedded migrations at startup.
func (app *application) runMigrations() error {
	start := time.Now()
	log := app.logger.With(slog.String("component", "migrations"))

	goose.SetLogger(&slogGooseLogger{})
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	log.Info("Applying pending migrations")
	if err := goose.Up(app.db, "."); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	version, err := goose.GetDBVersion(app.db)
	if err != nil {
		log.Warn("Failed to read migration version", "error", err)
	} else {
		log.Info("Migrations applied",
			"version", version,
			"duration_ms", time.Since(start).Milliseconds())
	}

	return nil
}
