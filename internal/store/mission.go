package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
)

// MissionStore defines the interface for mission templates and per-window
// progress persistence.
type MissionStore interface {
	// ListMissions returns all mission templates.
	ListMissions(ctx context.Context) ([]*domain.Mission, error)

	// GetMission retrieves a mission template by ID.
	// Returns ErrMissionNotFound if no such template exists.
	GetMission(ctx context.Context, missionID string) (*domain.Mission, error)

	// EnsureProgress creates a zero progress row for (user, mission, resetAt)
	// if one does not already exist. Existing rows, including claimed ones,
	// are left untouched, so the call is idempotent within a window.
	EnsureProgress(ctx context.Context, progress *domain.MissionProgress) error

	// ListOpenProgress returns the user's progress rows whose window is
	// still valid (resetAt after now) and which have not been claimed,
	// locked FOR UPDATE so concurrent session completions serialize.
	ListOpenProgress(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.MissionProgress, error)

	// ListCurrentProgress returns all of the user's progress rows for
	// currently-valid windows, claimed or not, for status rendering.
	ListCurrentProgress(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.MissionProgress, error)

	// UpdateProgress writes a progress row's current value and claimed flag.
	// Rows already claimed are never updated; the one-way false→true
	// transition happens exactly once.
	// Returns ErrMissionProgressNotFound if the row does not exist.
	UpdateProgress(ctx context.Context, progress *domain.MissionProgress) error

	// WithTx returns a new MissionStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) MissionStore
}
