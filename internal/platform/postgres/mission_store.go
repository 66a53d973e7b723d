package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
	"github.com/truongtuankiet1/AIFlashCard/internal/platform/logger"
	"github.com/truongtuankiet1/AIFlashCard/internal/store"
)

// PostgresMissionStore implements the store.MissionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMissionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMissionStore creates a new PostgreSQL implementation of the MissionStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresMissionStore(db store.DBTX, logger *slog.Logger) *PostgresMissionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMissionStore{
		db:     db,
		logger: logger.With(slog.String("component", "mission_store")),
	}
}

// Ensure PostgresMissionStore implements store.MissionStore interface
var _ store.MissionStore = (*PostgresMissionStore)(nil)

// WithTx implements store.MissionStore.WithTx
func (s *PostgresMissionStore) WithTx(tx *sql.Tx) store.MissionStore {
	return &PostgresMissionStore{
		db:     tx,
		logger: s.logger,
	}
}

// ListMissions implements store.MissionStore.ListMissions
func (s *PostgresMissionStore) ListMissions(ctx context.Context) ([]*domain.Mission, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, type, category, target_value, reward_coins
		FROM missions
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list missions", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var missions []*domain.Mission
	for rows.Next() {
		var m domain.Mission
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Type, &m.Category, &m.TargetValue, &m.RewardCoins); err != nil {
			return nil, MapError(err)
		}
		missions = append(missions, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return missions, nil
}

// GetMission implements store.MissionStore.GetMission
func (s *PostgresMissionStore) GetMission(ctx context.Context, missionID string) (*domain.Mission, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, type, category, target_value, reward_coins
		FROM missions
		WHERE id = $1
	`

	var m domain.Mission
	err := s.db.QueryRowContext(ctx, query, missionID).Scan(
		&m.ID, &m.Title, &m.Description, &m.Type, &m.Category, &m.TargetValue, &m.RewardCoins,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrMissionNotFound
		}
		log.Error("failed to get mission",
			slog.String("error", err.Error()),
			slog.String("mission_id", missionID))
		return nil, MapError(err)
	}

	return &m, nil
}

// EnsureProgress implements store.MissionStore.EnsureProgress
// ON CONFLICT DO NOTHING against the (user, mission, reset_at) unique
// constraint makes initialization idempotent: calling it twice in the same
// window leaves exactly one row, and rows from past or claimed windows are
// never touched.
func (s *PostgresMissionStore) EnsureProgress(ctx context.Context, progress *domain.MissionProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("mission progress validation failed",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("mission_id", progress.MissionID))
		return err
	}

	query := `
		INSERT INTO mission_progress (id, user_id, mission_id, current_value, is_claimed, reset_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, mission_id, reset_at) DO NOTHING
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		progress.ID,
		progress.UserID,
		progress.MissionID,
		progress.CurrentValue,
		progress.IsClaimed,
		progress.ResetAt,
	)
	if err != nil {
		log.Error("failed to ensure mission progress",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("mission_id", progress.MissionID))
		return MapError(err)
	}

	return nil
}

// ListOpenProgress implements store.MissionStore.ListOpenProgress
// Only rows in a currently-valid window and not yet claimed are returned,
// locked FOR UPDATE so concurrent session completions serialize on them.
func (s *PostgresMissionStore) ListOpenProgress(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.MissionProgress, error) {
	query := `
		SELECT id, user_id, mission_id, current_value, is_claimed, reset_at
		FROM mission_progress
		WHERE user_id = $1 AND reset_at > $2 AND NOT is_claimed
		ORDER BY mission_id
		FOR UPDATE
	`
	return s.list(ctx, query, userID, now)
}

// ListCurrentProgress implements store.MissionStore.ListCurrentProgress
func (s *PostgresMissionStore) ListCurrentProgress(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.MissionProgress, error) {
	query := `
		SELECT id, user_id, mission_id, current_value, is_claimed, reset_at
		FROM mission_progress
		WHERE user_id = $1 AND reset_at > $2
		ORDER BY mission_id
	`
	return s.list(ctx, query, userID, now)
}

func (s *PostgresMissionStore) list(ctx context.Context, query string, userID uuid.UUID, now time.Time) ([]*domain.MissionProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, userID, now)
	if err != nil {
		log.Error("failed to list mission progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var progresses []*domain.MissionProgress
	for rows.Next() {
		var p domain.MissionProgress
		if err := rows.Scan(&p.ID, &p.UserID, &p.MissionID, &p.CurrentValue, &p.IsClaimed, &p.ResetAt); err != nil {
			return nil, MapError(err)
		}
		progresses = append(progresses, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return progresses, nil
}

// UpdateProgress implements store.MissionStore.UpdateProgress
// The WHERE clause refuses to touch rows already claimed, making the
// false→true transition one-way at the storage level as well.
func (s *PostgresMissionStore) UpdateProgress(ctx context.Context, progress *domain.MissionProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE mission_progress
		SET current_value = $1, is_claimed = $2
		WHERE id = $3 AND NOT is_claimed
	`
	result, err := s.db.ExecContext(ctx, query, progress.CurrentValue, progress.IsClaimed, progress.ID)
	if err != nil {
		log.Error("failed to update mission progress",
			slog.String("error", err.Error()),
			slog.String("progress_id", progress.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, "mission progress")
}
