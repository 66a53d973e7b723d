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

// PostgresReviewStateStore implements the store.ReviewStateStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStateStore creates a new PostgreSQL implementation of the ReviewStateStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresReviewStateStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStateStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStateStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_state_store")),
	}
}

// Ensure PostgresReviewStateStore implements store.ReviewStateStore interface
var _ store.ReviewStateStore = (*PostgresReviewStateStore)(nil)

// WithTx implements store.ReviewStateStore.WithTx
func (s *PostgresReviewStateStore) WithTx(tx *sql.Tx) store.ReviewStateStore {
	return &PostgresReviewStateStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ReviewStateStore.Create
// It saves a new review state row, handling domain validation.
// Returns store.ErrDuplicate if state already exists for the (user, card) pair.
func (s *PostgresReviewStateStore) Create(ctx context.Context, state *domain.ReviewState) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := state.Validate(); err != nil {
		log.Warn("review state validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", state.UserID.String()),
			slog.String("card_id", state.CardID.String()))
		return err
	}

	query := `
		INSERT INTO review_states (
			user_id, card_id, easiness_factor, interval_days, repetitions,
			next_review_at, last_reviewed_at, review_count, is_known,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		state.UserID,
		state.CardID,
		state.EasinessFactor,
		state.Interval,
		state.Repetitions,
		state.NextReviewAt,
		nullableTime(state.LastReviewedAt),
		state.ReviewCount,
		state.IsKnown,
		state.CreatedAt,
		state.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create review state",
			slog.String("error", err.Error()),
			slog.String("user_id", state.UserID.String()),
			slog.String("card_id", state.CardID.String()))
		return MapError(err)
	}

	return nil
}

// Get implements store.ReviewStateStore.Get
func (s *PostgresReviewStateStore) Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.ReviewState, error) {
	return s.get(ctx, userID, cardID, false)
}

// GetForUpdate implements store.ReviewStateStore.GetForUpdate
// It locks the row with SELECT FOR UPDATE so the read-modify-write of a
// review runs without interleaving concurrent reviews of the same card.
func (s *PostgresReviewStateStore) GetForUpdate(ctx context.Context, userID, cardID uuid.UUID) (*domain.ReviewState, error) {
	return s.get(ctx, userID, cardID, true)
}

func (s *PostgresReviewStateStore) get(ctx context.Context, userID, cardID uuid.UUID, forUpdate bool) (*domain.ReviewState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, card_id, easiness_factor, interval_days, repetitions,
		       next_review_at, last_reviewed_at, review_count, is_known,
		       created_at, updated_at
		FROM review_states
		WHERE user_id = $1 AND card_id = $2
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var state domain.ReviewState
	var lastReviewed sql.NullTime
	err := s.db.QueryRowContext(ctx, query, userID, cardID).Scan(
		&state.UserID,
		&state.CardID,
		&state.EasinessFactor,
		&state.Interval,
		&state.Repetitions,
		&state.NextReviewAt,
		&lastReviewed,
		&state.ReviewCount,
		&state.IsKnown,
		&state.CreatedAt,
		&state.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrReviewStateNotFound
		}
		log.Error("failed to get review state",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return nil, MapError(err)
	}

	if lastReviewed.Valid {
		state.LastReviewedAt = lastReviewed.Time
	}

	return &state, nil
}

// Update implements store.ReviewStateStore.Update
// Returns store.ErrReviewStateNotFound if the row does not exist.
func (s *PostgresReviewStateStore) Update(ctx context.Context, state *domain.ReviewState) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := state.Validate(); err != nil {
		log.Warn("review state validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", state.UserID.String()),
			slog.String("card_id", state.CardID.String()))
		return err
	}

	query := `
		UPDATE review_states
		SET easiness_factor = $1, interval_days = $2, repetitions = $3,
		    next_review_at = $4, last_reviewed_at = $5, review_count = $6,
		    is_known = $7, updated_at = $8
		WHERE user_id = $9 AND card_id = $10
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		state.EasinessFactor,
		state.Interval,
		state.Repetitions,
		state.NextReviewAt,
		nullableTime(state.LastReviewedAt),
		state.ReviewCount,
		state.IsKnown,
		state.UpdatedAt,
		state.UserID,
		state.CardID,
	)
	if err != nil {
		log.Error("failed to update review state",
			slog.String("error", err.Error()),
			slog.String("user_id", state.UserID.String()),
			slog.String("card_id", state.CardID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, "review state")
}

// CountDue implements store.ReviewStateStore.CountDue
func (s *PostgresReviewStateStore) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM review_states
		WHERE user_id = $1 AND next_review_at <= $2
	`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, now).Scan(&count); err != nil {
		log.Error("failed to count due cards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}

	return count, nil
}

// nullableTime converts a zero time to a NULL column value.
func nullableTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
