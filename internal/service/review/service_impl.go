package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain/srs"
	"github.com/truongtuankiet1/AIFlashCard/internal/platform/logger"
	"github.com/truongtuankiet1/AIFlashCard/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	db         *sql.DB
	states     store.ReviewStateStore
	srsService srs.Service
	logger     *slog.Logger
}

// NewService creates a new review Service implementation.
func NewService(
	db *sql.DB,
	states store.ReviewStateStore,
	srsService srs.Service,
	logger *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if states == nil {
		panic("states cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		db:         db,
		states:     states,
		srsService: srsService,
		logger:     logger.With(slog.String("component", "review_service")),
	}
}

// SubmitReview implements Service.SubmitReview.
func (s *serviceImpl) SubmitReview(ctx context.Context, userID uuid.UUID, event ReviewEvent) (*domain.ReviewState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil || event.CardID == uuid.Nil {
		return nil, fmt.Errorf("%w: user and card IDs are required", ErrInvalidEvent)
	}

	log.Debug("processing review",
		slog.String("user_id", userID.String()),
		slog.String("card_id", event.CardID.String()),
		slog.Int("quality", event.Quality))

	now := time.Now().UTC()
	var updated *domain.ReviewState

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		states := s.states.WithTx(tx)

		state, err := states.GetForUpdate(ctx, userID, event.CardID)
		if err != nil {
			if !errors.Is(err, store.ErrReviewStateNotFound) {
				return fmt.Errorf("failed to get review state: %w", err)
			}
			// First exposure of the card to this user: create state lazily.
			state, err = domain.NewReviewState(userID, event.CardID)
			if err != nil {
				return err
			}
			if err := states.Create(ctx, state); err != nil {
				return fmt.Errorf("failed to create review state: %w", err)
			}
		}

		next, err := s.srsService.Next(state, event.Quality, now)
		if err != nil {
			return err
		}

		if err := states.Update(ctx, next); err != nil {
			return fmt.Errorf("failed to update review state: %w", err)
		}

		updated = next
		return nil
	})
	if err != nil {
		log.Error("review submission failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", event.CardID.String()))
		return nil, &ServiceError{Operation: "submit_review", Message: "failed to process review", Err: err}
	}

	log.Debug("review processed",
		slog.String("user_id", userID.String()),
		slog.String("card_id", event.CardID.String()),
		slog.Int("interval_days", updated.Interval),
		slog.Int("repetitions", updated.Repetitions))
	return updated, nil
}

// DueCount implements Service.DueCount.
func (s *serviceImpl) DueCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.states.CountDue(ctx, userID, time.Now().UTC())
}
