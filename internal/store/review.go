package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
)

// ReviewStateStore defines the interface for spaced-repetition schedule persistence.
type ReviewStateStore interface {
	// Create saves a new review state row.
	// It handles domain validation internally.
	// Returns ErrDuplicate if state already exists for the (user, card) pair.
	Create(ctx context.Context, state *domain.ReviewState) error

	// Get retrieves review state by the combination of user ID and card ID.
	// Returns ErrReviewStateNotFound if the row does not exist.
	// NOTE: This method does NOT provide any row locking; use GetForUpdate
	// inside a transaction when a read-modify-write follows.
	Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.ReviewState, error)

	// GetForUpdate retrieves review state with a row-level lock using
	// SELECT FOR UPDATE. Use within a transaction when the row will be
	// updated, so concurrent reviews of the same card serialize.
	// Returns ErrReviewStateNotFound if the row does not exist.
	GetForUpdate(ctx context.Context, userID, cardID uuid.UUID) (*domain.ReviewState, error)

	// Update modifies an existing review state row.
	// The userID and cardID fields identify the record to update.
	// Returns ErrReviewStateNotFound if the row does not exist.
	Update(ctx context.Context, state *domain.ReviewState) error

	// CountDue returns how many of the user's cards are due at or before now.
	CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)

	// WithTx returns a new ReviewStateStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ReviewStateStore
}
