// Package review implements the review-event entry point: one card review
// updates that card's spaced-repetition schedule.
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
)

// ReviewEvent represents one card review performed by a user.
// Quality below 0 or above 5 is clamped by the scheduler, not rejected:
// the reviewing UI is the only producer of this value, so out-of-range is
// a caller bug rather than a user-facing error.
type ReviewEvent struct {
	CardID  uuid.UUID `json:"card_id"`
	Quality int       `json:"quality"`
}

// Service processes review events against the spaced-repetition scheduler.
type Service interface {
	// SubmitReview applies one review to the user's schedule state for the
	// card. State is created lazily on first exposure; the read-modify-write
	// runs in a single transaction.
	//
	// Returns the updated state, or an error from validation or the store.
	SubmitReview(ctx context.Context, userID uuid.UUID, event ReviewEvent) (*domain.ReviewState, error)

	// DueCount reports how many of the user's cards are currently due.
	DueCount(ctx context.Context, userID uuid.UUID) (int, error)
}

// Common error types for the review service.
var (
	// ErrInvalidEvent indicates a malformed review event.
	ErrInvalidEvent = errors.New("invalid review event")
)

// ServiceError wraps errors from the review service with operation context,
// so consumers can differentiate failures with errors.As instead of string
// matching.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
