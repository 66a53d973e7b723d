package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Default scheduling values for a card a user has never reviewed.
const (
	// DefaultEasinessFactor is the starting easiness factor for new cards.
	DefaultEasinessFactor = 2.5

	// MinEasinessFactor is the floor the easiness factor never drops below.
	MinEasinessFactor = 1.3

	// PassQuality is the lowest quality score counted as a successful recall.
	PassQuality = 3

	// MaxQuality is the highest quality score a review can report.
	MaxQuality = 5
)

// ReviewState-specific validation errors
var (
	ErrReviewUserIDEmpty  = errors.New("review state user ID cannot be empty")
	ErrReviewCardIDEmpty  = errors.New("review state card ID cannot be empty")
	ErrInvalidInterval    = errors.New("interval must be greater than or equal to 1")
	ErrInvalidEaseFactor  = errors.New("easiness factor must be at least 1.3")
	ErrInvalidRepetitions = errors.New("repetitions must be greater than or equal to 0")
)

// ReviewState tracks a user's spaced repetition schedule for a specific card.
// It implements the SM-2 algorithm state: the invariant is that Repetitions
// is zero exactly when the card was last answered below PassQuality or has
// never been reviewed.
type ReviewState struct {
	UserID         uuid.UUID `json:"user_id"`
	CardID         uuid.UUID `json:"card_id"`
	EasinessFactor float64   `json:"easiness_factor"` // Bounded below by 1.3
	Interval       int       `json:"interval"`        // Current interval in days
	Repetitions    int       `json:"repetitions"`     // Consecutive successful reviews
	NextReviewAt   time.Time `json:"next_review_at"`  // When the card is next due
	LastReviewedAt time.Time `json:"last_reviewed_at"`
	ReviewCount    int       `json:"review_count"` // Total number of reviews, monotonic
	IsKnown        bool      `json:"is_known"`     // Last review met PassQuality
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewReviewState creates schedule state for a card the user has never seen.
// The card is due immediately.
func NewReviewState(userID, cardID uuid.UUID) (*ReviewState, error) {
	now := time.Now().UTC()
	state := &ReviewState{
		UserID:         userID,
		CardID:         cardID,
		EasinessFactor: DefaultEasinessFactor,
		Interval:       1,
		Repetitions:    0,
		NextReviewAt:   now, // Available for review immediately
		LastReviewedAt: time.Time{},
		ReviewCount:    0,
		IsKnown:        false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}

	return state, nil
}

// Validate checks if the ReviewState has valid data.
func (s *ReviewState) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrReviewUserIDEmpty
	}
	if s.CardID == uuid.Nil {
		return ErrReviewCardIDEmpty
	}
	if s.Interval < 1 {
		return ErrInvalidInterval
	}
	if s.EasinessFactor < MinEasinessFactor {
		return ErrInvalidEaseFactor
	}
	if s.Repetitions < 0 {
		return ErrInvalidRepetitions
	}
	return nil
}
