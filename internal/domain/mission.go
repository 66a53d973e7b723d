package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// MissionType determines a mission's reset window.
type MissionType string

// Possible mission types.
const (
	MissionTypeDaily   MissionType = "DAILY"
	MissionTypeMonthly MissionType = "MONTHLY"
)

// MissionCategory determines how session summaries feed a mission's counter.
type MissionCategory string

// Possible mission categories.
const (
	MissionCategoryCards    MissionCategory = "CARDS"
	MissionCategoryTime     MissionCategory = "TIME"
	MissionCategoryAccuracy MissionCategory = "ACCURACY"
)

// Mission-specific validation errors
var (
	ErrMissionProgressUserIDEmpty = errors.New("mission progress user ID cannot be empty")
	ErrMissionIDEmpty             = errors.New("mission ID cannot be empty")
	ErrInvalidMissionType         = errors.New("invalid mission type")
	ErrInvalidMissionCategory     = errors.New("invalid mission category")
)

// Mission is an immutable mission template. Progress against it is tracked
// per user and per reset window in MissionProgress.
type Mission struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        MissionType     `json:"type"`
	Category    MissionCategory `json:"category"`
	TargetValue int             `json:"target_value"`
	RewardCoins int64           `json:"reward_coins"`
}

// Validate checks if the Mission template has valid data.
func (m *Mission) Validate() error {
	if m.ID == "" {
		return ErrMissionIDEmpty
	}
	switch m.Type {
	case MissionTypeDaily, MissionTypeMonthly:
	default:
		return ErrInvalidMissionType
	}
	switch m.Category {
	case MissionCategoryCards, MissionCategoryTime, MissionCategoryAccuracy:
	default:
		return ErrInvalidMissionCategory
	}
	return nil
}

// MissionProgress is a user's counter against one mission template within
// one reset window. A (user, mission, resetAt) triple is unique: a new
// window is a new row, never an overwrite. Once IsClaimed flips to true the
// row is frozen.
type MissionProgress struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	MissionID    string    `json:"mission_id"`
	CurrentValue int       `json:"current_value"`
	IsClaimed    bool      `json:"is_claimed"`
	ResetAt      time.Time `json:"reset_at"`
}

// NewMissionProgress creates a zero-progress row for the window ending at resetAt.
func NewMissionProgress(userID uuid.UUID, missionID string, resetAt time.Time) (*MissionProgress, error) {
	progress := &MissionProgress{
		ID:           uuid.New(),
		UserID:       userID,
		MissionID:    missionID,
		CurrentValue: 0,
		IsClaimed:    false,
		ResetAt:      resetAt,
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the MissionProgress has valid data.
func (p *MissionProgress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrMissionProgressUserIDEmpty
	}
	if p.MissionID == "" {
		return ErrMissionIDEmpty
	}
	return nil
}

// SessionSummary reports one finished study session.
type SessionSummary struct {
	UserID          uuid.UUID `json:"user_id"`
	CardsStudied    int       `json:"cards_studied"`
	Accuracy        float64   `json:"accuracy"`
	DurationMinutes float64   `json:"duration_minutes"`
}

// ProgressDelta computes how much a session advances a mission's counter.
// CARDS missions accumulate cards studied, TIME missions accumulate whole
// minutes, and ACCURACY missions are instantaneous: a single qualifying
// session jumps straight to the target.
func (m *Mission) ProgressDelta(summary SessionSummary) int {
	switch m.Category {
	case MissionCategoryCards:
		return summary.CardsStudied
	case MissionCategoryTime:
		return int(math.Floor(summary.DurationMinutes))
	case MissionCategoryAccuracy:
		if summary.Accuracy >= float64(m.TargetValue) {
			return m.TargetValue
		}
		return 0
	default:
		return 0
	}
}

// ResetTime returns the end of the current reset window for the mission's
// type: the next local midnight for DAILY, the first moment of the next
// calendar month for MONTHLY.
func (m *Mission) ResetTime(now time.Time) time.Time {
	switch m.Type {
	case MissionTypeMonthly:
		return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	}
}
