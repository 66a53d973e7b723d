// Package progression implements the progression/economy engine: it turns a
// finished study session into coin and experience grants, pet level
// transitions, and mission progress, all inside one unit of work.
package progression

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
)

// Anti-cheat thresholds: more than AntiCheatMaxCards cards finished in
// under AntiCheatMinMinutes minutes is implausible and earns nothing.
const (
	AntiCheatMinMinutes = 0.5
	AntiCheatMaxCards   = 5
)

// StarterPetID is the pet granted automatically to users who own none.
const StarterPetID = "pet_cat"

// RewardSummary reports what one session completion granted.
type RewardSummary struct {
	CoinsEarned       int64    `json:"coins_earned"`
	ExpEarned         int64    `json:"exp_earned"`
	LeveledUp         bool     `json:"leveled_up"`
	NewLevel          int      `json:"new_level"`
	CompletedMissions []string `json:"completed_missions"`
	PetDialogue       string   `json:"pet_dialogue,omitempty"`
	TotalCoins        int64    `json:"total_coins"`
}

// MissionStatus is one mission's progress for status rendering.
type MissionStatus struct {
	ID           uuid.UUID              `json:"id"`
	MissionID    string                 `json:"mission_id"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Type         domain.MissionType     `json:"type"`
	Category     domain.MissionCategory `json:"category"`
	CurrentValue int                    `json:"current_value"`
	TargetValue  int                    `json:"target_value"`
	RewardCoins  int64                  `json:"reward_coins"`
	IsClaimed    bool                   `json:"is_claimed"`
}

// Status is the full gamification state returned to the UI.
type Status struct {
	Coins       int64                `json:"coins"`
	TotalExp    int64                `json:"total_exp"`
	ActivePet   *domain.PetInstance  `json:"active_pet,omitempty"`
	OwnedPetIDs []string             `json:"owned_pet_ids"`
	Missions    []MissionStatus      `json:"missions"`
}

// InteractionResult reports the outcome of a pet interaction.
type InteractionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Service is the progression/economy engine's entry point.
type Service interface {
	// CompleteSession validates the session summary against the anti-cheat
	// rules and, if plausible, grants coins and experience, advances the
	// active pet, and applies mission progress with auto-claimed rewards.
	// Everything runs in a single transaction: either the whole reward
	// lands or none of it does.
	//
	// An implausible session is not an error: rewards are zeroed and a
	// corrective dialogue is returned.
	CompleteSession(ctx context.Context, summary domain.SessionSummary) (*RewardSummary, error)

	// EnsureMissions idempotently creates progress rows for every mission
	// template in the user's current reset windows. Rows from past or
	// claimed windows are never touched.
	EnsureMissions(ctx context.Context, userID uuid.UUID) error

	// Status ensures missions are initialized, grants the starter pet to
	// users who own none, re-activates a pet when none is active, and
	// returns the user's gamification state.
	Status(ctx context.Context, userID uuid.UUID) (*Status, error)

	// Interact performs a pet interaction (FEED costs coins, PAT is free).
	// The debit and the stat changes commit together or not at all.
	Interact(ctx context.Context, userID uuid.UUID, action domain.PetAction) (*InteractionResult, error)
}

// Common error types for the progression service.
var (
	// ErrInvalidSummary indicates a malformed session summary (negative
	// counts, accuracy outside [0,1]).
	ErrInvalidSummary = errors.New("invalid session summary")

	// ErrNoActivePet indicates the user has no active pet to interact with.
	ErrNoActivePet = errors.New("no active pet")
)

// ServiceError wraps errors from the progression service with operation
// context for errors.As-based branching.
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
