package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Pet progression constants.
const (
	// LevelExpBase scales the per-level experience threshold:
	// the experience needed to leave a level is level² × LevelExpBase.
	LevelExpBase = 100

	// StatMin and StatMax bound mood and hunger. Affection is unbounded.
	StatMin = 0
	StatMax = 100

	// LevelUpMoodBoost and LevelUpAffectionBoost are granted once per level gained.
	LevelUpMoodBoost      = 20
	LevelUpAffectionBoost = 5

	// SessionMoodBoost is the small mood bump for a study session that does
	// not produce a level-up.
	SessionMoodBoost = 5
)

// PetAction is an interaction verb a user can perform on their active pet.
type PetAction string

// The full interaction vocabulary. Anything else is ErrInvalidAction.
const (
	PetActionFeed PetAction = "FEED"
	PetActionPat  PetAction = "PAT"
)

// Effects of the interaction actions.
const (
	FeedCost          = 50
	FeedHungerBoost   = 30
	FeedMoodBoost     = 10
	FeedAffectionGain = 2
	PatMoodBoost      = 5
	PatAffectionGain  = 1
)

// PetInstance-specific validation errors
var (
	ErrPetUserIDEmpty  = errors.New("pet instance user ID cannot be empty")
	ErrPetIDEmpty      = errors.New("pet instance pet ID cannot be empty")
	ErrInvalidPetLevel = errors.New("pet level must be greater than or equal to 1")
	ErrInvalidPetExp   = errors.New("pet experience must be greater than or equal to 0")
)

// Pet is reference data describing a purchasable companion.
type Pet struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Archetype string `json:"archetype"`
	Image     string `json:"image"`
}

// PetInstance is a pet owned by a user. At most one instance per user is
// active at any time; activation is exclusive and enforced both in the
// service layer and by a partial unique index in the schema.
type PetInstance struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	PetID        string          `json:"pet_id"`
	Level        int             `json:"level"`
	Experience   int             `json:"experience"`
	IsActive     bool            `json:"is_active"`
	Mood         int             `json:"mood"`
	Hunger       int             `json:"hunger"`
	Affection    int             `json:"affection"`
	ActiveOutfit json.RawMessage `json:"active_outfit,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewPetInstance creates a level-1 instance of a pet for a user.
// New pets start inactive; activation is a separate, exclusive operation.
func NewPetInstance(userID uuid.UUID, petID string) (*PetInstance, error) {
	now := time.Now().UTC()
	instance := &PetInstance{
		ID:         uuid.New(),
		UserID:     userID,
		PetID:      petID,
		Level:      1,
		Experience: 0,
		IsActive:   false,
		Mood:       StatMax,
		Hunger:     StatMax,
		Affection:  0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := instance.Validate(); err != nil {
		return nil, err
	}

	return instance, nil
}

// Validate checks if the PetInstance has valid data.
func (p *PetInstance) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrPetUserIDEmpty
	}
	if p.PetID == "" {
		return ErrPetIDEmpty
	}
	if p.Level < 1 {
		return ErrInvalidPetLevel
	}
	if p.Experience < 0 {
		return ErrInvalidPetExp
	}
	return nil
}

// LevelThreshold returns the experience required to leave the given level.
func LevelThreshold(level int) int {
	return level * level * LevelExpBase
}

// ApplyExperience adds an experience delta to the pet and resolves any
// level-ups by repeated subtraction, so one large grant can cross several
// thresholds. Each level gained also grants the flat mood/affection boost.
// Returns the number of levels gained. Mood and hunger are clamped inside
// this function; no intermediate unclamped state is ever observable.
func (p *PetInstance) ApplyExperience(delta int) int {
	if delta <= 0 {
		return 0
	}

	total := p.Experience + delta
	levelsGained := 0
	for total >= LevelThreshold(p.Level) {
		total -= LevelThreshold(p.Level)
		p.Level++
		levelsGained++
	}
	p.Experience = total

	if levelsGained > 0 {
		p.Mood = ClampStat(p.Mood + levelsGained*LevelUpMoodBoost)
		p.Affection += levelsGained * LevelUpAffectionBoost
	} else {
		p.Mood = ClampStat(p.Mood + SessionMoodBoost)
	}

	return levelsGained
}

// ApplyAction mutates the pet's stats for an interaction verb, clamping
// mood and hunger in the same step. It does not touch the coin balance;
// the FEED price is debited by the ledger inside the same transaction.
// Returns ErrInvalidAction for verbs outside the vocabulary.
func (p *PetInstance) ApplyAction(action PetAction) error {
	switch action {
	case PetActionFeed:
		p.Hunger = ClampStat(p.Hunger + FeedHungerBoost)
		p.Mood = ClampStat(p.Mood + FeedMoodBoost)
		p.Affection += FeedAffectionGain
	case PetActionPat:
		p.Mood = ClampStat(p.Mood + PatMoodBoost)
		p.Affection += PatAffectionGain
	default:
		return ErrInvalidAction
	}
	return nil
}

// ActionCost returns the coin price of an interaction verb, or
// ErrInvalidAction for verbs outside the vocabulary.
func ActionCost(action PetAction) (int64, error) {
	switch action {
	case PetActionFeed:
		return FeedCost, nil
	case PetActionPat:
		return 0, nil
	default:
		return 0, ErrInvalidAction
	}
}

// ClampStat bounds a mood or hunger value to [StatMin, StatMax].
func ClampStat(v int) int {
	if v < StatMin {
		return StatMin
	}
	if v > StatMax {
		return StatMax
	}
	return v
}
