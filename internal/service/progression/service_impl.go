package progression

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/config"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
	"github.com/truongtuankiet1/AIFlashCard/internal/platform/logger"
	"github.com/truongtuankiet1/AIFlashCard/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	db       *sql.DB
	accounts store.AccountStore
	pets     store.PetStore
	missions store.MissionStore
	rewards  config.RewardsConfig
	logger   *slog.Logger
}

// NewService creates a new progression Service implementation.
func NewService(
	db *sql.DB,
	accounts store.AccountStore,
	pets store.PetStore,
	missions store.MissionStore,
	rewards config.RewardsConfig,
	logger *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if accounts == nil {
		panic("accounts cannot be nil")
	}
	if pets == nil {
		panic("pets cannot be nil")
	}
	if missions == nil {
		panic("missions cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		db:       db,
		accounts: accounts,
		pets:     pets,
		missions: missions,
		rewards:  rewards,
		logger:   logger.With(slog.String("component", "progression_service")),
	}
}

// validateSummary rejects malformed session summaries. Quality-style
// clamping does not apply here: these values come from the session layer
// and out-of-range means the request itself is bad.
func validateSummary(summary domain.SessionSummary) error {
	if summary.UserID == uuid.Nil {
		return fmt.Errorf("%w: user ID is required", ErrInvalidSummary)
	}
	if summary.CardsStudied < 0 {
		return fmt.Errorf("%w: cards studied cannot be negative", ErrInvalidSummary)
	}
	if summary.Accuracy < 0 || summary.Accuracy > 1 {
		return fmt.Errorf("%w: accuracy must be within [0, 1]", ErrInvalidSummary)
	}
	if summary.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration cannot be negative", ErrInvalidSummary)
	}
	return nil
}

// isImplausible applies the anti-cheat rule: too many cards in too little time.
func isImplausible(summary domain.SessionSummary) bool {
	return summary.DurationMinutes < AntiCheatMinMinutes && summary.CardsStudied > AntiCheatMaxCards
}

// CompleteSession implements Service.CompleteSession.
func (s *serviceImpl) CompleteSession(ctx context.Context, summary domain.SessionSummary) (*RewardSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validateSummary(summary); err != nil {
		return nil, err
	}

	// Implausible sessions get a corrective message, not an error.
	if isImplausible(summary) {
		log.Warn("session rejected by anti-cheat",
			slog.String("user_id", summary.UserID.String()),
			slog.Int("cards_studied", summary.CardsStudied),
			slog.Float64("duration_minutes", summary.DurationMinutes))
		return &RewardSummary{
			CompletedMissions: []string{},
			PetDialogue:       dialogueAntiCheat,
		}, nil
	}

	coinsEarned := int64(summary.CardsStudied) * s.rewards.CoinsPerCard
	expEarned := int64(summary.CardsStudied) * s.rewards.ExpPerCard

	result := &RewardSummary{
		CoinsEarned:       coinsEarned,
		ExpEarned:         expEarned,
		NewLevel:          1,
		CompletedMissions: []string{},
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		accounts := s.accounts.WithTx(tx)
		pets := s.pets.WithTx(tx)
		missions := s.missions.WithTx(tx)

		if _, err := accounts.EnsureAccount(ctx, summary.UserID); err != nil {
			return fmt.Errorf("failed to ensure account: %w", err)
		}

		balance, err := accounts.CreditCoins(ctx, summary.UserID, coinsEarned)
		if err != nil {
			return fmt.Errorf("failed to credit session coins: %w", err)
		}
		if err := accounts.CreditExperience(ctx, summary.UserID, expEarned); err != nil {
			return fmt.Errorf("failed to credit experience: %w", err)
		}

		// Advance the active pet, if any. Sessions without an active pet
		// still earn coins and mission progress.
		hasPet := true
		pet, err := pets.GetActiveForUpdate(ctx, summary.UserID)
		if err != nil {
			if !errors.Is(err, store.ErrPetNotFound) {
				return fmt.Errorf("failed to get active pet: %w", err)
			}
			hasPet = false
		}
		if hasPet {
			levelsGained := pet.ApplyExperience(int(expEarned))
			if err := pets.UpdateInstance(ctx, pet); err != nil {
				return fmt.Errorf("failed to update pet: %w", err)
			}
			result.LeveledUp = levelsGained > 0
			result.NewLevel = pet.Level
			result.PetDialogue = selectDialogue(result.LeveledUp, summary.Accuracy)
		}

		balance, err = s.applyMissionProgress(ctx, missions, accounts, summary, result, balance)
		if err != nil {
			return err
		}

		result.TotalCoins = balance
		return nil
	})
	if err != nil {
		log.Error("session completion failed",
			slog.String("error", err.Error()),
			slog.String("user_id", summary.UserID.String()))
		return nil, &ServiceError{Operation: "complete_session", Message: "failed to process session", Err: err}
	}

	log.Info("session completed",
		slog.String("user_id", summary.UserID.String()),
		slog.Int64("coins_earned", result.CoinsEarned),
		slog.Int64("exp_earned", result.ExpEarned),
		slog.Bool("leveled_up", result.LeveledUp),
		slog.Int("missions_completed", len(result.CompletedMissions)))
	return result, nil
}

// applyMissionProgress walks the user's open progress rows, applies the
// session's category delta, and auto-claims completed missions, crediting
// their reward in the same transaction. Claimed rows are pinned at the
// target value so progress bars never overshoot.
func (s *serviceImpl) applyMissionProgress(
	ctx context.Context,
	missions store.MissionStore,
	accounts store.AccountStore,
	summary domain.SessionSummary,
	result *RewardSummary,
	balance int64,
) (int64, error) {
	now := time.Now().UTC()

	templates, err := missions.ListMissions(ctx)
	if err != nil {
		return balance, fmt.Errorf("failed to list missions: %w", err)
	}
	templateByID := make(map[string]*domain.Mission, len(templates))
	for _, m := range templates {
		templateByID[m.ID] = m
	}

	open, err := missions.ListOpenProgress(ctx, summary.UserID, now)
	if err != nil {
		return balance, fmt.Errorf("failed to list open mission progress: %w", err)
	}

	for _, progress := range open {
		mission, ok := templateByID[progress.MissionID]
		if !ok {
			// Progress against a retired template; leave it alone.
			continue
		}

		delta := mission.ProgressDelta(summary)
		if delta == 0 {
			continue
		}

		newValue := progress.CurrentValue + delta
		if newValue >= mission.TargetValue {
			progress.CurrentValue = mission.TargetValue
			progress.IsClaimed = true
			if err := missions.UpdateProgress(ctx, progress); err != nil {
				return balance, fmt.Errorf("failed to claim mission %s: %w", mission.ID, err)
			}

			balance, err = accounts.CreditCoins(ctx, summary.UserID, mission.RewardCoins)
			if err != nil {
				return balance, fmt.Errorf("failed to credit mission reward: %w", err)
			}
			result.CompletedMissions = append(result.CompletedMissions, mission.Title)
		} else {
			progress.CurrentValue = newValue
			if err := missions.UpdateProgress(ctx, progress); err != nil {
				return balance, fmt.Errorf("failed to update mission progress: %w", err)
			}
		}
	}

	return balance, nil
}

// EnsureMissions implements Service.EnsureMissions.
func (s *serviceImpl) EnsureMissions(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	templates, err := s.missions.ListMissions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list missions: %w", err)
	}

	now := time.Now()
	for _, mission := range templates {
		progress, err := domain.NewMissionProgress(userID, mission.ID, mission.ResetTime(now))
		if err != nil {
			return err
		}
		if err := s.missions.EnsureProgress(ctx, progress); err != nil {
			log.Error("failed to ensure mission progress",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()),
				slog.String("mission_id", mission.ID))
			return err
		}
	}

	return nil
}

// Status implements Service.Status.
func (s *serviceImpl) Status(ctx context.Context, userID uuid.UUID) (*Status, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.EnsureMissions(ctx, userID); err != nil {
		return nil, &ServiceError{Operation: "status", Message: "failed to initialize missions", Err: err}
	}

	account, err := s.accounts.EnsureAccount(ctx, userID)
	if err != nil {
		return nil, &ServiceError{Operation: "status", Message: "failed to ensure account", Err: err}
	}

	owned, err := s.pets.ListByUser(ctx, userID)
	if err != nil {
		return nil, &ServiceError{Operation: "status", Message: "failed to list pets", Err: err}
	}

	var activePet *domain.PetInstance
	switch {
	case len(owned) == 0:
		// First visit: grant the starter pet, already active.
		activePet, err = s.grantStarterPet(ctx, userID)
		if err != nil {
			return nil, &ServiceError{Operation: "status", Message: "failed to grant starter pet", Err: err}
		}
		if activePet != nil {
			owned = append(owned, activePet)
		}
	default:
		for _, p := range owned {
			if p.IsActive {
				activePet = p
				break
			}
		}
		// The user owns pets but none is active (the previous active pet
		// may have been removed); activate the oldest one.
		if activePet == nil {
			err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
				return s.pets.WithTx(tx).Activate(ctx, userID, owned[0].ID)
			})
			if err != nil {
				return nil, &ServiceError{Operation: "status", Message: "failed to activate pet", Err: err}
			}
			owned[0].IsActive = true
			activePet = owned[0]
		}
	}

	missionStatuses, err := s.missionStatuses(ctx, userID)
	if err != nil {
		return nil, &ServiceError{Operation: "status", Message: "failed to load missions", Err: err}
	}

	ownedIDs := make([]string, 0, len(owned))
	for _, p := range owned {
		ownedIDs = append(ownedIDs, p.PetID)
	}

	log.Debug("status assembled",
		slog.String("user_id", userID.String()),
		slog.Int64("coins", account.Coins),
		slog.Int("owned_pets", len(ownedIDs)))

	return &Status{
		Coins:       account.Coins,
		TotalExp:    account.TotalExp,
		ActivePet:   activePet,
		OwnedPetIDs: ownedIDs,
		Missions:    missionStatuses,
	}, nil
}

// grantStarterPet creates an active starter-pet instance for the user.
// A missing starter definition is tolerated: the user simply has no pet yet.
func (s *serviceImpl) grantStarterPet(ctx context.Context, userID uuid.UUID) (*domain.PetInstance, error) {
	if _, err := s.pets.GetPet(ctx, StarterPetID); err != nil {
		if errors.Is(err, store.ErrPetNotFound) {
			return nil, nil
		}
		return nil, err
	}

	instance, err := domain.NewPetInstance(userID, StarterPetID)
	if err != nil {
		return nil, err
	}
	instance.IsActive = true

	if err := s.pets.CreateInstance(ctx, instance); err != nil {
		// A concurrent status call may have granted it already.
		if errors.Is(err, store.ErrPetAlreadyOwned) {
			return s.pets.GetByPetID(ctx, userID, StarterPetID)
		}
		return nil, err
	}

	return instance, nil
}

func (s *serviceImpl) missionStatuses(ctx context.Context, userID uuid.UUID) ([]MissionStatus, error) {
	now := time.Now().UTC()

	templates, err := s.missions.ListMissions(ctx)
	if err != nil {
		return nil, err
	}
	templateByID := make(map[string]*domain.Mission, len(templates))
	for _, m := range templates {
		templateByID[m.ID] = m
	}

	progresses, err := s.missions.ListCurrentProgress(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	statuses := make([]MissionStatus, 0, len(progresses))
	for _, p := range progresses {
		mission, ok := templateByID[p.MissionID]
		if !ok {
			continue
		}
		statuses = append(statuses, MissionStatus{
			ID:           p.ID,
			MissionID:    mission.ID,
			Title:        mission.Title,
			Description:  mission.Description,
			Type:         mission.Type,
			Category:     mission.Category,
			CurrentValue: p.CurrentValue,
			TargetValue:  mission.TargetValue,
			RewardCoins:  mission.RewardCoins,
			IsClaimed:    p.IsClaimed,
		})
	}

	return statuses, nil
}

// Interact implements Service.Interact.
func (s *serviceImpl) Interact(ctx context.Context, userID uuid.UUID, action domain.PetAction) (*InteractionResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cost, err := domain.ActionCost(action)
	if err != nil {
		return nil, err
	}

	var message string
	switch action {
	case domain.PetActionFeed:
		message = messageFeedSuccess
	case domain.PetActionPat:
		message = messagePatSuccess
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		accounts := s.accounts.WithTx(tx)
		pets := s.pets.WithTx(tx)

		pet, err := pets.GetActiveForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrPetNotFound) {
				return ErrNoActivePet
			}
			return fmt.Errorf("failed to get active pet: %w", err)
		}

		if cost > 0 {
			if _, err := accounts.EnsureAccount(ctx, userID); err != nil {
				return fmt.Errorf("failed to ensure account: %w", err)
			}
			if _, err := accounts.DebitCoins(ctx, userID, cost); err != nil {
				return err
			}
		}

		if err := pet.ApplyAction(action); err != nil {
			return err
		}
		if err := pets.UpdateInstance(ctx, pet); err != nil {
			return fmt.Errorf("failed to update pet: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNoActivePet) || errors.Is(err, store.ErrInsufficientFunds) || errors.Is(err, domain.ErrInvalidAction) {
			return nil, err
		}
		log.Error("pet interaction failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("action", string(action)))
		return nil, &ServiceError{Operation: "interact", Message: "failed to interact with pet", Err: err}
	}

	return &InteractionResult{Success: true, Message: message}, nil
}
