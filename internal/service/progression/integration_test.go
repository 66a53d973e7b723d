package progression_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truongtuankiet1/AIFlashCard/internal/config"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
	"github.com/truongtuankiet1/AIFlashCard/internal/platform/postgres"
	"github.com/truongtuankiet1/AIFlashCard/internal/service/progression"
	"github.com/truongtuankiet1/AIFlashCard/internal/testdb"
)

// newIntegrationService wires the service against a real database. Skips
// unless DATABASE_URL points at a test database.
func newIntegrationService(t *testing.T) (progression.Service, *postgres.PostgresPetStore, *postgres.PostgresAccountStore) {
	t.Helper()
	db := testdb.GetTestDBWithT(t)
	testdb.ResetUserData(t, db)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	accounts := postgres.NewPostgresAccountStore(db, log)
	pets := postgres.NewPostgresPetStore(db, log)
	missions := postgres.NewPostgresMissionStore(db, log)

	rewards := config.RewardsConfig{CoinsPerCard: 2, ExpPerCard: 10}
	return progression.NewService(db, accounts, pets, missions, rewards, log), pets, accounts
}

func TestIntegration_CompleteSessionGrantsRewards(t *testing.T) {
	svc, pets, accounts := newIntegrationService(t)
	ctx := context.Background()
	userID := uuid.New()

	// Status bootstraps the account, missions, and the starter pet.
	status, err := svc.Status(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, status.ActivePet)
	require.Equal(t, progression.StarterPetID, status.ActivePet.PetID)

	rewards, err := svc.CompleteSession(ctx, domain.SessionSummary{
		UserID:          userID,
		CardsStudied:    10,
		Accuracy:        0.8,
		DurationMinutes: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(20), rewards.CoinsEarned)
	assert.Equal(t, int64(100), rewards.ExpEarned)
	assert.NotEmpty(t, rewards.PetDialogue)

	// The seeded "study 5 cards" daily mission auto-claims, crediting its
	// reward on top of the session coins.
	assert.Contains(t, rewards.CompletedMissions, "Quick Study")
	assert.Greater(t, rewards.TotalCoins, rewards.CoinsEarned)

	account, err := accounts.GetAccount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, rewards.TotalCoins, account.Coins)
	assert.Equal(t, int64(100), account.TotalExp)

	// 100 exp crosses the 100-exp threshold of level 1.
	assert.True(t, rewards.LeveledUp)
	assert.Equal(t, 2, rewards.NewLevel)

	pet, err := pets.GetActive(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, pet.Level)
	assert.Equal(t, 0, pet.Experience)
	assert.Equal(t, 5, pet.Affection)
}

func TestIntegration_CompletedMissionClaimsOnce(t *testing.T) {
	svc, _, accounts := newIntegrationService(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Status(ctx, userID)
	require.NoError(t, err)

	summary := domain.SessionSummary{UserID: userID, CardsStudied: 5, Accuracy: 0.8, DurationMinutes: 6}

	first, err := svc.CompleteSession(ctx, summary)
	require.NoError(t, err)
	assert.Contains(t, first.CompletedMissions, "Quick Study")

	second, err := svc.CompleteSession(ctx, summary)
	require.NoError(t, err)
	assert.NotContains(t, second.CompletedMissions, "Quick Study")

	// Two sessions of 10 coins each plus the 50-coin mission reward
	// exactly once.
	account, err := accounts.GetAccount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, second.TotalCoins, account.Coins)
	assert.Equal(t, int64(70), account.Coins)
}

func TestIntegration_InteractDebitsFeedCost(t *testing.T) {
	svc, pets, accounts := newIntegrationService(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Status(ctx, userID)
	require.NoError(t, err)

	// Fund the account so feeding is affordable.
	_, err = accounts.CreditCoins(ctx, userID, 100)
	require.NoError(t, err)

	result, err := svc.Interact(ctx, userID, domain.PetActionFeed)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Message)

	account, err := accounts.GetAccount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), account.Coins)

	// Fresh pets start with full mood and hunger, so only affection moves.
	pet, err := pets.GetActive(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatMax, pet.Hunger)
	assert.Equal(t, domain.StatMax, pet.Mood)
	assert.Equal(t, 2, pet.Affection)
}

func TestIntegration_InteractWithoutFundsChangesNothing(t *testing.T) {
	svc, pets, accounts := newIntegrationService(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Status(ctx, userID)
	require.NoError(t, err)

	before, err := pets.GetActive(ctx, userID)
	require.NoError(t, err)

	_, err = svc.Interact(ctx, userID, domain.PetActionFeed)
	require.Error(t, err)

	account, err := accounts.GetAccount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), account.Coins)

	after, err := pets.GetActive(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, before.Hunger, after.Hunger)
	assert.Equal(t, before.Mood, after.Mood)
}
