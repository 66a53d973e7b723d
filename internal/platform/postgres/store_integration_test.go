package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
	"github.com/truongtuankiet1/AIFlashCard/internal/platform/postgres"
	"github.com/truongtuankiet1/AIFlashCard/internal/store"
	"github.com/truongtuankiet1/AIFlashCard/internal/testdb"
)

func integrationLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAccountStoreIntegration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	testdb.ResetUserData(t, db)
	accounts := postgres.NewPostgresAccountStore(db, integrationLogger())
	ctx := context.Background()
	userID := uuid.New()

	t.Run("EnsureAccount is idempotent", func(t *testing.T) {
		first, err := accounts.EnsureAccount(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), first.Coins)

		_, err = accounts.CreditCoins(ctx, userID, 100)
		require.NoError(t, err)

		again, err := accounts.EnsureAccount(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(100), again.Coins, "re-ensuring must not reset the balance")
	})

	t.Run("DebitCoins is atomic", func(t *testing.T) {
		balance, err := accounts.DebitCoins(ctx, userID, 60)
		require.NoError(t, err)
		assert.Equal(t, int64(40), balance)

		_, err = accounts.DebitCoins(ctx, userID, 100)
		assert.ErrorIs(t, err, store.ErrInsufficientFunds)

		account, err := accounts.GetAccount(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(40), account.Coins, "failed debit must not change the balance")
	})

	t.Run("CreditExperience accumulates", func(t *testing.T) {
		require.NoError(t, accounts.CreditExperience(ctx, userID, 100))
		require.NoError(t, accounts.CreditExperience(ctx, userID, 50))

		account, err := accounts.GetAccount(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(150), account.TotalExp)
	})

	t.Run("CreditCoins refuses overflow", func(t *testing.T) {
		overflowUser := uuid.New()
		_, err := accounts.EnsureAccount(ctx, overflowUser)
		require.NoError(t, err)

		_, err = accounts.CreditCoins(ctx, overflowUser, math.MaxInt64-5)
		require.NoError(t, err)

		_, err = accounts.CreditCoins(ctx, overflowUser, 10)
		assert.ErrorIs(t, err, domain.ErrBalanceOverflow)

		account, err := accounts.GetAccount(ctx, overflowUser)
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64-5), account.Coins, "refused credit must not change the balance")
	})

	t.Run("GetAccount for unknown user", func(t *testing.T) {
		_, err := accounts.GetAccount(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrAccountNotFound)
	})
}

func TestPetStoreIntegration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	testdb.ResetUserData(t, db)
	pets := postgres.NewPostgresPetStore(db, integrationLogger())
	ctx := context.Background()
	userID := uuid.New()

	cat, err := domain.NewPetInstance(userID, "pet_cat")
	require.NoError(t, err)
	cat.IsActive = true
	require.NoError(t, pets.CreateInstance(ctx, cat))

	dog, err := domain.NewPetInstance(userID, "pet_dog")
	require.NoError(t, err)
	require.NoError(t, pets.CreateInstance(ctx, dog))

	t.Run("Duplicate pet ownership is rejected", func(t *testing.T) {
		dup, err := domain.NewPetInstance(userID, "pet_cat")
		require.NoError(t, err)
		assert.ErrorIs(t, pets.CreateInstance(ctx, dup), store.ErrPetAlreadyOwned)
	})

	t.Run("GetActive returns the active instance", func(t *testing.T) {
		active, err := pets.GetActive(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, cat.ID, active.ID)
	})

	t.Run("Activate swaps in one step", func(t *testing.T) {
		require.NoError(t, pets.Activate(ctx, userID, dog.ID))

		active, err := pets.GetActive(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, dog.ID, active.ID)

		owned, err := pets.ListByUser(ctx, userID)
		require.NoError(t, err)
		activeCount := 0
		for _, p := range owned {
			if p.IsActive {
				activeCount++
			}
		}
		assert.Equal(t, 1, activeCount)
	})

	t.Run("Activate a foreign instance fails", func(t *testing.T) {
		err := pets.Activate(ctx, uuid.New(), dog.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("Outfit follows the active pet", func(t *testing.T) {
		require.NoError(t, pets.SetActiveOutfit(ctx, userID, []byte(`{"outfit":"neon"}`)))

		active, err := pets.GetActive(ctx, userID)
		require.NoError(t, err)
		assert.JSONEq(t, `{"outfit":"neon"}`, string(active.ActiveOutfit))

		require.NoError(t, pets.SetActiveOutfit(ctx, userID, nil))
		active, err = pets.GetActive(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, active.ActiveOutfit)
	})
}

func TestMissionStoreIntegration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	testdb.ResetUserData(t, db)
	missions := postgres.NewPostgresMissionStore(db, integrationLogger())
	ctx := context.Background()
	userID := uuid.New()

	templates, err := missions.ListMissions(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, templates, "seed migration must provide mission templates")

	now := time.Now().UTC()
	template := templates[0]

	t.Run("EnsureProgress is idempotent per window", func(t *testing.T) {
		first, err := domain.NewMissionProgress(userID, template.ID, template.ResetTime(now))
		require.NoError(t, err)
		require.NoError(t, missions.EnsureProgress(ctx, first))

		// The second insert for the same window is silently dropped.
		second, err := domain.NewMissionProgress(userID, template.ID, template.ResetTime(now))
		require.NoError(t, err)
		require.NoError(t, missions.EnsureProgress(ctx, second))

		open, err := missions.ListOpenProgress(ctx, userID, now)
		require.NoError(t, err)

		count := 0
		for _, p := range open {
			if p.MissionID == template.ID {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("UpdateProgress persists claims", func(t *testing.T) {
		open, err := missions.ListOpenProgress(ctx, userID, now)
		require.NoError(t, err)
		require.NotEmpty(t, open)

		progress := open[0]
		progress.CurrentValue = template.TargetValue
		progress.IsClaimed = true
		require.NoError(t, missions.UpdateProgress(ctx, progress))

		// Claimed rows leave the open set but stay in the current view.
		open, err = missions.ListOpenProgress(ctx, userID, now)
		require.NoError(t, err)
		for _, p := range open {
			assert.NotEqual(t, progress.ID, p.ID)
		}

		current, err := missions.ListCurrentProgress(ctx, userID, now)
		require.NoError(t, err)
		found := false
		for _, p := range current {
			if p.ID == progress.ID {
				found = true
				assert.True(t, p.IsClaimed)
				assert.Equal(t, template.TargetValue, p.CurrentValue)
			}
		}
		assert.True(t, found)
	})
}

func TestShopStoreIntegration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	testdb.ResetUserData(t, db)
	shopStore := postgres.NewPostgresShopStore(db, integrationLogger())
	ctx := context.Background()
	userID := uuid.New()

	t.Run("ListItems returns the seeded catalog", func(t *testing.T) {
		items, err := shopStore.ListItems(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, items)
	})

	t.Run("GetItem for unknown ID", func(t *testing.T) {
		_, err := shopStore.GetItem(ctx, "item_unicorn")
		assert.ErrorIs(t, err, store.ErrItemNotFound)
	})

	t.Run("Purchase membership comes from the ledger", func(t *testing.T) {
		owned, err := shopStore.HasPurchased(ctx, userID, "item_dog")
		require.NoError(t, err)
		assert.False(t, owned)

		entry, err := domain.NewPurchaseEntry(userID, "item_dog", 2500)
		require.NoError(t, err)
		require.NoError(t, shopStore.AppendLedger(ctx, entry))

		owned, err = shopStore.HasPurchased(ctx, userID, "item_dog")
		require.NoError(t, err)
		assert.True(t, owned)
	})

	t.Run("ListPurchasedSkins derives ownership from the ledger", func(t *testing.T) {
		skins, err := shopStore.ListPurchasedSkins(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, skins)

		entry, err := domain.NewPurchaseEntry(userID, "item_skin_neon", 1200)
		require.NoError(t, err)
		require.NoError(t, shopStore.AppendLedger(ctx, entry))

		// A second entry for the same skin must not duplicate it.
		again, err := domain.NewPurchaseEntry(userID, "item_skin_neon", 1200)
		require.NoError(t, err)
		require.NoError(t, shopStore.AppendLedger(ctx, again))

		skins, err = shopStore.ListPurchasedSkins(ctx, userID)
		require.NoError(t, err)
		// The earlier item_dog purchase is a PET and must not appear here.
		require.Len(t, skins, 1)
		assert.Equal(t, "item_skin_neon", skins[0].ID)
		assert.Equal(t, domain.ShopItemTypeSkin, skins[0].Type)
	})

	t.Run("Promo redemptions are unique per code", func(t *testing.T) {
		entry, err := domain.NewPromoEntry(userID, "kiet", 1000)
		require.NoError(t, err)
		require.NoError(t, shopStore.AppendLedger(ctx, entry))

		dup, err := domain.NewPromoEntry(userID, "kiet", 1000)
		require.NoError(t, err)
		assert.ErrorIs(t, shopStore.AppendLedger(ctx, dup), store.ErrPromoAlreadyRedeemed)

		// A different code for the same user still lands.
		other, err := domain.NewPromoEntry(userID, "nttn", 1000)
		require.NoError(t, err)
		require.NoError(t, shopStore.AppendLedger(ctx, other))
	})
}
