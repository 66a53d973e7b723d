package shop_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truongtuankiet1/AIFlashCard/internal/config"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
	"github.com/truongtuankiet1/AIFlashCard/internal/mocks"
	"github.com/truongtuankiet1/AIFlashCard/internal/service/shop"
	"github.com/truongtuankiet1/AIFlashCard/internal/store"
)

var testPromo = config.PromoConfig{
	Codes:        []string{"kiet", "nttn"},
	RewardAmount: 6767676767,
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// unusedDB returns a lazily opened handle that is never connected, which is
// enough for paths that fail before reaching the database.
func unusedDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("pgx", "postgres://localhost:1/unused")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newService(t *testing.T, accounts *mocks.MockAccountStore, pets *mocks.MockPetStore, shopStore *mocks.MockShopStore) shop.Service {
	t.Helper()
	return shop.NewService(unusedDB(t), accounts, pets, shopStore, testPromo, testLogger())
}

func TestListItems(t *testing.T) {
	t.Parallel() // Enable parallel execution
	items := []*domain.ShopItem{
		{ID: "item_dog", Type: domain.ShopItemTypePet, Name: "Cyber Dog", Price: 2500, PetID: "pet_dog"},
	}
	shopStore := &mocks.MockShopStore{
		ListItemsFn: func(ctx context.Context) ([]*domain.ShopItem, error) {
			return items, nil
		},
	}

	svc := newService(t, &mocks.MockAccountStore{}, &mocks.MockPetStore{}, shopStore)
	got, err := svc.ListItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestPurchaseUnknownItem(t *testing.T) {
	t.Parallel() // Enable parallel execution
	svc := newService(t, &mocks.MockAccountStore{}, &mocks.MockPetStore{}, &mocks.MockShopStore{})

	result, err := svc.Purchase(context.Background(), uuid.New(), "item_unicorn")
	assert.ErrorIs(t, err, store.ErrItemNotFound)
	assert.Nil(t, result)
}

func TestPurchasePetAlreadyOwned(t *testing.T) {
	t.Parallel() // Enable parallel execution
	userID := uuid.New()

	owned, err := domain.NewPetInstance(userID, "pet_dog")
	require.NoError(t, err)

	shopStore := &mocks.MockShopStore{
		GetItemFn: func(ctx context.Context, itemID string) (*domain.ShopItem, error) {
			return &domain.ShopItem{ID: itemID, Type: domain.ShopItemTypePet, Name: "Cyber Dog", Price: 2500, PetID: "pet_dog"}, nil
		},
	}
	pets := &mocks.MockPetStore{
		GetByPetIDFn: func(ctx context.Context, id uuid.UUID, petID string) (*domain.PetInstance, error) {
			return owned, nil
		},
	}

	svc := newService(t, &mocks.MockAccountStore{}, pets, shopStore)
	result, err := svc.Purchase(context.Background(), userID, "item_dog")
	assert.ErrorIs(t, err, store.ErrPetAlreadyOwned)
	assert.Nil(t, result)
}

func TestPurchaseShortBalanceFailsFast(t *testing.T) {
	t.Parallel() // Enable parallel execution
	userID := uuid.New()

	shopStore := &mocks.MockShopStore{
		GetItemFn: func(ctx context.Context, itemID string) (*domain.ShopItem, error) {
			return &domain.ShopItem{ID: itemID, Type: domain.ShopItemTypePet, Name: "Cyber Dog", Price: 2500, PetID: "pet_dog"}, nil
		},
	}
	accounts := &mocks.MockAccountStore{
		GetAccountFn: func(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
			return &domain.Account{UserID: id, Coins: 2000}, nil
		},
	}

	svc := newService(t, accounts, &mocks.MockPetStore{}, shopStore)
	result, err := svc.Purchase(context.Background(), userID, "item_dog")
	assert.ErrorIs(t, err, store.ErrInsufficientFunds)
	assert.Nil(t, result)
}

func TestInventory(t *testing.T) {
	t.Parallel() // Enable parallel execution

	t.Run("No active pet", func(t *testing.T) {
		t.Parallel()
		svc := newService(t, &mocks.MockAccountStore{}, &mocks.MockPetStore{}, &mocks.MockShopStore{})

		result, err := svc.Inventory(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shop.ErrNoActivePet)
		assert.Nil(t, result)
	})

	t.Run("Active outfit and purchased skins", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		outfit := json.RawMessage(`{"skin": "neon_visor"}`)

		active, err := domain.NewPetInstance(userID, "pet_cat")
		require.NoError(t, err)
		active.IsActive = true
		active.ActiveOutfit = outfit

		pets := &mocks.MockPetStore{
			GetActiveFn: func(ctx context.Context, id uuid.UUID) (*domain.PetInstance, error) {
				return active, nil
			},
		}
		skins := []*domain.ShopItem{
			{ID: "item_skin_neon", Type: domain.ShopItemTypeSkin, Name: "Neon Visor", Price: 1200, Metadata: outfit},
		}
		shopStore := &mocks.MockShopStore{
			ListPurchasedSkinsFn: func(ctx context.Context, id uuid.UUID) ([]*domain.ShopItem, error) {
				assert.Equal(t, userID, id)
				return skins, nil
			},
		}

		svc := newService(t, &mocks.MockAccountStore{}, pets, shopStore)
		result, err := svc.Inventory(context.Background(), userID)
		require.NoError(t, err)
		assert.JSONEq(t, string(outfit), string(result.ActiveOutfit))
		assert.Equal(t, skins, result.Skins)
	})

	t.Run("Skins default to an empty list", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()

		active, err := domain.NewPetInstance(userID, "pet_cat")
		require.NoError(t, err)
		pets := &mocks.MockPetStore{
			GetActiveFn: func(ctx context.Context, id uuid.UUID) (*domain.PetInstance, error) {
				return active, nil
			},
		}

		svc := newService(t, &mocks.MockAccountStore{}, pets, &mocks.MockShopStore{})
		result, err := svc.Inventory(context.Background(), userID)
		require.NoError(t, err)
		assert.NotNil(t, result.Skins)
		assert.Empty(t, result.Skins)
	})
}

func TestEquipPetNotOwned(t *testing.T) {
	t.Parallel() // Enable parallel execution
	svc := newService(t, &mocks.MockAccountStore{}, &mocks.MockPetStore{}, &mocks.MockShopStore{})

	err := svc.EquipPet(context.Background(), uuid.New(), "pet_dog")
	assert.ErrorIs(t, err, shop.ErrPetNotOwned)
}

func TestEquipSkin(t *testing.T) {
	t.Parallel() // Enable parallel execution

	t.Run("Empty skin ID reverts to the default look", func(t *testing.T) {
		t.Parallel()
		var applied json.RawMessage
		var called bool
		pets := &mocks.MockPetStore{
			SetActiveOutfitFn: func(ctx context.Context, userID uuid.UUID, metadata json.RawMessage) error {
				called = true
				applied = metadata
				return nil
			},
		}

		svc := newService(t, &mocks.MockAccountStore{}, pets, &mocks.MockShopStore{})
		require.NoError(t, svc.EquipSkin(context.Background(), uuid.New(), ""))
		assert.True(t, called)
		assert.Nil(t, applied)
	})

	t.Run("Unpurchased skin is rejected", func(t *testing.T) {
		t.Parallel()
		shopStore := &mocks.MockShopStore{
			HasPurchasedFn: func(ctx context.Context, userID uuid.UUID, itemID string) (bool, error) {
				return false, nil
			},
		}

		svc := newService(t, &mocks.MockAccountStore{}, &mocks.MockPetStore{}, shopStore)
		err := svc.EquipSkin(context.Background(), uuid.New(), "skin_neon")
		assert.ErrorIs(t, err, shop.ErrSkinNotOwned)
	})

	t.Run("Owned skin applies the item metadata", func(t *testing.T) {
		t.Parallel()
		metadata := json.RawMessage(`{"outfit":"neon"}`)
		shopStore := &mocks.MockShopStore{
			HasPurchasedFn: func(ctx context.Context, userID uuid.UUID, itemID string) (bool, error) {
				return true, nil
			},
			GetItemFn: func(ctx context.Context, itemID string) (*domain.ShopItem, error) {
				return &domain.ShopItem{ID: itemID, Type: domain.ShopItemTypeSkin, Name: "Neon Suit", Price: 1000, Metadata: metadata}, nil
			},
		}
		var applied json.RawMessage
		pets := &mocks.MockPetStore{
			SetActiveOutfitFn: func(ctx context.Context, userID uuid.UUID, m json.RawMessage) error {
				applied = m
				return nil
			},
		}

		svc := newService(t, &mocks.MockAccountStore{}, pets, shopStore)
		require.NoError(t, svc.EquipSkin(context.Background(), uuid.New(), "skin_neon"))
		assert.Equal(t, metadata, applied)
	})

	t.Run("No active pet to dress", func(t *testing.T) {
		t.Parallel()
		shopStore := &mocks.MockShopStore{
			HasPurchasedFn: func(ctx context.Context, userID uuid.UUID, itemID string) (bool, error) {
				return true, nil
			},
			GetItemFn: func(ctx context.Context, itemID string) (*domain.ShopItem, error) {
				return &domain.ShopItem{ID: itemID, Type: domain.ShopItemTypeSkin, Name: "Neon Suit", Price: 1000}, nil
			},
		}
		pets := &mocks.MockPetStore{
			SetActiveOutfitFn: func(ctx context.Context, userID uuid.UUID, m json.RawMessage) error {
				return store.ErrPetNotFound
			},
		}

		svc := newService(t, &mocks.MockAccountStore{}, pets, shopStore)
		err := svc.EquipSkin(context.Background(), uuid.New(), "skin_neon")
		assert.ErrorIs(t, err, store.ErrPetNotFound)
	})
}

func TestRedeemPromoInvalidCode(t *testing.T) {
	t.Parallel() // Enable parallel execution
	svc := newService(t, &mocks.MockAccountStore{}, &mocks.MockPetStore{}, &mocks.MockShopStore{})
	ctx := context.Background()

	testCases := []struct {
		name string
		code string
	}{
		{name: "Unknown code", code: "free-money"},
		{name: "Empty code", code: ""},
		{name: "Whitespace only", code: "   "},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result, err := svc.RedeemPromo(ctx, uuid.New(), tc.code)
			assert.ErrorIs(t, err, shop.ErrInvalidCode)
			assert.Nil(t, result)
		})
	}
}
