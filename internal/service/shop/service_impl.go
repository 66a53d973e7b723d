package shop

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

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
	shop     store.ShopStore
	promo    config.PromoConfig
	logger   *slog.Logger
}

// NewService creates a new shop Service implementation.
func NewService(
	db *sql.DB,
	accounts store.AccountStore,
	pets store.PetStore,
	shop store.ShopStore,
	promo config.PromoConfig,
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
	if shop == nil {
		panic("shop cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		db:       db,
		accounts: accounts,
		pets:     pets,
		shop:     shop,
		promo:    promo,
		logger:   logger.With(slog.String("component", "shop_service")),
	}
}

// ListItems implements Service.ListItems.
func (s *serviceImpl) ListItems(ctx context.Context) ([]*domain.ShopItem, error) {
	items, err := s.shop.ListItems(ctx)
	if err != nil {
		return nil, &ServiceError{Operation: "list_items", Message: "failed to list shop items", Err: err}
	}
	return items, nil
}

// Purchase implements Service.Purchase.
func (s *serviceImpl) Purchase(ctx context.Context, userID uuid.UUID, itemID string) (*PurchaseResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	item, err := s.shop.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return nil, err
		}
		return nil, &ServiceError{Operation: "purchase", Message: "failed to load item", Err: err}
	}

	// PET re-purchase is rejected before any money moves.
	if item.Type == domain.ShopItemTypePet {
		if _, err := s.pets.GetByPetID(ctx, userID, item.PetID); err == nil {
			return nil, store.ErrPetAlreadyOwned
		} else if !errors.Is(err, store.ErrPetNotFound) {
			return nil, &ServiceError{Operation: "purchase", Message: "failed to check ownership", Err: err}
		}
	}

	// Reject an obviously short balance before opening a transaction. The
	// atomic debit inside the transaction remains the authority.
	if item.Price > 0 {
		balance := int64(0)
		if account, err := s.accounts.GetAccount(ctx, userID); err == nil {
			balance = account.Coins
		} else if !errors.Is(err, store.ErrAccountNotFound) {
			return nil, &ServiceError{Operation: "purchase", Message: "failed to load account", Err: err}
		}
		if _, err := domain.CheckDebit(balance, item.Price); err != nil {
			return nil, store.ErrInsufficientFunds
		}
	}

	result := &PurchaseResult{ItemID: item.ID, CoinsSpent: item.Price}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		accounts := s.accounts.WithTx(tx)
		pets := s.pets.WithTx(tx)
		shop := s.shop.WithTx(tx)

		if _, err := accounts.EnsureAccount(ctx, userID); err != nil {
			return fmt.Errorf("failed to ensure account: %w", err)
		}

		balance, err := accounts.DebitCoins(ctx, userID, item.Price)
		if err != nil {
			return err
		}
		result.RemainingCoins = balance

		entry, err := domain.NewPurchaseEntry(userID, item.ID, item.Price)
		if err != nil {
			return err
		}
		if err := shop.AppendLedger(ctx, entry); err != nil {
			return fmt.Errorf("failed to record purchase: %w", err)
		}

		switch item.Type {
		case domain.ShopItemTypePet:
			instance, err := domain.NewPetInstance(userID, item.PetID)
			if err != nil {
				return err
			}
			if err := pets.CreateInstance(ctx, instance); err != nil {
				return err
			}
		case domain.ShopItemTypeSkin:
			if err := pets.SetActiveOutfit(ctx, userID, item.Metadata); err != nil {
				// No active pet to dress up; the skin stays owned via the
				// ledger and can be equipped later.
				if !errors.Is(err, store.ErrPetNotFound) {
					return fmt.Errorf("failed to apply skin: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrInsufficientFunds) || errors.Is(err, store.ErrPetAlreadyOwned) {
			return nil, err
		}
		log.Error("purchase failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("item_id", itemID))
		return nil, &ServiceError{Operation: "purchase", Message: "failed to complete purchase", Err: err}
	}

	log.Info("item purchased",
		slog.String("user_id", userID.String()),
		slog.String("item_id", item.ID),
		slog.Int64("price", item.Price))
	return result, nil
}

// EquipPet implements Service.EquipPet.
func (s *serviceImpl) EquipPet(ctx context.Context, userID uuid.UUID, petID string) error {
	instance, err := s.pets.GetByPetID(ctx, userID, petID)
	if err != nil {
		if errors.Is(err, store.ErrPetNotFound) {
			return ErrPetNotOwned
		}
		return &ServiceError{Operation: "equip_pet", Message: "failed to check ownership", Err: err}
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.pets.WithTx(tx).Activate(ctx, userID, instance.ID)
	})
	if err != nil {
		return &ServiceError{Operation: "equip_pet", Message: "failed to activate pet", Err: err}
	}

	return nil
}

// EquipSkin implements Service.EquipSkin.
func (s *serviceImpl) EquipSkin(ctx context.Context, userID uuid.UUID, skinID string) error {
	// Empty skin ID means revert to the default look. Nothing to own.
	if skinID == "" {
		if err := s.pets.SetActiveOutfit(ctx, userID, nil); err != nil {
			return &ServiceError{Operation: "equip_skin", Message: "failed to reset outfit", Err: err}
		}
		return nil
	}

	owned, err := s.shop.HasPurchased(ctx, userID, skinID)
	if err != nil {
		return &ServiceError{Operation: "equip_skin", Message: "failed to check ownership", Err: err}
	}
	if !owned {
		return ErrSkinNotOwned
	}

	item, err := s.shop.GetItem(ctx, skinID)
	if err != nil {
		return &ServiceError{Operation: "equip_skin", Message: "failed to load skin", Err: err}
	}

	if err := s.pets.SetActiveOutfit(ctx, userID, item.Metadata); err != nil {
		if errors.Is(err, store.ErrPetNotFound) {
			return err
		}
		return &ServiceError{Operation: "equip_skin", Message: "failed to apply skin", Err: err}
	}

	return nil
}

// Inventory implements Service.Inventory.
func (s *serviceImpl) Inventory(ctx context.Context, userID uuid.UUID) (*InventoryResult, error) {
	active, err := s.pets.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrPetNotFound) {
			return nil, ErrNoActivePet
		}
		return nil, &ServiceError{Operation: "inventory", Message: "failed to load active pet", Err: err}
	}

	skins, err := s.shop.ListPurchasedSkins(ctx, userID)
	if err != nil {
		return nil, &ServiceError{Operation: "inventory", Message: "failed to list skins", Err: err}
	}
	if skins == nil {
		skins = []*domain.ShopItem{}
	}

	return &InventoryResult{
		ActiveOutfit: active.ActiveOutfit,
		Skins:        skins,
	}, nil
}

// RedeemPromo implements Service.RedeemPromo.
func (s *serviceImpl) RedeemPromo(ctx context.Context, userID uuid.UUID, code string) (*RedeemResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	normalized := strings.ToLower(strings.TrimSpace(code))
	if !s.isValidCode(normalized) {
		return nil, ErrInvalidCode
	}

	result := &RedeemResult{CoinsGranted: s.promo.RewardAmount}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		accounts := s.accounts.WithTx(tx)
		shop := s.shop.WithTx(tx)

		if _, err := accounts.EnsureAccount(ctx, userID); err != nil {
			return fmt.Errorf("failed to ensure account: %w", err)
		}

		// The ledger's uniqueness on (user, code) makes the insert the
		// de-duplication point.
		entry, err := domain.NewPromoEntry(userID, normalized, s.promo.RewardAmount)
		if err != nil {
			return err
		}
		if err := shop.AppendLedger(ctx, entry); err != nil {
			return err
		}

		balance, err := accounts.CreditCoins(ctx, userID, s.promo.RewardAmount)
		if err != nil {
			return fmt.Errorf("failed to credit promo reward: %w", err)
		}
		result.TotalCoins = balance

		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrPromoAlreadyRedeemed) {
			return nil, err
		}
		log.Error("promo redemption failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, &ServiceError{Operation: "redeem_promo", Message: "failed to redeem code", Err: err}
	}

	log.Info("promo code redeemed",
		slog.String("user_id", userID.String()),
		slog.Int64("coins_granted", result.CoinsGranted))
	return result, nil
}

func (s *serviceImpl) isValidCode(normalized string) bool {
	if normalized == "" {
		return false
	}
	for _, c := range s.promo.Codes {
		if strings.EqualFold(c, normalized) {
			return true
		}
	}
	return false
}
