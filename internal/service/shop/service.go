// Package shop implements the store front: catalog listing, purchases,
// equipping pets and skins, and promo-code redemption. Every coin movement
// it makes lands in the append-only ledger.
package shop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
)

// PurchaseResult reports the outcome of a successful purchase.
type PurchaseResult struct {
	ItemID        string `json:"item_id"`
	CoinsSpent    int64  `json:"coins_spent"`
	RemainingCoins int64 `json:"remaining_coins"`
}

// InventoryResult is the cosmetics view of a user's ledger: the outfit the
// active pet currently wears plus every skin the user has ever purchased,
// equipped or not.
type InventoryResult struct {
	ActiveOutfit json.RawMessage    `json:"active_outfit,omitempty"`
	Skins        []*domain.ShopItem `json:"skins"`
}

// RedeemResult reports the outcome of a successful promo redemption.
type RedeemResult struct {
	CoinsGranted int64 `json:"coins_granted"`
	TotalCoins   int64 `json:"total_coins"`
}

// Service is the entry point for shop operations.
type Service interface {
	// ListItems returns the full shop catalog.
	ListItems(ctx context.Context) ([]*domain.ShopItem, error)

	// Purchase debits the item's price, records it in the ledger, and grants
	// the item: PET items create an inactive pet instance, SKIN items are
	// applied to the active pet immediately. Debit, ledger entry, and grant
	// commit together or not at all.
	Purchase(ctx context.Context, userID uuid.UUID, itemID string) (*PurchaseResult, error)

	// EquipPet makes one of the user's owned pets the single active one.
	// Returns ErrPetNotOwned if the user does not own the pet.
	EquipPet(ctx context.Context, userID uuid.UUID, petID string) error

	// EquipSkin applies an owned skin to the user's active pet. An empty
	// skin ID reverts the pet to its default look without any ownership
	// check. Returns ErrSkinNotOwned for a skin absent from the ledger.
	EquipSkin(ctx context.Context, userID uuid.UUID, skinID string) error

	// Inventory returns the active pet's current outfit and all purchased
	// skins. Returns ErrNoActivePet if the user has no active pet.
	Inventory(ctx context.Context, userID uuid.UUID) (*InventoryResult, error)

	// RedeemPromo grants the configured coin reward for an allow-listed
	// code, at most once per (user, code).
	RedeemPromo(ctx context.Context, userID uuid.UUID, code string) (*RedeemResult, error)
}

// Common error types for the shop service.
var (
	// ErrPetNotOwned indicates an equip attempt on a pet the user does not own.
	ErrPetNotOwned = errors.New("pet not owned")

	// ErrSkinNotOwned indicates an equip attempt on a skin the user never purchased.
	ErrSkinNotOwned = errors.New("skin not owned")

	// ErrInvalidCode indicates a promo code outside the allow-list.
	ErrInvalidCode = errors.New("invalid promo code")

	// ErrNoActivePet indicates an inventory read for a user with no active pet.
	ErrNoActivePet = errors.New("no active pet")
)

// ServiceError wraps errors from the shop service with operation context.
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
