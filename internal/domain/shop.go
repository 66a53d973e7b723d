package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ShopItemType classifies what a purchase grants.
type ShopItemType string

// Possible shop item types.
const (
	ShopItemTypePet  ShopItemType = "PET"
	ShopItemTypeSkin ShopItemType = "SKIN"
)

// LedgerEntryType classifies entries in the append-only coin ledger.
type LedgerEntryType string

// Possible ledger entry types.
const (
	LedgerEntryPurchase LedgerEntryType = "PURCHASE"
	LedgerEntryPromo    LedgerEntryType = "PROMO"
)

// Shop-specific validation errors
var (
	ErrShopItemIDEmpty      = errors.New("shop item ID cannot be empty")
	ErrInvalidShopItemType  = errors.New("invalid shop item type")
	ErrNegativePrice        = errors.New("shop item price cannot be negative")
	ErrLedgerUserIDEmpty    = errors.New("ledger entry user ID cannot be empty")
	ErrInvalidLedgerType    = errors.New("invalid ledger entry type")
	ErrLedgerSubjectMissing = errors.New("ledger entry needs an item ID or a promo code")
)

// ShopItem is reference data for a purchasable item. PET items carry the
// pet definition they grant; SKIN items carry cosmetic metadata applied to
// the buyer's active pet.
type ShopItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     ShopItemType    `json:"type"`
	Rarity   string          `json:"rarity"`
	Price    int64           `json:"price"`
	PetID    string          `json:"pet_id,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// Validate checks if the ShopItem has valid data.
func (i *ShopItem) Validate() error {
	if i.ID == "" {
		return ErrShopItemIDEmpty
	}
	switch i.Type {
	case ShopItemTypePet, ShopItemTypeSkin:
	default:
		return ErrInvalidShopItemType
	}
	if i.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// LedgerEntry is one immutable row of the append-only coin audit log.
// Purchases reference an item; promo redemptions reference a code. The log
// backs both skin-ownership checks and promo de-duplication.
type LedgerEntry struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	ItemID    string          `json:"item_id,omitempty"`
	Code      string          `json:"code,omitempty"`
	Amount    int64           `json:"amount"`
	Type      LedgerEntryType `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewPurchaseEntry records a purchase of item for amount coins.
func NewPurchaseEntry(userID uuid.UUID, itemID string, amount int64) (*LedgerEntry, error) {
	entry := &LedgerEntry{
		ID:        uuid.New(),
		UserID:    userID,
		ItemID:    itemID,
		Amount:    amount,
		Type:      LedgerEntryPurchase,
		CreatedAt: time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// NewPromoEntry records a promo-code redemption granting amount coins.
func NewPromoEntry(userID uuid.UUID, code string, amount int64) (*LedgerEntry, error) {
	entry := &LedgerEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Code:      code,
		Amount:    amount,
		Type:      LedgerEntryPromo,
		CreatedAt: time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the LedgerEntry has valid data.
func (e *LedgerEntry) Validate() error {
	if e.UserID == uuid.Nil {
		return ErrLedgerUserIDEmpty
	}
	switch e.Type {
	case LedgerEntryPurchase:
		if e.ItemID == "" {
			return ErrLedgerSubjectMissing
		}
	case LedgerEntryPromo:
		if e.Code == "" {
			return ErrLedgerSubjectMissing
		}
	default:
		return ErrInvalidLedgerType
	}
	if e.Amount < 0 {
		return ErrNegativeAmount
	}
	return nil
}
