package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
)

// ShopStore defines the interface for shop catalog and ledger persistence.
// The ledger is append-only: entries are never updated or deleted, and
// ownership questions ("does this user own this skin?") are answered by
// membership checks against it rather than a separate owned-items table.
type ShopStore interface {
	// ListItems returns the full shop catalog.
	ListItems(ctx context.Context) ([]*domain.ShopItem, error)

	// GetItem retrieves a shop item by ID.
	// Returns ErrItemNotFound if no such item exists.
	GetItem(ctx context.Context, itemID string) (*domain.ShopItem, error)

	// AppendLedger appends one immutable entry to the coin ledger.
	// Returns ErrPromoAlreadyRedeemed when a PROMO entry for the same
	// (user, code) pair already exists.
	AppendLedger(ctx context.Context, entry *domain.LedgerEntry) error

	// HasPurchased reports whether the ledger contains a PURCHASE entry for
	// the given user and item.
	HasPurchased(ctx context.Context, userID uuid.UUID, itemID string) (bool, error)

	// ListPurchasedSkins returns every SKIN catalog item the user has a
	// PURCHASE ledger entry for, each item once regardless of how many
	// entries reference it.
	ListPurchasedSkins(ctx context.Context, userID uuid.UUID) ([]*domain.ShopItem, error)

	// WithTx returns a new ShopStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ShopStore
}
