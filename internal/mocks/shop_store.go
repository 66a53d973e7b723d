package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
	"github.com/truongtuankiet1/AIFlashCard/internal/store"
)

// MockShopStore implements store.ShopStore for testing
type MockShopStore struct {
	ListItemsFn          func(ctx context.Context) ([]*domain.ShopItem, error)
	GetItemFn            func(ctx context.Context, itemID string) (*domain.ShopItem, error)
	AppendLedgerFn       func(ctx context.Context, entry *domain.LedgerEntry) error
	HasPurchasedFn       func(ctx context.Context, userID uuid.UUID, itemID string) (bool, error)
	ListPurchasedSkinsFn func(ctx context.Context, userID uuid.UUID) ([]*domain.ShopItem, error)
}

var _ store.ShopStore = (*MockShopStore)(nil)

func (m *MockShopStore) ListItems(ctx context.Context) ([]*domain.ShopItem, error) {
	if m.ListItemsFn != nil {
		return m.ListItemsFn(ctx)
	}
	return nil, nil
}

func (m *MockShopStore) GetItem(ctx context.Context, itemID string) (*domain.ShopItem, error) {
	if m.GetItemFn != nil {
		return m.GetItemFn(ctx, itemID)
	}
	return nil, store.ErrItemNotFound
}

func (m *MockShopStore) AppendLedger(ctx context.Context, entry *domain.LedgerEntry) error {
	if m.AppendLedgerFn != nil {
		return m.AppendLedgerFn(ctx, entry)
	}
	return nil
}

func (m *MockShopStore) HasPurchased(ctx context.Context, userID uuid.UUID, itemID string) (bool, error) {
	if m.HasPurchasedFn != nil {
		return m.HasPurchasedFn(ctx, userID, itemID)
	}
	return false, nil
}

func (m *MockShopStore) ListPurchasedSkins(ctx context.Context, userID uuid.UUID) ([]*domain.ShopItem, error) {
	if m.ListPurchasedSkinsFn != nil {
		return m.ListPurchasedSkinsFn(ctx, userID)
	}
	return nil, nil
}

func (m *MockShopStore) WithTx(tx *sql.Tx) store.ShopStore {
	return m
}
