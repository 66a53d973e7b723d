package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
	"github.com/truongtuankiet1/AIFlashCard/internal/store"
)

// MockAccountStore implements store.AccountStore for testing
type MockAccountStore struct {
	EnsureAccountFn    func(ctx context.Context, userID uuid.UUID) (*domain.Account, error)
	GetAccountFn       func(ctx context.Context, userID uuid.UUID) (*domain.Account, error)
	CreditCoinsFn      func(ctx context.Context, userID uuid.UUID, amount int64) (int64, error)
	DebitCoinsFn       func(ctx context.Context, userID uuid.UUID, amount int64) (int64, error)
	CreditExperienceFn func(ctx context.Context, userID uuid.UUID, amount int64) error
}

var _ store.AccountStore = (*MockAccountStore)(nil)

func (m *MockAccountStore) EnsureAccount(ctx context.Context, userID uuid.UUID) (*domain.Account, error) {
	if m.EnsureAccountFn != nil {
		return m.EnsureAccountFn(ctx, userID)
	}
	return &domain.Account{UserID: userID}, nil
}

func (m *MockAccountStore) GetAccount(ctx context.Context, userID uuid.UUID) (*domain.Account, error) {
	if m.GetAccountFn != nil {
		return m.GetAccountFn(ctx, userID)
	}
	return &domain.Account{UserID: userID}, nil
}

func (m *MockAccountStore) CreditCoins(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	if m.CreditCoinsFn != nil {
		return m.CreditCoinsFn(ctx, userID, amount)
	}
	return amount, nil
}

func (m *MockAccountStore) DebitCoins(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	if m.DebitCoinsFn != nil {
		return m.DebitCoinsFn(ctx, userID, amount)
	}
	return 0, nil
}

func (m *MockAccountStore) CreditExperience(ctx context.Context, userID uuid.UUID, amount int64) error {
	if m.CreditExperienceFn != nil {
		return m.CreditExperienceFn(ctx, userID, amount)
	}
	return nil
}

func (m *MockAccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return m
}
