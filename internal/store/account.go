package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
)

// AccountStore defines the interface for coin/experience account persistence.
// All balance mutations are single atomic SQL statements so they compose
// safely inside a transaction shared with whatever triggered them.
type AccountStore interface {
	// EnsureAccount creates a zero-balance account for the user if one does
	// not already exist, then returns the current row. Idempotent.
	EnsureAccount(ctx context.Context, userID uuid.UUID) (*domain.Account, error)

	// GetAccount retrieves a user's account.
	// Returns ErrAccountNotFound if the account does not exist.
	GetAccount(ctx context.Context, userID uuid.UUID) (*domain.Account, error)

	// CreditCoins atomically adds amount to the user's balance and returns
	// the new balance. Amount must be non-negative.
	// Returns ErrAccountNotFound if the account does not exist, or
	// ErrBalanceOverflow if the credit would exceed the int64 range (the
	// balance is unchanged).
	CreditCoins(ctx context.Context, userID uuid.UUID, amount int64) (int64, error)

	// DebitCoins atomically subtracts amount from the user's balance and
	// returns the new balance. The balance check and the subtraction are one
	// SQL statement, never check-then-debit, so two concurrent purchases
	// cannot both pass against a stale balance.
	// Returns ErrInsufficientFunds if amount exceeds the balance (the
	// balance is unchanged), or ErrAccountNotFound if the account does not exist.
	DebitCoins(ctx context.Context, userID uuid.UUID, amount int64) (int64, error)

	// CreditExperience atomically adds amount to the user's lifetime
	// experience total.
	// Returns ErrAccountNotFound if the account does not exist.
	CreditExperience(ctx context.Context, userID uuid.UUID, amount int64) error

	// WithTx returns a new AccountStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) AccountStore
}
