package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
	"github.com/truongtuankiet1/AIFlashCard/internal/platform/logger"
	"github.com/truongtuankiet1/AIFlashCard/internal/store"
)

// PostgresAccountStore implements the store.AccountStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAccountStore creates a new PostgreSQL implementation of the AccountStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresAccountStore(db store.DBTX, logger *slog.Logger) *PostgresAccountStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

// Ensure PostgresAccountStore implements store.AccountStore interface
var _ store.AccountStore = (*PostgresAccountStore)(nil)

// WithTx implements store.AccountStore.WithTx
func (s *PostgresAccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return &PostgresAccountStore{
		db:     tx,
		logger: s.logger,
	}
}

// EnsureAccount implements store.AccountStore.EnsureAccount
// The insert is a no-op when the account already exists, making the call
// idempotent; the current row is returned either way.
func (s *PostgresAccountStore) EnsureAccount(ctx context.Context, userID uuid.UUID) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	insert := `
		INSERT INTO accounts (user_id, coins, total_exp, created_at, updated_at)
		VALUES ($1, 0, 0, $2, $2)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, insert, userID, now); err != nil {
		log.Error("failed to ensure account",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	return s.GetAccount(ctx, userID)
}

// GetAccount implements store.AccountStore.GetAccount
// Returns store.ErrAccountNotFound if the account does not exist.
func (s *PostgresAccountStore) GetAccount(ctx context.Context, userID uuid.UUID) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, coins, total_exp, created_at, updated_at
		FROM accounts
		WHERE user_id = $1
	`

	var account domain.Account
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&account.UserID,
		&account.Coins,
		&account.TotalExp,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrAccountNotFound
		}
		log.Error("failed to get account",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	return &account, nil
}

// CreditCoins implements store.AccountStore.CreditCoins
// The increment happens in a single statement so concurrent credits compose.
// The WHERE clause caps the result at the column's int64 range; a refused
// credit leaves the balance unchanged and surfaces as ErrBalanceOverflow.
func (s *PostgresAccountStore) CreditCoins(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if amount < 0 {
		return 0, fmt.Errorf("%w: credit amount %d", store.ErrInvalidEntity, amount)
	}

	query := `
		UPDATE accounts
		SET coins = coins + $1, updated_at = $2
		WHERE user_id = $3 AND coins <= $4 - $1
		RETURNING coins
	`

	var balance int64
	err := s.db.
		QueryRowContext(ctx, query, amount, time.Now().UTC(), userID, int64(math.MaxInt64)).
		Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			// No row matched: missing account or the credit would overflow.
			account, getErr := s.GetAccount(ctx, userID)
			if getErr != nil {
				return 0, getErr
			}
			if _, checkErr := domain.CheckCredit(account.Coins, amount); checkErr != nil {
				log.Warn("credit rejected, balance overflow",
					slog.String("user_id", userID.String()),
					slog.Int64("balance", account.Coins),
					slog.Int64("amount", amount))
				return 0, fmt.Errorf("%w: %v", store.ErrBalanceOverflow, checkErr)
			}
			return 0, store.ErrUpdateFailed
		}
		log.Error("failed to credit coins",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("amount", amount))
		return 0, MapError(err)
	}

	log.Debug("credited coins",
		slog.String("user_id", userID.String()),
		slog.Int64("amount", amount),
		slog.Int64("balance", balance))
	return balance, nil
}

// DebitCoins implements store.AccountStore.DebitCoins
// The balance guard lives in the WHERE clause: the check and the decrement
// are one statement, so two concurrent debits can never both pass against a
// stale balance. Zero rows affected means either the account is missing or
// the funds are; a follow-up read distinguishes the two.
func (s *PostgresAccountStore) DebitCoins(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if amount < 0 {
		return 0, fmt.Errorf("%w: debit amount %d", store.ErrInvalidEntity, amount)
	}

	query := `
		UPDATE accounts
		SET coins = coins - $1, updated_at = $2
		WHERE user_id = $3 AND coins >= $1
		RETURNING coins
	`

	var balance int64
	err := s.db.QueryRowContext(ctx, query, amount, time.Now().UTC(), userID).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			// No row matched: missing account or insufficient balance.
			if _, getErr := s.GetAccount(ctx, userID); getErr != nil {
				return 0, getErr
			}
			log.Debug("debit rejected, insufficient funds",
				slog.String("user_id", userID.String()),
				slog.Int64("amount", amount))
			return 0, store.ErrInsufficientFunds
		}
		log.Error("failed to debit coins",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("amount", amount))
		return 0, MapError(err)
	}

	log.Debug("debited coins",
		slog.String("user_id", userID.String()),
		slog.Int64("amount", amount),
		slog.Int64("balance", balance))
	return balance, nil
}

// CreditExperience implements store.AccountStore.CreditExperience
func (s *PostgresAccountStore) CreditExperience(ctx context.Context, userID uuid.UUID, amount int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if amount < 0 {
		return fmt.Errorf("%w: experience amount %d", store.ErrInvalidEntity, amount)
	}

	query := `
		UPDATE accounts
		SET total_exp = total_exp + $1, updated_at = $2
		WHERE user_id = $3
	`

	result, err := s.db.ExecContext(ctx, query, amount, time.Now().UTC(), userID)
	if err != nil {
		log.Error("failed to credit experience",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("amount", amount))
		return MapError(err)
	}

	return CheckRowsAffected(result, "account")
}
