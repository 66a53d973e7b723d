package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Account-specific validation errors
var (
	// ErrAccountUserIDEmpty is returned when an account's user ID is empty or nil.
	ErrAccountUserIDEmpty = errors.New("account user ID cannot be empty")

	// ErrNegativeCoins is returned when an account balance would be negative.
	ErrNegativeCoins = errors.New("coin balance cannot be negative")

	// ErrNegativeExperience is returned when total experience would be negative.
	ErrNegativeExperience = errors.New("total experience cannot be negative")

	// ErrNegativeAmount is returned when a credit or debit amount is negative.
	ErrNegativeAmount = errors.New("amount cannot be negative")
)

// Account holds a user's coin balance and lifetime experience.
// Coins are stored as int64 backed by a BIGINT column, which tolerates
// the large promotional grants the shop hands out. TotalExp only ever
// grows; coins move in both directions but never below zero.
type Account struct {
	UserID    uuid.UUID `json:"user_id"`
	Coins     int64     `json:"coins"`
	TotalExp  int64     `json:"total_exp"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAccount creates an empty account for a user.
// Accounts are created lazily the first time the economy touches a user.
func NewAccount(userID uuid.UUID) (*Account, error) {
	now := time.Now().UTC()
	account := &Account{
		UserID:    userID,
		Coins:     0,
		TotalExp:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	return account, nil
}

// Validate checks if the Account has valid data.
func (a *Account) Validate() error {
	if a.UserID == uuid.Nil {
		return ErrAccountUserIDEmpty
	}
	if a.Coins < 0 {
		return ErrNegativeCoins
	}
	if a.TotalExp < 0 {
		return ErrNegativeExperience
	}
	return nil
}

// CheckCredit verifies that crediting amount to balance neither receives a
// negative amount nor overflows int64. It returns the resulting balance.
// The actual write is performed by the store inside the caller's transaction.
func CheckCredit(balance, amount int64) (int64, error) {
	if amount < 0 {
		return balance, ErrNegativeAmount
	}
	if balance > math.MaxInt64-amount {
		return balance, ErrBalanceOverflow
	}
	return balance + amount, nil
}

// CheckDebit verifies that debiting amount from balance is legal: the amount
// must be non-negative and must not exceed the balance. It returns the
// resulting balance. Stores must still enforce this atomically in SQL; this
// function exists so services can fail fast with a typed error.
func CheckDebit(balance, amount int64) (int64, error) {
	if amount < 0 {
		return balance, ErrNegativeAmount
	}
	if amount > balance {
		return balance, ErrInsufficientFunds
	}
	return balance - amount, nil
}
