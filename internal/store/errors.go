package store

import (
	"errors"
	"fmt"

	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
)

// Sentinel errors shared by every store implementation. Services branch on
// these with errors.Is; the API layer maps them to HTTP statuses.
var (
	// ErrNotFound is the generic absent-entity error. The entity-specific
	// variants below wrap it, so errors.Is(err, ErrNotFound) catches all.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a second copy
	// of a unique entity (e.g., a second progress row for the same window).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. The wrapped error carries the specific violation.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrInsufficientFunds is returned when an atomic debit finds less
	// balance than the amount requested. The balance is unchanged.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUpdateFailed is returned when an update cannot be applied, for
	// example because the target row vanished or a constraint rejected it.
	ErrUpdateFailed = errors.New("update failed")

	// ErrTransactionFailed is returned when a transaction fails to commit,
	// including serialization conflicts under SERIALIZABLE isolation.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrBalanceOverflow is returned when a credit would push a BIGINT
	// balance column past its range. It wraps domain.ErrBalanceOverflow so
	// both the SQL-level and the domain-level guard match the same errors.Is.
	ErrBalanceOverflow = fmt.Errorf("%w: account balance", domain.ErrBalanceOverflow)
)

// Entity-specific wrappers. Each one satisfies errors.Is against its
// generic parent above.
var (
	ErrAccountNotFound         = fmt.Errorf("%w: account", ErrNotFound)
	ErrReviewStateNotFound     = fmt.Errorf("%w: review state", ErrNotFound)
	ErrPetNotFound             = fmt.Errorf("%w: pet", ErrNotFound)
	ErrMissionNotFound         = fmt.Errorf("%w: mission", ErrNotFound)
	ErrMissionProgressNotFound = fmt.Errorf("%w: mission progress", ErrNotFound)
	ErrItemNotFound            = fmt.Errorf("%w: shop item", ErrNotFound)

	// ErrPetAlreadyOwned maps the one-instance-per-pet unique index.
	ErrPetAlreadyOwned = fmt.Errorf("%w: pet", ErrDuplicate)

	// ErrPromoAlreadyRedeemed maps the (user, code) promo ledger index.
	ErrPromoAlreadyRedeemed = fmt.Errorf("%w: promo redemption", ErrDuplicate)
)

// IsNotFoundError reports whether err is any "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is any "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError annotates a store failure with the entity and operation it
// occurred in while keeping the original error reachable via Unwrap.
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError builds a StoreError wrapping err.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
