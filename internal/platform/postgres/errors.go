package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/truongtuankiet1/AIFlashCard/internal/store"
)

// SQLSTATE codes this layer cares about.
const (
	uniqueViolationCode        = "23505"
	foreignKeyViolationCode    = "23503"
	checkViolationCode         = "23514"
	numericValueOutOfRangeCode = "22003"

	// serializationFailureCode signals a SERIALIZABLE conflict. Callers own
	// retry policy.
	serializationFailureCode = "40001"
)

// MapError translates driver errors into the store's sentinel errors so the
// service layer never matches on SQLSTATE strings. The original error stays
// wrapped for debugging. Every store method passes its errors through here.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case foreignKeyViolationCode:
			return fmt.Errorf(
				"%w: foreign key violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case numericValueOutOfRangeCode:
			return fmt.Errorf("%w: %v", store.ErrBalanceOverflow, err)
		case serializationFailureCode:
			return fmt.Errorf("%w: serialization failure: %v", store.ErrTransactionFailed, err)
		}
	}

	// No specific mapping; let the caller see the raw error.
	return err
}

// IsUniqueViolation reports whether err is a unique constraint violation.
// Stores use it to map specific indexes (pet ownership, promo redemption)
// to their own sentinels before falling back to MapError.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsSerializationFailure reports whether err is a serialization failure,
// the signal that a serializable transaction should be retried from fresh
// state by whoever called the core.
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == serializationFailureCode
}

// CheckRowsAffected turns a zero-row UPDATE or DELETE into store.ErrNotFound
// tagged with entityName. UPDATEs that target a single row by key rely on
// this to distinguish "absent" from "succeeded".
func CheckRowsAffected(result sql.Result, entityName string) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if entityName == "" {
			return store.ErrNotFound
		}
		return fmt.Errorf("%w: %s not found", store.ErrNotFound, entityName)
	}

	return nil
}
