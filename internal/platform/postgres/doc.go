// Package postgres implements the internal/store interfaces against
// PostgreSQL: accounts and the coin ledger, review schedule state, pet
// instances, mission progress, and the shop catalog. All driver errors are
// normalized through MapError.
package postgres
