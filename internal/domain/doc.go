// Package domain holds the entities of the learning economy: accounts,
// review schedule state, pet instances, missions, shop items and ledger
// entries, plus the pure progression rules that act on them.
package domain
