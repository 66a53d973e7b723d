// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInsufficientFunds is returned when a debit would drive an account
	// balance below zero. The balance is left unchanged.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrBalanceOverflow is returned when a credit would overflow the
	// account's coin balance.
	ErrBalanceOverflow = errors.New("balance overflow")

	// ErrInvalidAction is returned when a pet interaction verb is not part
	// of the known vocabulary (FEED, PAT).
	ErrInvalidAction = errors.New("invalid pet action")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
