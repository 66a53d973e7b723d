package api

import (
	"errors"
	"net/http"

	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
	"github.com/truongtuankiet1/AIFlashCard/internal/service/progression"
	"github.com/truongtuankiet1/AIFlashCard/internal/service/review"
	"github.com/truongtuankiet1/AIFlashCard/internal/service/shop"
	"github.com/truongtuankiet1/AIFlashCard/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Ownership errors
	case errors.Is(err, shop.ErrPetNotOwned),
		errors.Is(err, shop.ErrSkinNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, store.ErrPetNotFound),
		errors.Is(err, store.ErrMissionNotFound),
		errors.Is(err, store.ErrAccountNotFound),
		errors.Is(err, progression.ErrNoActivePet),
		errors.Is(err, shop.ErrNoActivePet):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrPetAlreadyOwned),
		errors.Is(err, store.ErrPromoAlreadyRedeemed):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInsufficientFunds),
		errors.Is(err, domain.ErrBalanceOverflow),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidAction),
		errors.Is(err, review.ErrInvalidEvent),
		errors.Is(err, progression.ErrInvalidSummary),
		errors.Is(err, shop.ErrInvalidCode):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, shop.ErrPetNotOwned):
		return "You do not own this pet"

	case errors.Is(err, shop.ErrSkinNotOwned):
		return "You do not own this skin"

	case errors.Is(err, store.ErrItemNotFound):
		return "Item not found"

	case errors.Is(err, store.ErrPetNotFound):
		return "Pet not found"

	case errors.Is(err, store.ErrMissionNotFound):
		return "Mission not found"

	case errors.Is(err, store.ErrAccountNotFound):
		return "Account not found"

	case errors.Is(err, progression.ErrNoActivePet),
		errors.Is(err, shop.ErrNoActivePet):
		return "No active pet"

	case errors.Is(err, store.ErrPetAlreadyOwned):
		return "Pet already owned"

	case errors.Is(err, store.ErrPromoAlreadyRedeemed):
		return "Code already redeemed"

	case errors.Is(err, store.ErrInsufficientFunds):
		return "Not enough coins"

	case errors.Is(err, domain.ErrBalanceOverflow):
		return "Coin balance limit reached"

	case errors.Is(err, shop.ErrInvalidCode):
		return "Invalid promo code"

	case errors.Is(err, domain.ErrInvalidAction):
		return "Invalid pet action"

	case errors.Is(err, review.ErrInvalidEvent),
		errors.Is(err, progression.ErrInvalidSummary),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}
