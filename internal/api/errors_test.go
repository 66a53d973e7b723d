package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
	"github.com/truongtuankiet1/AIFlashCard/internal/service/progression"
	"github.com/truongtuankiet1/AIFlashCard/internal/service/review"
	"github.com/truongtuankiet1/AIFlashCard/internal/service/shop"
	"github.com/truongtuankiet1/AIFlashCard/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "Pet not owned", err: shop.ErrPetNotOwned, expected: http.StatusForbidden},
		{name: "Skin not owned", err: shop.ErrSkinNotOwned, expected: http.StatusForbidden},
		{name: "Item not found", err: store.ErrItemNotFound, expected: http.StatusNotFound},
		{name: "Pet not found", err: store.ErrPetNotFound, expected: http.StatusNotFound},
		{name: "Mission not found", err: store.ErrMissionNotFound, expected: http.StatusNotFound},
		{name: "Account not found", err: store.ErrAccountNotFound, expected: http.StatusNotFound},
		{name: "No active pet", err: progression.ErrNoActivePet, expected: http.StatusNotFound},
		{name: "No active pet for inventory", err: shop.ErrNoActivePet, expected: http.StatusNotFound},
		{name: "Pet already owned", err: store.ErrPetAlreadyOwned, expected: http.StatusConflict},
		{name: "Promo already redeemed", err: store.ErrPromoAlreadyRedeemed, expected: http.StatusConflict},
		{name: "Insufficient funds", err: store.ErrInsufficientFunds, expected: http.StatusBadRequest},
		{name: "Balance overflow", err: domain.ErrBalanceOverflow, expected: http.StatusBadRequest},
		{name: "Balance overflow from the store", err: store.ErrBalanceOverflow, expected: http.StatusBadRequest},
		{name: "Invalid entity", err: store.ErrInvalidEntity, expected: http.StatusBadRequest},
		{name: "Domain validation", err: domain.ErrValidation, expected: http.StatusBadRequest},
		{name: "Invalid pet action", err: domain.ErrInvalidAction, expected: http.StatusBadRequest},
		{name: "Invalid review event", err: review.ErrInvalidEvent, expected: http.StatusBadRequest},
		{name: "Invalid session summary", err: progression.ErrInvalidSummary, expected: http.StatusBadRequest},
		{name: "Invalid promo code", err: shop.ErrInvalidCode, expected: http.StatusBadRequest},
		{name: "Unknown error", err: errors.New("database exploded"), expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestMapErrorToStatusCodeWrapped(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// Service errors arrive wrapped; mapping must see through the layers.
	wrapped := &shop.ServiceError{
		Operation: "purchase",
		Message:   "failed to complete purchase",
		Err:       fmt.Errorf("debit rejected: %w", store.ErrInsufficientFunds),
	}
	assert.Equal(t, http.StatusBadRequest, MapErrorToStatusCode(wrapped))
	assert.Equal(t, "Not enough coins", GetSafeErrorMessage(wrapped))
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "Nil error", err: nil, expected: "An unexpected error occurred"},
		{name: "Pet not owned", err: shop.ErrPetNotOwned, expected: "You do not own this pet"},
		{name: "Skin not owned", err: shop.ErrSkinNotOwned, expected: "You do not own this skin"},
		{name: "Item not found", err: store.ErrItemNotFound, expected: "Item not found"},
		{name: "No active pet", err: progression.ErrNoActivePet, expected: "No active pet"},
		{name: "No active pet for inventory", err: shop.ErrNoActivePet, expected: "No active pet"},
		{name: "Balance overflow", err: store.ErrBalanceOverflow, expected: "Coin balance limit reached"},
		{name: "Pet already owned", err: store.ErrPetAlreadyOwned, expected: "Pet already owned"},
		{name: "Promo already redeemed", err: store.ErrPromoAlreadyRedeemed, expected: "Code already redeemed"},
		{name: "Insufficient funds", err: store.ErrInsufficientFunds, expected: "Not enough coins"},
		{name: "Invalid promo code", err: shop.ErrInvalidCode, expected: "Invalid promo code"},
		{name: "Invalid pet action", err: domain.ErrInvalidAction, expected: "Invalid pet action"},
		{name: "Invalid review event", err: review.ErrInvalidEvent, expected: "Invalid request data"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			message := GetSafeErrorMessage(tc.err)
			assert.Equal(t, tc.expected, message)
			assert.NotContains(t, message, "sql")
			assert.NotContains(t, message, "pq:")
		})
	}
}
