package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/api/shared"
)

// validate is the shared request validator. validator.Validate caches
// struct metadata and is safe for concurrent use.
var validate = validator.New()

// getUserIDFromContext extracts the caller's UUID from the request context.
// The user ID is expected to be placed in the context by the identity middleware.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	return shared.GetUserID(r.Context())
}

// requireUserID extracts the caller's UUID or writes a 401 response.
// Returns false when the error response was already written.
func requireUserID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}

// decodeRequest parses the JSON body into dst and runs struct validation.
// On failure it writes a 400 response and returns false.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}, log *slog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Debug("failed to decode request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		log.Debug("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return false
	}

	return true
}
