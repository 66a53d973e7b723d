package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/api/shared"
)

// UserIDHeader carries the caller's identity. The API trusts the gateway in
// front of it to have authenticated the user and set this header.
const UserIDHeader = "X-User-ID"

// IdentityMiddleware extracts the user ID from the X-User-ID header, parses
// it as a UUID, and stores it in the request context for handlers. Requests
// without a valid user ID are rejected with 401.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID is required")
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			slog.Debug("rejecting request with malformed user ID",
				slog.String("path", r.URL.Path))
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid user ID")
			return
		}

		ctx := shared.WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
