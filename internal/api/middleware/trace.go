package middleware

import (
	"log/slog"
	"net/http"

	"github.com/truongtuankiet1/AIFlashCard/internal/api/shared"
)

// TraceMiddleware stamps every request context with a fresh trace ID so
// that handler logs and client-facing error envelopes can be correlated.
// It must run before any handler that calls shared.RespondWithErrorAndLog.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		slog.Debug("request started",
			slog.String("trace_id", shared.GetTraceID(ctx)),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
