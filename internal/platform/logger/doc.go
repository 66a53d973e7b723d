// Package logger configures structured JSON logging on log/slog and carries
// request-scoped loggers through context so transactional services and
// stores log with consistent attributes.
package logger
