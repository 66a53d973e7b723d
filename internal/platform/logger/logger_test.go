// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truongtuankiet1/AIFlashCard/internal/config"
	"github.com/truongtuankiet1/AIFlashCard/internal/platform/logger"
)

func TestSetupLogLevels(t *testing.T) {
	testCases := []struct {
		level        string
		debugEnabled bool
		infoEnabled  bool
	}{
		{level: "debug", debugEnabled: true, infoEnabled: true},
		{level: "info", debugEnabled: false, infoEnabled: true},
		{level: "warn", debugEnabled: false, infoEnabled: false},
		{level: "error", debugEnabled: false, infoEnabled: false},
		// Unknown levels fall back to info rather than failing startup.
		{level: "shout", debugEnabled: false, infoEnabled: true},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			log, err := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: tc.level})
			require.NoError(t, err)
			require.NotNil(t, log)

			ctx := context.Background()
			assert.Equal(t, tc.debugEnabled, log.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tc.infoEnabled, log.Enabled(ctx, slog.LevelInfo))
			assert.True(t, log.Enabled(ctx, slog.LevelError))
		})
	}
}

func TestSetupSetsDefaultLogger(t *testing.T) {
	oldDefault := slog.Default()
	defer slog.SetDefault(oldDefault)

	log, err := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: "info"})
	require.NoError(t, err)
	assert.Equal(t, log, slog.Default())
}

func TestLoggerContext(t *testing.T) {
	t.Parallel() // Enable parallel execution

	tagged := slog.New(slog.NewTextHandler(io.Discard, nil)).With(slog.String("component", "test"))

	t.Run("Round trip through context", func(t *testing.T) {
		t.Parallel()
		ctx := logger.WithLogger(context.Background(), tagged)
		assert.Equal(t, tagged, logger.FromContext(ctx))
		assert.Equal(t, tagged, logger.FromContextOrDefault(ctx, nil))
	})

	t.Run("Empty context falls back to default", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, slog.Default(), logger.FromContext(context.Background()))
	})

	t.Run("Empty context prefers the provided fallback", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, tagged, logger.FromContextOrDefault(context.Background(), tagged))
	})
}
