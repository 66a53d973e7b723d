package review_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain/srs"
	"github.com/truongtuankiet1/AIFlashCard/internal/platform/postgres"
	"github.com/truongtuankiet1/AIFlashCard/internal/service/review"
	"github.com/truongtuankiet1/AIFlashCard/internal/testdb"
)

func newIntegrationService(t *testing.T) (review.Service, *postgres.PostgresReviewStateStore) {
	t.Helper()
	db := testdb.GetTestDBWithT(t)
	testdb.ResetUserData(t, db)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	states := postgres.NewPostgresReviewStateStore(db, log)
	return review.NewService(db, states, srs.NewDefaultService(), log), states
}

func TestIntegration_SubmitReviewCreatesStateLazily(t *testing.T) {
	svc, _ := newIntegrationService(t)
	ctx := context.Background()
	userID := uuid.New()
	cardID := uuid.New()

	state, err := svc.SubmitReview(ctx, userID, review.ReviewEvent{CardID: cardID, Quality: 5})
	require.NoError(t, err)

	assert.Equal(t, userID, state.UserID)
	assert.Equal(t, cardID, state.CardID)
	assert.Equal(t, 1, state.Repetitions)
	assert.Equal(t, 1, state.Interval)
	assert.Equal(t, 1, state.ReviewCount)
	assert.True(t, state.IsKnown)
	assert.InDelta(t, 2.6, state.EasinessFactor, 0.001)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, 1), state.NextReviewAt, time.Minute)
}

func TestIntegration_SubmitReviewProgressesSchedule(t *testing.T) {
	svc, _ := newIntegrationService(t)
	ctx := context.Background()
	userID := uuid.New()
	cardID := uuid.New()

	for _, wantInterval := range []int{1, 3, 8} {
		state, err := svc.SubmitReview(ctx, userID, review.ReviewEvent{CardID: cardID, Quality: 4})
		require.NoError(t, err)
		assert.Equal(t, wantInterval, state.Interval)
	}

	// A failed review resets the schedule but keeps the history.
	state, err := svc.SubmitReview(ctx, userID, review.ReviewEvent{CardID: cardID, Quality: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, state.Repetitions)
	assert.Equal(t, 1, state.Interval)
	assert.Equal(t, 4, state.ReviewCount)
	assert.False(t, state.IsKnown)
}

func TestIntegration_DueCount(t *testing.T) {
	svc, states := newIntegrationService(t)
	ctx := context.Background()
	userID := uuid.New()

	count, err := svc.DueCount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// A card reviewed just now is scheduled for tomorrow, so it is not due.
	_, err = svc.SubmitReview(ctx, userID, review.ReviewEvent{CardID: uuid.New(), Quality: 4})
	require.NoError(t, err)

	count, err = svc.DueCount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Due-ness only appears once the clock passes next_review_at, so
	// backdate one card's schedule directly.
	overdue, err := svc.SubmitReview(ctx, userID, review.ReviewEvent{CardID: uuid.New(), Quality: 5})
	require.NoError(t, err)
	overdue.NextReviewAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, states.Update(ctx, overdue))

	count, err = svc.DueCount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
