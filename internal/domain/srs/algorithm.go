package srs

import (
	"math"
	"time"

	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
)

// clampQuality forces a quality score into the configured range.
// Out-of-range input is a caller bug, not a user error, so it is silently
// clamped rather than rejected; the algorithm stays total.
func clampQuality(quality int, params *Params) int {
	if quality < params.MinQuality {
		return params.MinQuality
	}
	if quality > params.MaxQuality {
		return params.MaxQuality
	}
	return quality
}

// calculateNewEaseFactor determines the new easiness factor from the
// review quality using the SM-2 formula:
//
//	EF' = EF + 0.1 − (5−q)·(0.08 + (5−q)·0.02)
//
// The result is floored at params.MinEaseFactor and rounded to two decimal
// places for storage stability.
func calculateNewEaseFactor(currentEF float64, quality int, params *Params) float64 {
	miss := float64(params.MaxQuality - quality)
	newEF := currentEF + 0.1 - miss*(0.08+miss*0.02)

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}

	return math.Round(newEF*100) / 100
}

// calculateNewInterval determines the next interval in days.
//
// A failed recall (quality below PassQuality) resets the interval to one
// day. Successful recalls grow the interval: one day for the first success,
// params.SecondInterval for the second, then the previous interval scaled
// by the new easiness factor.
func calculateNewInterval(currentInterval, repetitions int, easeFactor float64, quality int, params *Params) int {
	if quality < params.PassQuality {
		return params.FirstInterval
	}

	switch repetitions {
	case 0:
		return params.FirstInterval
	case 1:
		return params.SecondInterval
	default:
		return int(math.Round(float64(currentInterval) * easeFactor))
	}
}

// calculateNextState creates a new ReviewState with updated values based on
// the review quality. The input state is never mutated: a fresh copy is
// returned so callers can compare before/after and persistence stays a
// plain row write.
func calculateNextState(state *domain.ReviewState, quality int, now time.Time, params *Params) *domain.ReviewState {
	q := clampQuality(quality, params)

	next := *state
	next.EasinessFactor = calculateNewEaseFactor(state.EasinessFactor, q, params)
	next.Interval = calculateNewInterval(state.Interval, state.Repetitions, next.EasinessFactor, q, params)

	if q < params.PassQuality {
		next.Repetitions = 0
	} else {
		next.Repetitions = state.Repetitions + 1
	}

	next.IsKnown = q >= params.PassQuality
	next.ReviewCount = state.ReviewCount + 1
	next.LastReviewedAt = now
	next.NextReviewAt = now.AddDate(0, 0, next.Interval)
	next.UpdatedAt = now

	return &next
}
