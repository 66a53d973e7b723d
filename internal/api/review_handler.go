package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/api/shared"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
	"github.com/truongtuankiet1/AIFlashCard/internal/platform/logger"
	"github.com/truongtuankiet1/AIFlashCard/internal/service/review"
)

// SubmitReviewRequest represents the request body for submitting a card review.
// Quality outside [0, 5] is clamped by the scheduler rather than rejected.
type SubmitReviewRequest struct {
	CardID  string `json:"card_id" validate:"required,uuid"`
	Quality int    `json:"quality"`
}

// ReviewStateResponse represents the response data for a card's schedule state.
type ReviewStateResponse struct {
	CardID         string    `json:"card_id"`
	EasinessFactor float64   `json:"easiness_factor"`
	Interval       int       `json:"interval"`
	Repetitions    int       `json:"repetitions"`
	NextReviewAt   time.Time `json:"next_review_at"`
	IsKnown        bool      `json:"is_known"`
	ReviewCount    int       `json:"review_count"`
}

// DueCountResponse represents the response data for the due-card count.
type DueCountResponse struct {
	DueCount int `json:"due_count"`
}

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	reviewService review.Service
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService review.Service, logger *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil for ReviewHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// SubmitReview handles POST /reviews requests.
// It applies one graded review to the card's spaced-repetition schedule.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if !decodeRequest(w, r, &req, log) {
		return
	}

	cardID, err := uuid.Parse(req.CardID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID format")
		return
	}

	state, err := h.reviewService.SubmitReview(r.Context(), userID, review.ReviewEvent{
		CardID:  cardID,
		Quality: req.Quality,
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit review"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("review submitted",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.Int("quality", req.Quality),
		slog.Int("interval", state.Interval))
	shared.RespondWithJSON(w, r, http.StatusOK, reviewStateToResponse(state))
}

// DueCount handles GET /reviews/due-count requests.
func (h *ReviewHandler) DueCount(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	count, err := h.reviewService.DueCount(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to count due cards", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DueCountResponse{DueCount: count})
}

func reviewStateToResponse(state *domain.ReviewState) ReviewStateResponse {
	return ReviewStateResponse{
		CardID:         state.CardID.String(),
		EasinessFactor: state.EasinessFactor,
		Interval:       state.Interval,
		Repetitions:    state.Repetitions,
		NextReviewAt:   state.NextReviewAt,
		IsKnown:        state.IsKnown,
		ReviewCount:    state.ReviewCount,
	}
}
