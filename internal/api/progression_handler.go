package api

import (
	"log/slog"
	"net/http"

	"github.com/truongtuankiet1/AIFlashCard/internal/api/shared"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
	"github.com/truongtuankiet1/AIFlashCard/internal/platform/logger"
	"github.com/truongtuankiet1/AIFlashCard/internal/service/progression"
)

// CompleteSessionRequest represents the request body for completing a study session.
type CompleteSessionRequest struct {
	CardsStudied    int     `json:"cards_studied" validate:"gte=0"`
	Accuracy        float64 `json:"accuracy" validate:"gte=0,lte=1"`
	DurationMinutes float64 `json:"duration_minutes" validate:"gte=0"`
}

// InteractRequest represents the request body for a pet interaction.
type InteractRequest struct {
	Action string `json:"action" validate:"required,oneof=FEED PAT"`
}

// ProgressionHandler handles session completion, gamification status, and
// pet interaction HTTP requests.
type ProgressionHandler struct {
	progressionService progression.Service
	logger             *slog.Logger
}

// NewProgressionHandler creates a new ProgressionHandler
func NewProgressionHandler(progressionService progression.Service, logger *slog.Logger) *ProgressionHandler {
	if progressionService == nil {
		panic("progressionService cannot be nil for ProgressionHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for ProgressionHandler")
	}

	return &ProgressionHandler{
		progressionService: progressionService,
		logger:             logger.With(slog.String("component", "progression_handler")),
	}
}

// CompleteSession handles POST /sessions/complete requests.
// Implausible sessions succeed with zeroed rewards and a corrective
// dialogue; they are not error responses.
func (h *ProgressionHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req CompleteSessionRequest
	if !decodeRequest(w, r, &req, log) {
		return
	}

	rewards, err := h.progressionService.CompleteSession(r.Context(), domain.SessionSummary{
		UserID:          userID,
		CardsStudied:    req.CardsStudied,
		Accuracy:        req.Accuracy,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to complete session"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, rewards)
}

// Status handles GET /status requests.
// First contact initializes the user's account, missions, and starter pet.
func (h *ProgressionHandler) Status(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	status, err := h.progressionService.Status(r.Context(), userID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to load status"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, status)
}

// Interact handles POST /pet/interact requests.
func (h *ProgressionHandler) Interact(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req InteractRequest
	if !decodeRequest(w, r, &req, log) {
		return
	}

	result, err := h.progressionService.Interact(r.Context(), userID, domain.PetAction(req.Action))
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to interact with pet"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("pet interaction",
		slog.String("user_id", userID.String()),
		slog.String("action", req.Action))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
