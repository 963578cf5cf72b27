package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dotapulse/imp-api/internal/logic"
	"github.com/dotapulse/imp-api/internal/models"
)

// ScoreParticipant computes a performance score for one participant.
// @Summary Score a participant
// @Description Evaluates the role-specific model for one player's match performance
// @Tags Scoring
// @Accept json
// @Produce json
// @Success 200 {object} models.ScoreResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/score [post]
func (h *Handler) ScoreParticipant(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	data, err := h.scores.ScoreRequest(r.Context(), &req)
	if err != nil {
		h.logger.Errorw("Scoring failed",
			"match_id", req.MatchID, "hero_id", req.HeroID, "role", req.Role, "error", err)
		h.upstreamErrorResponse(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, models.ScoreResponse{
		Success: true,
		Data:    *data,
		Meta: models.ScoreMeta{
			EngineVersion: logic.EngineVersion,
			RequestID:     uuid.NewString(),
			CalculatedAt:  time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// GetMatchScorecard scores all ten participants of one match.
// @Summary Full match scorecard
// @Tags Scoring
// @Produce json
// @Success 200 {object} models.MatchScorecard
// @Failure 404 {object} map[string]string
// @Router /api/v1/matches/{matchId}/scorecard [get]
func (h *Handler) GetMatchScorecard(w http.ResponseWriter, r *http.Request) {
	matchID, err := strconv.ParseInt(chi.URLParam(r, "matchId"), 10, 64)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid match id")
		return
	}

	card, err := h.scores.ScoreMatch(r.Context(), matchID)
	if err != nil {
		h.logger.Warnw("Scorecard failed", "match_id", matchID, "error", err)
		h.upstreamErrorResponse(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, card)
}
