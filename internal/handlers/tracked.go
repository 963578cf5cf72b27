package handlers

import (
	"encoding/json"
	"net/http"
)

type trackPlayerRequest struct {
	AccountID int64  `json:"account_id" validate:"required,min=1"`
	Label     string `json:"label" validate:"max=64"`
}

// ListTrackedPlayers returns the tracked-player registry.
// @Summary List tracked players
// @Tags Tracking
// @Produce json
// @Router /api/v1/tracked [get]
func (h *Handler) ListTrackedPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.tracking.ListTracked(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to list tracked players", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to list tracked players")
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{"players": players})
}

// TrackPlayer registers a player for background score tracking.
// @Summary Track a player
// @Tags Tracking
// @Accept json
// @Produce json
// @Router /api/v1/tracked [post]
func (h *Handler) TrackPlayer(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req trackPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := h.tracking.AddTracked(r.Context(), req.AccountID, req.Label); err != nil {
		h.logger.Errorw("Failed to track player", "account_id", req.AccountID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to track player")
		return
	}
	h.jsonResponse(w, http.StatusCreated, map[string]interface{}{
		"account_id": req.AccountID,
		"tracked":    true,
	})
}

// UntrackPlayer removes a player from the registry.
// @Summary Untrack a player
// @Tags Tracking
// @Router /api/v1/tracked/{accountId} [delete]
func (h *Handler) UntrackPlayer(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDParam(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	if err := h.tracking.RemoveTracked(r.Context(), accountID); err != nil {
		h.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"account_id": accountID,
		"tracked":    false,
	})
}
