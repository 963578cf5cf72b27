package handlers

import (
	"net/http"
)

// GetPlayer returns a player's public profile.
// @Summary Get player profile
// @Tags Players
// @Produce json
// @Success 200 {object} models.PlayerProfile
// @Router /api/v1/players/{accountId} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDParam(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	profile, err := h.providers.FetchPlayer(r.Context(), accountID)
	if err != nil {
		h.upstreamErrorResponse(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, profile)
}

// GetPlayerRecentMatches returns a player's recent matches, newest first.
// @Summary Recent matches
// @Tags Players
// @Produce json
// @Param limit query int false "Max matches" default(20)
// @Param before query int false "Only matches older than this match id"
// @Router /api/v1/players/{accountId}/recent [get]
func (h *Handler) GetPlayerRecentMatches(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDParam(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	limit := queryInt(r, "limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	before := int64(queryInt(r, "before", 0))

	matches, err := h.providers.FetchRecentMatches(r.Context(), accountID, limit, before)
	if err != nil {
		h.upstreamErrorResponse(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"account_id": accountID,
		"matches":    matches,
	})
}

// GetPlayerPeers returns aggregates for teammates the player queues with.
// @Summary Peer aggregates
// @Tags Players
// @Produce json
// @Router /api/v1/players/{accountId}/peers [get]
func (h *Handler) GetPlayerPeers(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDParam(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	limit := queryInt(r, "limit", 10)
	peers, err := h.providers.FetchPeers(r.Context(), accountID, limit)
	if err != nil {
		h.upstreamErrorResponse(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"account_id": accountID,
		"peers":      peers,
	})
}

// GetPlayerWinLoss returns lifetime win/loss totals.
// @Summary Win/loss totals
// @Tags Players
// @Produce json
// @Router /api/v1/players/{accountId}/wl [get]
func (h *Handler) GetPlayerWinLoss(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDParam(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	wl, err := h.providers.FetchWinLoss(r.Context(), accountID)
	if err != nil {
		h.upstreamErrorResponse(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, wl)
}

// GetPlayerScores returns the player's persisted score history.
// @Summary Score history
// @Tags Players
// @Produce json
// @Router /api/v1/players/{accountId}/scores [get]
func (h *Handler) GetPlayerScores(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDParam(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	scores, err := h.history.PlayerScores(r.Context(), accountID, queryInt(r, "limit", 20))
	if err != nil {
		h.logger.Errorw("Score history query failed", "account_id", accountID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load score history")
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"account_id": accountID,
		"scores":     scores,
	})
}
