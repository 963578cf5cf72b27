package handlers

import (
	"net/http"
)

// GetFallbacks reports the process-wide provider fallback counter.
// @Summary Fallback counter
// @Tags System
// @Produce json
// @Router /api/v1/system/fallbacks [get]
func (h *Handler) GetFallbacks(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"fallbacks": h.fallbacks.Fallbacks(),
	})
}

// ResetFallbacks zeroes the fallback counter. The counter never resets on
// its own.
// @Summary Reset fallback counter
// @Tags System
// @Produce json
// @Router /api/v1/system/fallbacks/reset [post]
func (h *Handler) ResetFallbacks(w http.ResponseWriter, r *http.Request) {
	h.fallbacks.ResetFallbacks()
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"fallbacks": int64(0),
	})
}
