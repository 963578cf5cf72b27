package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dotapulse/imp-api/internal/provider"
)

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]bool{}
	if h.pg != nil {
		checks["postgres"] = h.pg.Ping(ctx) == nil
	}
	if h.ch != nil {
		checks["clickhouse"] = h.ch.Ping(ctx) == nil
	}
	if h.redis != nil {
		checks["redis"] = h.redis.Ping(ctx).Err() == nil
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":  allHealthy,
		"checks": checks,
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// upstreamErrorResponse maps provider error kinds onto HTTP statuses.
// Rate limiting surfaces as 429 only after the fallback already failed.
func (h *Handler) upstreamErrorResponse(w http.ResponseWriter, err error) {
	var pe *provider.Error
	if !errors.As(err, &pe) {
		h.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	status := http.StatusBadGateway
	switch pe.Kind {
	case provider.KindNotFound:
		status = http.StatusNotFound
	case provider.KindRateLimited:
		status = http.StatusTooManyRequests
	case provider.KindUnavailable:
		status = http.StatusServiceUnavailable
	}
	h.errorResponse(w, status, err.Error())
}

// accountIDParam parses the {accountId} route parameter.
func accountIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "accountId"), 10, 64)
}

// queryInt reads an integer query parameter with a default.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
