package api

import (
	"context"
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/Vouch/internal/config"
	"github.com/MikeSquared-Agency/Vouch/internal/store"
)

const serviceName = "vouch"

type HealthHandler struct {
	store     store.Store
	build     config.BuildConfig
	startedAt time.Time
}

func NewHealthHandler(s store.Store, build config.BuildConfig, startedAt time.Time) *HealthHandler {
	return &HealthHandler{store: s, build: build, startedAt: startedAt.UTC()}
}

func (h *HealthHandler) commit() *string {
	if h.build.Commit == "" {
		return nil
	}
	c := h.build.Commit
	return &c
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":             true,
		"service":        serviceName,
		"version":        h.build.Version,
		"commit":         h.commit(),
		"started_at":     h.startedAt.Format(time.RFC3339),
		"uptime_seconds": time.Since(h.startedAt).Seconds(),
	})
}

// Ready handles GET /ready by pinging the database.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"ok":      false,
			"db":      "down: " + err.Error(),
			"version": h.build.Version,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"db":      "up",
		"version": h.build.Version,
		"commit":  h.commit(),
	})
}
