package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/MikeSquared-Agency/Vouch/internal/hermes"
	"github.com/MikeSquared-Agency/Vouch/internal/store"
)

type InfluencersHandler struct {
	store  store.Store
	hermes hermes.Client
	logger *slog.Logger
}

func NewInfluencersHandler(s store.Store, h hermes.Client, logger *slog.Logger) *InfluencersHandler {
	return &InfluencersHandler{store: s, hermes: h, logger: logger}
}

type AddInfluencerRequest struct {
	Handle   string `json:"handle"`
	Platform string `json:"platform,omitempty"`
}

// Create handles POST /api/influencers with a JSON array of handles.
func (h *InfluencersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var reqs []AddInfluencerRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	infs := make([]*store.Influencer, 0, len(reqs))
	for _, req := range reqs {
		// Stored verbatim; the handle is the scoring seed.
		handle := req.Handle
		if strings.TrimSpace(handle) == "" {
			writeError(w, http.StatusBadRequest, "handle required")
			return
		}
		platform := strings.TrimSpace(req.Platform)
		if platform == "" {
			platform = store.DefaultPlatform
		}
		infs = append(infs, &store.Influencer{Handle: handle, Platform: platform})
	}

	if len(infs) > 0 {
		if err := h.store.CreateInfluencers(r.Context(), infs); err != nil {
			h.logger.Error("create influencers", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	for _, inf := range infs {
		hermes.Emit(h.hermes, h.logger, hermes.SubjectInfluencerAdded(inf.ID.String()), hermes.InfluencerAddedEvent{
			InfluencerID: inf.ID.String(),
			Handle:       inf.Handle,
			Platform:     inf.Platform,
		})
	}

	writeJSON(w, http.StatusCreated, infs)
}

// List handles GET /api/influencers
func (h *InfluencersHandler) List(w http.ResponseWriter, r *http.Request) {
	infs, err := h.store.ListInfluencers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if infs == nil {
		infs = []*store.Influencer{}
	}
	writeJSON(w, http.StatusOK, infs)
}
