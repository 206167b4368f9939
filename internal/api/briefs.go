package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Vouch/internal/auth"
	"github.com/MikeSquared-Agency/Vouch/internal/hermes"
	"github.com/MikeSquared-Agency/Vouch/internal/scoring"
	"github.com/MikeSquared-Agency/Vouch/internal/store"
)

type BriefsHandler struct {
	store          store.Store
	hermes         hermes.Client
	defaultWeights map[string]float64
	logger         *slog.Logger
}

func NewBriefsHandler(s store.Store, h hermes.Client, defaultWeights map[string]float64, logger *slog.Logger) *BriefsHandler {
	return &BriefsHandler{store: s, hermes: h, defaultWeights: defaultWeights, logger: logger}
}

type CreateBriefRequest struct {
	Brand      string          `json:"brand"`
	Keywords   []string        `json:"keywords,omitempty"`
	KPIWeights json.RawMessage `json:"kpi_weights,omitempty"`
}

// Create handles POST /api/brief
func (h *BriefsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserIDFromContext(r.Context())

	var req CreateBriefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	brand := req.Brand
	if strings.TrimSpace(brand) == "" {
		writeError(w, http.StatusBadRequest, "brand required")
		return
	}

	weights, err := h.weights(req.KPIWeights)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := scoring.ValidateWeights(weights); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	keywords := req.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	brief := &store.Brief{
		OwnerID:    ownerID,
		Brand:      brand,
		Keywords:   keywords,
		KPIWeights: weights,
	}
	if err := h.store.CreateBrief(r.Context(), brief); err != nil {
		h.logger.Error("create brief", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	hermes.Emit(h.hermes, h.logger, hermes.SubjectBriefCreated(brief.ID.String()), hermes.BriefCreatedEvent{
		BriefID:    brief.ID.String(),
		OwnerID:    ownerID.String(),
		Brand:      brief.Brand,
		Keywords:   brief.Keywords,
		KPIWeights: brief.KPIWeights,
	})

	writeJSON(w, http.StatusCreated, brief)
}

// weights decodes kpi_weights. An absent field takes the configured defaults;
// an explicit null is rejected.
func (h *BriefsHandler) weights(raw json.RawMessage) (scoring.WeightConfig, error) {
	if len(raw) == 0 {
		return h.defaults(), nil
	}
	if string(raw) == "null" {
		return nil, errors.New("kpi_weights must be an object")
	}
	var w scoring.WeightConfig
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("invalid kpi_weights: %w", err)
	}
	return w, nil
}

func (h *BriefsHandler) defaults() scoring.WeightConfig {
	if len(h.defaultWeights) == 0 {
		return scoring.DefaultWeightConfig()
	}
	w := make(scoring.WeightConfig, len(h.defaultWeights))
	for k, v := range h.defaultWeights {
		w[k] = v
	}
	return w
}

// List handles GET /api/brief
func (h *BriefsHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserIDFromContext(r.Context())

	briefs, err := h.store.ListBriefsByOwner(r.Context(), ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if briefs == nil {
		briefs = []*store.Brief{}
	}
	writeJSON(w, http.StatusOK, briefs)
}

// Get handles GET /api/brief/{id}. Briefs owned by another user are reported
// as missing.
func (h *BriefsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserIDFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid brief id")
		return
	}

	brief, err := h.store.GetBrief(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if brief == nil || brief.OwnerID != ownerID {
		writeError(w, http.StatusNotFound, "Brief not found")
		return
	}
	writeJSON(w, http.StatusOK, brief)
}
