package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Vouch/internal/auth"
	"github.com/MikeSquared-Agency/Vouch/internal/report"
	"github.com/MikeSquared-Agency/Vouch/internal/scoring"
)

type ReportsHandler struct {
	reports *report.Service
	logger  *slog.Logger
}

func NewReportsHandler(reports *report.Service, logger *slog.Logger) *ReportsHandler {
	return &ReportsHandler{reports: reports, logger: logger}
}

// Compute handles GET /api/reports/{brief_id}
func (h *ReportsHandler) Compute(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserIDFromContext(r.Context())

	briefID, err := uuid.Parse(chi.URLParam(r, "brief_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid brief_id")
		return
	}

	entries, err := h.reports.Compute(r.Context(), ownerID, briefID)
	switch {
	case errors.Is(err, report.ErrBriefNotFound):
		writeError(w, http.StatusNotFound, "Brief not found")
	case errors.Is(err, scoring.ErrInvalidWeightConfig):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		h.logger.Error("compute report", "brief_id", briefID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, entries)
	}
}
