package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Vouch/internal/auth"
	"github.com/MikeSquared-Agency/Vouch/internal/config"
	"github.com/MikeSquared-Agency/Vouch/internal/hermes"
	"github.com/MikeSquared-Agency/Vouch/internal/report"
	"github.com/MikeSquared-Agency/Vouch/internal/store"
)

func NewRouter(s store.Store, h hermes.Client, reports *report.Service, issuer *auth.Issuer, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(CORSMiddleware(cfg.CORS.AllowedOrigins))

	health := NewHealthHandler(s, cfg.Build, time.Now())
	users := NewAuthHandler(s, issuer, cfg.Auth.BcryptCost, logger)
	briefs := NewBriefsHandler(s, h, cfg.Scoring.DefaultWeights, logger)
	influencers := NewInfluencersHandler(s, h, logger)
	reportsHandler := NewReportsHandler(reports, logger)

	r.Get("/health", health.Health)
	r.Get("/ready", health.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", users.Signup)
		r.Post("/auth/login", users.Login)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(issuer, s))

			r.Post("/brief", briefs.Create)
			r.Get("/brief", briefs.List)
			r.Get("/brief/{id}", briefs.Get)

			r.Post("/influencers", influencers.Create)
			r.Get("/influencers", influencers.List)

			r.Get("/reports/{brief_id}", reportsHandler.Compute)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
