package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/Vouch/internal/hermes"
	"github.com/MikeSquared-Agency/Vouch/internal/metrics"
	"github.com/MikeSquared-Agency/Vouch/internal/scoring"
	"github.com/MikeSquared-Agency/Vouch/internal/store"
)

var ErrBriefNotFound = errors.New("brief not found")

// Entry is one row of a compatibility report.
type Entry struct {
	InfluencerID uuid.UUID `json:"influencer_id"`
	BriefID      uuid.UUID `json:"brief_id"`
	Handle       string    `json:"handle"`
	Authenticity float64   `json:"authenticity"`
	Relevance    float64   `json:"relevance"`
	Resonance    float64   `json:"resonance"`
	ExpectedROAS float64   `json:"expected_roas"`
	TrustIndex   float64   `json:"trust_index"`
	TopSignals   []string  `json:"top_signals"`
}

// Service scores every known influencer against one brief.
type Service struct {
	store       store.Store
	engine      *scoring.Engine
	hermes      hermes.Client
	concurrency int
	logger      *slog.Logger
}

func NewService(s store.Store, e *scoring.Engine, h hermes.Client, concurrency int, logger *slog.Logger) *Service {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Service{store: s, engine: e, hermes: h, concurrency: concurrency, logger: logger}
}

// Compute builds, persists and returns the report for briefID. Entries follow
// the store's influencer order regardless of scheduling.
func (s *Service) Compute(ctx context.Context, ownerID, briefID uuid.UUID) ([]Entry, error) {
	start := time.Now()

	brief, err := s.store.GetBrief(ctx, briefID)
	if err != nil {
		return nil, err
	}
	if brief == nil || brief.OwnerID != ownerID {
		return nil, ErrBriefNotFound
	}

	influencers, err := s.store.ListInfluencers(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(influencers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, inf := range influencers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := s.engine.ComputeScores(inf.Handle, brief.KPIWeights)
			if err != nil {
				return fmt.Errorf("score %q: %w", inf.Handle, err)
			}
			entries[i] = Entry{
				InfluencerID: inf.ID,
				BriefID:      brief.ID,
				Handle:       inf.Handle,
				Authenticity: r.Authenticity,
				Relevance:    r.Relevance,
				Resonance:    r.Resonance,
				ExpectedROAS: r.ExpectedROAS,
				TrustIndex:   r.TrustIndex,
				TopSignals:   r.Signals,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, scoring.ErrInvalidWeightConfig) {
			metrics.IncScoringError("invalid_weight_config")
		}
		return nil, err
	}

	scores := make([]*store.Score, len(entries))
	trust := make([]float64, len(entries))
	for i, e := range entries {
		scores[i] = &store.Score{
			InfluencerID: e.InfluencerID,
			BriefID:      e.BriefID,
			Authenticity: e.Authenticity,
			Relevance:    e.Relevance,
			Resonance:    e.Resonance,
			ExpectedROAS: e.ExpectedROAS,
			TrustIndex:   e.TrustIndex,
			Signals:      e.TopSignals,
		}
		trust[i] = e.TrustIndex
	}
	if err := s.store.CreateScores(ctx, scores); err != nil {
		return nil, err
	}

	metrics.ObserveReport(start, trust)
	elapsed := time.Since(start)
	s.logger.Info("report computed",
		"brief_id", brief.ID,
		"influencers", len(entries),
		"duration_ms", elapsed.Milliseconds(),
	)

	evt := hermes.ReportComputedEvent{
		BriefID:     brief.ID.String(),
		OwnerID:     ownerID.String(),
		Influencers: len(entries),
		DurationMs:  elapsed.Milliseconds(),
		ComputedAt:  time.Now().UTC(),
	}
	for _, e := range entries {
		evt.Entries = append(evt.Entries, hermes.ReportEntry{
			InfluencerID: e.InfluencerID.String(),
			Handle:       e.Handle,
			TrustIndex:   e.TrustIndex,
		})
	}
	hermes.Emit(s.hermes, s.logger, hermes.SubjectReportComputed(brief.ID.String()), evt)

	return entries, nil
}
