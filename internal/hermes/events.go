package hermes

import "time"

type BriefCreatedEvent struct {
	BriefID    string             `json:"brief_id"`
	OwnerID    string             `json:"owner_id"`
	Brand      string             `json:"brand"`
	Keywords   []string           `json:"keywords,omitempty"`
	KPIWeights map[string]float64 `json:"kpi_weights,omitempty"`
}

type InfluencerAddedEvent struct {
	InfluencerID string `json:"influencer_id"`
	Handle       string `json:"handle"`
	Platform     string `json:"platform"`
}

type ReportEntry struct {
	InfluencerID string  `json:"influencer_id"`
	Handle       string  `json:"handle"`
	TrustIndex   float64 `json:"trust_index"`
}

type ReportComputedEvent struct {
	BriefID     string        `json:"brief_id"`
	OwnerID     string        `json:"owner_id"`
	Influencers int           `json:"influencers"`
	Entries     []ReportEntry `json:"entries,omitempty"`
	DurationMs  int64         `json:"duration_ms"`
	ComputedAt  time.Time     `json:"computed_at"`
}
