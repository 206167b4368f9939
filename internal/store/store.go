package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Vouch/internal/scoring"
)

var ErrEmailTaken = errors.New("email already registered")

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Brief struct {
	ID         uuid.UUID            `json:"id"`
	OwnerID    uuid.UUID            `json:"-"`
	Brand      string               `json:"brand"`
	Keywords   []string             `json:"keywords"`
	KPIWeights scoring.WeightConfig `json:"kpi_weights"`
	CreatedAt  time.Time            `json:"created_at"`
}

const DefaultPlatform = "instagram"

type Influencer struct {
	ID        uuid.UUID `json:"id"`
	Handle    string    `json:"handle"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"created_at"`
}

// Score is one persisted engine result for an influencer against a brief.
type Score struct {
	ID           uuid.UUID `json:"id"`
	InfluencerID uuid.UUID `json:"influencer_id"`
	BriefID      uuid.UUID `json:"brief_id"`
	Authenticity float64   `json:"authenticity"`
	Relevance    float64   `json:"relevance"`
	Resonance    float64   `json:"resonance"`
	ExpectedROAS float64   `json:"expected_roas"`
	TrustIndex   float64   `json:"trust_index"`
	Signals      []string  `json:"signals"`
	ComputedAt   time.Time `json:"computed_at"`
}

// Lookups return nil, nil when the row does not exist.
type Store interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	CreateBrief(ctx context.Context, b *Brief) error
	GetBrief(ctx context.Context, id uuid.UUID) (*Brief, error)
	ListBriefsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Brief, error)

	CreateInfluencers(ctx context.Context, infs []*Influencer) error
	ListInfluencers(ctx context.Context) ([]*Influencer, error)

	CreateScores(ctx context.Context, scores []*Score) error

	Ping(ctx context.Context) error
	Close() error
}
