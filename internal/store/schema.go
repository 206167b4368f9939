package store

import (
	"context"
	"fmt"
)

// schema is idempotent and safe to apply on every start.
const schema = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS vouch_users (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS vouch_briefs (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	owner_id    UUID NOT NULL REFERENCES vouch_users(id) ON DELETE CASCADE,
	brand       TEXT NOT NULL,
	keywords    JSONB NOT NULL DEFAULT '[]',
	kpi_weights JSONB NOT NULL DEFAULT '{}',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_vouch_briefs_owner ON vouch_briefs (owner_id);

CREATE TABLE IF NOT EXISTS vouch_influencers (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	seq        BIGSERIAL NOT NULL,
	handle     TEXT NOT NULL,
	platform   TEXT NOT NULL DEFAULT 'instagram',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
-- Rows in one batch share created_at, so listings order by seq.
CREATE INDEX IF NOT EXISTS idx_vouch_influencers_seq ON vouch_influencers (seq);

CREATE TABLE IF NOT EXISTS vouch_scores (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	influencer_id UUID NOT NULL REFERENCES vouch_influencers(id) ON DELETE CASCADE,
	brief_id      UUID NOT NULL REFERENCES vouch_briefs(id) ON DELETE CASCADE,
	authenticity  DOUBLE PRECISION NOT NULL,
	relevance     DOUBLE PRECISION NOT NULL,
	resonance     DOUBLE PRECISION NOT NULL,
	expected_roas DOUBLE PRECISION NOT NULL,
	trust_index   DOUBLE PRECISION NOT NULL,
	signals       JSONB NOT NULL DEFAULT '[]',
	computed_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_vouch_scores_influencer ON vouch_scores (influencer_id);
CREATE INDEX IF NOT EXISTS idx_vouch_scores_brief ON vouch_scores (brief_id);
`

// Migrate creates any missing tables and indexes.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
