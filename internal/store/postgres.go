package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/Vouch/internal/scoring"
)

const pgUniqueViolation = "23505"

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	var one int
	return s.pool.QueryRow(ctx, `SELECT 1`).Scan(&one)
}

// --- Users ---

func (s *PostgresStore) CreateUser(ctx context.Context, u *User) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO vouch_users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at`,
		u.Email, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.getUser(ctx, `SELECT id, email, password_hash, created_at FROM vouch_users WHERE id = $1`, id)
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.getUser(ctx, `SELECT id, email, password_hash, created_at FROM vouch_users WHERE email = $1`, email)
}

func (s *PostgresStore) getUser(ctx context.Context, query string, arg interface{}) (*User, error) {
	u := &User{}
	err := s.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// --- Briefs ---

const briefColumns = `id, owner_id, brand, keywords, kpi_weights, created_at`

func (s *PostgresStore) CreateBrief(ctx context.Context, b *Brief) error {
	if b.Keywords == nil {
		b.Keywords = []string{}
	}
	keywordsJSON, err := json.Marshal(b.Keywords)
	if err != nil {
		return fmt.Errorf("encode keywords: %w", err)
	}
	weightsJSON, err := json.Marshal(b.KPIWeights)
	if err != nil {
		return fmt.Errorf("encode kpi weights: %w", err)
	}

	err = s.pool.QueryRow(ctx, `
		INSERT INTO vouch_briefs (owner_id, brand, keywords, kpi_weights)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		b.OwnerID, b.Brand, keywordsJSON, weightsJSON,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("create brief: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetBrief(ctx context.Context, id uuid.UUID) (*Brief, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+briefColumns+` FROM vouch_briefs WHERE id = $1`, id)
	b, err := scanBrief(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get brief: %w", err)
	}
	return b, nil
}

func (s *PostgresStore) ListBriefsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Brief, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+briefColumns+` FROM vouch_briefs
		WHERE owner_id = $1
		ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list briefs: %w", err)
	}
	defer rows.Close()

	var briefs []*Brief
	for rows.Next() {
		b, err := scanBrief(rows)
		if err != nil {
			return nil, fmt.Errorf("scan brief: %w", err)
		}
		briefs = append(briefs, b)
	}
	return briefs, rows.Err()
}

func scanBrief(row pgx.Row) (*Brief, error) {
	b := &Brief{}
	var keywordsJSON, weightsJSON []byte
	if err := row.Scan(&b.ID, &b.OwnerID, &b.Brand, &keywordsJSON, &weightsJSON, &b.CreatedAt); err != nil {
		return nil, err
	}
	if len(keywordsJSON) > 0 {
		if err := json.Unmarshal(keywordsJSON, &b.Keywords); err != nil {
			return nil, fmt.Errorf("decode keywords: %w", err)
		}
	}
	if b.Keywords == nil {
		b.Keywords = []string{}
	}
	if len(weightsJSON) > 0 {
		var w scoring.WeightConfig
		if err := json.Unmarshal(weightsJSON, &w); err != nil {
			return nil, fmt.Errorf("decode kpi weights: %w", err)
		}
		b.KPIWeights = w
	}
	return b, nil
}

// --- Influencers ---

// CreateInfluencers inserts all rows in one transaction and fills in their
// ids and timestamps. ListInfluencers returns them in insertion order.
func (s *PostgresStore) CreateInfluencers(ctx context.Context, infs []*Influencer) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, inf := range infs {
		if inf.Platform == "" {
			inf.Platform = DefaultPlatform
		}
		err := tx.QueryRow(ctx, `
			INSERT INTO vouch_influencers (handle, platform)
			VALUES ($1, $2)
			RETURNING id, created_at`,
			inf.Handle, inf.Platform,
		).Scan(&inf.ID, &inf.CreatedAt)
		if err != nil {
			return fmt.Errorf("create influencer %q: %w", inf.Handle, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListInfluencers(ctx context.Context) ([]*Influencer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, handle, platform, created_at
		FROM vouch_influencers
		ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("list influencers: %w", err)
	}
	defer rows.Close()

	var infs []*Influencer
	for rows.Next() {
		inf := &Influencer{}
		if err := rows.Scan(&inf.ID, &inf.Handle, &inf.Platform, &inf.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan influencer: %w", err)
		}
		infs = append(infs, inf)
	}
	return infs, rows.Err()
}

// --- Scores ---

func (s *PostgresStore) CreateScores(ctx context.Context, scores []*Score) error {
	if len(scores) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, sc := range scores {
		signalsJSON, err := json.Marshal(sc.Signals)
		if err != nil {
			return fmt.Errorf("encode signals: %w", err)
		}
		batch.Queue(`
			INSERT INTO vouch_scores (influencer_id, brief_id, authenticity, relevance, resonance,
				expected_roas, trust_index, signals)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, computed_at`,
			sc.InfluencerID, sc.BriefID, sc.Authenticity, sc.Relevance, sc.Resonance,
			sc.ExpectedROAS, sc.TrustIndex, signalsJSON,
		)
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	br := tx.SendBatch(ctx, batch)
	for _, sc := range scores {
		if err := br.QueryRow().Scan(&sc.ID, &sc.ComputedAt); err != nil {
			_ = br.Close()
			return fmt.Errorf("create score: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
