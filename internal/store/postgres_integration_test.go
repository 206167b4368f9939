//go:build integration

package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Vouch/internal/scoring"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		// Truncate in dependency order
		_, _ = s.pool.Exec(ctx, "TRUNCATE vouch_scores CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE vouch_influencers CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE vouch_briefs CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE vouch_users CASCADE")
		s.Close()
	})

	return s
}

func createUser(t *testing.T, s *PostgresStore, email string) *User {
	t.Helper()
	u := &User{Email: email, PasswordHash: "hash"}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return u
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := setupTestDB(t)
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestCreateAndGetUser(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	u := createUser(t, s, "owner@example.com")
	if u.ID == uuid.Nil {
		t.Fatal("expected non-nil user ID after create")
	}
	if u.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	got, err := s.GetUserByEmail(ctx, "owner@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got == nil || got.ID != u.ID {
		t.Fatalf("expected user %s, got %+v", u.ID, got)
	}

	byID, err := s.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if byID == nil || byID.Email != "owner@example.com" {
		t.Fatalf("unexpected user %+v", byID)
	}

	missing, err := s.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing user")
	}

	dup := &User{Email: "owner@example.com", PasswordHash: "x"}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestBriefRoundTripAndOwnership(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	alice := createUser(t, s, "alice@example.com")
	bob := createUser(t, s, "bob@example.com")

	b := &Brief{
		OwnerID:    alice.ID,
		Brand:      "Acme",
		Keywords:   []string{"running", "trail"},
		KPIWeights: scoring.WeightConfig{"authenticity": 0.4, "relevance": 0.3, "resonance": 0.2, "return": 0.1},
	}
	if err := s.CreateBrief(ctx, b); err != nil {
		t.Fatalf("CreateBrief failed: %v", err)
	}

	got, err := s.GetBrief(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetBrief failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected brief, got nil")
	}
	if got.OwnerID != alice.ID {
		t.Errorf("expected owner %s, got %s", alice.ID, got.OwnerID)
	}
	if len(got.Keywords) != 2 || got.Keywords[1] != "trail" {
		t.Errorf("unexpected keywords %v", got.Keywords)
	}
	if got.KPIWeights["return"] != 0.1 {
		t.Errorf("unexpected weights %v", got.KPIWeights)
	}

	empty := &Brief{OwnerID: alice.ID, Brand: "Bare", KPIWeights: scoring.WeightConfig{}}
	if err := s.CreateBrief(ctx, empty); err != nil {
		t.Fatalf("CreateBrief failed: %v", err)
	}

	aliceBriefs, err := s.ListBriefsByOwner(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListBriefsByOwner failed: %v", err)
	}
	if len(aliceBriefs) != 2 {
		t.Errorf("expected 2 briefs for alice, got %d", len(aliceBriefs))
	}

	bobBriefs, err := s.ListBriefsByOwner(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListBriefsByOwner failed: %v", err)
	}
	if len(bobBriefs) != 0 {
		t.Errorf("expected 0 briefs for bob, got %d", len(bobBriefs))
	}

	missing, err := s.GetBrief(ctx, uuid.New())
	if err != nil {
		t.Fatalf("GetBrief failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing brief")
	}
}

func TestInfluencersAndScores(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	owner := createUser(t, s, "scores@example.com")
	brief := &Brief{OwnerID: owner.ID, Brand: "Acme", KPIWeights: scoring.DefaultWeightConfig()}
	if err := s.CreateBrief(ctx, brief); err != nil {
		t.Fatalf("CreateBrief failed: %v", err)
	}

	handles := []string{"zeta", "test", "acme_brand", "alpha", "mid"}
	infs := make([]*Influencer, len(handles))
	for i, h := range handles {
		infs[i] = &Influencer{Handle: h}
	}
	infs[2].Platform = "tiktok"
	if err := s.CreateInfluencers(ctx, infs); err != nil {
		t.Fatalf("CreateInfluencers failed: %v", err)
	}
	if infs[0].Platform != DefaultPlatform {
		t.Errorf("expected default platform, got %s", infs[0].Platform)
	}

	listed, err := s.ListInfluencers(ctx)
	if err != nil {
		t.Fatalf("ListInfluencers failed: %v", err)
	}
	if len(listed) != len(handles) {
		t.Fatalf("expected %d influencers, got %d", len(handles), len(listed))
	}
	// One batch shares a created_at; order must still follow insertion.
	for i, inf := range listed {
		if inf.Handle != handles[i] || inf.ID != infs[i].ID {
			t.Errorf("position %d: expected %s, got %s", i, handles[i], inf.Handle)
		}
	}

	second := []*Influencer{{Handle: "later"}}
	if err := s.CreateInfluencers(ctx, second); err != nil {
		t.Fatalf("CreateInfluencers failed: %v", err)
	}
	all, err := s.ListInfluencers(ctx)
	if err != nil {
		t.Fatalf("ListInfluencers failed: %v", err)
	}
	if len(all) != len(handles)+1 || all[len(all)-1].Handle != "later" {
		t.Errorf("expected later batch last, got %d rows", len(all))
	}

	var scores []*Score
	for _, inf := range listed {
		r, err := scoring.ComputeScores(inf.Handle, brief.KPIWeights)
		if err != nil {
			t.Fatal(err)
		}
		scores = append(scores, &Score{
			InfluencerID: inf.ID,
			BriefID:      brief.ID,
			Authenticity: r.Authenticity,
			Relevance:    r.Relevance,
			Resonance:    r.Resonance,
			ExpectedROAS: r.ExpectedROAS,
			TrustIndex:   r.TrustIndex,
			Signals:      r.Signals,
		})
	}
	if err := s.CreateScores(ctx, scores); err != nil {
		t.Fatalf("CreateScores failed: %v", err)
	}
	for _, sc := range scores {
		if sc.ID == uuid.Nil || sc.ComputedAt.IsZero() {
			t.Errorf("expected id and computed_at, got %+v", sc)
		}
	}

	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM vouch_scores WHERE brief_id = $1`, brief.ID).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != len(handles) {
		t.Errorf("expected %d score rows, got %d", len(handles), count)
	}
}
