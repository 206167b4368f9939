package store

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Vouch/internal/scoring"
)

func TestBriefJSONHidesOwner(t *testing.T) {
	b := Brief{
		ID:         uuid.New(),
		OwnerID:    uuid.New(),
		Brand:      "Acme",
		Keywords:   []string{"running"},
		KPIWeights: scoring.WeightConfig{"authenticity": 0.5},
	}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["owner_id"]; ok {
		t.Error("owner id must not be serialized")
	}
	if m["brand"] != "Acme" {
		t.Errorf("expected brand Acme, got %v", m["brand"])
	}
	if _, ok := m["kpi_weights"].(map[string]interface{}); !ok {
		t.Errorf("expected kpi_weights object, got %T", m["kpi_weights"])
	}
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	data, err := json.Marshal(User{Email: "a@b.c", PasswordHash: "$2a$secret"})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for k := range m {
		if k == "password_hash" || k == "PasswordHash" {
			t.Errorf("password hash leaked under key %s", k)
		}
	}
}

func TestDefaultPlatform(t *testing.T) {
	if DefaultPlatform != "instagram" {
		t.Errorf("expected instagram, got %s", DefaultPlatform)
	}
}
