package catalog

import (
	"strings"
	"testing"
)

// TestLoadShippedCatalog verifies the repository's card file parses and
// exposes the scenario cards.
func TestLoadShippedCatalog(t *testing.T) {
	cat, err := LoadFile("../../data/cards.yaml")
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cat.Len() < 10 {
		t.Fatalf("catalog has %d cards, want the full base set", cat.Len())
	}

	ka, ok := cat.Get("Ka")
	if !ok {
		t.Fatal("Ka missing from catalog")
	}
	if ka.Kind != KindPermanent || ka.Cost != 5 || ka.Stats.Strength != 9 {
		t.Errorf("Ka loaded as %+v", ka)
	}
	if len(ka.Effects()) != 1 {
		t.Errorf("Ka has %d effects, want 1", len(ka.Effects()))
	}

	copyCard, ok := cat.Get("Copy")
	if !ok {
		t.Fatal("Copy missing from catalog")
	}
	if copyCard.Cost != CostVariable {
		t.Errorf("Copy cost %d, want the variable sentinel", copyCard.Cost)
	}

	surge, _ := cat.Get("Surge")
	if surge.Kind != KindInstant || surge.Stats != nil {
		t.Errorf("Surge loaded as %+v", surge)
	}
}

// TestLoadValidation verifies each catalog invariant fails loading.
func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "unknown effect",
			yaml: `cards:
  - name: Broken
    kind: instant
    cost: 0
    effects: "summon_dragon:5"`,
			wantErr: "unknown effect",
		},
		{
			name: "duplicate name",
			yaml: `cards:
  - name: Twin
    kind: instant
    cost: 0
  - name: Twin
    kind: instant
    cost: 1`,
			wantErr: "duplicate",
		},
		{
			name: "permanent without stats",
			yaml: `cards:
  - name: Ghost
    kind: permanent
    cost: 1`,
			wantErr: "require stats",
		},
		{
			name: "instant with stats",
			yaml: `cards:
  - name: Spark
    kind: instant
    cost: 1
    stats: { speed: 1, strength: 1, stamina: 1 }`,
			wantErr: "no stats",
		},
		{
			name: "variable cost without resolver",
			yaml: `cards:
  - name: Mystery
    kind: permanent
    cost: variable
    stats: { speed: 1, strength: 1, stamina: 1 }`,
			wantErr: "variable cost",
		},
		{
			name: "negative cost",
			yaml: `cards:
  - name: Cheap
    kind: instant
    cost: -2`,
			wantErr: "cost",
		},
		{
			name:    "empty catalog",
			yaml:    `cards: []`,
			wantErr: "no cards",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load([]byte(tc.yaml))
			if err == nil {
				t.Fatal("load succeeded, want error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

// TestCostValueVariants verifies the cost field accepts integers and the
// variable keyword.
func TestCostValueVariants(t *testing.T) {
	cat, err := Load([]byte(`cards:
  - name: Free
    kind: instant
    cost: 0
  - name: Mirror
    kind: permanent
    cost: variable
    stats: { speed: 1, strength: 1, stamina: 1 }
    effects: "copy_card"`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	free, _ := cat.Get("Free")
	if free.Cost != 0 {
		t.Errorf("Free cost %d, want 0", free.Cost)
	}
	mirror, _ := cat.Get("Mirror")
	if mirror.Cost != CostVariable {
		t.Errorf("Mirror cost %d, want sentinel", mirror.Cost)
	}
}
