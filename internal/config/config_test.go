package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaults verifies the built-in rule constants.
func TestDefaults(t *testing.T) {
	cfg := Default()

	g := cfg.Game
	if g.CCCap != 7 || g.FirstTurnGrant != 2 || g.TurnGrant != 4 {
		t.Errorf("unexpected CC defaults: %+v", g)
	}
	if g.BaseTussleCost != 3 || g.DirectAttackCost != 2 || g.MaxDirectAttacks != 2 {
		t.Errorf("unexpected combat defaults: %+v", g)
	}
	if cfg.Catalog.Path == "" || cfg.Logging.Level != "info" {
		t.Errorf("unexpected ambient defaults: %+v", cfg)
	}
}

// TestLoadFileOverrides verifies a config file overrides defaults and keeps
// the rest.
func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("game:\n  cc_cap: 10\n  turn_grant: 5\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Game.CCCap != 10 || cfg.Game.TurnGrant != 5 {
		t.Errorf("overrides not applied: %+v", cfg.Game)
	}
	if cfg.Game.BaseTussleCost != 3 {
		t.Errorf("default lost: %+v", cfg.Game)
	}
}

// TestValidateRejectsBrokenConstants verifies invariant-breaking values fail.
func TestValidateRejectsBrokenConstants(t *testing.T) {
	cfg := Default()
	cfg.Game.CCCap = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero CC cap accepted")
	}

	cfg = Default()
	cfg.Game.BaseTussleCost = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative tussle cost accepted")
	}

	cfg = Default()
	cfg.Game.MaxTurns = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero turn ceiling accepted")
	}
}
