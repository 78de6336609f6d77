package game

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/RegisCA/ggltcg-sub001/internal/catalog"
	"github.com/RegisCA/ggltcg-sub001/internal/config"
)

// testEngine builds an engine over the shipped catalog with default rule
// constants.
func testEngine(t *testing.T) *Engine {
	t.Helper()
	cat, err := catalog.LoadFile("../../data/cards.yaml")
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return NewEngine(config.Default().Game, cat, zaptest.NewLogger(t))
}

// testMatch creates a match with the given starting hands. Alice takes the
// first turn; the match begins in her Main phase with the first-turn CC
// grant applied.
func testMatch(t *testing.T, e *Engine, aliceHand, bobHand []string) *GameState {
	t.Helper()
	g, err := e.NewMatch("",
		PlayerSetup{ID: "alice", Name: "Alice", Hand: aliceHand},
		PlayerSetup{ID: "bob", Name: "Bob", Hand: bobHand},
		1, // fixed seed keeps direct-attack victim selection deterministic
	)
	if err != nil {
		t.Fatalf("failed to create match: %v", err)
	}
	return g
}

// putInPlay instantiates a template directly onto a player's board, bypassing
// cost and zone rules. Test setup only.
func putInPlay(t *testing.T, e *Engine, g *GameState, playerID, templateName string) *Card {
	t.Helper()
	return putInZone(t, e, g, playerID, templateName, ZoneInPlay)
}

// putInZone instantiates a template directly into a player's zone.
func putInZone(t *testing.T, e *Engine, g *GameState, playerID, templateName string, zone Zone) *Card {
	t.Helper()
	tmpl, ok := e.catalog.Get(templateName)
	if !ok {
		t.Fatalf("unknown template %q", templateName)
	}
	p, ok := g.Player(playerID)
	if !ok {
		t.Fatalf("unknown player %q", playerID)
	}
	card := NewCard(tmpl, playerID)
	card.Zone = zone
	if zone == ZoneInPlay && card.HasStats() {
		card.CurrentStamina = card.BaseStamina()
	}
	p.addToZone(zone, card)
	return card
}

// setCC overwrites a player's CC balance. Test setup only.
func setCC(t *testing.T, g *GameState, playerID string, cc int) {
	t.Helper()
	p, ok := g.Player(playerID)
	if !ok {
		t.Fatalf("unknown player %q", playerID)
	}
	p.CC = cc
}

// handCard returns the player's hand card with the given template name.
func handCard(t *testing.T, g *GameState, playerID, templateName string) *Card {
	t.Helper()
	p, _ := g.Player(playerID)
	for _, c := range p.Hand {
		if c.Template.Name == templateName {
			return c
		}
	}
	t.Fatalf("player %s has no %q in hand", playerID, templateName)
	return nil
}
