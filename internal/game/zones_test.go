package game

import "testing"

// TestSleepTriggerFiresOnCombat verifies a "when sleeped" trigger fires when
// the card loses a tussle.
func TestSleepTriggerFiresOnCombat(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, nil, nil)
	titan := putInPlay(t, e, g, "alice", "Titan")
	reaper := putInPlay(t, e, g, "bob", "Reaper")

	if err := g.resolveTussle(titan, reaper); err != nil {
		t.Fatalf("resolveTussle failed: %v", err)
	}
	bob, _ := g.Player("bob")
	if reaper.Zone != ZoneSleep {
		t.Fatal("reaper should be sleeped")
	}
	if bob.CC != 2 {
		t.Errorf("bob has %d CC, want 2 from the sleep trigger", bob.CC)
	}
}

// TestSleepTriggerFiresOnBoardWipe verifies the trigger fires when the card
// is swept by a board wipe, through the same choke point as combat.
func TestSleepTriggerFiresOnBoardWipe(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, []string{"Tempest", "Surge"}, []string{"Surge"})
	putInPlay(t, e, g, "bob", "Reaper")
	setCC(t, g, "alice", 5)

	tempest := handCard(t, g, "alice", "Tempest")
	if err := e.PlayCard(g.MatchID, "alice", tempest.ID, nil, ""); err != nil {
		t.Fatalf("PlayCard failed: %v", err)
	}
	bob, _ := g.Player("bob")
	if len(bob.InPlay) != 0 {
		t.Fatal("board wipe left cards in play")
	}
	if bob.CC != 2 {
		t.Errorf("bob has %d CC, want 2 from the sleep trigger", bob.CC)
	}
}

// TestBoardWipeSparesImmuneCards verifies a board wipe skips cards protected
// by an immunity relationship and sweeps everything else, the caster's own
// side included.
func TestBoardWipeSparesImmuneCards(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, []string{"Tempest", "Surge"}, []string{"Surge"})
	knight := putInPlay(t, e, g, "alice", "Knight")
	phantom := putInPlay(t, e, g, "bob", "Phantom")
	reaper := putInPlay(t, e, g, "bob", "Reaper")
	setCC(t, g, "alice", 5)

	tempest := handCard(t, g, "alice", "Tempest")
	if err := e.PlayCard(g.MatchID, "alice", tempest.ID, nil, ""); err != nil {
		t.Fatalf("PlayCard failed: %v", err)
	}
	if phantom.Zone != ZoneInPlay {
		t.Error("an immune card was swept by the wipe")
	}
	if knight.Zone != ZoneSleep || reaper.Zone != ZoneSleep {
		t.Error("unprotected cards should be sleeped")
	}
}

// TestSleepTriggerFiresOnActivatedAbility verifies the trigger fires when an
// activated ability sleeps the card.
func TestSleepTriggerFiresOnActivatedAbility(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, nil, nil)
	hypnotist := putInPlay(t, e, g, "alice", "Hypnotist")
	reaper := putInPlay(t, e, g, "bob", "Reaper")
	setCC(t, g, "alice", 2)

	if err := e.ActivateAbility(g.MatchID, "alice", hypnotist.ID, []string{reaper.ID}); err != nil {
		t.Fatalf("ActivateAbility failed: %v", err)
	}
	bob, _ := g.Player("bob")
	if reaper.Zone != ZoneSleep {
		t.Fatal("reaper should be sleeped")
	}
	if bob.CC != 2 {
		t.Errorf("bob has %d CC, want 2 from the sleep trigger", bob.CC)
	}
}

// TestSleepTriggerDoesNotFireFromHand verifies sleeping a card out of hand
// (direct attack) does not fire its in-play trigger.
func TestSleepTriggerDoesNotFireFromHand(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, nil, []string{"Reaper"})
	knight := putInPlay(t, e, g, "alice", "Knight")
	setCC(t, g, "alice", 2)

	if err := e.Tussle(g.MatchID, "alice", knight.ID, ""); err != nil {
		t.Fatalf("direct attack failed: %v", err)
	}
	bob, _ := g.Player("bob")
	if len(bob.Sleep) != 1 {
		t.Fatalf("bob has %d sleeping cards, want 1", len(bob.Sleep))
	}
	if bob.CC != 0 {
		t.Errorf("bob has %d CC, want 0: hand sleeps carry no trigger", bob.CC)
	}
}

// TestTransformationClearedOnSleep verifies the copy overlay is removed when
// the card enters the sleep zone.
func TestTransformationClearedOnSleep(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, nil, nil)
	ka := putInPlay(t, e, g, "alice", "Ka")
	copyCard := putInPlay(t, e, g, "alice", "Copy")
	copyCard.transform(ka)

	if err := g.sleepFromPlay(copyCard, "test"); err != nil {
		t.Fatalf("sleepFromPlay failed: %v", err)
	}
	if copyCard.Transformation != nil {
		t.Error("transformation survived the move into sleep")
	}
	if copyCard.Name() != "Copy" {
		t.Errorf("card reads %q, want pristine template name", copyCard.Name())
	}
}

// TestTransformationClearedLeavingPlay verifies any move out of play clears
// the overlay.
func TestTransformationClearedLeavingPlay(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, nil, nil)
	ka := putInPlay(t, e, g, "alice", "Ka")
	copyCard := putInPlay(t, e, g, "alice", "Copy")
	copyCard.transform(ka)

	if err := g.moveCard(copyCard, ZoneInPlay, ZoneHand, "test"); err != nil {
		t.Fatalf("moveCard failed: %v", err)
	}
	if copyCard.Transformation != nil {
		t.Error("transformation survived leaving play")
	}
}

// TestTransformationPreservedOnWake verifies the Sleep-to-Hand move is the
// one transition that keeps transformation state intact.
func TestTransformationPreservedOnWake(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, nil, nil)
	ka := putInPlay(t, e, g, "alice", "Ka")
	copyCard := putInZone(t, e, g, "alice", "Copy", ZoneSleep)
	copyCard.transform(ka)

	if err := g.moveCard(copyCard, ZoneSleep, ZoneHand, "test"); err != nil {
		t.Fatalf("moveCard failed: %v", err)
	}
	if copyCard.Transformation == nil {
		t.Error("wake cleared the transformation")
	}
	if copyCard.Name() != "Ka" {
		t.Errorf("card reads %q, want the copied name", copyCard.Name())
	}
}

// TestMoveCardRejectsWrongZone verifies the choke point refuses a move whose
// from-zone does not match reality.
func TestMoveCardRejectsWrongZone(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, nil, nil)
	knight := putInPlay(t, e, g, "alice", "Knight")

	err := g.moveCard(knight, ZoneHand, ZoneSleep, "test")
	if err == nil {
		t.Fatal("expected an invariant error")
	}
	if !IsInvariantError(err) {
		t.Errorf("got %T, want an invariant error", err)
	}
}
