package game

import "testing"

// TestValidActionsInactivePlayer verifies the validator returns nothing for
// the player who does not have the turn.
func TestValidActionsInactivePlayer(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, nil, nil)

	if actions := g.ValidActions("bob", false); actions != nil {
		t.Errorf("inactive player was offered %d actions", len(actions))
	}
}

// TestEndTurnAlwaysOffered verifies ending the turn is available even with an
// empty hand and board.
func TestEndTurnAlwaysOffered(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, nil, nil)

	actions := g.ValidActions("alice", false)
	if len(actions) != 1 || actions[0].Kind != ActionEndTurn {
		t.Fatalf("got %v, want exactly one END_TURN action", actions)
	}
}

// TestUnaffordablePlayNotOffered verifies a card the player cannot pay for is
// never offered.
func TestUnaffordablePlayNotOffered(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, []string{"Ka"}, nil)
	// first-turn grant is 2, Ka costs 5

	for _, a := range g.ValidActions("alice", false) {
		if a.Kind == ActionPlayCard {
			t.Errorf("unaffordable play offered: %+v", a)
		}
	}
}

// TestAlternativeCostOffered verifies an alternative-cost play is offered
// with zero CC and is accepted by the mutator.
func TestAlternativeCostOffered(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, []string{"Titan"}, nil)
	knight := putInPlay(t, e, g, "alice", "Knight")
	setCC(t, g, "alice", 0)

	titan := handCard(t, g, "alice", "Titan")
	var alt *Action
	for _, a := range g.ValidActions("alice", false) {
		if a.Kind != ActionPlayCard {
			continue
		}
		if a.AlternativeCostCardID == "" {
			t.Errorf("primary play offered without CC: %+v", a)
			continue
		}
		cp := a
		alt = &cp
	}
	if alt == nil {
		t.Fatal("no alternative-cost play offered")
	}
	if alt.AlternativeCostCardID != knight.ID {
		t.Fatalf("alt cost names card %s, want %s", alt.AlternativeCostCardID, knight.ID)
	}

	if err := e.PlayCard(g.MatchID, "alice", titan.ID, nil, alt.AlternativeCostCardID); err != nil {
		t.Fatalf("alternative-cost play rejected: %v", err)
	}
	if knight.Zone != ZoneSleep {
		t.Error("the sacrificed ally should be sleeped")
	}
	if titan.Zone != ZoneInPlay {
		t.Error("titan should be in play")
	}
}

// TestActivatedAbilityGating verifies activated abilities are withheld
// without targets or CC.
func TestActivatedAbilityGating(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, nil, nil)
	putInPlay(t, e, g, "alice", "Hypnotist")
	setCC(t, g, "alice", 7)

	if n := countKind(g.ValidActions("alice", false), ActionActivate); n != 0 {
		t.Errorf("%d activations offered with no legal target", n)
	}

	putInPlay(t, e, g, "bob", "Reaper")
	setCC(t, g, "alice", 1) // ability costs 2
	if n := countKind(g.ValidActions("alice", false), ActionActivate); n != 0 {
		t.Errorf("%d activations offered without CC", n)
	}

	setCC(t, g, "alice", 2)
	if n := countKind(g.ValidActions("alice", false), ActionActivate); n != 1 {
		t.Errorf("%d activations offered, want 1", n)
	}
}

// TestTargetedPlayEnumeratesLegalTargets verifies one descriptor per target
// and that immunity removes a card from the target set.
func TestTargetedPlayEnumeratesLegalTargets(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, []string{"Lullaby"}, nil)
	putInPlay(t, e, g, "bob", "Reaper")
	putInPlay(t, e, g, "bob", "Slug")
	phantom := putInPlay(t, e, g, "bob", "Phantom")
	setCC(t, g, "alice", 2)

	var targets []string
	for _, a := range g.ValidActions("alice", false) {
		if a.Kind == ActionPlayCard {
			if len(a.TargetIDs) != 1 {
				t.Fatalf("play action with %d targets, want 1", len(a.TargetIDs))
			}
			targets = append(targets, a.TargetIDs[0])
		}
	}
	if len(targets) != 2 {
		t.Fatalf("got %d play actions, want 2 (one per legal target)", len(targets))
	}
	for _, id := range targets {
		if id == phantom.ID {
			t.Error("an immune card was offered as a target")
		}
	}
}

// TestMultiTargetPlayBundlesTargets verifies a min..max targeted play is
// offered as a single descriptor bundling up to max legal targets.
func TestMultiTargetPlayBundlesTargets(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, []string{"Nightfall"}, nil)
	setCC(t, g, "alice", 7)

	if n := countKind(g.ValidActions("alice", false), ActionPlayCard); n != 0 {
		t.Fatalf("%d plays offered with no legal target", n)
	}

	slug := putInPlay(t, e, g, "bob", "Slug")
	plays := playActionsOf(g.ValidActions("alice", false))
	if len(plays) != 1 {
		t.Fatalf("got %d play actions, want 1", len(plays))
	}
	if len(plays[0].TargetIDs) != 1 || plays[0].TargetIDs[0] != slug.ID {
		t.Fatalf("bundle %v, want just %s", plays[0].TargetIDs, slug.ID)
	}

	reaper := putInPlay(t, e, g, "bob", "Reaper")
	putInPlay(t, e, g, "bob", "Wizard")
	plays = playActionsOf(g.ValidActions("alice", false))
	if len(plays) != 1 {
		t.Fatalf("got %d play actions, want 1 bundle", len(plays))
	}
	got := plays[0].TargetIDs
	if len(got) != 2 || got[0] != slug.ID || got[1] != reaper.ID {
		t.Errorf("bundle %v, want the first two legal targets [%s %s]", got, slug.ID, reaper.ID)
	}
}

// TestMultiTargetPlayWithheldBelowMinimum verifies a play needing more
// targets than the board offers is never enumerated.
func TestMultiTargetPlayWithheldBelowMinimum(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, []string{"Nocturne"}, nil)
	putInPlay(t, e, g, "bob", "Slug")
	setCC(t, g, "alice", 7)

	if n := countKind(g.ValidActions("alice", false), ActionPlayCard); n != 0 {
		t.Errorf("%d plays offered with one target for a two-target card", n)
	}

	putInPlay(t, e, g, "bob", "Reaper")
	if n := countKind(g.ValidActions("alice", false), ActionPlayCard); n != 1 {
		t.Errorf("%d plays offered with two targets, want 1", n)
	}
}

// TestAIFilterDropsLosingTussles verifies filter mode removes tussles the
// forecast gives to the defender and sorts combat first.
func TestAIFilterDropsLosingTussles(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, []string{"Surge"}, nil)
	reaper := putInPlay(t, e, g, "alice", "Reaper") // loses to Dream on the tie-break
	dream := putInPlay(t, e, g, "bob", "Dream")
	setCC(t, g, "alice", 7)

	unfiltered := g.ValidActions("alice", false)
	if n := countKind(unfiltered, ActionTussle); n != 1 {
		t.Fatalf("%d tussles offered unfiltered, want 1", n)
	}
	if winner := g.PredictWinner(reaper, dream); winner != dream.ID {
		t.Fatalf("predicted winner %s, want the defender", winner)
	}

	filtered := g.ValidActions("alice", true)
	if n := countKind(filtered, ActionTussle); n != 0 {
		t.Errorf("%d losing tussles offered in filter mode", n)
	}
}

// TestAIFilterOrdering verifies combat actions sort ahead of other actions,
// each group by ascending cost.
func TestAIFilterOrdering(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, []string{"Surge", "Lullaby"}, nil)
	putInPlay(t, e, g, "alice", "Knight")
	putInPlay(t, e, g, "bob", "Slug")
	setCC(t, g, "alice", 7)

	actions := g.ValidActions("alice", true)
	if len(actions) < 2 {
		t.Fatalf("got %d actions, want several", len(actions))
	}
	if actions[0].Kind != ActionTussle {
		t.Errorf("first action is %s, want a tussle", actions[0].Kind)
	}
	sawOther := false
	for _, a := range actions {
		isCombat := a.Kind == ActionTussle || a.Kind == ActionDirectAttack
		if isCombat && sawOther {
			t.Fatalf("combat action after non-combat: %v", actions)
		}
		if !isCombat {
			sawOther = true
		}
	}
}

// TestOfferedActionsAreAccepted verifies every enumerated action executes
// without a rule rejection, replaying each one on a restored snapshot.
func TestOfferedActionsAreAccepted(t *testing.T) {
	e := testEngine(t)
	g := testMatch(t, e, []string{"Surge", "Lullaby", "Titan"}, []string{"Dream"})
	putInPlay(t, e, g, "alice", "Knight")
	putInPlay(t, e, g, "alice", "Hypnotist")
	putInPlay(t, e, g, "bob", "Reaper")
	setCC(t, g, "alice", 4)

	snap, err := e.Snapshot(g.MatchID)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	actions := g.ValidActions("alice", false)
	if len(actions) < 4 {
		t.Fatalf("got %d actions, want a rich set", len(actions))
	}

	for _, action := range actions {
		replay := testEngine(t)
		rg, err := replay.Restore(snap)
		if err != nil {
			t.Fatalf("Restore failed: %v", err)
		}

		switch action.Kind {
		case ActionEndTurn:
			err = replay.EndTurn(rg.MatchID, "alice")
		case ActionPlayCard:
			err = replay.PlayCard(rg.MatchID, "alice", action.SourceCardID, action.TargetIDs, action.AlternativeCostCardID)
		case ActionTussle:
			err = replay.Tussle(rg.MatchID, "alice", action.SourceCardID, action.TargetIDs[0])
		case ActionDirectAttack:
			err = replay.Tussle(rg.MatchID, "alice", action.SourceCardID, "")
		case ActionActivate:
			err = replay.ActivateAbility(rg.MatchID, "alice", action.SourceCardID, action.TargetIDs)
		}
		if err != nil {
			t.Errorf("offered action %s (%s) rejected: %v", action.Kind, action.Description, err)
		}
	}
}

func countKind(actions []Action, kind ActionKind) int {
	n := 0
	for _, a := range actions {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

func playActionsOf(actions []Action) []Action {
	var plays []Action
	for _, a := range actions {
		if a.Kind == ActionPlayCard {
			plays = append(plays, a)
		}
	}
	return plays
}
