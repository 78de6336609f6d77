package rules

import "testing"

// TestTurnManagerInitialState verifies a fresh manager starts at turn 1,
// Start phase, with the first player active.
func TestTurnManagerInitialState(t *testing.T) {
	tm := NewTurnManager("p1")

	if tm.CurrentPhase() != PhaseStart {
		t.Errorf("phase %s, want START", tm.CurrentPhase())
	}
	if tm.TurnNumber() != 1 {
		t.Errorf("turn %d, want 1", tm.TurnNumber())
	}
	if tm.ActivePlayer() != "p1" || tm.FirstPlayer() != "p1" {
		t.Errorf("active=%s first=%s, want p1 for both", tm.ActivePlayer(), tm.FirstPlayer())
	}
	if !tm.IsFirstTurn() {
		t.Error("IsFirstTurn should be true on turn 1")
	}
}

// TestAdvancePhaseCycle verifies the Start/Main/End cycle wraps into the
// next turn and rotates the active player.
func TestAdvancePhaseCycle(t *testing.T) {
	tm := NewTurnManager("p1")

	phase, newTurn := tm.AdvancePhase("")
	if phase != PhaseMain || newTurn {
		t.Fatalf("got (%s, %v), want (MAIN, false)", phase, newTurn)
	}
	phase, newTurn = tm.AdvancePhase("")
	if phase != PhaseEnd || newTurn {
		t.Fatalf("got (%s, %v), want (END, false)", phase, newTurn)
	}
	phase, newTurn = tm.AdvancePhase("p2")
	if phase != PhaseStart || !newTurn {
		t.Fatalf("got (%s, %v), want (START, true)", phase, newTurn)
	}
	if tm.TurnNumber() != 2 {
		t.Errorf("turn %d, want 2", tm.TurnNumber())
	}
	if tm.ActivePlayer() != "p2" {
		t.Errorf("active %s, want p2", tm.ActivePlayer())
	}
	if tm.IsFirstTurn() {
		t.Error("IsFirstTurn should be false on turn 2")
	}
}

// TestPhaseStringRoundTrip verifies phase names parse back.
func TestPhaseStringRoundTrip(t *testing.T) {
	for _, phase := range []Phase{PhaseStart, PhaseMain, PhaseEnd} {
		parsed, ok := ParsePhase(phase.String())
		if !ok || parsed != phase {
			t.Errorf("ParsePhase(%q) = (%v, %v)", phase.String(), parsed, ok)
		}
	}
	if _, ok := ParsePhase("TWILIGHT"); ok {
		t.Error("unknown phase name parsed")
	}
	if parsed, ok := ParsePhase(" main "); !ok || parsed != PhaseMain {
		t.Error("parsing should trim and upper-case")
	}
}

// TestRestoreTurnManager verifies snapshot fields rebuild the manager
// exactly.
func TestRestoreTurnManager(t *testing.T) {
	tm := RestoreTurnManager("p1", "p2", 7, PhaseMain)

	if tm.TurnNumber() != 7 {
		t.Errorf("turn %d, want 7", tm.TurnNumber())
	}
	if tm.ActivePlayer() != "p2" {
		t.Errorf("active %s, want p2", tm.ActivePlayer())
	}
	if tm.FirstPlayer() != "p1" {
		t.Errorf("first %s, want p1", tm.FirstPlayer())
	}
	if tm.CurrentPhase() != PhaseMain {
		t.Errorf("phase %s, want MAIN", tm.CurrentPhase())
	}
}
