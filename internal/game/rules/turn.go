package rules

import (
	"fmt"
	"strings"
)

// Phase represents the phases of a turn.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMain
	PhaseEnd
)

var phaseNames = map[Phase]string{
	PhaseStart: "START",
	PhaseMain:  "MAIN",
	PhaseEnd:   "END",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// ParsePhase converts a phase name back into a Phase. Unknown names map to
// PhaseStart with ok=false.
func ParsePhase(name string) (Phase, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for p, n := range phaseNames {
		if n == normalized {
			return p, true
		}
	}
	return PhaseStart, false
}

var phaseSequence = []Phase{PhaseStart, PhaseMain, PhaseEnd}

// TurnManager tracks the active player, turn number, and phase progression.
// Cards may only be played and tussles initiated during PhaseMain.
type TurnManager struct {
	orderIndex   int
	turnNumber   int
	activePlayer string
	firstPlayer  string
}

// NewTurnManager creates a turn manager initialized at turn 1, Start phase,
// with the given player taking the first turn.
func NewTurnManager(firstPlayer string) *TurnManager {
	first := strings.TrimSpace(firstPlayer)
	return &TurnManager{
		orderIndex:   0,
		turnNumber:   1,
		activePlayer: first,
		firstPlayer:  first,
	}
}

// RestoreTurnManager rebuilds a turn manager from snapshot fields.
func RestoreTurnManager(firstPlayer, activePlayer string, turnNumber int, phase Phase) *TurnManager {
	tm := NewTurnManager(firstPlayer)
	tm.activePlayer = strings.TrimSpace(activePlayer)
	tm.turnNumber = turnNumber
	for i, p := range phaseSequence {
		if p == phase {
			tm.orderIndex = i
			break
		}
	}
	return tm
}

// CurrentPhase returns the phase currently in progress.
func (tm *TurnManager) CurrentPhase() Phase {
	return phaseSequence[tm.orderIndex]
}

// TurnNumber returns the current turn number (1-based).
func (tm *TurnManager) TurnNumber() int {
	return tm.turnNumber
}

// ActivePlayer returns the player who currently has the turn.
func (tm *TurnManager) ActivePlayer() string {
	return tm.activePlayer
}

// FirstPlayer returns the player who took the first turn of the match.
func (tm *TurnManager) FirstPlayer() string {
	return tm.firstPlayer
}

// IsFirstTurn reports whether the match is still on its first turn.
func (tm *TurnManager) IsFirstTurn() bool {
	return tm.turnNumber == 1
}

// AdvancePhase advances to the next phase. When the End phase completes, the
// turn number is incremented and the active player rotates to
// nextActivePlayer. The returned bool reports whether a new turn began.
func (tm *TurnManager) AdvancePhase(nextActivePlayer string) (Phase, bool) {
	tm.orderIndex++
	if tm.orderIndex >= len(phaseSequence) {
		tm.orderIndex = 0
		tm.turnNumber++
		if next := strings.TrimSpace(nextActivePlayer); next != "" {
			tm.activePlayer = next
		}
		return tm.CurrentPhase(), true
	}
	return tm.CurrentPhase(), false
}
