// Package effects implements the card effect language: a compact string
// grammar parsed at catalog load time into a closed set of typed effect
// variants. The game package interprets the variants; everything here is
// pure data and pure functions so effects can be evaluated speculatively.
package effects

import (
	"fmt"

	"github.com/RegisCA/ggltcg-sub001/internal/game/rules"
)

// Timing classifies when an effect applies.
type Timing int

const (
	// TimingContinuous effects are folded into every stat/cost query while
	// their source is in play. They must be side-effect free.
	TimingContinuous Timing = iota
	// TimingTriggered effects fire exactly once per qualifying event.
	TimingTriggered
	// TimingOnPlay effects execute once when the card resolves from hand.
	TimingOnPlay
	// TimingActivated effects are invoked from in play, gated by CC cost
	// and target availability.
	TimingActivated
)

var timingNames = map[Timing]string{
	TimingContinuous: "CONTINUOUS",
	TimingTriggered:  "TRIGGERED",
	TimingOnPlay:     "ON_PLAY",
	TimingActivated:  "ACTIVATED",
}

func (t Timing) String() string {
	if name, ok := timingNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TIMING_%d", int(t))
}

// Stat names a card statistic.
type Stat string

const (
	StatSpeed    Stat = "speed"
	StatStrength Stat = "strength"
	StatStamina  Stat = "stamina"
)

// ValidStat reports whether the name is a known statistic.
func ValidStat(name string) bool {
	switch Stat(name) {
	case StatSpeed, StatStrength, StatStamina:
		return true
	}
	return false
}

// CardView is the minimal card identity handed to effect evaluation. The
// game package builds these from live card instances.
type CardView struct {
	ID           string
	Name         string
	ControllerID string
}

// State is the read-only game state view effects may consult. Implemented by
// the game package's GameState.
type State interface {
	TurnNumber() int
	ActivePlayerID() string
	FirstPlayerID() string
	// SleepCount returns the number of cards in the player's sleep zone.
	SleepCount(playerID string) int
}

// Effect is the common interface of every parsed effect variant.
type Effect interface {
	Timing() Timing
	// Clause returns the canonical grammar clause that parses back into an
	// equivalent effect. Used for display and snapshot round-tripping.
	Clause() string
}

// Continuous is implemented by every continuous effect. Each method receives
// the running value and returns the adjusted one; implementations leave
// values they do not modify untouched. All methods must be pure.
type Continuous interface {
	Effect
	// ModifyStat adjusts target's stat. source is the card carrying the
	// effect; it is in play whenever this is called.
	ModifyStat(source, target CardView, stat Stat, current int, st State) int
	// ModifyCardCost adjusts the CC cost for payer to play card. For
	// self-reductions source and card are the same card.
	ModifyCardCost(source, card CardView, payer string, current int, st State) int
	// ModifyTussleCost adjusts the CC cost for payer to start a tussle
	// with attacker.
	ModifyTussleCost(source, attacker CardView, payer string, current int, st State) int
}

// TussleBlocker marks a continuous effect that forbids its source from
// attacking.
type TussleBlocker interface {
	BlocksTussle(source CardView, st State) bool
}

// AutoWinner marks a continuous effect that lets its source win tussles
// outright under some condition.
type AutoWinner interface {
	AutoWins(source CardView, st State) bool
}

// DirectAttackWaiver marks a continuous effect that waives the
// empty-opposing-board requirement for direct attacks.
type DirectAttackWaiver interface {
	WaivesBoardCheck() bool
}

// ImmunityGrant marks a continuous effect that protects cards from opposing
// effects. Protects reports whether target is covered when the effect's
// source is in play.
type ImmunityGrant interface {
	Protects(source, target CardView) bool
}

// TargetSide selects whose cards an effect may target.
type TargetSide int

const (
	TargetOpponent TargetSide = iota
	TargetOwn
	TargetAny
)

// TargetZone selects the zone an effect targets cards in.
type TargetZone int

const (
	TargetInPlay TargetZone = iota
	TargetSleep
)

// Targeting describes the target requirements of an OnPlay or Activated
// effect. The action validator interprets it and enforces immunity.
type Targeting struct {
	Required bool
	Min      int
	Max      int
	Side     TargetSide
	Zone     TargetZone
}

// Targeted is implemented by OnPlay and Activated effects that take targets.
// Effects without targets return a zero Targeting with Required=false.
type Targeted interface {
	Effect
	Targeting() Targeting
}

// Triggered is implemented by triggered effects. Application is performed by
// the engine's zone-transition choke point, exactly once per qualifying
// event.
type Triggered interface {
	Effect
	ShouldTrigger(ev rules.Event, source CardView) bool
}

// Activated is implemented by activated abilities usable from in play.
type Activated interface {
	Targeted
	CCCost() int
}

// AlternativeCost marks an effect that declares a non-CC way to pay for its
// card. Evaluated by the action validator, never folded into numeric cost.
type AlternativeCost interface {
	Effect
	// AltCostDescription names the alternative payment for display.
	AltCostDescription() string
}

// passthrough provides no-op Continuous methods for variants that only
// modify one dimension.
type passthrough struct{}

func (passthrough) ModifyStat(_, _ CardView, _ Stat, current int, _ State) int {
	return current
}

func (passthrough) ModifyCardCost(_, _ CardView, _ string, current int, _ State) int {
	return current
}

func (passthrough) ModifyTussleCost(_, _ CardView, _ string, current int, _ State) int {
	return current
}
