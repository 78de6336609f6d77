package effects

import (
	"fmt"

	"github.com/RegisCA/ggltcg-sub001/internal/game/rules"
)

// GainCC grants its controller CC when the card resolves from hand. The gain
// is capped by the engine; the optional gate makes it a no-op on the match's
// first turn.
type GainCC struct {
	Amount       int
	NotFirstTurn bool
}

func (e *GainCC) Timing() Timing { return TimingOnPlay }

func (e *GainCC) Clause() string {
	clause := fmt.Sprintf("gain_cc:%d", e.Amount)
	if e.NotFirstTurn {
		clause += ":not_first_turn"
	}
	return clause
}

func (e *GainCC) Targeting() Targeting { return Targeting{} }

// Suppressed reports whether the first-turn gate disables the gain.
func (e *GainCC) Suppressed(st State) bool {
	return e.NotFirstTurn && st.TurnNumber() == 1
}

// SleepTarget sleeps one or more opposing in-play cards when played.
type SleepTarget struct {
	Min int
	Max int
}

func (e *SleepTarget) Timing() Timing { return TimingOnPlay }

func (e *SleepTarget) Clause() string {
	if e.Min == 1 && e.Max == 1 {
		return "sleep_target"
	}
	return fmt.Sprintf("sleep_target:%d:%d", e.Min, e.Max)
}

func (e *SleepTarget) Targeting() Targeting {
	return Targeting{Required: true, Min: e.Min, Max: e.Max, Side: TargetOpponent, Zone: TargetInPlay}
}

// SleepAll sleeps every in-play card on both sides when played.
type SleepAll struct{}

func (e *SleepAll) Timing() Timing { return TimingOnPlay }

func (e *SleepAll) Clause() string { return "sleep_all" }

func (e *SleepAll) Targeting() Targeting { return Targeting{} }

// WakeTarget returns one card from the controller's sleep zone to hand. The
// wake transition preserves any transformation state on the card.
type WakeTarget struct{}

func (e *WakeTarget) Timing() Timing { return TimingOnPlay }

func (e *WakeTarget) Clause() string { return "wake_target" }

func (e *WakeTarget) Targeting() Targeting {
	return Targeting{Required: true, Min: 1, Max: 1, Side: TargetOwn, Zone: TargetSleep}
}

// StealTarget moves control of one opposing in-play card to the player.
type StealTarget struct{}

func (e *StealTarget) Timing() Timing { return TimingOnPlay }

func (e *StealTarget) Clause() string { return "steal_target" }

func (e *StealTarget) Targeting() Targeting {
	return Targeting{Required: true, Min: 1, Max: 1, Side: TargetOpponent, Zone: TargetInPlay}
}

// CopyCard transforms the played card into a copy of a target in-play card.
// The card's variable cost resolves to the chosen target's printed cost.
type CopyCard struct{}

func (e *CopyCard) Timing() Timing { return TimingOnPlay }

func (e *CopyCard) Clause() string { return "copy_card" }

func (e *CopyCard) Targeting() Targeting {
	return Targeting{Required: true, Min: 1, Max: 1, Side: TargetAny, Zone: TargetInPlay}
}

// OnSleepedGainCC grants its controller CC when the source is sleeped from
// play, whatever the cause.
type OnSleepedGainCC struct {
	Amount int
}

func (e *OnSleepedGainCC) Timing() Timing { return TimingTriggered }

func (e *OnSleepedGainCC) Clause() string {
	return fmt.Sprintf("on_sleeped_gain_cc:%d", e.Amount)
}

func (e *OnSleepedGainCC) ShouldTrigger(ev rules.Event, source CardView) bool {
	return ev.Type == rules.EventCardSleeped &&
		ev.TargetID == source.ID &&
		ev.FromZone == rules.ZoneNameInPlay
}

// ActivatedSleep is an in-play ability: pay CC to sleep one opposing in-play
// card. The validator never offers it without a legal target.
type ActivatedSleep struct {
	Cost int
}

func (e *ActivatedSleep) Timing() Timing { return TimingActivated }

func (e *ActivatedSleep) Clause() string {
	return fmt.Sprintf("activated_sleep:%d", e.Cost)
}

func (e *ActivatedSleep) Targeting() Targeting {
	return Targeting{Required: true, Min: 1, Max: 1, Side: TargetOpponent, Zone: TargetInPlay}
}

func (e *ActivatedSleep) CCCost() int { return e.Cost }

// AltCostSleepAlly declares that the card may be played by sleeping another
// of the controller's in-play cards instead of paying CC.
type AltCostSleepAlly struct{}

func (e *AltCostSleepAlly) Timing() Timing { return TimingContinuous }

func (e *AltCostSleepAlly) Clause() string { return "alt_cost_sleep_ally" }

func (e *AltCostSleepAlly) AltCostDescription() string {
	return "sleep another card you control"
}
