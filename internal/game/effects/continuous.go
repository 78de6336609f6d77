package effects

import "fmt"

// StatBoost raises a statistic of every card its controller controls,
// including the source itself, while the source is in play.
type StatBoost struct {
	passthrough
	Stat   Stat
	Amount int
}

func (e *StatBoost) Timing() Timing { return TimingContinuous }

func (e *StatBoost) Clause() string {
	return fmt.Sprintf("stat_boost:%s:%d", e.Stat, e.Amount)
}

func (e *StatBoost) ModifyStat(source, target CardView, stat Stat, current int, _ State) int {
	if stat != e.Stat {
		return current
	}
	if target.ControllerID != source.ControllerID {
		return current
	}
	return current + e.Amount
}

// SetSelfTussleCost overrides the tussle cost of the source card itself,
// optionally only after turn 1.
type SetSelfTussleCost struct {
	passthrough
	Cost     int
	NotTurn1 bool
}

func (e *SetSelfTussleCost) Timing() Timing { return TimingContinuous }

func (e *SetSelfTussleCost) Clause() string {
	clause := fmt.Sprintf("set_self_tussle_cost:%d", e.Cost)
	if e.NotTurn1 {
		clause += ":not_turn_1"
	}
	return clause
}

func (e *SetSelfTussleCost) ModifyTussleCost(source, attacker CardView, _ string, current int, st State) int {
	if attacker.ID != source.ID {
		return current
	}
	if e.NotTurn1 && st.TurnNumber() == 1 {
		return current
	}
	return e.Cost
}

// SetTeamTussleCost overrides the tussle cost for every attacker the source's
// controller commands.
type SetTeamTussleCost struct {
	passthrough
	Cost int
}

func (e *SetTeamTussleCost) Timing() Timing { return TimingContinuous }

func (e *SetTeamTussleCost) Clause() string {
	return fmt.Sprintf("set_team_tussle_cost:%d", e.Cost)
}

func (e *SetTeamTussleCost) ModifyTussleCost(source, _ CardView, payer string, current int, _ State) int {
	if payer != source.ControllerID {
		return current
	}
	return e.Cost
}

// CannotTussle forbids the source from ever being a tussle attacker.
type CannotTussle struct {
	passthrough
}

func (e *CannotTussle) Timing() Timing { return TimingContinuous }

func (e *CannotTussle) Clause() string { return "cannot_tussle" }

func (e *CannotTussle) BlocksTussle(_ CardView, _ State) bool { return true }

// AutoWin makes the source's tussles sleep the defender outright while its
// controller is the active player.
type AutoWin struct {
	passthrough
}

func (e *AutoWin) Timing() Timing { return TimingContinuous }

func (e *AutoWin) Clause() string { return "auto_win" }

func (e *AutoWin) AutoWins(source CardView, st State) bool {
	return st.ActivePlayerID() == source.ControllerID
}

// OpponentImmunity protects the source from being targeted or modified by
// effects whose source an opponent controls.
type OpponentImmunity struct {
	passthrough
}

func (e *OpponentImmunity) Timing() Timing { return TimingContinuous }

func (e *OpponentImmunity) Clause() string { return "opponent_immunity" }

func (e *OpponentImmunity) Protects(source, target CardView) bool {
	return target.ID == source.ID
}

// TeamOpponentImmunity extends opponent immunity to every card the source's
// controller controls.
type TeamOpponentImmunity struct {
	passthrough
}

func (e *TeamOpponentImmunity) Timing() Timing { return TimingContinuous }

func (e *TeamOpponentImmunity) Clause() string { return "team_opponent_immunity" }

func (e *TeamOpponentImmunity) Protects(source, target CardView) bool {
	return target.ControllerID == source.ControllerID
}

// ReduceCostPerSleeping lowers the source card's own play cost by a fixed
// amount per card in its controller's sleep zone. The pipeline clamps the
// result at zero before opposing cost increases apply.
type ReduceCostPerSleeping struct {
	passthrough
	Amount int
}

func (e *ReduceCostPerSleeping) Timing() Timing { return TimingContinuous }

func (e *ReduceCostPerSleeping) Clause() string {
	return fmt.Sprintf("reduce_cost_per_sleeping:%d", e.Amount)
}

func (e *ReduceCostPerSleeping) ModifyCardCost(source, card CardView, payer string, current int, st State) int {
	if card.ID != source.ID {
		return current
	}
	return current - e.Amount*st.SleepCount(payer)
}

// IncreaseOpponentCosts taxes opposing card plays while the source is in
// play. Skipped against immune cards by the pipeline.
type IncreaseOpponentCosts struct {
	passthrough
	Amount int
}

func (e *IncreaseOpponentCosts) Timing() Timing { return TimingContinuous }

func (e *IncreaseOpponentCosts) Clause() string {
	return fmt.Sprintf("increase_opponent_costs:%d", e.Amount)
}

func (e *IncreaseOpponentCosts) ModifyCardCost(source, _ CardView, payer string, current int, _ State) int {
	if payer == source.ControllerID {
		return current
	}
	return current + e.Amount
}

// DirectAttackOverride lets the source direct-attack even when the opponent
// has cards in play.
type DirectAttackOverride struct {
	passthrough
}

func (e *DirectAttackOverride) Timing() Timing { return TimingContinuous }

func (e *DirectAttackOverride) Clause() string { return "direct_attack_override" }

func (e *DirectAttackOverride) WaivesBoardCheck() bool { return true }
