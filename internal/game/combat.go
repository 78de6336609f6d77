package game

import (
	"fmt"

	"github.com/RegisCA/ggltcg-sub001/internal/game/effects"
	"github.com/RegisCA/ggltcg-sub001/internal/game/rules"
)

// tussleForecast is the shared damage math used by both resolution and
// prediction so the two can never diverge.
type tussleForecast struct {
	// winner is the card predicted to sleep its opposite, nil when both
	// survive the exchange.
	winner *Card
	// attackerDamage and defenderDamage are the stamina losses each side
	// takes during the exchange.
	attackerDamage int
	defenderDamage int
	autoWin        bool
}

// forecastTussle computes the outcome of attacker tussling defender without
// mutating anything. Tie-break: on equal effective speed the defender
// strikes first.
func (g *GameState) forecastTussle(attacker, defender *Card) tussleForecast {
	if g.attackerAutoWins(attacker) {
		return tussleForecast{winner: attacker, autoWin: true}
	}

	attackerSpeed := g.EffectiveStat(attacker, effects.StatSpeed)
	defenderSpeed := g.EffectiveStat(defender, effects.StatSpeed)

	first, second := defender, attacker
	if attackerSpeed > defenderSpeed {
		first, second = attacker, defender
	}

	forecast := tussleForecast{}
	firstStrength := strikeDamage(g.EffectiveStat(first, effects.StatStrength))
	forecast.addDamage(attacker, second, firstStrength)
	if second.CurrentStamina-firstStrength <= 0 {
		forecast.winner = first
		return forecast
	}

	secondStrength := strikeDamage(g.EffectiveStat(second, effects.StatStrength))
	forecast.addDamage(attacker, first, secondStrength)
	if first.CurrentStamina-secondStrength <= 0 {
		forecast.winner = second
	}
	return forecast
}

// strikeDamage clamps a strike at zero: effective strength driven negative by
// debuffs hits for nothing, it never heals the struck card.
func strikeDamage(strength int) int {
	if strength < 0 {
		return 0
	}
	return strength
}

// addDamage books damage against whichever side the struck card is on.
func (f *tussleForecast) addDamage(attacker, struck *Card, amount int) {
	if struck.ID == attacker.ID {
		f.attackerDamage += amount
	} else {
		f.defenderDamage += amount
	}
}

// attackerAutoWins reports whether the attacker carries an auto-win effect
// that applies right now.
func (g *GameState) attackerAutoWins(attacker *Card) bool {
	for _, e := range attacker.Effects() {
		if aw, ok := e.(effects.AutoWinner); ok && aw.AutoWins(attacker.View(), g) {
			return true
		}
	}
	return false
}

// attackerCannotTussle reports whether a continuous effect forbids the card
// from attacking.
func (g *GameState) attackerCannotTussle(attacker *Card) bool {
	for _, e := range attacker.Effects() {
		if tb, ok := e.(effects.TussleBlocker); ok && tb.BlocksTussle(attacker.View(), g) {
			return true
		}
	}
	return false
}

// attackerWaivesBoardCheck reports whether the card may direct-attack past
// an occupied opposing board.
func (g *GameState) attackerWaivesBoardCheck(attacker *Card) bool {
	for _, e := range attacker.Effects() {
		if w, ok := e.(effects.DirectAttackWaiver); ok && w.WaivesBoardCheck() {
			return true
		}
	}
	return false
}

// PredictWinner replicates tussle resolution without mutating state. It
// returns the id of the card predicted to win, or "" when both survive.
// Resolution and prediction share the same forecast, so they always agree.
func (g *GameState) PredictWinner(attacker, defender *Card) string {
	forecast := g.forecastTussle(attacker, defender)
	if forecast.winner == nil {
		return ""
	}
	return forecast.winner.ID
}

// CanTussle checks whether playerID may start a tussle with attackerID
// against defenderID. An empty defenderID means a direct attack. Returns a
// rule-rejection result, never an error.
func (g *GameState) CanTussle(attackerID, defenderID, playerID string) Legality {
	if g.Over() {
		return Denied("the match is over")
	}
	if g.ActivePlayerID() != playerID {
		return Denied("not your turn")
	}
	if g.Phase() != rules.PhaseMain {
		return Denied("tussles may only start in the main phase")
	}

	attacker, _, found := g.FindCard(attackerID)
	if !found {
		return Denied("attacker not found")
	}
	if attacker.ControllerID != playerID {
		return Denied("you do not control the attacker")
	}
	if attacker.Zone != ZoneInPlay {
		return Denied("attacker is not in play")
	}
	if !attacker.HasStats() {
		return Denied("attacker has no combat statistics")
	}
	if attacker.CurrentStamina <= 0 {
		return Denied("attacker has no stamina left")
	}
	if g.attackerCannotTussle(attacker) {
		return Denied(fmt.Sprintf("%s cannot tussle", attacker.Name()))
	}

	direct := defenderID == ""
	player := g.players[playerID]
	cost := g.TussleCost(attacker, playerID, direct)
	if player.CC < cost {
		return Denied(fmt.Sprintf("not enough CC: need %d, have %d", cost, player.CC))
	}

	opponent := g.players[g.Opponent(playerID)]
	if direct {
		if len(opponent.Hand) == 0 {
			return Denied("opponent has no cards in hand")
		}
		if player.DirectAttacksThisTurn >= g.cfg.MaxDirectAttacks {
			return Denied(fmt.Sprintf("already made %d direct attacks this turn", player.DirectAttacksThisTurn))
		}
		if len(opponent.InPlay) > 0 && !g.attackerWaivesBoardCheck(attacker) {
			return Denied("opponent has cards in play")
		}
		return Allowed()
	}

	defender, _, found := g.FindCard(defenderID)
	if !found {
		return Denied("defender not found")
	}
	if defender.ControllerID == playerID {
		return Denied("cannot tussle your own card")
	}
	if defender.Zone != ZoneInPlay {
		return Denied("defender is not in play")
	}
	if !defender.HasStats() {
		return Denied("defender has no combat statistics")
	}
	return Allowed()
}

// resolveTussle performs the combat exchange between attacker and defender.
// Legality has already been checked; the cost has already been paid.
func (g *GameState) resolveTussle(attacker, defender *Card) error {
	forecast := g.forecastTussle(attacker, defender)

	if forecast.autoWin {
		ev := rules.NewEvent(rules.EventTussleResolved, defender.ID, attacker.ID, attacker.ControllerID)
		ev.Description = fmt.Sprintf("%s defeats %s outright", attacker.Name(), defender.Name())
		g.bus.Publish(ev)
		return g.sleepFromPlay(defender, attacker.ID)
	}

	attacker.CurrentStamina -= forecast.attackerDamage
	defender.CurrentStamina -= forecast.defenderDamage

	desc := fmt.Sprintf("%s tussles %s", attacker.Name(), defender.Name())
	if forecast.winner != nil {
		desc = fmt.Sprintf("%s, %s is sleeped", desc, forecast.winner.otherOf(attacker, defender).Name())
	}
	ev := rules.NewEvent(rules.EventTussleResolved, defender.ID, attacker.ID, attacker.ControllerID)
	ev.Description = desc
	g.bus.Publish(ev)

	// The forecast winner's opposite is the card that dropped to 0.
	if forecast.winner != nil {
		loser := forecast.winner.otherOf(attacker, defender)
		if err := g.sleepFromPlay(loser, attacker.ID); err != nil {
			return err
		}
	}
	return nil
}

// otherOf returns whichever of a and b the receiver is not.
func (c *Card) otherOf(a, b *Card) *Card {
	if c.ID == a.ID {
		return b
	}
	return a
}

// resolveDirectAttack moves one uniformly chosen card from the opponent's
// hand straight to their sleep zone and increments the per-turn counter.
func (g *GameState) resolveDirectAttack(attacker *Card, player *Player) error {
	opponent := g.players[g.Opponent(player.ID)]
	if len(opponent.Hand) == 0 {
		return &InvariantError{Op: "resolveDirectAttack", Detail: "opponent hand is empty"}
	}

	victim := opponent.Hand[g.randIntn(len(opponent.Hand))]
	player.DirectAttacksThisTurn++

	ev := rules.NewEvent(rules.EventDirectAttack, victim.ID, attacker.ID, player.ID)
	ev.Description = fmt.Sprintf("%s attacks %s directly, %s is sleeped from hand", attacker.Name(), opponent.Name, victim.Name())
	g.bus.Publish(ev)

	return g.moveCard(victim, ZoneHand, ZoneSleep, attacker.ID)
}
