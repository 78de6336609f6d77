package game

import (
	"fmt"

	"github.com/RegisCA/ggltcg-sub001/internal/game/effects"
	"github.com/RegisCA/ggltcg-sub001/internal/game/rules"
)

// moveCard is the single choke point for every zone transition. All zone
// moves in the engine route through here so the two invariant-preserving
// rules cannot diverge between code paths:
//
//  1. Moving into Sleep from InPlay fires the card's "when sleeped"
//     triggered effects exactly once, after the physical move, whatever the
//     cause (combat, board wipe, cascading effect).
//  2. Leaving InPlay (to anywhere) or entering Sleep clears the
//     transformation overlay. The one exception is the Sleep-to-Hand
//     "wake" move, which preserves it.
func (g *GameState) moveCard(card *Card, from, to Zone, cause string) error {
	holder, ok := g.players[card.ControllerID]
	if !ok {
		return &InvariantError{Op: "moveCard", Detail: fmt.Sprintf("card %s has unknown controller %s", card.ID, card.ControllerID)}
	}
	if card.Zone != from {
		return &InvariantError{Op: "moveCard", Detail: fmt.Sprintf("card %s is in %s, not %s", card.ID, card.Zone, from)}
	}
	if !holder.removeFromZone(from, card) {
		return &InvariantError{Op: "moveCard", Detail: fmt.Sprintf("card %s missing from %s of %s", card.ID, from, holder.ID)}
	}

	card.Zone = to
	holder.addToZone(to, card)

	if to == ZoneInPlay && card.HasStats() {
		card.CurrentStamina = card.BaseStamina()
	}

	wake := from == ZoneSleep && to == ZoneHand
	if (from == ZoneInPlay || to == ZoneSleep) && !wake {
		if card.Transformation != nil {
			card.clearTransformation()
			ev := rules.NewEvent(rules.EventTransformCleared, card.ID, "", holder.ID)
			ev.Description = fmt.Sprintf("%s reverts to its original form", card.Name())
			g.bus.Publish(ev)
		}
	}

	ev := rules.NewEvent(rules.EventZoneChange, card.ID, cause, holder.ID)
	ev.FromZone = from.String()
	ev.ToZone = to.String()
	ev.Description = fmt.Sprintf("%s moves from %s to %s", card.Name(), from, to)
	g.bus.Publish(ev)

	switch {
	case to == ZoneSleep:
		sleepEv := rules.NewEvent(rules.EventCardSleeped, card.ID, cause, holder.ID)
		sleepEv.FromZone = from.String()
		sleepEv.ToZone = to.String()
		sleepEv.Description = fmt.Sprintf("%s is sleeped", card.Name())
		g.bus.Publish(sleepEv)
		if from == ZoneInPlay {
			g.fireSleepTriggers(card, sleepEv)
		}
	case wake:
		wakeEv := rules.NewEvent(rules.EventCardWoken, card.ID, cause, holder.ID)
		wakeEv.FromZone = from.String()
		wakeEv.ToZone = to.String()
		wakeEv.Description = fmt.Sprintf("%s wakes into %s's hand", card.Name(), holder.Name)
		g.bus.Publish(wakeEv)
	}

	return nil
}

// fireSleepTriggers runs every triggered effect on the card that reacts to
// it being sleeped from play. Fires after the physical move, exactly once
// per qualifying event.
func (g *GameState) fireSleepTriggers(card *Card, ev rules.Event) {
	source := card.View()
	for _, e := range card.Effects() {
		trig, ok := e.(effects.Triggered)
		if !ok || !trig.ShouldTrigger(ev, source) {
			continue
		}
		g.applyTriggered(card, trig)
	}
}

// applyTriggered executes a triggered effect's state change.
func (g *GameState) applyTriggered(card *Card, trig effects.Triggered) {
	controller, ok := g.players[card.ControllerID]
	if !ok {
		return
	}
	switch t := trig.(type) {
	case *effects.OnSleepedGainCC:
		g.gainCC(controller, t.Amount, card.ID)
	}
	ev := rules.NewEvent(rules.EventTriggeredResolved, card.ID, card.ID, controller.ID)
	ev.Description = fmt.Sprintf("%s triggers %s", card.Name(), trig.Clause())
	g.bus.Publish(ev)
}

// sleepFromPlay damages-out or force-sleeps an in-play card.
func (g *GameState) sleepFromPlay(card *Card, cause string) error {
	return g.moveCard(card, ZoneInPlay, ZoneSleep, cause)
}
