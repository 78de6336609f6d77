package game

import (
	"github.com/RegisCA/ggltcg-sub001/internal/catalog"
	"github.com/RegisCA/ggltcg-sub001/internal/game/effects"
)

// blockedByImmunity reports whether target is protected against effects from
// source: a protector in play on target's side grants immunity and source is
// controlled by an opponent of target's controller.
func (g *GameState) blockedByImmunity(source effects.CardView, target effects.CardView) bool {
	if source.ControllerID == target.ControllerID {
		return false
	}
	if protector, ok := g.players[target.ControllerID]; ok {
		for _, card := range protector.InPlay {
			for _, e := range card.Effects() {
				grant, ok := e.(effects.ImmunityGrant)
				if !ok {
					continue
				}
				if grant.Protects(card.View(), target) {
					return true
				}
			}
		}
	}
	return false
}

// EffectiveStat folds every applicable continuous effect from every in-play
// card on either side into the card's base statistic. Contributions from
// sources blocked by an immunity relationship against the card are skipped.
// Each modifier receives the running total.
func (g *GameState) EffectiveStat(card *Card, stat effects.Stat) int {
	value := card.BaseStat(stat)
	target := card.View()

	for _, source := range g.cardsInPlay() {
		srcView := source.View()
		if g.blockedByImmunity(srcView, target) {
			continue
		}
		for _, e := range source.Effects() {
			ce, ok := e.(effects.Continuous)
			if !ok {
				continue
			}
			value = ce.ModifyStat(srcView, target, stat, value, g)
		}
	}
	return value
}

// CardCost computes the CC cost for payer to play card. A variable base cost
// must already be resolved (after target selection) and passed in; pass
// catalog.CostVariable when no resolution applies. Self-reductions from the
// payer's side apply first and clamp at zero; opposing cost increases apply
// afterwards and may push the cost back above zero, unless the card is
// immune to that source.
func (g *GameState) CardCost(card *Card, payerID string, resolvedVariable int) int {
	base := card.BaseCost()
	if base == catalog.CostVariable {
		base = resolvedVariable
	}
	if base < 0 {
		base = 0
	}
	cost := base

	cardView := card.View()
	cardView.ControllerID = payerID // priced from the payer's perspective

	// Own-side reductions: the payer's in-play cards plus the card itself.
	ownSources := make([]*Card, 0, 8)
	if payer, ok := g.players[payerID]; ok {
		ownSources = append(ownSources, payer.InPlay...)
	}
	ownSources = append(ownSources, card)
	seen := map[string]bool{}
	for _, source := range ownSources {
		if seen[source.ID] {
			continue
		}
		seen[source.ID] = true
		for _, e := range source.Effects() {
			ce, ok := e.(effects.Continuous)
			if !ok {
				continue
			}
			cost = ce.ModifyCardCost(source.View(), cardView, payerID, cost, g)
		}
	}
	if cost < 0 {
		cost = 0
	}

	// Opposing cost increases.
	if opponent, ok := g.players[g.Opponent(payerID)]; ok {
		for _, source := range opponent.InPlay {
			srcView := source.View()
			if g.blockedByImmunity(srcView, cardView) {
				continue
			}
			for _, e := range source.Effects() {
				ce, ok := e.(effects.Continuous)
				if !ok {
					continue
				}
				cost = ce.ModifyCardCost(srcView, cardView, payerID, cost, g)
			}
		}
	}
	if cost < 0 {
		cost = 0
	}
	return cost
}

// TussleCost computes the CC cost for payer to start a tussle with attacker.
// Direct attacks run through the same pipeline with their own base constant.
func (g *GameState) TussleCost(attacker *Card, payerID string, direct bool) int {
	cost := g.cfg.BaseTussleCost
	if direct {
		cost = g.cfg.DirectAttackCost
	}

	attackerView := attacker.View()
	for _, source := range g.cardsInPlay() {
		srcView := source.View()
		if g.blockedByImmunity(srcView, attackerView) {
			continue
		}
		for _, e := range source.Effects() {
			ce, ok := e.(effects.Continuous)
			if !ok {
				continue
			}
			cost = ce.ModifyTussleCost(srcView, attackerView, payerID, cost, g)
		}
	}
	if cost < 0 {
		cost = 0
	}
	return cost
}

// hasAltCost returns the alternative-cost declaration on the card, if any.
func hasAltCost(card *Card) (effects.AlternativeCost, bool) {
	for _, e := range card.Effects() {
		if alt, ok := e.(effects.AlternativeCost); ok {
			return alt, true
		}
	}
	return nil, false
}

// onPlayEffect returns the card's targeted or untargeted on-play effect, if
// any. Cards carry at most one.
func onPlayEffect(card *Card) (effects.Targeted, bool) {
	for _, e := range card.Effects() {
		if e.Timing() != effects.TimingOnPlay {
			continue
		}
		if t, ok := e.(effects.Targeted); ok {
			return t, true
		}
	}
	return nil, false
}

// activatedEffect returns the card's activated ability, if any.
func activatedEffect(card *Card) (effects.Activated, bool) {
	for _, e := range card.Effects() {
		if a, ok := e.(effects.Activated); ok {
			return a, true
		}
	}
	return nil, false
}
