package game

import (
	"fmt"
	"sort"

	"github.com/RegisCA/ggltcg-sub001/internal/catalog"
	"github.com/RegisCA/ggltcg-sub001/internal/game/effects"
	"github.com/RegisCA/ggltcg-sub001/internal/game/rules"
)

// ActionKind identifies the mutator an action descriptor maps to.
type ActionKind string

const (
	ActionPlayCard     ActionKind = "PLAY_CARD"
	ActionTussle       ActionKind = "TUSSLE"
	ActionDirectAttack ActionKind = "DIRECT_ATTACK"
	ActionActivate     ActionKind = "ACTIVATE_ABILITY"
	ActionEndTurn      ActionKind = "END_TURN"
)

// Action describes one legal move. External actors (human UI, AI planner)
// pick exactly one descriptor and submit it back to the matching mutator.
type Action struct {
	Kind                  ActionKind `json:"kind"`
	SourceCardID          string     `json:"sourceCardId,omitempty"`
	TargetIDs             []string   `json:"targetIds,omitempty"`
	AlternativeCostCardID string     `json:"alternativeCostCardId,omitempty"`
	Cost                  int        `json:"cost"`
	Description           string     `json:"description"`
}

// ValidActions enumerates every action playerID may take right now. In AI
// filter mode, tussles that the forecast gives to the defender are dropped
// and the rest are sorted tussles-first, then by ascending cost.
func (g *GameState) ValidActions(playerID string, aiFilter bool) []Action {
	if g.Over() || g.ActivePlayerID() != playerID || g.Phase() != rules.PhaseMain {
		return nil
	}
	player, ok := g.players[playerID]
	if !ok {
		return nil
	}

	actions := []Action{{
		Kind:        ActionEndTurn,
		Description: "End the turn",
	}}

	for _, card := range player.Hand {
		actions = append(actions, g.playActions(player, card)...)
	}

	for _, card := range player.InPlay {
		actions = append(actions, g.combatActions(player, card, aiFilter)...)
		actions = append(actions, g.activatedActions(player, card)...)
	}

	if aiFilter {
		sortForAI(actions)
	}
	return actions
}

// playActions enumerates the legal ways to play one hand card: a descriptor
// per legal target (or a single untargeted one), by primary cost when
// affordable plus one per declared alternative cost payment.
func (g *GameState) playActions(player *Player, card *Card) []Action {
	onPlay, hasOnPlay := onPlayEffect(card)

	var targetSets [][]string
	switch {
	case !hasOnPlay || !onPlay.Targeting().Required:
		targetSets = [][]string{nil}
	default:
		spec := onPlay.Targeting()
		legal := g.legalTargets(player.ID, card, spec)
		if len(legal) == 0 {
			return nil
		}
		if spec.Min == 1 && spec.Max == 1 {
			for _, t := range legal {
				targetSets = append(targetSets, []string{t.ID})
			}
		} else {
			// Multi-target effects take the first max legal targets; a
			// richer chooser is the caller's concern.
			limit := spec.Max
			if limit > len(legal) {
				limit = len(legal)
			}
			if limit < spec.Min {
				return nil
			}
			ids := make([]string, 0, limit)
			for _, t := range legal[:limit] {
				ids = append(ids, t.ID)
			}
			targetSets = append(targetSets, ids)
		}
	}

	var actions []Action
	for _, targets := range targetSets {
		cost := g.CardCost(card, player.ID, g.resolveVariableCost(card, targets))
		desc := fmt.Sprintf("Play %s for %d CC", card.Name(), cost)
		if len(targets) > 0 {
			desc = fmt.Sprintf("%s targeting %s", desc, g.describeTargets(targets))
		}

		if player.CC >= cost {
			actions = append(actions, Action{
				Kind:         ActionPlayCard,
				SourceCardID: card.ID,
				TargetIDs:    targets,
				Cost:         cost,
				Description:  desc,
			})
		}

		if alt, ok := hasAltCost(card); ok {
			for _, ally := range player.InPlay {
				actions = append(actions, Action{
					Kind:                  ActionPlayCard,
					SourceCardID:          card.ID,
					TargetIDs:             targets,
					AlternativeCostCardID: ally.ID,
					Cost:                  0,
					Description:           fmt.Sprintf("Play %s by %s (%s)", card.Name(), alt.AltCostDescription(), ally.Name()),
				})
			}
		}
	}
	return actions
}

// combatActions enumerates tussle and direct-attack options for one in-play
// card.
func (g *GameState) combatActions(player *Player, card *Card, aiFilter bool) []Action {
	var actions []Action

	if g.CanTussle(card.ID, "", player.ID).Legal {
		actions = append(actions, Action{
			Kind:         ActionDirectAttack,
			SourceCardID: card.ID,
			Cost:         g.TussleCost(card, player.ID, true),
			Description:  fmt.Sprintf("%s attacks the opponent's hand directly", card.Name()),
		})
	}

	opponent := g.players[g.Opponent(player.ID)]
	for _, defender := range opponent.InPlay {
		if !g.CanTussle(card.ID, defender.ID, player.ID).Legal {
			continue
		}
		if aiFilter && g.PredictWinner(card, defender) == defender.ID {
			continue
		}
		actions = append(actions, Action{
			Kind:         ActionTussle,
			SourceCardID: card.ID,
			TargetIDs:    []string{defender.ID},
			Cost:         g.TussleCost(card, player.ID, false),
			Description:  fmt.Sprintf("%s tussles %s", card.Name(), defender.Name()),
		})
	}
	return actions
}

// activatedActions enumerates activated-ability options for one in-play
// card. Never offered with zero legal targets or insufficient CC.
func (g *GameState) activatedActions(player *Player, card *Card) []Action {
	ability, ok := activatedEffect(card)
	if !ok {
		return nil
	}
	if player.CC < ability.CCCost() {
		return nil
	}
	legal := g.legalTargets(player.ID, card, ability.Targeting())
	if len(legal) == 0 {
		return nil
	}

	actions := make([]Action, 0, len(legal))
	for _, target := range legal {
		actions = append(actions, Action{
			Kind:         ActionActivate,
			SourceCardID: card.ID,
			TargetIDs:    []string{target.ID},
			Cost:         ability.CCCost(),
			Description:  fmt.Sprintf("%s: %s targeting %s", card.Name(), ability.Clause(), target.Name()),
		})
	}
	return actions
}

// legalTargets enumerates the cards matching a targeting spec for an effect
// sourced from sourceCard played or controlled by playerID. Opposing targets
// protected by an immunity relationship are excluded.
func (g *GameState) legalTargets(playerID string, sourceCard *Card, spec effects.Targeting) []*Card {
	if !spec.Required {
		return nil
	}

	sourceView := sourceCard.View()
	sourceView.ControllerID = playerID

	var sides []string
	switch spec.Side {
	case effects.TargetOwn:
		sides = []string{playerID}
	case effects.TargetOpponent:
		sides = []string{g.Opponent(playerID)}
	default:
		sides = []string{g.seats[0], g.seats[1]}
	}

	zone := ZoneInPlay
	if spec.Zone == effects.TargetSleep {
		zone = ZoneSleep
	}

	var legal []*Card
	for _, side := range sides {
		p, ok := g.players[side]
		if !ok {
			continue
		}
		for _, c := range *p.zone(zone) {
			if c.ID == sourceCard.ID {
				continue
			}
			if g.blockedByImmunity(sourceView, c.View()) {
				continue
			}
			legal = append(legal, c)
		}
	}
	return legal
}

// resolveVariableCost resolves a variable-cost sentinel against the chosen
// targets. Returns catalog.CostVariable when no resolution applies.
func (g *GameState) resolveVariableCost(card *Card, targets []string) int {
	if card.BaseCost() != catalog.CostVariable || len(targets) == 0 {
		return catalog.CostVariable
	}
	target, _, found := g.FindCard(targets[0])
	if !found {
		return catalog.CostVariable
	}
	// Copy's cost equals the chosen target's printed cost.
	cost := target.BaseCost()
	if cost == catalog.CostVariable {
		cost = 0
	}
	return cost
}

func (g *GameState) describeTargets(ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if c, _, ok := g.FindCard(id); ok {
			names = append(names, c.Name())
		}
	}
	if len(names) == 0 {
		return "nothing"
	}
	out := names[0]
	for _, n := range names[1:] {
		out += ", " + n
	}
	return out
}

// sortForAI orders actions for the AI planner: tussles and direct attacks
// first, then everything else, each group by ascending cost. Stable so the
// enumeration order breaks ties.
func sortForAI(actions []Action) {
	group := func(a Action) int {
		if a.Kind == ActionTussle || a.Kind == ActionDirectAttack {
			return 0
		}
		return 1
	}
	sort.SliceStable(actions, func(i, j int) bool {
		gi, gj := group(actions[i]), group(actions[j])
		if gi != gj {
			return gi < gj
		}
		return actions[i].Cost < actions[j].Cost
	})
}
