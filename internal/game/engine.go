package game

import (
	"fmt"
	"sync"

	"github.com/RegisCA/ggltcg-sub001/internal/catalog"
	"github.com/RegisCA/ggltcg-sub001/internal/config"
	"github.com/RegisCA/ggltcg-sub001/internal/game/effects"
	"github.com/RegisCA/ggltcg-sub001/internal/game/rules"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlayerSetup describes one side of a new match.
type PlayerSetup struct {
	ID   string
	Name string
	// Hand lists catalog template names forming the starting hand, in
	// order.
	Hand []string
}

// Engine owns the match registry and exposes the mutator surface. The
// registry map is guarded for concurrent match creation; within a match,
// callers must serialize mutators and queries per match id. The engine
// performs no per-match locking.
type Engine struct {
	logger  *zap.Logger
	cfg     config.GameConfig
	catalog *catalog.Catalog

	mu      sync.RWMutex
	matches map[string]*GameState
}

// NewEngine creates an engine over an immutable card catalog.
func NewEngine(cfg config.GameConfig, cat *catalog.Catalog, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger:  logger,
		cfg:     cfg,
		catalog: cat,
		matches: make(map[string]*GameState),
	}
}

// NewMatch creates a match with both players' starting hands. An empty
// matchID is assigned a fresh id. seed starts the match's deterministic
// random sequence (direct-attack victim picks); zero picks a clock seed.
func (e *Engine) NewMatch(matchID string, first, second PlayerSetup, seed int64) (*GameState, error) {
	if matchID == "" {
		matchID = uuid.NewString()
	}
	if first.ID == "" || second.ID == "" || first.ID == second.ID {
		return nil, fmt.Errorf("players need distinct non-empty ids (%q, %q)", first.ID, second.ID)
	}

	p1, err := e.buildPlayer(first)
	if err != nil {
		return nil, err
	}
	p2, err := e.buildPlayer(second)
	if err != nil {
		return nil, err
	}

	g := newGameState(matchID, p1, p2, e.cfg, seed)

	e.mu.Lock()
	if _, exists := e.matches[matchID]; exists {
		e.mu.Unlock()
		return nil, fmt.Errorf("match %s already exists", matchID)
	}
	e.matches[matchID] = g
	e.mu.Unlock()

	e.beginTurn(g)

	e.logger.Info("match created",
		zap.String("match_id", matchID),
		zap.String("first_player", p1.ID),
		zap.String("second_player", p2.ID),
	)
	return g, nil
}

func (e *Engine) buildPlayer(setup PlayerSetup) (*Player, error) {
	p := NewPlayer(setup.ID, setup.Name)
	if p.Name == "" {
		p.Name = p.ID
	}
	for _, name := range setup.Hand {
		tmpl, ok := e.catalog.Get(name)
		if !ok {
			return nil, fmt.Errorf("player %s: unknown card template %q", setup.ID, name)
		}
		p.Hand = append(p.Hand, NewCard(tmpl, p.ID))
	}
	return p, nil
}

// Match returns the live state for a match id.
func (e *Engine) Match(matchID string) (*GameState, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	g, ok := e.matches[matchID]
	return g, ok
}

// DropMatch removes a finished match from the registry.
func (e *Engine) DropMatch(matchID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.matches, matchID)
}

// TurnLimitReached reports whether the match has exceeded the configured
// turn ceiling. Callers treat it as a drawn match; the engine never errors
// on it.
func (e *Engine) TurnLimitReached(g *GameState) bool {
	return g.TurnNumber() > e.cfg.MaxTurns
}

// beginTurn runs the Start phase for the active player: open a ledger
// entry, grant CC (first turn of the match grants less), reset the
// direct-attack counter, then advance into Main.
func (e *Engine) beginTurn(g *GameState) {
	active := g.players[g.ActivePlayerID()]
	active.DirectAttacksThisTurn = 0

	g.Ledger = append(g.Ledger, LedgerEntry{
		Turn:     g.TurnNumber(),
		PlayerID: active.ID,
		CCStart:  active.CC,
	})

	grant := e.cfg.TurnGrant
	if g.turns.IsFirstTurn() {
		grant = e.cfg.FirstTurnGrant
	}

	ev := rules.NewEvent(rules.EventTurnStarted, "", "", active.ID)
	ev.Amount = g.TurnNumber()
	ev.Description = fmt.Sprintf("turn %d begins for %s", g.TurnNumber(), active.Name)
	g.bus.Publish(ev)

	g.gainCC(active, grant, "")

	phase, _ := g.turns.AdvancePhase("") // Start -> Main
	g.publishPhase(phase, active.ID)
}

func (g *GameState) publishPhase(phase rules.Phase, playerID string) {
	ev := rules.NewEvent(rules.EventPhaseChanged, "", "", playerID)
	ev.Description = fmt.Sprintf("phase %s", phase)
	g.bus.Publish(ev)
}

// EndTurn finalizes the active player's ledger entry, runs the End phase,
// and begins the next turn for the opponent.
func (e *Engine) EndTurn(matchID, playerID string) error {
	g, ok := e.Match(matchID)
	if !ok {
		return &InvariantError{Op: "EndTurn", Detail: fmt.Sprintf("unknown match %s", matchID)}
	}
	if legality := e.canEndTurn(g, playerID); !legality.Legal {
		return &RuleError{Op: "EndTurn", Reason: legality.Reason}
	}

	active := g.players[playerID]
	phase, _ := g.turns.AdvancePhase("") // Main -> End
	g.publishPhase(phase, active.ID)

	if entry := g.currentLedger(); entry != nil && entry.PlayerID == active.ID {
		entry.CCEnd = active.CC
		entry.CCSpent = entry.CCStart + entry.CCGained - entry.CCEnd
		entry.Finalized = true
	}

	ev := rules.NewEvent(rules.EventTurnEnded, "", "", active.ID)
	ev.Amount = g.TurnNumber()
	ev.Description = fmt.Sprintf("%s ends turn %d", active.Name, g.TurnNumber())
	g.bus.Publish(ev)

	g.turns.AdvancePhase(g.Opponent(playerID)) // End -> next Start
	e.beginTurn(g)

	e.logger.Debug("turn advanced",
		zap.String("match_id", matchID),
		zap.Int("turn", g.TurnNumber()),
		zap.String("active_player", g.ActivePlayerID()),
	)
	return nil
}

func (e *Engine) canEndTurn(g *GameState, playerID string) Legality {
	if g.Over() {
		return Denied("the match is over")
	}
	if g.ActivePlayerID() != playerID {
		return Denied("not your turn")
	}
	if g.Phase() != rules.PhaseMain {
		return Denied("turns end from the main phase")
	}
	return Allowed()
}

// CanPlayCard checks whether playerID may play the hand card with the given
// targets and optional alternative-cost payment.
func (g *GameState) CanPlayCard(playerID, cardID string, targetIDs []string, altCostCardID string) Legality {
	if g.Over() {
		return Denied("the match is over")
	}
	if g.ActivePlayerID() != playerID {
		return Denied("not your turn")
	}
	if g.Phase() != rules.PhaseMain {
		return Denied("cards may only be played in the main phase")
	}

	player := g.players[playerID]
	card := player.findInZone(ZoneHand, cardID)
	if card == nil {
		return Denied("card is not in your hand")
	}

	onPlay, hasOnPlay := onPlayEffect(card)
	if hasOnPlay && onPlay.Targeting().Required {
		spec := onPlay.Targeting()
		if len(targetIDs) < spec.Min || len(targetIDs) > spec.Max {
			return Denied(fmt.Sprintf("requires between %d and %d targets", spec.Min, spec.Max))
		}
		legal := g.legalTargets(playerID, card, spec)
		for _, id := range targetIDs {
			if !containsCard(legal, id) {
				return Denied("illegal target")
			}
		}
	} else if len(targetIDs) > 0 {
		return Denied("card takes no targets")
	}

	if altCostCardID != "" {
		if _, ok := hasAltCost(card); !ok {
			return Denied("card declares no alternative cost")
		}
		ally := player.findInZone(ZoneInPlay, altCostCardID)
		if ally == nil {
			return Denied("alternative-cost card is not in play under your control")
		}
		if ally.ID == card.ID {
			return Denied("a card cannot pay for itself")
		}
		return Allowed()
	}

	cost := g.CardCost(card, playerID, g.resolveVariableCost(card, targetIDs))
	if player.CC < cost {
		return Denied(fmt.Sprintf("not enough CC: need %d, have %d", cost, player.CC))
	}
	return Allowed()
}

func containsCard(cards []*Card, id string) bool {
	for _, c := range cards {
		if c.ID == id {
			return true
		}
	}
	return false
}

// PlayCard plays a hand card: pays the primary or alternative cost, moves
// the card, and resolves its on-play effect exactly once. Instants resolve
// and go straight to the sleep zone.
func (e *Engine) PlayCard(matchID, playerID, cardID string, targetIDs []string, altCostCardID string) error {
	g, ok := e.Match(matchID)
	if !ok {
		return &InvariantError{Op: "PlayCard", Detail: fmt.Sprintf("unknown match %s", matchID)}
	}
	if legality := g.CanPlayCard(playerID, cardID, targetIDs, altCostCardID); !legality.Legal {
		return &RuleError{Op: "PlayCard", Reason: legality.Reason}
	}

	player := g.players[playerID]
	card := player.findInZone(ZoneHand, cardID)

	// Pay the cost.
	if altCostCardID != "" {
		ally := player.findInZone(ZoneInPlay, altCostCardID)
		if err := g.sleepFromPlay(ally, card.ID); err != nil {
			return err
		}
	} else {
		cost := g.CardCost(card, playerID, g.resolveVariableCost(card, targetIDs))
		if err := g.spendCC(player, cost, "PlayCard"); err != nil {
			return err
		}
	}

	ev := rules.NewEvent(rules.EventCardPlayed, card.ID, "", playerID)
	ev.Description = fmt.Sprintf("%s plays %s", player.Name, card.Name())
	g.bus.Publish(ev)

	var err error
	if card.Kind() == catalog.KindPermanent {
		if err = g.moveCard(card, ZoneHand, ZoneInPlay, card.ID); err == nil {
			err = e.resolveOnPlay(g, player, card, targetIDs)
		}
	} else {
		// Instants resolve from hand, then rest in the sleep zone.
		if err = e.resolveOnPlay(g, player, card, targetIDs); err == nil {
			err = g.moveCard(card, ZoneHand, ZoneSleep, card.ID)
		}
	}
	if err != nil {
		return err
	}

	g.checkVictory()
	e.logger.Debug("card played",
		zap.String("match_id", matchID),
		zap.String("player_id", playerID),
		zap.String("card", card.Name()),
	)
	return nil
}

// resolveOnPlay executes the card's on-play effect, if any.
func (e *Engine) resolveOnPlay(g *GameState, player *Player, card *Card, targetIDs []string) error {
	for _, eff := range card.Effects() {
		if eff.Timing() != effects.TimingOnPlay {
			continue
		}
		if err := e.applyOnPlay(g, player, card, eff, targetIDs); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) applyOnPlay(g *GameState, player *Player, card *Card, eff effects.Effect, targetIDs []string) error {
	switch t := eff.(type) {
	case *effects.GainCC:
		if !t.Suppressed(g) {
			g.gainCC(player, t.Amount, card.ID)
		}
		return nil

	case *effects.SleepTarget:
		for _, id := range targetIDs {
			target, _, found := g.FindCard(id)
			if !found {
				return &InvariantError{Op: "PlayCard", Detail: fmt.Sprintf("target %s vanished", id)}
			}
			if err := g.sleepFromPlay(target, card.ID); err != nil {
				return err
			}
		}
		return nil

	case *effects.SleepAll:
		// Snapshot the boards first: sleeping mutates the collections.
		var board []*Card
		for _, p := range g.Players() {
			board = append(board, p.InPlay...)
		}
		source := card.View()
		for _, victim := range board {
			if victim.ID == card.ID {
				continue
			}
			// The wipe is an effect like any other: immune cards stay up.
			if g.blockedByImmunity(source, victim.View()) {
				continue
			}
			if err := g.sleepFromPlay(victim, card.ID); err != nil {
				return err
			}
		}
		return nil

	case *effects.WakeTarget:
		target, _, found := g.FindCard(targetIDs[0])
		if !found {
			return &InvariantError{Op: "PlayCard", Detail: fmt.Sprintf("target %s vanished", targetIDs[0])}
		}
		return g.moveCard(target, ZoneSleep, ZoneHand, card.ID)

	case *effects.StealTarget:
		target, _, found := g.FindCard(targetIDs[0])
		if !found {
			return &InvariantError{Op: "PlayCard", Detail: fmt.Sprintf("target %s vanished", targetIDs[0])}
		}
		return g.stealCard(target, player, card.ID)

	case *effects.CopyCard:
		target, _, found := g.FindCard(targetIDs[0])
		if !found {
			return &InvariantError{Op: "PlayCard", Detail: fmt.Sprintf("target %s vanished", targetIDs[0])}
		}
		card.transform(target)
		ev := rules.NewEvent(rules.EventTransformed, card.ID, target.ID, player.ID)
		ev.Description = fmt.Sprintf("%s becomes a copy of %s", card.Transformation.OriginalName, target.Name())
		g.bus.Publish(ev)
		return nil
	}
	return nil
}

// stealCard moves an in-play card under a new controller. Ownership never
// changes.
func (g *GameState) stealCard(card *Card, newController *Player, cause string) error {
	if card.Zone != ZoneInPlay {
		return &InvariantError{Op: "stealCard", Detail: fmt.Sprintf("card %s is not in play", card.ID)}
	}
	oldController, ok := g.players[card.ControllerID]
	if !ok || !oldController.removeFromZone(ZoneInPlay, card) {
		return &InvariantError{Op: "stealCard", Detail: fmt.Sprintf("card %s missing from controller's board", card.ID)}
	}
	card.ControllerID = newController.ID
	newController.addToZone(ZoneInPlay, card)

	ev := rules.NewEvent(rules.EventControlChanged, card.ID, cause, newController.ID)
	ev.Description = fmt.Sprintf("%s takes control of %s", newController.Name, card.Name())
	g.bus.Publish(ev)
	return nil
}

// Tussle starts a combat exchange. An empty defenderID is a direct attack.
func (e *Engine) Tussle(matchID, playerID, attackerID, defenderID string) error {
	g, ok := e.Match(matchID)
	if !ok {
		return &InvariantError{Op: "Tussle", Detail: fmt.Sprintf("unknown match %s", matchID)}
	}
	if legality := g.CanTussle(attackerID, defenderID, playerID); !legality.Legal {
		return &RuleError{Op: "Tussle", Reason: legality.Reason}
	}

	player := g.players[playerID]
	attacker, _, _ := g.FindCard(attackerID)

	direct := defenderID == ""
	cost := g.TussleCost(attacker, playerID, direct)
	if err := g.spendCC(player, cost, "Tussle"); err != nil {
		return err
	}

	var err error
	if direct {
		err = g.resolveDirectAttack(attacker, player)
	} else {
		defender, _, _ := g.FindCard(defenderID)
		err = g.resolveTussle(attacker, defender)
	}
	if err != nil {
		return err
	}

	g.checkVictory()
	return nil
}

// CanActivate checks whether playerID may use the activated ability of an
// in-play card against the given targets.
func (g *GameState) CanActivate(playerID, cardID string, targetIDs []string) Legality {
	if g.Over() {
		return Denied("the match is over")
	}
	if g.ActivePlayerID() != playerID {
		return Denied("not your turn")
	}
	if g.Phase() != rules.PhaseMain {
		return Denied("abilities may only be activated in the main phase")
	}

	player := g.players[playerID]
	card := player.findInZone(ZoneInPlay, cardID)
	if card == nil {
		return Denied("card is not in play under your control")
	}
	ability, ok := activatedEffect(card)
	if !ok {
		return Denied("card has no activated ability")
	}
	if player.CC < ability.CCCost() {
		return Denied(fmt.Sprintf("not enough CC: need %d, have %d", ability.CCCost(), player.CC))
	}

	spec := ability.Targeting()
	if len(targetIDs) < spec.Min || len(targetIDs) > spec.Max {
		return Denied(fmt.Sprintf("requires between %d and %d targets", spec.Min, spec.Max))
	}
	legal := g.legalTargets(playerID, card, spec)
	for _, id := range targetIDs {
		if !containsCard(legal, id) {
			return Denied("illegal target")
		}
	}
	return Allowed()
}

// ActivateAbility pays the ability's CC cost and applies it to the targets.
func (e *Engine) ActivateAbility(matchID, playerID, cardID string, targetIDs []string) error {
	g, ok := e.Match(matchID)
	if !ok {
		return &InvariantError{Op: "ActivateAbility", Detail: fmt.Sprintf("unknown match %s", matchID)}
	}
	if legality := g.CanActivate(playerID, cardID, targetIDs); !legality.Legal {
		return &RuleError{Op: "ActivateAbility", Reason: legality.Reason}
	}

	player := g.players[playerID]
	card := player.findInZone(ZoneInPlay, cardID)
	ability, _ := activatedEffect(card)

	if err := g.spendCC(player, ability.CCCost(), "ActivateAbility"); err != nil {
		return err
	}

	ev := rules.NewEvent(rules.EventAbilityActivated, card.ID, card.ID, playerID)
	ev.Description = fmt.Sprintf("%s activates %s", player.Name, ability.Clause())
	g.bus.Publish(ev)

	switch ability.(type) {
	case *effects.ActivatedSleep:
		for _, id := range targetIDs {
			target, _, found := g.FindCard(id)
			if !found {
				return &InvariantError{Op: "ActivateAbility", Detail: fmt.Sprintf("target %s vanished", id)}
			}
			if err := g.sleepFromPlay(target, card.ID); err != nil {
				return err
			}
		}
	}

	g.checkVictory()
	return nil
}

// ValidActions enumerates the legal actions for a player in a match.
func (e *Engine) ValidActions(matchID, playerID string, aiFilter bool) ([]Action, error) {
	g, ok := e.Match(matchID)
	if !ok {
		return nil, &InvariantError{Op: "ValidActions", Detail: fmt.Sprintf("unknown match %s", matchID)}
	}
	return g.ValidActions(playerID, aiFilter), nil
}
