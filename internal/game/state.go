package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/RegisCA/ggltcg-sub001/internal/config"
	"github.com/RegisCA/ggltcg-sub001/internal/game/rules"
)

// LedgerEntry is one turn's CC accounting for the active player. The ledger
// is append-only; the invariant ccEnd = ccStart + ccGained - ccSpent always
// holds once the entry is finalized.
type LedgerEntry struct {
	Turn      int    `json:"turn"`
	PlayerID  string `json:"playerId"`
	CCStart   int    `json:"ccStart"`
	CCGained  int    `json:"ccGained"`
	CCSpent   int    `json:"ccSpent"`
	CCEnd     int    `json:"ccEnd"`
	Finalized bool   `json:"finalized"`
}

// LogEntry is one line of the append-only play-by-play record. Pure record;
// the rules never consult it.
type LogEntry struct {
	Turn      int       `json:"turn"`
	Phase     string    `json:"phase"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// GameState is the authoritative state of a single match. It has exactly one
// logical owner at a time; the engine performs no internal locking (callers
// serialize access per match id).
type GameState struct {
	MatchID string

	players map[string]*Player
	seats   [2]string // player ids in seat order, seats[0] took the first turn

	turns    *rules.TurnManager
	WinnerID string

	Ledger []LedgerEntry
	Log    []LogEntry

	bus  *rules.EventBus
	seed int64
	cfg  config.GameConfig
}

// newGameState wires a state with both players seated. seats[0] is the first
// player.
func newGameState(matchID string, first, second *Player, cfg config.GameConfig, seed int64) *GameState {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &GameState{
		MatchID: matchID,
		players: map[string]*Player{first.ID: first, second.ID: second},
		seats:   [2]string{first.ID, second.ID},
		turns:   rules.NewTurnManager(first.ID),
		bus:     rules.NewEventBus(),
		seed:    seed,
		cfg:     cfg,
	}
	g.bus.Subscribe(g.appendLog)
	return g
}

// randIntn draws the next value in the match's deterministic random
// sequence. The stored seed advances with every draw, so a snapshot taken at
// any point resumes the sequence exactly where the original left off.
func (g *GameState) randIntn(n int) int {
	r := rand.New(rand.NewSource(g.seed))
	v := r.Intn(n)
	g.seed = r.Int63()
	return v
}

// appendLog records every published event in the play-by-play log.
func (g *GameState) appendLog(ev rules.Event) {
	msg := ev.Description
	if msg == "" {
		msg = string(ev.Type)
	}
	g.Log = append(g.Log, LogEntry{
		Turn:      g.TurnNumber(),
		Phase:     g.Phase().String(),
		Message:   msg,
		Timestamp: ev.Timestamp,
	})
}

// Bus returns the match's event bus. External observers may subscribe;
// events are delivered synchronously between mutations.
func (g *GameState) Bus() *rules.EventBus {
	return g.bus
}

// Config returns the rule constants this match runs under.
func (g *GameState) Config() config.GameConfig {
	return g.cfg
}

// Player returns the player with the given id.
func (g *GameState) Player(id string) (*Player, bool) {
	p, ok := g.players[id]
	return p, ok
}

// Players returns both players in seat order.
func (g *GameState) Players() [2]*Player {
	return [2]*Player{g.players[g.seats[0]], g.players[g.seats[1]]}
}

// Opponent returns the other player's id.
func (g *GameState) Opponent(playerID string) string {
	if g.seats[0] == playerID {
		return g.seats[1]
	}
	return g.seats[0]
}

// TurnNumber implements effects.State.
func (g *GameState) TurnNumber() int {
	return g.turns.TurnNumber()
}

// ActivePlayerID implements effects.State.
func (g *GameState) ActivePlayerID() string {
	return g.turns.ActivePlayer()
}

// FirstPlayerID implements effects.State.
func (g *GameState) FirstPlayerID() string {
	return g.turns.FirstPlayer()
}

// SleepCount implements effects.State.
func (g *GameState) SleepCount(playerID string) int {
	if p, ok := g.players[playerID]; ok {
		return len(p.Sleep)
	}
	return 0
}

// Phase returns the current phase.
func (g *GameState) Phase() rules.Phase {
	return g.turns.CurrentPhase()
}

// Over reports whether a victory condition has been met.
func (g *GameState) Over() bool {
	return g.WinnerID != ""
}

// FindCard locates a card by id in any zone of either player.
func (g *GameState) FindCard(cardID string) (*Card, *Player, bool) {
	for _, seat := range g.seats {
		p := g.players[seat]
		for _, c := range p.AllCards() {
			if c.ID == cardID {
				return c, p, true
			}
		}
	}
	return nil, nil, false
}

// cardsInPlay returns every in-play card on both sides, in seat then board
// order. Deterministic iteration keeps effect folds reproducible.
func (g *GameState) cardsInPlay() []*Card {
	var all []*Card
	for _, seat := range g.seats {
		all = append(all, g.players[seat].InPlay...)
	}
	return all
}

// currentLedger returns the open ledger entry for the active turn, or nil.
func (g *GameState) currentLedger() *LedgerEntry {
	if len(g.Ledger) == 0 {
		return nil
	}
	entry := &g.Ledger[len(g.Ledger)-1]
	if entry.Finalized {
		return nil
	}
	return entry
}

// gainCC raises the player's CC, capped, and records the actual post-cap
// delta in the open ledger entry when the gainer is the active player.
func (g *GameState) gainCC(p *Player, amount int, source string) int {
	if amount <= 0 {
		return 0
	}
	before := p.CC
	p.CC += amount
	if p.CC > g.cfg.CCCap {
		p.CC = g.cfg.CCCap
	}
	gained := p.CC - before
	if gained == 0 {
		return 0
	}
	if entry := g.currentLedger(); entry != nil && entry.PlayerID == p.ID {
		entry.CCGained += gained
	}
	ev := rules.NewEvent(rules.EventCCGained, "", source, p.ID)
	ev.Amount = gained
	ev.Description = fmt.Sprintf("%s gains %d CC (now %d)", p.Name, gained, p.CC)
	g.bus.Publish(ev)
	return gained
}

// spendCC lowers the player's CC. Spends are validated by the caller; a
// negative balance here is a caller bug.
func (g *GameState) spendCC(p *Player, amount int, op string) error {
	if amount == 0 {
		return nil
	}
	if amount < 0 || p.CC < amount {
		return &InvariantError{Op: op, Detail: fmt.Sprintf("spend of %d CC with balance %d", amount, p.CC)}
	}
	p.CC -= amount
	ev := rules.NewEvent(rules.EventCCSpent, "", "", p.ID)
	ev.Amount = amount
	ev.Description = fmt.Sprintf("%s spends %d CC (now %d)", p.Name, amount, p.CC)
	g.bus.Publish(ev)
	return nil
}

// checkVictory declares a winner the instant a player has zero non-sleep
// cards. Called after every state-mutating action. Once set the match is
// terminal.
func (g *GameState) checkVictory() {
	if g.Over() {
		return
	}
	for _, seat := range g.seats {
		p := g.players[seat]
		if p.NonSleepCount() == 0 {
			g.WinnerID = g.Opponent(p.ID)
			winner := g.players[g.WinnerID]
			ev := rules.NewEvent(rules.EventGameOver, "", "", g.WinnerID)
			ev.Description = fmt.Sprintf("%s wins: %s has no cards left outside the sleep zone", winner.Name, p.Name)
			g.bus.Publish(ev)
			return
		}
	}
}
