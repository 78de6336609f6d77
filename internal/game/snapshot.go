package game

import (
	"fmt"
	"time"

	"github.com/RegisCA/ggltcg-sub001/internal/catalog"
	"github.com/RegisCA/ggltcg-sub001/internal/game/effects"
	"github.com/RegisCA/ggltcg-sub001/internal/game/rules"
	"go.uber.org/zap"
)

// Snapshot is the serializable mirror of a match. Capture and Restore
// round-trip through it; a restored match answers every stat and cost query
// identically to the original.
type Snapshot struct {
	MatchID        string           `json:"matchId"`
	Seats          [2]string        `json:"seats"`
	FirstPlayerID  string           `json:"firstPlayerId"`
	ActivePlayerID string           `json:"activePlayerId"`
	TurnNumber     int              `json:"turnNumber"`
	Phase          string           `json:"phase"`
	WinnerID       string           `json:"winnerId,omitempty"`
	Seed           int64            `json:"seed"`
	Players        []PlayerSnapshot `json:"players"`
	Ledger         []LedgerEntry    `json:"ledger"`
	Log            []LogEntry       `json:"log"`
	CapturedAt     time.Time        `json:"capturedAt"`
}

// PlayerSnapshot mirrors one player's identity, CC, and zones.
type PlayerSnapshot struct {
	ID                    string         `json:"id"`
	Name                  string         `json:"name"`
	CC                    int            `json:"cc"`
	DirectAttacksThisTurn int            `json:"directAttacksThisTurn"`
	Hand                  []CardSnapshot `json:"hand"`
	InPlay                []CardSnapshot `json:"inPlay"`
	Sleep                 []CardSnapshot `json:"sleep"`
}

// CardSnapshot mirrors one card instance. Template data is referenced by
// name and rehydrated from the catalog on restore.
type CardSnapshot struct {
	ID             string                  `json:"id"`
	TemplateName   string                  `json:"templateName"`
	OwnerID        string                  `json:"ownerId"`
	ControllerID   string                  `json:"controllerId"`
	Zone           string                  `json:"zone"`
	CurrentStamina int                     `json:"currentStamina"`
	Modifications  map[string]int          `json:"modifications,omitempty"`
	Transformation *TransformationSnapshot `json:"transformation,omitempty"`
}

// TransformationSnapshot mirrors the copy overlay. The bound effects travel
// as their canonical definition string and are re-parsed on restore.
type TransformationSnapshot struct {
	OriginalName    string         `json:"originalName"`
	OriginalCost    int            `json:"originalCost"`
	CopiedName      string         `json:"copiedName"`
	CopiedCost      int            `json:"copiedCost"`
	CopiedStats     *catalog.Stats `json:"copiedStats,omitempty"`
	BoundDefinition string         `json:"boundDefinition"`
}

// Snapshot captures the full serializable state of a match.
func (e *Engine) Snapshot(matchID string) (*Snapshot, error) {
	g, ok := e.Match(matchID)
	if !ok {
		return nil, &InvariantError{Op: "Snapshot", Detail: fmt.Sprintf("unknown match %s", matchID)}
	}

	snap := &Snapshot{
		MatchID:        g.MatchID,
		Seats:          g.seats,
		FirstPlayerID:  g.FirstPlayerID(),
		ActivePlayerID: g.ActivePlayerID(),
		TurnNumber:     g.TurnNumber(),
		Phase:          g.Phase().String(),
		WinnerID:       g.WinnerID,
		Seed:           g.seed,
		Ledger:         append([]LedgerEntry(nil), g.Ledger...),
		Log:            append([]LogEntry(nil), g.Log...),
		CapturedAt:     time.Now().UTC(),
	}
	for _, seat := range g.seats {
		snap.Players = append(snap.Players, snapshotPlayer(g.players[seat]))
	}
	return snap, nil
}

func snapshotPlayer(p *Player) PlayerSnapshot {
	return PlayerSnapshot{
		ID:                    p.ID,
		Name:                  p.Name,
		CC:                    p.CC,
		DirectAttacksThisTurn: p.DirectAttacksThisTurn,
		Hand:                  snapshotCards(p.Hand),
		InPlay:                snapshotCards(p.InPlay),
		Sleep:                 snapshotCards(p.Sleep),
	}
}

func snapshotCards(cards []*Card) []CardSnapshot {
	out := make([]CardSnapshot, 0, len(cards))
	for _, c := range cards {
		out = append(out, snapshotCard(c))
	}
	return out
}

func snapshotCard(c *Card) CardSnapshot {
	snap := CardSnapshot{
		ID:             c.ID,
		TemplateName:   c.Template.Name,
		OwnerID:        c.OwnerID,
		ControllerID:   c.ControllerID,
		Zone:           c.Zone.String(),
		CurrentStamina: c.CurrentStamina,
	}
	if len(c.Modifications) > 0 {
		snap.Modifications = make(map[string]int, len(c.Modifications))
		for k, v := range c.Modifications {
			snap.Modifications[k] = v
		}
	}
	if t := c.Transformation; t != nil {
		var stats *catalog.Stats
		if t.CopiedStats != nil {
			s := *t.CopiedStats
			stats = &s
		}
		snap.Transformation = &TransformationSnapshot{
			OriginalName:    t.OriginalName,
			OriginalCost:    t.OriginalCost,
			CopiedName:      t.CopiedName,
			CopiedCost:      t.CopiedCost,
			CopiedStats:     stats,
			BoundDefinition: t.BoundDefinition,
		}
	}
	return snap
}

// Restore rebuilds a match from a snapshot and registers it. Template data
// is rehydrated from the engine's catalog; transformation overlays re-parse
// their bound effect definitions.
func (e *Engine) Restore(snap *Snapshot) (*GameState, error) {
	if snap == nil {
		return nil, &InvariantError{Op: "Restore", Detail: "nil snapshot"}
	}
	if len(snap.Players) != 2 {
		return nil, fmt.Errorf("restore %s: want 2 players, got %d", snap.MatchID, len(snap.Players))
	}

	phase, ok := rules.ParsePhase(snap.Phase)
	if !ok {
		return nil, fmt.Errorf("restore %s: unknown phase %q", snap.MatchID, snap.Phase)
	}

	players := make(map[string]*Player, 2)
	for _, ps := range snap.Players {
		p, err := e.restorePlayer(ps)
		if err != nil {
			return nil, fmt.Errorf("restore %s: %w", snap.MatchID, err)
		}
		players[p.ID] = p
	}
	for _, seat := range snap.Seats {
		if _, ok := players[seat]; !ok {
			return nil, fmt.Errorf("restore %s: seat %q has no player", snap.MatchID, seat)
		}
	}

	g := &GameState{
		MatchID:  snap.MatchID,
		players:  players,
		seats:    snap.Seats,
		turns:    rules.RestoreTurnManager(snap.FirstPlayerID, snap.ActivePlayerID, snap.TurnNumber, phase),
		WinnerID: snap.WinnerID,
		Ledger:   append([]LedgerEntry(nil), snap.Ledger...),
		Log:      append([]LogEntry(nil), snap.Log...),
		bus:      rules.NewEventBus(),
		seed:     snap.Seed,
		cfg:      e.cfg,
	}
	g.bus.Subscribe(g.appendLog)

	e.mu.Lock()
	e.matches[g.MatchID] = g
	e.mu.Unlock()

	e.logger.Info("match restored",
		zap.String("match_id", g.MatchID),
		zap.Int("turn", g.TurnNumber()),
	)
	return g, nil
}

func (e *Engine) restorePlayer(ps PlayerSnapshot) (*Player, error) {
	p := NewPlayer(ps.ID, ps.Name)
	p.CC = ps.CC
	p.DirectAttacksThisTurn = ps.DirectAttacksThisTurn

	var err error
	if p.Hand, err = e.restoreCards(ps.Hand); err != nil {
		return nil, err
	}
	if p.InPlay, err = e.restoreCards(ps.InPlay); err != nil {
		return nil, err
	}
	if p.Sleep, err = e.restoreCards(ps.Sleep); err != nil {
		return nil, err
	}
	return p, nil
}

func (e *Engine) restoreCards(snaps []CardSnapshot) ([]*Card, error) {
	cards := make([]*Card, 0, len(snaps))
	for _, cs := range snaps {
		c, err := e.restoreCard(cs)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func (e *Engine) restoreCard(cs CardSnapshot) (*Card, error) {
	tmpl, ok := e.catalog.Get(cs.TemplateName)
	if !ok {
		return nil, fmt.Errorf("card %s: unknown template %q", cs.ID, cs.TemplateName)
	}
	zone, ok := ParseZone(cs.Zone)
	if !ok {
		return nil, fmt.Errorf("card %s: unknown zone %q", cs.ID, cs.Zone)
	}

	c := &Card{
		ID:             cs.ID,
		Template:       tmpl,
		OwnerID:        cs.OwnerID,
		ControllerID:   cs.ControllerID,
		Zone:           zone,
		CurrentStamina: cs.CurrentStamina,
	}
	if len(cs.Modifications) > 0 {
		c.Modifications = make(map[string]int, len(cs.Modifications))
		for k, v := range cs.Modifications {
			c.Modifications[k] = v
		}
	}
	if ts := cs.Transformation; ts != nil {
		bound, err := effects.Parse(ts.BoundDefinition)
		if err != nil {
			return nil, fmt.Errorf("card %s: transformation: %w", cs.ID, err)
		}
		var stats *catalog.Stats
		if ts.CopiedStats != nil {
			s := *ts.CopiedStats
			stats = &s
		}
		c.Transformation = &Transformation{
			OriginalName:    ts.OriginalName,
			OriginalCost:    ts.OriginalCost,
			CopiedName:      ts.CopiedName,
			CopiedCost:      ts.CopiedCost,
			CopiedStats:     stats,
			BoundDefinition: ts.BoundDefinition,
			bound:           bound,
		}
	}
	return c, nil
}
