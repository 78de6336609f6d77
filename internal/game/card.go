package game

import (
	"fmt"

	"github.com/RegisCA/ggltcg-sub001/internal/catalog"
	"github.com/RegisCA/ggltcg-sub001/internal/game/effects"
	"github.com/RegisCA/ggltcg-sub001/internal/game/rules"
	"github.com/google/uuid"
)

// Zone identifies the location of a card instance.
type Zone int

const (
	ZoneHand Zone = iota
	ZoneInPlay
	ZoneSleep
)

var zoneNames = map[Zone]string{
	ZoneHand:   rules.ZoneNameHand,
	ZoneInPlay: rules.ZoneNameInPlay,
	ZoneSleep:  rules.ZoneNameSleep,
}

func (z Zone) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return fmt.Sprintf("ZONE_%d", int(z))
}

// ParseZone converts a zone name back into a Zone.
func ParseZone(name string) (Zone, bool) {
	for z, n := range zoneNames {
		if n == name {
			return z, true
		}
	}
	return ZoneHand, false
}

// Transformation is the optional overlay created by the copy mechanic. While
// present, the card exposes the copied template's name, cost, stats and
// effects; the original fields are retained so the overlay is reversible.
// Only the zone-transition choke point creates or clears it.
type Transformation struct {
	OriginalName string
	OriginalCost int
	CopiedName   string
	CopiedCost   int
	CopiedStats  *catalog.Stats
	// BoundDefinition is the canonical effect-definition string of the
	// copied card; bound holds its parsed instances.
	BoundDefinition string
	bound           []effects.Effect
}

// BoundEffects returns the effect instances bound by the transformation.
func (t *Transformation) BoundEffects() []effects.Effect {
	return t.bound
}

// Card is a mutable runtime card instance. Template data is shared and never
// mutated; runtime overrides live on the instance.
type Card struct {
	ID       string
	Template *catalog.CardTemplate

	// OwnerID is the player who supplied the card. Never changes.
	OwnerID string
	// ControllerID is the player who currently commands the card. Changes
	// via steal-type effects.
	ControllerID string

	Zone           Zone
	CurrentStamina int

	// Modifications carries ad-hoc numeric deltas for display snapshots.
	// The rules never read it.
	Modifications map[string]int

	Transformation *Transformation
}

// NewCard instantiates a card from a template for the given owner.
func NewCard(tmpl *catalog.CardTemplate, ownerID string) *Card {
	return &Card{
		ID:           uuid.NewString(),
		Template:     tmpl,
		OwnerID:      ownerID,
		ControllerID: ownerID,
		Zone:         ZoneHand,
	}
}

// Name returns the card's current name, honoring any transformation.
func (c *Card) Name() string {
	if c.Transformation != nil {
		return c.Transformation.CopiedName
	}
	return c.Template.Name
}

// BaseCost returns the card's printed cost, honoring any transformation.
// catalog.CostVariable means the cost resolves on target selection.
func (c *Card) BaseCost() int {
	if c.Transformation != nil {
		return c.Transformation.CopiedCost
	}
	return c.Template.Cost
}

// Kind returns the card's kind. A transformed copy of a permanent behaves as
// a permanent.
func (c *Card) Kind() catalog.Kind {
	if c.Transformation != nil {
		if c.Transformation.CopiedStats != nil {
			return catalog.KindPermanent
		}
		return catalog.KindInstant
	}
	return c.Template.Kind
}

// HasStats reports whether the card currently bears statistics.
func (c *Card) HasStats() bool {
	if c.Transformation != nil {
		return c.Transformation.CopiedStats != nil
	}
	return c.Template.HasStats()
}

// BaseStat returns the card's printed statistic, honoring any
// transformation. Zero for cards without stats.
func (c *Card) BaseStat(stat effects.Stat) int {
	if c.Transformation != nil {
		if c.Transformation.CopiedStats == nil {
			return 0
		}
		return c.Transformation.CopiedStats.Stat(stat)
	}
	if c.Template.Stats == nil {
		return 0
	}
	return c.Template.Stats.Stat(stat)
}

// BaseStamina returns the printed stamina, honoring any transformation.
func (c *Card) BaseStamina() int {
	return c.BaseStat(effects.StatStamina)
}

// Effects returns the card's active effect instances: the
// transformation-bound effects when transformed, else the template's. This
// is the registry lookup that lets a copy expose the copied card's behavior
// without touching the shared catalog.
func (c *Card) Effects() []effects.Effect {
	if c.Transformation != nil {
		return c.Transformation.bound
	}
	return c.Template.Effects()
}

// View returns the card's identity for effect evaluation.
func (c *Card) View() effects.CardView {
	return effects.CardView{
		ID:           c.ID,
		Name:         c.Name(),
		ControllerID: c.ControllerID,
	}
}

// transform applies the copy overlay, binding the target's current name,
// cost, stats, and effects. The copied card re-enters its stat baseline:
// current stamina resets to the copied base stamina.
func (c *Card) transform(target *Card) {
	stats := target.Template.Stats
	if target.Transformation != nil {
		stats = target.Transformation.CopiedStats
	}
	var statsCopy *catalog.Stats
	if stats != nil {
		s := *stats
		statsCopy = &s
	}

	bound := target.Effects()
	c.Transformation = &Transformation{
		OriginalName:    c.Template.Name,
		OriginalCost:    c.Template.Cost,
		CopiedName:      target.Name(),
		CopiedCost:      target.BaseCost(),
		CopiedStats:     statsCopy,
		BoundDefinition: effects.Definition(bound),
		bound:           bound,
	}
	if statsCopy != nil {
		c.CurrentStamina = statsCopy.Stamina
	}
}

// clearTransformation reverts the copy overlay.
func (c *Card) clearTransformation() {
	c.Transformation = nil
}
