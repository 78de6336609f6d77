// Package catalog holds the immutable card template catalog. Templates are
// loaded once per process and never mutated at runtime; every effect
// definition is parsed at load time so unknown effects fail at startup
// rather than mid-match.
package catalog

import (
	"fmt"
	"strings"

	"github.com/RegisCA/ggltcg-sub001/internal/game/effects"
)

// Kind classifies a card template.
type Kind string

const (
	// KindPermanent cards carry stats and stay in play.
	KindPermanent Kind = "permanent"
	// KindInstant cards resolve their on-play effect and go straight to
	// the sleep zone.
	KindInstant Kind = "instant"
)

// CostVariable is the sentinel for a card whose cost is resolved by a
// card-specific rule (e.g. Copy's cost equals its chosen target's cost).
const CostVariable = -1

// Stats holds the base statistics of a stat-bearing card.
type Stats struct {
	Speed    int `yaml:"speed"`
	Strength int `yaml:"strength"`
	Stamina  int `yaml:"stamina"`
}

// Stat returns the named base statistic.
func (s Stats) Stat(stat effects.Stat) int {
	switch stat {
	case effects.StatSpeed:
		return s.Speed
	case effects.StatStrength:
		return s.Strength
	case effects.StatStamina:
		return s.Stamina
	}
	return 0
}

// CardTemplate is an immutable card definition.
type CardTemplate struct {
	Name             string
	Kind             Kind
	Cost             int // CostVariable when the cost is card-determined
	Stats            *Stats
	EffectDefinition string

	parsed []effects.Effect
}

// HasStats reports whether the template carries base statistics.
func (t *CardTemplate) HasStats() bool {
	return t.Kind == KindPermanent && t.Stats != nil
}

// Effects returns the parsed effect instances for this template. The slice
// is shared; callers must not modify it.
func (t *CardTemplate) Effects() []effects.Effect {
	return t.parsed
}

// Catalog is an ordered, immutable collection of card templates.
type Catalog struct {
	ordered []*CardTemplate
	byName  map[string]*CardTemplate
}

// New validates the templates and builds a catalog. Duplicate names, missing
// stats on permanents, and unparseable effect definitions are fatal.
func New(templates []*CardTemplate) (*Catalog, error) {
	cat := &Catalog{
		ordered: make([]*CardTemplate, 0, len(templates)),
		byName:  make(map[string]*CardTemplate, len(templates)),
	}

	for _, tmpl := range templates {
		name := strings.TrimSpace(tmpl.Name)
		if name == "" {
			return nil, fmt.Errorf("card template with empty name")
		}
		if _, exists := cat.byName[name]; exists {
			return nil, fmt.Errorf("duplicate card template %q", name)
		}
		if tmpl.Kind != KindPermanent && tmpl.Kind != KindInstant {
			return nil, fmt.Errorf("card %q: unknown kind %q", name, tmpl.Kind)
		}
		if tmpl.Kind == KindPermanent && tmpl.Stats == nil {
			return nil, fmt.Errorf("card %q: permanents require stats", name)
		}
		if tmpl.Kind == KindInstant && tmpl.Stats != nil {
			return nil, fmt.Errorf("card %q: instants carry no stats", name)
		}
		if tmpl.Cost < 0 && tmpl.Cost != CostVariable {
			return nil, fmt.Errorf("card %q: negative cost %d", name, tmpl.Cost)
		}

		parsed, err := effects.Parse(tmpl.EffectDefinition)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", name, err)
		}

		if tmpl.Cost == CostVariable && !hasVariableCostResolver(parsed) {
			return nil, fmt.Errorf("card %q: variable cost without a resolving effect", name)
		}

		tmpl.Name = name
		tmpl.parsed = parsed
		cat.ordered = append(cat.ordered, tmpl)
		cat.byName[name] = tmpl
	}

	return cat, nil
}

// hasVariableCostResolver reports whether the effect list contains an effect
// that resolves a variable cost after target selection.
func hasVariableCostResolver(list []effects.Effect) bool {
	for _, e := range list {
		if _, ok := e.(*effects.CopyCard); ok {
			return true
		}
	}
	return false
}

// Get returns the template with the given name.
func (c *Catalog) Get(name string) (*CardTemplate, bool) {
	tmpl, ok := c.byName[strings.TrimSpace(name)]
	return tmpl, ok
}

// Templates returns the templates in catalog order. The slice is shared;
// callers must not modify it.
func (c *Catalog) Templates() []*CardTemplate {
	return c.ordered
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.ordered)
}
