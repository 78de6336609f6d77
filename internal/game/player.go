package game

import "fmt"

// Player holds one side of a match: identity, the CC resource counter, and
// the three zone collections. Hand order matters; in-play and sleep order is
// rules-irrelevant but kept stable for display.
type Player struct {
	ID   string
	Name string

	// CC is the spendable resource, bounded 0..cap.
	CC int

	Hand   []*Card
	InPlay []*Card
	Sleep  []*Card

	// DirectAttacksThisTurn resets to zero at turn start.
	DirectAttacksThisTurn int
}

// NewPlayer creates an empty player.
func NewPlayer(id, name string) *Player {
	return &Player{ID: id, Name: name}
}

// zone returns the collection backing the given zone.
func (p *Player) zone(z Zone) *[]*Card {
	switch z {
	case ZoneHand:
		return &p.Hand
	case ZoneInPlay:
		return &p.InPlay
	default:
		return &p.Sleep
	}
}

// findInZone returns the card with the given id in the zone, or nil.
func (p *Player) findInZone(z Zone, cardID string) *Card {
	for _, c := range *p.zone(z) {
		if c.ID == cardID {
			return c
		}
	}
	return nil
}

// removeFromZone detaches the card from the zone collection. Returns false
// if the card is not there.
func (p *Player) removeFromZone(z Zone, card *Card) bool {
	coll := p.zone(z)
	for i, c := range *coll {
		if c.ID == card.ID {
			*coll = append((*coll)[:i], (*coll)[i+1:]...)
			return true
		}
	}
	return false
}

// addToZone appends the card to the zone collection.
func (p *Player) addToZone(z Zone, card *Card) {
	coll := p.zone(z)
	*coll = append(*coll, card)
}

// NonSleepCount returns the number of cards the player has outside the sleep
// zone. A player loses the moment this reaches zero.
func (p *Player) NonSleepCount() int {
	return len(p.Hand) + len(p.InPlay)
}

// AllCards returns every card across the player's zones.
func (p *Player) AllCards() []*Card {
	all := make([]*Card, 0, len(p.Hand)+len(p.InPlay)+len(p.Sleep))
	all = append(all, p.Hand...)
	all = append(all, p.InPlay...)
	all = append(all, p.Sleep...)
	return all
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (cc=%d hand=%d play=%d sleep=%d)", p.ID, p.CC, len(p.Hand), len(p.InPlay), len(p.Sleep))
}
