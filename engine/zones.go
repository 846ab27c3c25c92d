package engine

import (
	"math/rand"
	"sync"
)

// Permanent is a card on the battlefield with its mutable per-game state.
type Permanent struct {
	Card        Card
	Tapped      bool
	EnteredTurn int
	Counters    int
}

// ZoneState holds the four zones a single game mutates. It is owned
// exclusively by the run that acquired it; nothing is shared between
// concurrent trials. The multiset union of all four zones equals the
// originating deck at every point in the game.
type ZoneState struct {
	Library     []Card
	Hand        []Card
	Battlefield []Permanent
	Graveyard   []Card
	Turn        int
}

var zonePool = sync.Pool{
	New: func() interface{} {
		return &ZoneState{
			Library:     make([]Card, 0, 60),
			Hand:        make([]Card, 0, 16),
			Battlefield: make([]Permanent, 0, 24),
			Graveyard:   make([]Card, 0, 60),
		}
	},
}

// GetZones acquires a reset ZoneState from the pool.
func GetZones() *ZoneState {
	z := zonePool.Get().(*ZoneState)
	z.Reset()
	return z
}

// PutZones returns a ZoneState to the pool.
func PutZones(z *ZoneState) {
	zonePool.Put(z)
}

// Reset clears all zones for reuse.
func (z *ZoneState) Reset() {
	z.Library = z.Library[:0]
	z.Hand = z.Hand[:0]
	z.Battlefield = z.Battlefield[:0]
	z.Graveyard = z.Graveyard[:0]
	z.Turn = 0
}

// LoadDeck fills the library with the deck's cards in order.
func (z *ZoneState) LoadDeck(deck []Card) {
	z.Library = append(z.Library[:0], deck...)
}

// Shuffle permutes the library with an unbiased Fisher-Yates pass.
func (z *ZoneState) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(z.Library), func(i, j int) {
		z.Library[i], z.Library[j] = z.Library[j], z.Library[i]
	})
}

// Draw moves n cards from the top of the library to the hand. It
// returns the number actually drawn, which is less than n only when
// the library runs out.
func (z *ZoneState) Draw(n int) int {
	drawn := 0
	for ; drawn < n && len(z.Library) > 0; drawn++ {
		z.Hand = append(z.Hand, z.Library[0])
		z.Library = z.Library[1:]
	}
	return drawn
}

// PlayLand moves the card at hand index i to the battlefield, entering
// tapped if the land says so.
func (z *ZoneState) PlayLand(i int) *Permanent {
	c := z.Hand[i]
	z.Hand = append(z.Hand[:i], z.Hand[i+1:]...)
	z.Battlefield = append(z.Battlefield, Permanent{
		Card:        c,
		Tapped:      c.Kind == KindLand && c.Land.EntersTapped,
		EnteredTurn: z.Turn,
	})
	return &z.Battlefield[len(z.Battlefield)-1]
}

// Untap readies every permanent. Runs at the start of a turn, before
// the land drop, so a land entering tapped later this turn keeps its
// tapped status until the next untap.
func (z *ZoneState) Untap() {
	for i := range z.Battlefield {
		z.Battlefield[i].Tapped = false
	}
}

// Mill moves the top card of the library to the graveyard.
func (z *ZoneState) Mill() bool {
	if len(z.Library) == 0 {
		return false
	}
	z.Graveyard = append(z.Graveyard, z.Library[0])
	z.Library = z.Library[1:]
	return true
}

// LandsInPlay counts lands on the battlefield.
func (z *ZoneState) LandsInPlay() int {
	n := 0
	for _, p := range z.Battlefield {
		if p.Card.IsLand() {
			n++
		}
	}
	return n
}

// AvailableMana sums the untapped color-producing lands into a Pool.
// Lands that entered tapped this turn contribute nothing.
func (z *ZoneState) AvailableMana() *Pool {
	pool := &Pool{}
	for _, p := range z.Battlefield {
		if p.Card.IsLand() && !p.Tapped {
			pool.AddSource(p.Card.Land.Produces)
		}
	}
	return pool
}

// CountInZone helpers used by readiness predicates and tests.

func countByID(cards []Card, id CardID) int {
	n := 0
	for _, c := range cards {
		if c.ID == id {
			n++
		}
	}
	return n
}

// HandCount returns the copies of id in hand.
func (z *ZoneState) HandCount(id CardID) int { return countByID(z.Hand, id) }

// GraveyardCount returns the copies of id in the graveyard.
func (z *ZoneState) GraveyardCount(id CardID) int { return countByID(z.Graveyard, id) }

// BattlefieldCount returns the copies of id on the battlefield.
func (z *ZoneState) BattlefieldCount(id CardID) int {
	n := 0
	for _, p := range z.Battlefield {
		if p.Card.ID == id {
			n++
		}
	}
	return n
}

// Multiset returns card counts across all four zones, used to verify
// zone conservation.
func (z *ZoneState) Multiset() map[CardID]int {
	m := make(map[CardID]int)
	for _, c := range z.Library {
		m[c.ID]++
	}
	for _, c := range z.Hand {
		m[c.ID]++
	}
	for _, p := range z.Battlefield {
		m[p.Card.ID]++
	}
	for _, c := range z.Graveyard {
		m[c.ID]++
	}
	return m
}
