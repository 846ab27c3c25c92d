// Package catalog resolves card names to immutable engine.Card records
// and builds decks from name/count configurations. Each registered card
// is assigned a stable small integer ID so the simulator compares IDs
// instead of strings.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/deckforge/manasim/engine"
)

// ErrNotFound marks lookups of names absent from the catalog.
var ErrNotFound = errors.New("card not found")

// Catalog maps card names to their records.
type Catalog struct {
	byName map[string]engine.CardID
	cards  []engine.Card
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{byName: make(map[string]engine.CardID)}
}

// Register adds a card and assigns its ID. Registering a name twice
// returns an error rather than silently replacing the earlier entry.
func (c *Catalog) Register(card engine.Card) (engine.Card, error) {
	if card.Name == "" {
		return engine.Card{}, fmt.Errorf("register: empty card name")
	}
	if _, ok := c.byName[card.Name]; ok {
		return engine.Card{}, fmt.Errorf("register %q: duplicate entry", card.Name)
	}
	card.ID = engine.CardID(len(c.cards))
	c.byName[card.Name] = card.ID
	c.cards = append(c.cards, card)
	return card, nil
}

// MustRegister registers a card and panics on error. Intended for
// package-level deck definitions, mirroring regexp.MustCompile.
func (c *Catalog) MustRegister(card engine.Card) engine.Card {
	out, err := c.Register(card)
	if err != nil {
		panic(err)
	}
	return out
}

// Lookup resolves a name. Unknown names fail with ErrNotFound wrapping
// the offending name; the catalog never substitutes.
func (c *Catalog) Lookup(name string) (engine.Card, error) {
	id, ok := c.byName[name]
	if !ok {
		return engine.Card{}, fmt.Errorf("lookup %q: %w", name, ErrNotFound)
	}
	return c.cards[id], nil
}

// Size returns the number of registered cards.
func (c *Catalog) Size() int { return len(c.cards) }

// BuildDeck expands a name -> copy-count configuration into an ordered
// deck. Names are visited in sorted order so the same configuration
// always yields the same card sequence before shuffling. Any
// unresolvable name fails the whole build.
func (c *Catalog) BuildDeck(counts map[string]int) ([]engine.Card, error) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var deck []engine.Card
	for _, name := range names {
		n := counts[name]
		if n < 0 {
			return nil, fmt.Errorf("build deck: negative count %d for %q", n, name)
		}
		card, err := c.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("build deck: %w", err)
		}
		for i := 0; i < n; i++ {
			deck = append(deck, card)
		}
	}
	return deck, nil
}
