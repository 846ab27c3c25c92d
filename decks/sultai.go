// Package decks holds the shipped deck archetypes: the card
// definitions, land pools, and readiness predicates the generic engine
// is configured with. The engine itself knows nothing about any of
// these cards.
package decks

import (
	"fmt"

	"github.com/deckforge/manasim/catalog"
	"github.com/deckforge/manasim/engine"
	"github.com/deckforge/manasim/optimizer"
	"github.com/deckforge/manasim/simulation"
)

// Deck bundles everything a simulation or optimization run needs for
// one archetype.
type Deck struct {
	Name    string
	Catalog *catalog.Catalog

	// Cards is the full default 60-card list; Lands/FixedCards are its
	// split used as the optimizer's starting point.
	Cards      []engine.Card
	Lands      map[string]int
	FixedCards []engine.Card

	// Pool is the land search space with per-land copy limits.
	Pool []optimizer.LandSpec

	// Sim is preconfigured with the archetype's readiness predicate,
	// required colors, and combo pieces; callers fill in Deck and
	// run-level knobs.
	Sim simulation.Config
}

// SultaiRecursion builds the reference graveyard-recursion list: mill
// toward the battlefield-defining finisher, then return it with the
// recursion sorcery. Combo readiness is "recursion spell castable with
// the finisher already in the graveyard".
func SultaiRecursion() (*Deck, error) {
	cat := catalog.New()

	// Land pool.
	sewers := cat.MustRegister(surveilLand("Undercity Sewers", engine.Blue, engine.Black))
	mortuary := cat.MustRegister(surveilLand("Underground Mortuary", engine.Black, engine.Green))
	maze := cat.MustRegister(surveilLand("Hedge Maze", engine.Green, engine.Blue))
	verge := cat.MustRegister(engine.Card{
		Name: "Gloomlake Verge",
		Kind: engine.KindLand,
		Land: engine.LandInfo{
			Produces: engine.NewColorSet(engine.Blue, engine.Black),
			Subtype:  "Island Swamp",
		},
	})
	swamp := cat.MustRegister(basicLand("Swamp", engine.Black))
	island := cat.MustRegister(basicLand("Island", engine.Blue))
	forest := cat.MustRegister(basicLand("Forest", engine.Green))

	// Combo core.
	emergence := cat.MustRegister(engine.Card{
		Name:  "Squirming Emergence",
		Kind:  engine.KindSorcery,
		Cost:  engine.Cost(2, engine.Black, engine.Green),
		Spell: engine.SpellInfo{Abilities: []string{"recursion"}},
	})
	overlord := cat.MustRegister(engine.Card{
		Name: "Overlord of the Balemurk",
		Kind: engine.KindCreature,
		Cost: engine.Cost(4, engine.Black),
		Creature: engine.CreatureInfo{
			Power: 5, Toughness: 5,
			Types:             []string{"Avatar", "Horror"},
			Abilities:         []string{"mill-recur"},
			ImpendingCost:     engine.Cost(1, engine.Black),
			ImpendingCounters: 4,
		},
	})

	// Supporting shell.
	cacheGrab := cat.MustRegister(engine.Card{
		Name:  "Cache Grab",
		Kind:  engine.KindInstant,
		Cost:  engine.Cost(1, engine.Green),
		Spell: engine.SpellInfo{Abilities: []string{"self-mill"}},
	})
	prankster := cat.MustRegister(engine.Card{
		Name: "Picklock Prankster",
		Kind: engine.KindCreature,
		Cost: engine.Cost(1, engine.Blue),
		Creature: engine.CreatureInfo{
			Power: 1, Toughness: 2,
			Types:     []string{"Faerie", "Rogue"},
			Abilities: []string{"self-mill"},
		},
	})
	founding := cat.MustRegister(engine.Card{
		Name:  "Founding the Third Path",
		Kind:  engine.KindSaga,
		Cost:  engine.Cost(1, engine.Blue),
		Spell: engine.SpellInfo{Abilities: []string{"self-mill"}, Chapters: 3},
	})
	roots := cat.MustRegister(engine.Card{
		Name:  "Insidious Roots",
		Kind:  engine.KindEnchantment,
		Cost:  engine.Cost(0, engine.Black, engine.Green),
		Spell: engine.SpellInfo{Abilities: []string{"token"}},
	})
	insight := cat.MustRegister(engine.Card{
		Name:  "Dredger's Insight",
		Kind:  engine.KindEnchantment,
		Cost:  engine.Cost(1, engine.Black),
		Spell: engine.SpellInfo{Abilities: []string{"self-mill"}},
	})
	oculus := cat.MustRegister(engine.Card{
		Name: "Abhorrent Oculus",
		Kind: engine.KindCreature,
		Cost: engine.Cost(1, engine.Blue, engine.Blue),
		Creature: engine.CreatureInfo{
			Power: 5, Toughness: 5,
			Types:     []string{"Eye"},
			Abilities: []string{"threat"},
		},
	})
	nowhere := cat.MustRegister(engine.Card{
		Name:  "Nowhere to Run",
		Kind:  engine.KindEnchantment,
		Cost:  engine.Cost(1, engine.Black),
		Spell: engine.SpellInfo{Abilities: []string{"removal"}},
	})

	lands := map[string]int{
		sewers.Name:   4,
		mortuary.Name: 4,
		maze.Name:     4,
		verge.Name:    4,
		swamp.Name:    4,
		island.Name:   2,
		forest.Name:   2,
	}
	nonlands := map[string]int{
		emergence.Name: 4,
		overlord.Name:  4,
		cacheGrab.Name: 4,
		prankster.Name: 4,
		founding.Name:  4,
		roots.Name:     4,
		insight.Name:   4,
		oculus.Name:    4,
		nowhere.Name:   4,
	}

	fixed, err := cat.BuildDeck(nonlands)
	if err != nil {
		return nil, fmt.Errorf("sultai recursion: %w", err)
	}
	landCards, err := cat.BuildDeck(lands)
	if err != nil {
		return nil, fmt.Errorf("sultai recursion: %w", err)
	}

	required := engine.NewColorSet(engine.Blue, engine.Black, engine.Green)
	ready := engine.All(
		engine.HandHas(emergence.ID, 1),
		engine.GraveyardHas(overlord.ID, 1),
		engine.CanPay(emergence.Cost),
	)

	return &Deck{
		Name:       "sultai-recursion",
		Catalog:    cat,
		Cards:      append(append([]engine.Card{}, landCards...), fixed...),
		Lands:      lands,
		FixedCards: fixed,
		Pool: []optimizer.LandSpec{
			{Name: sewers.Name, MaxCopies: 4},
			{Name: mortuary.Name, MaxCopies: 4},
			{Name: maze.Name, MaxCopies: 4},
			{Name: verge.Name, MaxCopies: 4},
			{Name: swamp.Name, MaxCopies: 8},
			{Name: island.Name, MaxCopies: 6},
			{Name: forest.Name, MaxCopies: 6},
		},
		Sim: simulation.Config{
			Ready:          ready,
			RequiredColors: required,
			ComboPieces:    []engine.CardID{emergence.ID, overlord.ID},
		},
	}, nil
}

func surveilLand(name string, a, b engine.Color) engine.Card {
	return engine.Card{
		Name: name,
		Kind: engine.KindLand,
		Land: engine.LandInfo{
			Produces:     engine.NewColorSet(a, b),
			Subtype:      "Surveil",
			EntersTapped: true,
			Surveil:      1,
		},
	}
}

func basicLand(name string, c engine.Color) engine.Card {
	return engine.Card{
		Name: name,
		Kind: engine.KindLand,
		Land: engine.LandInfo{
			Produces: engine.NewColorSet(c),
			Subtype:  name,
			Basic:    true,
		},
	}
}
