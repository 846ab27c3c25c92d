package simulation

import (
	"math/rand"

	"github.com/deckforge/manasim/engine"
)

// DiagCategory is a turn-cutoff diagnostic. Categories form a fixed
// priority list checked top-down; every analyzed game lands in exactly
// one of them.
type DiagCategory uint8

const (
	// DiagTooFewLands: fewer lands in play than expected by the cutoff.
	DiagTooFewLands DiagCategory = iota
	// DiagMissingColor: a required color was not available at the cutoff.
	DiagMissingColor
	// DiagMissingPiece: a combo piece is in neither hand nor graveyard.
	DiagMissingPiece
	// DiagComboAvailable: everything the combo needs is in place. This
	// is the success category, classified by the same mechanism.
	DiagComboAvailable

	NumDiagCategories
)

var diagNames = [NumDiagCategories]string{
	"too few lands",
	"missing required color",
	"missing combo piece",
	"combo available",
}

func (d DiagCategory) String() string {
	if d < NumDiagCategories {
		return diagNames[d]
	}
	return "unknown"
}

// Diagnosis is the structured outcome of one cutoff-turn analysis.
type Diagnosis struct {
	Category DiagCategory

	// Observed state at the cutoff, recorded for averaging.
	Lands          int
	ColorAvailable [engine.NumColors]bool

	// MissingColor is set when Category is DiagMissingColor.
	MissingColor engine.Color
	// MissingPiece is set when Category is DiagMissingPiece.
	MissingPiece engine.CardID

	Error string
}

// Analyze runs the game mechanics up to cfg.AnalyzeTurn, then
// classifies why combo readiness was or was not reached. Unlike
// RunSingleGame it never terminates early on readiness; the point is
// the state at the cutoff.
func Analyze(cfg Config, seed uint64) Diagnosis {
	cfg = cfg.withDefaults()

	z := engine.GetZones()
	defer engine.PutZones(z)

	rng := rand.New(rand.NewSource(int64(seed)))
	z.LoadDeck(cfg.Deck)
	z.Shuffle(rng)
	z.Draw(cfg.OpeningHandSize)

	var pool *engine.Pool
	for turn := 1; turn <= cfg.AnalyzeTurn; turn++ {
		pool = stepTurn(&cfg, z, turn)
	}

	return classify(&cfg, z, pool)
}

// classify applies the priority list, first match wins.
func classify(cfg *Config, z *engine.ZoneState, pool *engine.Pool) Diagnosis {
	d := Diagnosis{Lands: z.LandsInPlay()}
	available := pool.Colors()
	for c := engine.Color(0); c < engine.NumColors; c++ {
		d.ColorAvailable[c] = available.Has(c)
	}

	if d.Lands < cfg.ExpectedLands {
		d.Category = DiagTooFewLands
		return d
	}

	if missing := available.Missing(cfg.RequiredColors); missing != 0 {
		d.Category = DiagMissingColor
		for c := engine.Color(0); c < engine.NumColors; c++ {
			if missing.Has(c) {
				d.MissingColor = c
				break
			}
		}
		return d
	}

	for _, id := range cfg.ComboPieces {
		if z.HandCount(id) == 0 && z.GraveyardCount(id) == 0 && z.BattlefieldCount(id) == 0 {
			d.Category = DiagMissingPiece
			d.MissingPiece = id
			return d
		}
	}

	d.Category = DiagComboAvailable
	return d
}
