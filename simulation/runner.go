package simulation

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/deckforge/manasim/engine"
)

// Config describes one deck's simulation setup. The deck, readiness
// predicate, and combo-piece list are deck content supplied by the
// caller; everything else is generic mechanics with defaults.
type Config struct {
	Deck           []engine.Card
	Ready          engine.ReadyCheck
	RequiredColors engine.ColorSet

	// ComboPieces are the card IDs the deck's win condition assembles.
	// The analyzer reports the first one absent from hand and graveyard,
	// and surveil resolution ranks them above everything else.
	ComboPieces []engine.CardID

	TurnCap          int // default 10
	OpeningHandSize  int // default 7
	AnalyzeTurn      int // analyzer cutoff, default 4
	ExpectedLands    int // analyzer land threshold, default AnalyzeTurn
	SurveilLandFloor int // lands in play before surveil bins lands, default 4

	// DrawFirst enables the turn-1 draw ("on the draw"). The default
	// models the player on the play, which skips it.
	DrawFirst bool

	// LandDrop overrides the default land-drop policy when set.
	LandDrop LandDropPolicy

	// Trace receives a per-turn log when set. The batch layer wires it
	// to the first trial only.
	Trace io.Writer
}

// LandDropPolicy picks the hand index of the land to play this turn,
// or -1 to skip the drop. It must be deterministic: identical state
// must always yield the same choice.
type LandDropPolicy func(cfg *Config, z *engine.ZoneState) int

// GameResult is the outcome of one trial.
type GameResult struct {
	Won     bool
	WinTurn int // 1..TurnCap when Won

	// ColorsReadyTurn is the first turn RequiredColors were all
	// simultaneously available; 0 when that never happened.
	ColorsReadyTurn int

	Error string
}

func (cfg Config) withDefaults() Config {
	if cfg.TurnCap <= 0 {
		cfg.TurnCap = 10
	}
	if cfg.OpeningHandSize <= 0 {
		cfg.OpeningHandSize = 7
	}
	if cfg.AnalyzeTurn <= 0 {
		cfg.AnalyzeTurn = 4
	}
	if cfg.ExpectedLands <= 0 {
		cfg.ExpectedLands = cfg.AnalyzeTurn
	}
	if cfg.SurveilLandFloor <= 0 {
		cfg.SurveilLandFloor = 4
	}
	if cfg.Ready == nil {
		cfg.Ready = engine.Always
	}
	if cfg.LandDrop == nil {
		cfg.LandDrop = defaultLandDrop
	}
	return cfg
}

// RunSingleGame plays one game from shuffle to a win or the turn cap.
// A game produced with the same config and seed is byte-identical on
// every run. Exactly one terminal outcome is returned per invocation.
func RunSingleGame(cfg Config, seed uint64) GameResult {
	cfg = cfg.withDefaults()

	z := engine.GetZones()
	defer engine.PutZones(z)

	rng := rand.New(rand.NewSource(int64(seed)))
	z.LoadDeck(cfg.Deck)
	z.Shuffle(rng)
	z.Draw(cfg.OpeningHandSize)

	var result GameResult
	for turn := 1; turn <= cfg.TurnCap; turn++ {
		pool := stepTurn(&cfg, z, turn)

		if result.ColorsReadyTurn == 0 && pool.Colors().Contains(cfg.RequiredColors) {
			result.ColorsReadyTurn = turn
		}

		if cfg.Trace != nil {
			fmt.Fprintf(cfg.Trace, "turn %d: lands=%d mana=%d colors=%s hand=%d grave=%d\n",
				turn, z.LandsInPlay(), pool.Total(), pool.Colors(), len(z.Hand), len(z.Graveyard))
		}

		if cfg.Ready(z, pool) {
			result.Won = true
			result.WinTurn = turn
			return result
		}
	}
	return result
}

// stepTurn advances one turn: untap, draw, land drop, surveil
// resolution, and returns the mana available afterwards.
func stepTurn(cfg *Config, z *engine.ZoneState, turn int) *engine.Pool {
	z.Turn = turn
	z.Untap()

	if turn > 1 || cfg.DrawFirst {
		z.Draw(1)
	}

	if idx := cfg.LandDrop(cfg, z); idx >= 0 {
		p := z.PlayLand(idx)
		if n := p.Card.Land.Surveil; n > 0 {
			resolveSurveil(cfg, z, int(n))
		}
	}

	return z.AvailableMana()
}

// defaultLandDrop implements the literal tie-break order: the land
// adding the most currently missing required colors, then untapped
// over tapped, then ascending name.
func defaultLandDrop(cfg *Config, z *engine.ZoneState) int {
	var present engine.ColorSet
	for _, p := range z.Battlefield {
		if p.Card.IsLand() {
			present = present.Union(p.Card.Land.Produces)
		}
	}
	missing := present.Missing(cfg.RequiredColors)

	best := -1
	bestGain := -1
	for i, c := range z.Hand {
		if !c.IsLand() {
			continue
		}
		gain := (c.Land.Produces & missing).Count()
		if best == -1 || betterLand(gain, c, bestGain, z.Hand[best]) {
			best = i
			bestGain = gain
		}
	}
	return best
}

func betterLand(gain int, c engine.Card, bestGain int, bestCard engine.Card) bool {
	if gain != bestGain {
		return gain > bestGain
	}
	if c.Land.EntersTapped != bestCard.Land.EntersTapped {
		return !c.Land.EntersTapped
	}
	return c.Name < bestCard.Name
}

// resolveSurveil inspects the top n library cards, keeps the single
// highest-relevance card on top, and puts the rest into the graveyard.
// Relevance: combo pieces, then lands while the board is short of
// SurveilLandFloor, then anything else; lands rank last once the floor
// is met. Ties break on ascending name.
func resolveSurveil(cfg *Config, z *engine.ZoneState, n int) {
	if n > len(z.Library) {
		n = len(z.Library)
	}
	if n == 0 {
		return
	}

	keep := 0
	for i := 1; i < n; i++ {
		ri, rk := surveilRelevance(cfg, z, z.Library[i]), surveilRelevance(cfg, z, z.Library[keep])
		if ri > rk || (ri == rk && z.Library[i].Name < z.Library[keep].Name) {
			keep = i
		}
	}

	binned := make([]engine.Card, 0, n-1)
	for i := 0; i < n; i++ {
		if i != keep {
			binned = append(binned, z.Library[i])
		}
	}
	if surveilRelevance(cfg, z, z.Library[keep]) == 0 {
		binned = append(binned, z.Library[keep])
		z.Library = z.Library[n:]
	} else {
		z.Library[n-1] = z.Library[keep]
		z.Library = z.Library[n-1:]
	}
	z.Graveyard = append(z.Graveyard, binned...)
}

func surveilRelevance(cfg *Config, z *engine.ZoneState, c engine.Card) int {
	for _, id := range cfg.ComboPieces {
		if c.ID == id {
			return 3
		}
	}
	if c.IsLand() {
		if z.LandsInPlay() >= cfg.SurveilLandFloor {
			return 0
		}
		return 2
	}
	return 1
}
