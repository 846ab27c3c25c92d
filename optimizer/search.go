package optimizer

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/deckforge/manasim/catalog"
	"github.com/deckforge/manasim/engine"
	"github.com/deckforge/manasim/simulation"
)

// SearchConfig holds configuration for an optimization run.
type SearchConfig struct {
	Strategy   string // candidate generation strategy name
	Candidates int    // candidates to evaluate
	TrialsPer  int    // games per candidate
	Seed       int64  // random seed (0 = use time)
	Workers    int    // worker goroutines per batch (0 = auto)

	// Pool is the set of land types the search may use; FixedCards is
	// the non-land portion merged into every candidate deck unchanged.
	Pool       []LandSpec
	FixedCards []engine.Card

	// Sim carries the deck-independent simulation settings (readiness
	// predicate, required colors, turn cap, surveil policy).
	Sim simulation.Config
}

// Candidate is one evaluated land configuration.
type Candidate struct {
	Index  int
	Config LandConfig
	Stats  simulation.Stats
}

// Optimizer drives the candidate search. Candidates are evaluated
// sequentially; each candidate's batch of games fans out in parallel.
type Optimizer struct {
	Config  SearchConfig
	Catalog *catalog.Catalog

	Best    *Candidate
	History []Candidate

	strategy Strategy
	rng      *rand.Rand
	log      *logrus.Entry
}

// New creates an optimizer. The strategy name must be one of the
// registered generators, and the pool must be able to fill every land
// slot.
func New(cfg SearchConfig, cat *catalog.Catalog) (*Optimizer, error) {
	strategy, err := NewStrategy(cfg.Strategy, cfg.Pool)
	if err != nil {
		return nil, err
	}

	capacity := 0
	for _, spec := range cfg.Pool {
		capacity += spec.MaxCopies
	}
	if capacity < SlotCount {
		return nil, fmt.Errorf("land pool capacity %d cannot fill %d slots", capacity, SlotCount)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Optimizer{
		Config:   cfg,
		Catalog:  cat,
		strategy: strategy,
		rng:      rand.New(rand.NewSource(seed)),
		log: logrus.WithFields(logrus.Fields{
			"component": "optimizer",
			"strategy":  strategy.Name(),
		}),
	}, nil
}

// Search evaluates Config.Candidates configurations and returns the
// best one found, or nil when no candidate ever won a game.
func (o *Optimizer) Search() *Candidate {
	for i := 0; i < o.Config.Candidates; i++ {
		landCfg := o.strategy.Generate(o.rng)
		if err := Validate(landCfg, o.Config.Pool); err != nil {
			o.log.WithError(err).WithField("candidate", i).Warn("skipping invalid configuration")
			continue
		}

		cand, err := o.evaluate(i, landCfg)
		if err != nil {
			// A configuration referencing an unknown card fails that
			// candidate only; the search continues.
			o.log.WithError(err).WithField("candidate", i).Warn("skipping candidate")
			continue
		}

		o.History = append(o.History, *cand)

		if o.improves(cand) {
			o.Best = cand
			o.log.WithFields(logrus.Fields{
				"candidate":    i,
				"win_rate":     cand.Stats.WinRate,
				"avg_win_turn": cand.Stats.AvgWinTurn,
			}).Info("new best configuration")
		}
	}
	return o.Best
}

// evaluate builds the candidate's full deck and runs its batch.
func (o *Optimizer) evaluate(index int, landCfg LandConfig) (*Candidate, error) {
	counts := make(map[string]int, len(landCfg))
	for name, n := range landCfg {
		counts[name] = n
	}
	lands, err := o.Catalog.BuildDeck(counts)
	if err != nil {
		return nil, err
	}

	deck := make([]engine.Card, 0, len(lands)+len(o.Config.FixedCards))
	deck = append(deck, lands...)
	deck = append(deck, o.Config.FixedCards...)

	simCfg := o.Config.Sim
	simCfg.Deck = deck

	batchSeed := o.rng.Uint64()
	stats := simulation.RunBatchParallelN(simCfg, o.Config.TrialsPer, batchSeed, o.Config.Workers)

	return &Candidate{Index: index, Config: landCfg.Clone(), Stats: stats}, nil
}

// improves applies the ranking rule: a candidate replaces the best
// only with at least one win (AvgWinTurn > 0) and a strictly lower
// average win turn. Ties are not promoted.
func (o *Optimizer) improves(cand *Candidate) bool {
	if cand.Stats.AvgWinTurn <= 0 {
		return false
	}
	if o.Best == nil {
		return true
	}
	return cand.Stats.AvgWinTurn < o.Best.Stats.AvgWinTurn
}

// Top returns the n best evaluated candidates: winners first by
// ascending average win turn, then by descending win rate, with
// winless candidates trailing.
func (o *Optimizer) Top(n int) []Candidate {
	ranked := make([]Candidate, len(o.History))
	copy(ranked, o.History)
	sort.SliceStable(ranked, func(a, b int) bool {
		ca, cb := ranked[a].Stats, ranked[b].Stats
		aWon, bWon := ca.AvgWinTurn > 0, cb.AvgWinTurn > 0
		if aWon != bWon {
			return aWon
		}
		if aWon && ca.AvgWinTurn != cb.AvgWinTurn {
			return ca.AvgWinTurn < cb.AvgWinTurn
		}
		return ca.WinRate > cb.WinRate
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
