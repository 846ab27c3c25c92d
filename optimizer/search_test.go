package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforge/manasim/catalog"
	"github.com/deckforge/manasim/engine"
	"github.com/deckforge/manasim/simulation"
)

func searchFixture(t *testing.T) (*catalog.Catalog, SearchConfig) {
	t.Helper()
	cat := catalog.New()
	cat.MustRegister(engine.Card{Name: "Swamp", Kind: engine.KindLand,
		Land: engine.LandInfo{Produces: engine.NewColorSet(engine.Black), Basic: true}})
	cat.MustRegister(engine.Card{Name: "Island", Kind: engine.KindLand,
		Land: engine.LandInfo{Produces: engine.NewColorSet(engine.Blue), Basic: true}})
	opt := cat.MustRegister(engine.Card{Name: "Opt", Kind: engine.KindInstant,
		Cost: engine.Cost(0, engine.Blue)})

	fixed := make([]engine.Card, 36)
	for i := range fixed {
		fixed[i] = opt
	}

	return cat, SearchConfig{
		Strategy:   "shuffle",
		Candidates: 5,
		TrialsPer:  50,
		Seed:       42,
		Workers:    2,
		Pool: []LandSpec{
			{Name: "Swamp", MaxCopies: 16},
			{Name: "Island", MaxCopies: 16},
		},
		FixedCards: fixed,
		Sim: simulation.Config{
			Ready:          engine.MinLands(2),
			RequiredColors: engine.NewColorSet(engine.Black),
			TurnCap:        8,
		},
	}
}

func TestSearchFindsWinner(t *testing.T) {
	cat, cfg := searchFixture(t)
	opt, err := New(cfg, cat)
	require.NoError(t, err)

	best := opt.Search()
	require.NotNil(t, best, "a two-land predicate should win within the cap")
	assert.Greater(t, best.Stats.AvgWinTurn, 0.0)
	assert.NoError(t, Validate(best.Config, cfg.Pool))
	assert.Len(t, opt.History, cfg.Candidates)

	// The best candidate must hold the lowest average win turn among
	// all winners in the history.
	for _, cand := range opt.History {
		if cand.Stats.AvgWinTurn > 0 {
			assert.LessOrEqual(t, best.Stats.AvgWinTurn, cand.Stats.AvgWinTurn)
		}
	}
}

func TestNewRejectsUnderfullPool(t *testing.T) {
	cat, cfg := searchFixture(t)
	cfg.Pool = []LandSpec{{Name: "Swamp", MaxCopies: 20}}

	_, err := New(cfg, cat)
	assert.Error(t, err, "a pool that cannot fill every slot must be rejected")
}

func TestSearchSkipsInvalidCandidates(t *testing.T) {
	cat, cfg := searchFixture(t)
	opt, err := New(cfg, cat)
	require.NoError(t, err)

	// A strategy over a shrunken pool generates configurations that
	// break the slot invariant; none may be evaluated or promoted.
	opt.strategy = &ShuffleStrategy{pool: []LandSpec{{Name: "Swamp", MaxCopies: 20}}}

	best := opt.Search()
	assert.Nil(t, best)
	assert.Empty(t, opt.History)
}

func TestSearchSkipsUnresolvableCandidates(t *testing.T) {
	cat, cfg := searchFixture(t)
	cfg.Pool = []LandSpec{{Name: "Tropical Island", MaxCopies: 24}}

	opt, err := New(cfg, cat)
	require.NoError(t, err)

	best := opt.Search()
	assert.Nil(t, best, "unresolvable candidates must be skipped, not promoted")
	assert.Empty(t, opt.History)
}

func TestRankingRule(t *testing.T) {
	cat, cfg := searchFixture(t)
	opt, err := New(cfg, cat)
	require.NoError(t, err)

	winner := &Candidate{Index: 0, Stats: simulation.Stats{Wins: 10, AvgWinTurn: 4.0}}
	assert.True(t, opt.improves(winner), "first winner must be promoted")
	opt.Best = winner

	winless := &Candidate{Index: 1, Stats: simulation.Stats{AvgWinTurn: 0}}
	assert.False(t, opt.improves(winless), "winless candidates never promote")

	tie := &Candidate{Index: 2, Stats: simulation.Stats{Wins: 20, AvgWinTurn: 4.0}}
	assert.False(t, opt.improves(tie), "ties are not promoted")

	faster := &Candidate{Index: 3, Stats: simulation.Stats{Wins: 5, AvgWinTurn: 3.5}}
	assert.True(t, opt.improves(faster))
}

func TestTopRanksWinnersFirst(t *testing.T) {
	cat, cfg := searchFixture(t)
	opt, err := New(cfg, cat)
	require.NoError(t, err)

	opt.History = []Candidate{
		{Index: 0, Stats: simulation.Stats{AvgWinTurn: 0, WinRate: 0}},
		{Index: 1, Stats: simulation.Stats{AvgWinTurn: 5.0, WinRate: 0.3}},
		{Index: 2, Stats: simulation.Stats{AvgWinTurn: 3.5, WinRate: 0.2}},
		{Index: 3, Stats: simulation.Stats{AvgWinTurn: 3.5, WinRate: 0.6}},
	}

	top := opt.Top(3)
	require.Len(t, top, 3)
	assert.Equal(t, 3, top[0].Index, "equal win turn ranks by win rate")
	assert.Equal(t, 2, top[1].Index)
	assert.Equal(t, 1, top[2].Index)
}
