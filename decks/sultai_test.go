package decks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforge/manasim/engine"
	"github.com/deckforge/manasim/optimizer"
	"github.com/deckforge/manasim/simulation"
)

func TestSultaiRecursionBuilds(t *testing.T) {
	d, err := SultaiRecursion()
	require.NoError(t, err)

	assert.Equal(t, "sultai-recursion", d.Name)
	assert.Len(t, d.Cards, 60)
	assert.Len(t, d.FixedCards, 36)

	landCount := 0
	for _, n := range d.Lands {
		landCount += n
	}
	assert.Equal(t, optimizer.SlotCount, landCount)

	for _, c := range d.FixedCards {
		assert.False(t, c.IsLand(), "fixed card %s is a land", c.Name)
	}

	require.NoError(t, optimizer.Validate(optimizer.LandConfig(d.Lands), d.Pool))

	assert.Equal(t,
		engine.NewColorSet(engine.Blue, engine.Black, engine.Green),
		d.Sim.RequiredColors)
	assert.Len(t, d.Sim.ComboPieces, 2)
}

func TestSultaiReadinessPredicate(t *testing.T) {
	d, err := SultaiRecursion()
	require.NoError(t, err)

	emergence, err := d.Catalog.Lookup("Squirming Emergence")
	require.NoError(t, err)
	overlord, err := d.Catalog.Lookup("Overlord of the Balemurk")
	require.NoError(t, err)

	z := engine.GetZones()
	defer engine.PutZones(z)

	pool := &engine.Pool{}
	pool.AddSource(engine.NewColorSet(engine.Black))
	pool.AddSource(engine.NewColorSet(engine.Green))
	pool.AddSource(engine.NewColorSet(engine.Blue))
	pool.AddSource(engine.NewColorSet(engine.Blue))

	// Finisher not yet in the graveyard.
	z.Hand = append(z.Hand, emergence)
	assert.False(t, d.Sim.Ready(z, pool))

	// Full combo: sorcery in hand, finisher milled, {2}{B}{G} payable.
	z.Graveyard = append(z.Graveyard, overlord)
	assert.True(t, d.Sim.Ready(z, pool))

	// Mana short by one source.
	short := &engine.Pool{}
	short.AddSource(engine.NewColorSet(engine.Black))
	short.AddSource(engine.NewColorSet(engine.Green))
	short.AddSource(engine.NewColorSet(engine.Blue))
	assert.False(t, d.Sim.Ready(z, short))
}

func TestSultaiSimulationProducesWins(t *testing.T) {
	d, err := SultaiRecursion()
	require.NoError(t, err)

	cfg := d.Sim
	cfg.Deck = d.Cards
	cfg.TurnCap = 10

	stats := simulation.RunBatchParallelN(cfg, 300, 7, 4)
	assert.Equal(t, 300, stats.Trials)
	assert.Zero(t, stats.Errors)
	assert.Greater(t, stats.WinRate, 0.0, "default list should assemble the combo sometimes")
	if stats.Wins > 0 {
		assert.GreaterOrEqual(t, stats.AvgWinTurn, 1.0)
		assert.LessOrEqual(t, stats.AvgWinTurn, 10.0)
	}
}
