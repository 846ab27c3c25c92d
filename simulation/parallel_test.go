package simulation

import (
	"reflect"
	"testing"

	"github.com/deckforge/manasim/engine"
)

func TestDeriveSeedDeterministic(t *testing.T) {
	if DeriveSeed(42, 7) != DeriveSeed(42, 7) {
		t.Fatal("derived seed not deterministic")
	}

	seen := make(map[uint64]bool)
	for i := 0; i < 1000; i++ {
		s := DeriveSeed(42, i)
		if seen[s] {
			t.Fatalf("duplicate derived seed at trial %d", i)
		}
		seen[s] = true
	}
}

func TestSerialAndParallelAgree(t *testing.T) {
	cfg := Config{
		Deck:           allLandsDeck(),
		Ready:          engine.MinLands(4),
		RequiredColors: engine.NewColorSet(engine.Black),
		TurnCap:        8,
	}

	serial := RunBatch(cfg, 300, 99)
	for _, workers := range []int{1, 4, 16} {
		parallel := RunBatchParallelN(cfg, 300, 99, workers)
		if !reflect.DeepEqual(serial, parallel) {
			t.Fatalf("workers=%d: parallel stats differ from serial\nserial:   %+v\nparallel: %+v",
				workers, serial, parallel)
		}
	}
}

func TestAnalyzeBatchModesAgree(t *testing.T) {
	cfg := Config{
		Deck:           allLandsDeck(),
		RequiredColors: engine.NewColorSet(engine.Black),
		ComboPieces:    []engine.CardID{2},
	}

	serial := AnalyzeBatch(cfg, 200, 7)
	parallel := AnalyzeBatchParallelN(cfg, 200, 7, 8)
	if !reflect.DeepEqual(serial, parallel) {
		t.Fatalf("analysis stats differ between modes\nserial:   %+v\nparallel: %+v", serial, parallel)
	}
}

func TestPanickingTrialDropped(t *testing.T) {
	calls := 0
	cfg := Config{
		Deck:    allLandsDeck(),
		TurnCap: 3,
		Ready: func(*engine.ZoneState, *engine.Pool) bool {
			calls++
			panic("bad predicate")
		},
	}

	stats := RunBatch(cfg, 10, 1)
	if stats.Trials != 0 {
		t.Fatalf("trials = %d, want 0 (all panicked)", stats.Trials)
	}
	if stats.Errors != 10 {
		t.Fatalf("errors = %d, want 10", stats.Errors)
	}
	if calls != 10 {
		t.Fatalf("predicate invoked %d times, want 10 (batch must continue)", calls)
	}
}
