package simulation

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestAggregateBasics(t *testing.T) {
	results := []GameResult{
		{Won: true, WinTurn: 4, ColorsReadyTurn: 3},
		{Won: true, WinTurn: 6, ColorsReadyTurn: 2},
		{Won: false},
		{Won: false, ColorsReadyTurn: 5},
	}

	stats := Aggregate(results)
	if stats.Trials != 4 || stats.Wins != 2 {
		t.Fatalf("trials=%d wins=%d, want 4/2", stats.Trials, stats.Wins)
	}
	if stats.WinRate != 0.5 {
		t.Errorf("win rate = %v, want 0.5", stats.WinRate)
	}
	if stats.AvgWinTurn != 5.0 {
		t.Errorf("avg win turn = %v, want 5.0", stats.AvgWinTurn)
	}
	if stats.TurnHistogram[4] != 1 || stats.TurnHistogram[6] != 1 {
		t.Errorf("histogram = %v", stats.TurnHistogram)
	}
	if stats.ColorsReadyRate != 0.75 {
		t.Errorf("colors ready rate = %v, want 0.75", stats.ColorsReadyRate)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	results := make([]GameResult, 500)
	for i := range results {
		if rng.Intn(2) == 0 {
			results[i] = GameResult{Won: true, WinTurn: 1 + rng.Intn(9)}
		}
	}

	want := Aggregate(results)
	shuffled := make([]GameResult, len(results))
	copy(shuffled, results)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if got := Aggregate(shuffled); !reflect.DeepEqual(want, got) {
		t.Fatal("aggregation depends on result order")
	}
}

func TestAggregateNoWins(t *testing.T) {
	stats := Aggregate([]GameResult{{}, {}, {}})
	if stats.AvgWinTurn != 0 {
		t.Errorf("avg win turn with no wins = %v, want 0", stats.AvgWinTurn)
	}
	if stats.WinRate != 0 {
		t.Errorf("win rate = %v, want 0", stats.WinRate)
	}
}

func TestAggregateAllErrors(t *testing.T) {
	stats := Aggregate([]GameResult{
		{Error: "trial panic: boom"},
		{Error: "trial panic: boom"},
	})
	if stats.Trials != 0 || stats.Errors != 2 {
		t.Fatalf("trials=%d errors=%d, want 0/2", stats.Trials, stats.Errors)
	}
	if stats.WinRate != 0 || stats.AvgWinTurn != 0 {
		t.Error("all-error batch must report zeroes, not divide")
	}
}

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(nil)
	if stats.Trials != 0 || stats.WinRate != 0 {
		t.Fatalf("empty batch: %+v", stats)
	}
}

func TestAggregateDiagnoses(t *testing.T) {
	diags := []Diagnosis{
		{Category: DiagComboAvailable, Lands: 4},
		{Category: DiagMissingColor, Lands: 4},
		{Category: DiagTooFewLands, Lands: 2},
		{Category: DiagComboAvailable, Lands: 6},
		{Error: "trial panic: boom"},
	}

	stats := AggregateDiagnoses(diags)
	if stats.Total != 4 || stats.Errors != 1 {
		t.Fatalf("total=%d errors=%d, want 4/1", stats.Total, stats.Errors)
	}
	if stats.ComboReadyPct != 0.5 {
		t.Errorf("combo ready pct = %v, want 0.5", stats.ComboReadyPct)
	}
	if stats.AvgLands != 4.0 {
		t.Errorf("avg lands = %v, want 4.0", stats.AvgLands)
	}
	if stats.Counts[DiagMissingPiece] != 0 || stats.Counts[DiagMissingColor] != 1 {
		t.Errorf("counts = %v", stats.Counts)
	}
}
