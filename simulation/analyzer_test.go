package simulation

import (
	"testing"

	"github.com/deckforge/manasim/engine"
)

func TestAnalyzeTooFewLands(t *testing.T) {
	var deck []engine.Card
	for i := 0; i < 60; i++ {
		deck = append(deck, instant(2, "Opt"))
	}
	cfg := Config{Deck: deck, RequiredColors: engine.NewColorSet(engine.Black)}

	d := Analyze(cfg, 1)
	if d.Category != DiagTooFewLands {
		t.Fatalf("category = %v, want %v", d.Category, DiagTooFewLands)
	}
	if d.Lands != 0 {
		t.Fatalf("lands = %d, want 0", d.Lands)
	}
}

func TestAnalyzeMissingColor(t *testing.T) {
	cfg := Config{
		Deck:           allLandsDeck(),
		RequiredColors: engine.NewColorSet(engine.Black, engine.Blue),
	}

	d := Analyze(cfg, 1)
	if d.Category != DiagMissingColor {
		t.Fatalf("category = %v, want %v", d.Category, DiagMissingColor)
	}
	if d.MissingColor != engine.Blue {
		t.Fatalf("missing color = %v, want U", d.MissingColor)
	}
	if !d.ColorAvailable[engine.Black] || d.ColorAvailable[engine.Blue] {
		t.Fatal("color availability snapshot wrong")
	}
}

func TestAnalyzeMissingPiece(t *testing.T) {
	cfg := Config{
		Deck:           allLandsDeck(),
		RequiredColors: engine.NewColorSet(engine.Black),
		ComboPieces:    []engine.CardID{99},
	}

	d := Analyze(cfg, 1)
	if d.Category != DiagMissingPiece {
		t.Fatalf("category = %v, want %v", d.Category, DiagMissingPiece)
	}
	if d.MissingPiece != 99 {
		t.Fatalf("missing piece = %d, want 99", d.MissingPiece)
	}
}

func TestAnalyzeComboAvailable(t *testing.T) {
	cfg := Config{
		Deck:           allLandsDeck(),
		RequiredColors: engine.NewColorSet(engine.Black),
		// No pieces configured: lands and colors suffice.
		ComboPieces: nil,
	}

	d := Analyze(cfg, 1)
	if d.Category != DiagComboAvailable {
		t.Fatalf("category = %v, want %v", d.Category, DiagComboAvailable)
	}
}

func TestAnalyzeExactlyOneCategory(t *testing.T) {
	cfg := Config{
		Deck:           allLandsDeck(),
		RequiredColors: engine.NewColorSet(engine.Black, engine.Green),
		ComboPieces:    []engine.CardID{2},
	}

	for seed := uint64(0); seed < 200; seed++ {
		d := Analyze(cfg, seed)
		if d.Category >= NumDiagCategories {
			t.Fatalf("seed %d: category %d out of range", seed, d.Category)
		}
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	cfg := Config{
		Deck:           allLandsDeck(),
		RequiredColors: engine.NewColorSet(engine.Black),
		ComboPieces:    []engine.CardID{2},
	}

	for _, seed := range []uint64{3, 17, 0xfeed} {
		a, b := Analyze(cfg, seed), Analyze(cfg, seed)
		if a != b {
			t.Errorf("seed %d: diagnoses differ: %+v vs %+v", seed, a, b)
		}
	}
}
