package simulation

import "github.com/deckforge/manasim/engine"

// Stats summarizes a batch of game results. The reduction is
// commutative and associative: the summary is a function of the
// multiset of results alone, never of arrival order.
type Stats struct {
	Trials int // results that completed (errors excluded)
	Wins   int
	Errors int

	WinRate    float64 // Wins / Trials, 0 when Trials is 0
	AvgWinTurn float64 // mean win turn over winning games, 0 with no wins

	// TurnHistogram counts wins grouped by win turn.
	TurnHistogram map[int]int

	// AvgColorsReadyTurn averages ColorsReadyTurn over games where the
	// required colors became available; ColorsReadyRate is the share of
	// such games.
	AvgColorsReadyTurn float64
	ColorsReadyRate    float64
}

// Aggregate reduces game results into summary statistics. Failed
// trials are counted in Errors and excluded from every rate; an
// all-failed batch reports zero trials rather than dividing by zero.
func Aggregate(results []GameResult) Stats {
	stats := Stats{TurnHistogram: make(map[int]int)}

	winTurnSum := 0
	colorsSum := 0
	colorsReady := 0
	for _, r := range results {
		if r.Error != "" {
			stats.Errors++
			continue
		}
		stats.Trials++
		if r.Won {
			stats.Wins++
			winTurnSum += r.WinTurn
			stats.TurnHistogram[r.WinTurn]++
		}
		if r.ColorsReadyTurn > 0 {
			colorsReady++
			colorsSum += r.ColorsReadyTurn
		}
	}

	if stats.Trials > 0 {
		stats.WinRate = float64(stats.Wins) / float64(stats.Trials)
		stats.ColorsReadyRate = float64(colorsReady) / float64(stats.Trials)
	}
	if stats.Wins > 0 {
		stats.AvgWinTurn = float64(winTurnSum) / float64(stats.Wins)
	}
	if colorsReady > 0 {
		stats.AvgColorsReadyTurn = float64(colorsSum) / float64(colorsReady)
	}
	return stats
}

// DiagStats summarizes a batch of cutoff-turn diagnoses.
type DiagStats struct {
	Total  int
	Errors int

	// Counts is the frequency of each diagnostic category.
	Counts [NumDiagCategories]int

	// ComboReadyPct is the share of analyses in the success category.
	ComboReadyPct float64

	AvgLands   float64
	ColorRates [engine.NumColors]float64
}

// AggregateDiagnoses reduces diagnoses into frequency statistics.
func AggregateDiagnoses(diags []Diagnosis) DiagStats {
	var stats DiagStats

	landSum := 0
	var colorCounts [engine.NumColors]int
	for _, d := range diags {
		if d.Error != "" {
			stats.Errors++
			continue
		}
		stats.Total++
		stats.Counts[d.Category]++
		landSum += d.Lands
		for c := engine.Color(0); c < engine.NumColors; c++ {
			if d.ColorAvailable[c] {
				colorCounts[c]++
			}
		}
	}

	if stats.Total > 0 {
		stats.ComboReadyPct = float64(stats.Counts[DiagComboAvailable]) / float64(stats.Total)
		stats.AvgLands = float64(landSum) / float64(stats.Total)
		for c := engine.Color(0); c < engine.NumColors; c++ {
			stats.ColorRates[c] = float64(colorCounts[c]) / float64(stats.Total)
		}
	}
	return stats
}
