// Package main provides the manasim CLI: Monte Carlo combo-readiness
// simulation and land-base optimization for a configured deck
// archetype.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/deckforge/manasim/decks"
	"github.com/deckforge/manasim/engine"
	"github.com/deckforge/manasim/optimizer"
	"github.com/deckforge/manasim/simulation"
)

// Version information (set by build flags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		runSimulate(os.Args[2:])
	case "analyze":
		runAnalyze(os.Args[2:])
	case "optimize":
		runOptimize(os.Args[2:])
	case "version":
		fmt.Printf("manasim %s (built %s)\n", Version, BuildTime)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: manasim <command> [flags]

commands:
  simulate   run full games to the turn cap and report win statistics
  analyze    run games to a fixed turn and report readiness diagnoses
  optimize   search land configurations for the fastest average win
  version    print version information
`)
}

func setupLogging(verbose bool) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

func loadDeck() *decks.Deck {
	deck, err := decks.SultaiRecursion()
	if err != nil {
		logrus.WithError(err).Fatal("loading deck archetype")
	}
	return deck
}

func resolveSeed(seed int64) uint64 {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return uint64(seed)
}

func runSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	trials := fs.Int("trials", 10000, "number of games to simulate")
	seed := fs.Int64("seed", 0, "random seed (0 = use current time)")
	turnCap := fs.Int("turn-cap", 10, "maximum turn before a game counts as a loss")
	workers := fs.Int("workers", 0, "worker goroutines (0 = auto-detect)")
	sequential := fs.Bool("sequential", false, "run trials strictly sequentially")
	trace := fs.Bool("trace", false, "print a per-turn trace of the first trial (implies -sequential)")
	statsOut := fs.String("stats-out", "", "write aggregated stats to this file")
	verbose := fs.Bool("verbose", false, "enable verbose output")
	fs.Parse(args)
	setupLogging(*verbose)

	deck := loadDeck()
	cfg := deck.Sim
	cfg.Deck = deck.Cards
	cfg.TurnCap = *turnCap
	if *trace {
		cfg.Trace = os.Stdout
		*sequential = true
	}

	baseSeed := resolveSeed(*seed)
	logrus.WithFields(logrus.Fields{"deck": deck.Name, "trials": *trials, "seed": baseSeed}).
		Info("starting simulation")

	var stats simulation.Stats
	if *sequential {
		stats = simulation.RunBatch(cfg, *trials, baseSeed)
	} else {
		stats = simulation.RunBatchParallelN(cfg, *trials, baseSeed, *workers)
	}

	printStats(stats)

	if *statsOut != "" {
		if err := os.WriteFile(*statsOut, simulation.EncodeStats(stats), 0o644); err != nil {
			logrus.WithError(err).Fatal("writing stats file")
		}
		logrus.WithField("path", *statsOut).Info("stats written")
	}
}

func printStats(stats simulation.Stats) {
	fmt.Printf("trials:        %d (%d errors dropped)\n", stats.Trials, stats.Errors)
	fmt.Printf("win rate:      %.4f\n", stats.WinRate)
	fmt.Printf("avg win turn:  %.2f\n", stats.AvgWinTurn)
	fmt.Printf("colors ready:  %.4f of games, avg turn %.2f\n",
		stats.ColorsReadyRate, stats.AvgColorsReadyTurn)
	maxTurn := 0
	for turn := range stats.TurnHistogram {
		if turn > maxTurn {
			maxTurn = turn
		}
	}
	for turn := 1; turn <= maxTurn; turn++ {
		if n, ok := stats.TurnHistogram[turn]; ok {
			fmt.Printf("  turn %2d wins: %d\n", turn, n)
		}
	}
}

func runAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	trials := fs.Int("trials", 10000, "number of games to analyze")
	seed := fs.Int64("seed", 0, "random seed (0 = use current time)")
	cutoff := fs.Int("turn", 4, "turn at which to stop and classify")
	workers := fs.Int("workers", 0, "worker goroutines (0 = auto-detect)")
	verbose := fs.Bool("verbose", false, "enable verbose output")
	fs.Parse(args)
	setupLogging(*verbose)

	deck := loadDeck()
	cfg := deck.Sim
	cfg.Deck = deck.Cards
	cfg.AnalyzeTurn = *cutoff

	baseSeed := resolveSeed(*seed)
	logrus.WithFields(logrus.Fields{"deck": deck.Name, "trials": *trials, "turn": *cutoff}).
		Info("starting turn analysis")

	diag := simulation.AnalyzeBatchParallelN(cfg, *trials, baseSeed, *workers)

	fmt.Printf("analyzed:      %d games (%d errors dropped)\n", diag.Total, diag.Errors)
	fmt.Printf("combo ready:   %.4f\n", diag.ComboReadyPct)
	fmt.Printf("avg lands:     %.2f\n", diag.AvgLands)
	for cat := simulation.DiagCategory(0); cat < simulation.NumDiagCategories; cat++ {
		fmt.Printf("  %-24s %d\n", cat.String()+":", diag.Counts[cat])
	}
	for c := engine.Color(0); c < engine.NumColors; c++ {
		fmt.Printf("  %s available: %.4f\n", c, diag.ColorRates[c])
	}
}

func runOptimize(args []string) {
	fs := flag.NewFlagSet("optimize", flag.ExitOnError)
	candidates := fs.Int("candidates", 200, "land configurations to evaluate")
	trials := fs.Int("trials-per", 2000, "games per candidate")
	strategy := fs.String("strategy", "weighted", "generation strategy (weighted, shuffle)")
	seed := fs.Int64("seed", 0, "random seed (0 = use current time)")
	turnCap := fs.Int("turn-cap", 10, "maximum turn before a game counts as a loss")
	workers := fs.Int("workers", 0, "worker goroutines per batch (0 = auto-detect)")
	outputDir := fs.String("output-dir", "output", "directory for the saved deck and history")
	topN := fs.Int("top-n", 10, "ranked candidates to print")
	verbose := fs.Bool("verbose", false, "enable verbose output")
	fs.Parse(args)
	setupLogging(*verbose)

	deck := loadDeck()
	simCfg := deck.Sim
	simCfg.TurnCap = *turnCap

	opt, err := optimizer.New(optimizer.SearchConfig{
		Strategy:   *strategy,
		Candidates: *candidates,
		TrialsPer:  *trials,
		Seed:       *seed,
		Workers:    *workers,
		Pool:       deck.Pool,
		FixedCards: deck.FixedCards,
		Sim:        simCfg,
	}, deck.Catalog)
	if err != nil {
		logrus.WithError(err).Fatal("creating optimizer")
	}

	logrus.WithFields(logrus.Fields{
		"deck":       deck.Name,
		"strategy":   *strategy,
		"candidates": *candidates,
		"trials_per": *trials,
	}).Info("starting land search")

	best := opt.Search()
	if best == nil {
		logrus.Fatal("no candidate won a single game; nothing to save")
	}

	fmt.Printf("best configuration (win rate %.4f, avg win turn %.2f):\n",
		best.Stats.WinRate, best.Stats.AvgWinTurn)
	names := make([]string, 0, len(best.Config))
	for name := range best.Config {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %2d %s\n", best.Config[name], name)
	}

	fmt.Printf("\ntop %d candidates:\n", *topN)
	for i, cand := range opt.Top(*topN) {
		fmt.Printf("  %2d. avg win turn %.2f, win rate %.4f\n",
			i+1, cand.Stats.AvgWinTurn, cand.Stats.WinRate)
	}

	path, err := opt.SaveBestDeck(*outputDir)
	if err != nil {
		logrus.WithError(err).Fatal("saving best deck")
	}
	logrus.WithField("path", path).Info("best deck saved")

	saved, err := optimizer.LoadSavedDeck(path)
	if err != nil {
		logrus.WithError(err).Fatal("re-reading saved deck")
	}
	if histPath, err := opt.WriteHistoryParquet(*outputDir, saved.RunID); err != nil {
		logrus.WithError(err).Warn("writing candidate history")
	} else {
		logrus.WithField("path", histPath).Info("candidate history written")
	}
}
