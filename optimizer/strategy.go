// Package optimizer searches over land-base configurations for the one
// that reaches combo readiness fastest, evaluating each candidate with
// batches of simulated games.
package optimizer

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// ErrUnknownStrategy marks requests for a generation strategy name
// that does not exist.
var ErrUnknownStrategy = errors.New("unknown strategy")

// SlotCount is the number of deck positions reserved for lands.
const SlotCount = 24

// LandSpec is one land type available to the search.
type LandSpec struct {
	Name      string
	MaxCopies int
}

// LandConfig maps land names to copy counts. A valid configuration
// sums to exactly SlotCount with every count within its land's
// per-copy limit.
type LandConfig map[string]int

// Total returns the summed copy count.
func (lc LandConfig) Total() int {
	n := 0
	for _, c := range lc {
		n += c
	}
	return n
}

// Clone returns a copy of the configuration.
func (lc LandConfig) Clone() LandConfig {
	out := make(LandConfig, len(lc))
	for k, v := range lc {
		out[k] = v
	}
	return out
}

// Strategy generates candidate land configurations.
type Strategy interface {
	Name() string
	Generate(rng *rand.Rand) LandConfig
}

// NewStrategy selects a strategy by name.
func NewStrategy(name string, pool []LandSpec) (Strategy, error) {
	switch name {
	case "weighted":
		return &WeightedStrategy{pool: pool}, nil
	case "shuffle":
		return &ShuffleStrategy{pool: pool}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// WeightedStrategy samples a count for each land type independently,
// then rebalances until the total is exactly SlotCount.
type WeightedStrategy struct {
	pool []LandSpec
}

func (s *WeightedStrategy) Name() string { return "weighted" }

func (s *WeightedStrategy) Generate(rng *rand.Rand) LandConfig {
	cfg := make(LandConfig, len(s.pool))
	capacity := 0
	for _, spec := range s.pool {
		capacity += spec.MaxCopies
	}
	if capacity <= SlotCount {
		// The pool cannot overfill the slots; take everything.
		for _, spec := range s.pool {
			if spec.MaxCopies > 0 {
				cfg[spec.Name] = spec.MaxCopies
			}
		}
		return cfg
	}
	for _, spec := range s.pool {
		cfg[spec.Name] = rng.Intn(spec.MaxCopies + 1)
	}

	// Names sorted once so the adjustment walk is deterministic for a
	// given rng stream.
	names := make([]string, 0, len(s.pool))
	maxByName := make(map[string]int, len(s.pool))
	for _, spec := range s.pool {
		names = append(names, spec.Name)
		maxByName[spec.Name] = spec.MaxCopies
	}
	sort.Strings(names)

	for cfg.Total() > SlotCount {
		name := names[rng.Intn(len(names))]
		if cfg[name] > 0 {
			cfg[name]--
		}
	}
	for cfg.Total() < SlotCount {
		name := names[rng.Intn(len(names))]
		if cfg[name] < maxByName[name] {
			cfg[name]++
		}
	}

	for name, c := range cfg {
		if c == 0 {
			delete(cfg, name)
		}
	}
	return cfg
}

// ShuffleStrategy builds a pool with each land repeated up to its copy
// limit, shuffles it, and counts the first SlotCount entries.
type ShuffleStrategy struct {
	pool []LandSpec
}

func (s *ShuffleStrategy) Name() string { return "shuffle" }

func (s *ShuffleStrategy) Generate(rng *rand.Rand) LandConfig {
	var slots []string
	for _, spec := range s.pool {
		for i := 0; i < spec.MaxCopies; i++ {
			slots = append(slots, spec.Name)
		}
	}
	rng.Shuffle(len(slots), func(i, j int) {
		slots[i], slots[j] = slots[j], slots[i]
	})

	n := SlotCount
	if n > len(slots) {
		n = len(slots)
	}
	cfg := make(LandConfig)
	for _, name := range slots[:n] {
		cfg[name]++
	}
	return cfg
}

// Validate checks the configuration invariants against the pool.
func Validate(cfg LandConfig, pool []LandSpec) error {
	maxByName := make(map[string]int, len(pool))
	for _, spec := range pool {
		maxByName[spec.Name] = spec.MaxCopies
	}

	for name, count := range cfg {
		limit, ok := maxByName[name]
		if !ok {
			return fmt.Errorf("land %q not in pool", name)
		}
		if count > limit {
			return fmt.Errorf("land %q: %d copies exceeds limit %d", name, count, limit)
		}
	}
	if total := cfg.Total(); total != SlotCount {
		return fmt.Errorf("configuration totals %d lands, want %d", total, SlotCount)
	}
	return nil
}
