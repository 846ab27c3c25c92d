package optimizer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// SavedDeck is the persisted description of a winning configuration
// and the run that produced it. It is plain data for the report layer.
type SavedDeck struct {
	RunID    string    `json:"run_id"`
	SavedAt  time.Time `json:"saved_at"`
	Strategy string    `json:"strategy"`

	Lands      map[string]int `json:"lands"`
	FixedCards []string       `json:"fixed_cards"`

	Trials           int         `json:"trials"`
	WinRate          float64     `json:"win_rate"`
	AvgWinTurn       float64     `json:"avg_win_turn"`
	TurnDistribution map[int]int `json:"turn_distribution"`
}

// SaveBestDeck writes the best candidate's deck description to dir and
// returns the file path. The write goes through a temp file and an
// atomic rename. Calling it with no best candidate is an error.
func (o *Optimizer) SaveBestDeck(dir string) (string, error) {
	if o.Best == nil {
		return "", fmt.Errorf("save deck: no winning candidate found")
	}

	fixed := make([]string, 0, len(o.Config.FixedCards))
	for _, c := range o.Config.FixedCards {
		fixed = append(fixed, c.Name)
	}
	sort.Strings(fixed)

	doc := SavedDeck{
		RunID:            uuid.NewString(),
		SavedAt:          time.Now().UTC(),
		Strategy:         o.strategy.Name(),
		Lands:            o.Best.Config,
		FixedCards:       fixed,
		Trials:           o.Best.Stats.Trials,
		WinRate:          o.Best.Stats.WinRate,
		AvgWinTurn:       o.Best.Stats.AvgWinTurn,
		TurnDistribution: o.Best.Stats.TurnHistogram,
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("best-deck-%s.json", doc.RunID))
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal deck: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write deck: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("finalize deck: %w", err)
	}
	return path, nil
}

// LoadSavedDeck reads a deck document written by SaveBestDeck.
func LoadSavedDeck(path string) (*SavedDeck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read saved deck: %w", err)
	}
	var doc SavedDeck
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal saved deck: %w", err)
	}
	return &doc, nil
}
