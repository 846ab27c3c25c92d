package optimizer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// CandidateRow is one evaluated configuration in the history log,
// flattened for columnar storage. Lands is the configuration rendered
// as "name=count" pairs in name order so rows compress well and stay
// greppable.
type CandidateRow struct {
	RunID      string  `parquet:"run_id,dict"`
	Index      int32   `parquet:"index"`
	Strategy   string  `parquet:"strategy,dict"`
	Lands      string  `parquet:"lands"`
	Trials     int32   `parquet:"trials"`
	Wins       int32   `parquet:"wins"`
	WinRate    float64 `parquet:"win_rate"`
	AvgWinTurn float64 `parquet:"avg_win_turn"`
	Best       bool    `parquet:"best"`
}

func renderLands(cfg LandConfig) string {
	names := make([]string, 0, len(cfg))
	for name := range cfg {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", name, cfg[name]))
	}
	return strings.Join(parts, ";")
}

// WriteHistoryParquet writes the full evaluated-candidate history to a
// parquet file in dir and returns its path. The file is written to a
// temp path and renamed so readers never observe a partial file.
func (o *Optimizer) WriteHistoryParquet(dir, runID string) (string, error) {
	if len(o.History) == 0 {
		return "", fmt.Errorf("write history: no evaluated candidates")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	rows := make([]CandidateRow, 0, len(o.History))
	for _, cand := range o.History {
		rows = append(rows, CandidateRow{
			RunID:      runID,
			Index:      int32(cand.Index),
			Strategy:   o.strategy.Name(),
			Lands:      renderLands(cand.Config),
			Trials:     int32(cand.Stats.Trials),
			Wins:       int32(cand.Stats.Wins),
			WinRate:    cand.Stats.WinRate,
			AvgWinTurn: cand.Stats.AvgWinTurn,
			Best:       o.Best != nil && o.Best.Index == cand.Index,
		})
	}

	name := fmt.Sprintf("candidates_%d.parquet", time.Now().UnixNano())
	outPath := filepath.Join(dir, name)
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "candidate_row_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}
	return outPath, nil
}
