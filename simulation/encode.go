package simulation

import (
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"
)

// Stats are persisted as a small flatbuffers table so report tooling
// can read batch artifacts without re-running simulations. The table
// is built with the builder API directly; the field order below is the
// wire schema.
//
//	0 trials              uint32
//	1 wins                uint32
//	2 errors              uint32
//	3 win_rate            float64
//	4 avg_win_turn        float64
//	5 colors_ready_rate   float64
//	6 avg_colors_ready    float64
//	7 turn_histogram      [uint32]  (index = win turn)
const statsNumFields = 8

func statsSlot(field flatbuffers.VOffsetT) flatbuffers.VOffsetT { return 4 + 2*field }

// EncodeStats serializes aggregated stats into a flatbuffers blob.
func EncodeStats(stats Stats) []byte {
	builder := flatbuffers.NewBuilder(256)

	maxTurn := 0
	for turn := range stats.TurnHistogram {
		if turn > maxTurn {
			maxTurn = turn
		}
	}
	var histOffset flatbuffers.UOffsetT
	if maxTurn > 0 {
		builder.StartVector(4, maxTurn+1, 4)
		// Vectors are prepended back to front.
		for turn := maxTurn; turn >= 0; turn-- {
			builder.PrependUint32(uint32(stats.TurnHistogram[turn]))
		}
		histOffset = builder.EndVector(maxTurn + 1)
	}

	builder.StartObject(statsNumFields)
	builder.PrependUint32Slot(0, uint32(stats.Trials), 0)
	builder.PrependUint32Slot(1, uint32(stats.Wins), 0)
	builder.PrependUint32Slot(2, uint32(stats.Errors), 0)
	builder.PrependFloat64Slot(3, stats.WinRate, 0)
	builder.PrependFloat64Slot(4, stats.AvgWinTurn, 0)
	builder.PrependFloat64Slot(5, stats.ColorsReadyRate, 0)
	builder.PrependFloat64Slot(6, stats.AvgColorsReadyTurn, 0)
	if histOffset > 0 {
		builder.PrependUOffsetTSlot(7, histOffset, 0)
	}
	builder.Finish(builder.EndObject())
	return builder.FinishedBytes()
}

// DecodeStats reads a blob written by EncodeStats.
func DecodeStats(buf []byte) (Stats, error) {
	if len(buf) < int(flatbuffers.SizeUOffsetT) {
		return Stats{}, fmt.Errorf("decode stats: short buffer (%d bytes)", len(buf))
	}

	tab := flatbuffers.Table{Bytes: buf, Pos: flatbuffers.GetUOffsetT(buf)}

	stats := Stats{
		Trials:             int(tab.GetUint32Slot(statsSlot(0), 0)),
		Wins:               int(tab.GetUint32Slot(statsSlot(1), 0)),
		Errors:             int(tab.GetUint32Slot(statsSlot(2), 0)),
		WinRate:            tab.GetFloat64Slot(statsSlot(3), 0),
		AvgWinTurn:         tab.GetFloat64Slot(statsSlot(4), 0),
		ColorsReadyRate:    tab.GetFloat64Slot(statsSlot(5), 0),
		AvgColorsReadyTurn: tab.GetFloat64Slot(statsSlot(6), 0),
		TurnHistogram:      make(map[int]int),
	}

	if o := flatbuffers.UOffsetT(tab.Offset(statsSlot(7))); o != 0 {
		n := tab.VectorLen(o)
		base := tab.Vector(o)
		for turn := 0; turn < n; turn++ {
			count := tab.GetUint32(base + flatbuffers.UOffsetT(turn*4))
			if count > 0 {
				stats.TurnHistogram[turn] = int(count)
			}
		}
	}
	return stats, nil
}
