package simulation

import (
	"reflect"
	"testing"
)

func TestStatsRoundTrip(t *testing.T) {
	stats := Stats{
		Trials:             1000,
		Wins:               420,
		Errors:             3,
		WinRate:            0.42,
		AvgWinTurn:         4.75,
		ColorsReadyRate:    0.91,
		AvgColorsReadyTurn: 2.3,
		TurnHistogram:      map[int]int{3: 100, 4: 200, 6: 120},
	}

	decoded, err := DecodeStats(EncodeStats(stats))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(stats, decoded) {
		t.Fatalf("round trip mismatch:\nin:  %+v\nout: %+v", stats, decoded)
	}
}

func TestDecodeStatsShortBuffer(t *testing.T) {
	if _, err := DecodeStats([]byte{1, 2}); err == nil {
		t.Fatal("short buffer should fail to decode")
	}
}

func TestStatsRoundTripEmptyHistogram(t *testing.T) {
	stats := Aggregate(nil)
	decoded, err := DecodeStats(EncodeStats(stats))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(stats, decoded) {
		t.Fatalf("round trip mismatch:\nin:  %+v\nout: %+v", stats, decoded)
	}
}
