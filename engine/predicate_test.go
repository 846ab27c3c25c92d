package engine

import "testing"

func TestPredicateCombinators(t *testing.T) {
	piece := Card{ID: 9, Name: "Squirming Emergence", Kind: KindSorcery, Cost: Cost(2, Black, Green)}
	finisher := Card{ID: 10, Name: "Overlord of the Balemurk", Kind: KindCreature, Cost: Cost(4, Black)}

	z := GetZones()
	defer PutZones(z)
	z.Hand = append(z.Hand, piece)
	z.Graveyard = append(z.Graveyard, finisher)

	pool := &Pool{}
	for i := 0; i < 4; i++ {
		pool.AddSource(NewColorSet(Black, Green))
	}

	ready := All(
		HandHas(piece.ID, 1),
		GraveyardHas(finisher.ID, 1),
		CanPay(piece.Cost),
	)
	if !ready(z, pool) {
		t.Fatal("assembled combo should be ready")
	}

	if All(ready, HandHas(finisher.ID, 1))(z, pool) {
		t.Error("All should fail when one check fails")
	}
	if !Any(HandHas(finisher.ID, 1), ready)(z, pool) {
		t.Error("Any should succeed when one check succeeds")
	}
	if MinLands(1)(z, pool) {
		t.Error("no lands in play, MinLands(1) should fail")
	}
	if !Always(z, pool) {
		t.Error("Always must hold")
	}
}
