package engine

// ReadyCheck is the deck-supplied combo-readiness predicate. The engine
// treats it as opaque: the win condition's card text is deck content,
// not generic mechanics. It must not mutate its arguments.
type ReadyCheck func(z *ZoneState, mana *Pool) bool

// All succeeds when every check succeeds.
func All(checks ...ReadyCheck) ReadyCheck {
	return func(z *ZoneState, mana *Pool) bool {
		for _, c := range checks {
			if !c(z, mana) {
				return false
			}
		}
		return true
	}
}

// Any succeeds when at least one check succeeds.
func Any(checks ...ReadyCheck) ReadyCheck {
	return func(z *ZoneState, mana *Pool) bool {
		for _, c := range checks {
			if c(z, mana) {
				return true
			}
		}
		return false
	}
}

// HandHas requires n copies of id in hand.
func HandHas(id CardID, n int) ReadyCheck {
	return func(z *ZoneState, _ *Pool) bool { return z.HandCount(id) >= n }
}

// GraveyardHas requires n copies of id in the graveyard.
func GraveyardHas(id CardID, n int) ReadyCheck {
	return func(z *ZoneState, _ *Pool) bool { return z.GraveyardCount(id) >= n }
}

// BattlefieldHas requires n copies of id on the battlefield.
func BattlefieldHas(id CardID, n int) ReadyCheck {
	return func(z *ZoneState, _ *Pool) bool { return z.BattlefieldCount(id) >= n }
}

// MinLands requires at least n lands in play.
func MinLands(n int) ReadyCheck {
	return func(z *ZoneState, _ *Pool) bool { return z.LandsInPlay() >= n }
}

// CanPay requires the available mana to cover cost.
func CanPay(cost ManaCost) ReadyCheck {
	return func(_ *ZoneState, mana *Pool) bool { return mana.CanPay(cost) }
}

// Always is the trivial predicate, useful for baseline runs and tests.
func Always(*ZoneState, *Pool) bool { return true }
