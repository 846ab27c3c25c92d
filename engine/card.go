package engine

// CardID is a stable small integer assigned by the catalog at load
// time. Equality and map keys use IDs, never names, on the hot path.
type CardID uint16

// Kind discriminates the closed set of card variants.
type Kind uint8

const (
	KindLand Kind = iota
	KindCreature
	KindInstant
	KindSorcery
	KindEnchantment
	KindSaga
)

var kindNames = [...]string{"Land", "Creature", "Instant", "Sorcery", "Enchantment", "Saga"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// LandInfo is the land-specific payload.
type LandInfo struct {
	Produces     ColorSet // colors this land can tap for
	Subtype      string   // "Swamp", "Island", dual subtype line, etc.
	EntersTapped bool
	Surveil      uint8 // surveil N when it enters, 0 for none
	Basic        bool
}

// CreatureInfo is the creature-specific payload.
type CreatureInfo struct {
	Power     int8
	Toughness int8
	Legendary bool
	Types     []string // creature type line tags
	Abilities []string // ability tags the readiness predicate keys on

	// Impending: optional delayed cost. A card with ImpendingCounters > 0
	// may be cast for ImpendingCost and enters as a non-creature until
	// the counters run out.
	ImpendingCost     ManaCost
	ImpendingCounters uint8
}

// SpellInfo is the payload shared by instants, sorceries, enchantments
// and sagas.
type SpellInfo struct {
	Abilities []string
	Chapters  uint8 // saga chapter count, 0 otherwise
}

// Card is immutable reference data shared read-only across all games.
// The Kind tag selects which payload is meaningful; code that needs
// kind-specific behavior switches on Kind exhaustively.
type Card struct {
	ID   CardID
	Name string
	Cost ManaCost
	Kind Kind

	Land     LandInfo
	Creature CreatureInfo
	Spell    SpellInfo
}

// ManaValue returns the converted cost.
func (c Card) ManaValue() int { return c.Cost.Value() }

// IsLand reports whether the card is a land.
func (c Card) IsLand() bool { return c.Kind == KindLand }

// MaxCopies returns the deck-construction copy limit: unlimited for
// basic lands, four otherwise.
func (c Card) MaxCopies() int {
	if c.Kind == KindLand && c.Land.Basic {
		return 250
	}
	return 4
}

// HasAbility reports whether the card carries the given ability tag.
func (c Card) HasAbility(tag string) bool {
	var tags []string
	switch c.Kind {
	case KindCreature:
		tags = c.Creature.Abilities
	case KindInstant, KindSorcery, KindEnchantment, KindSaga:
		tags = c.Spell.Abilities
	case KindLand:
		return false
	}
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
