package engine

import "strings"

// Color identifies one of the five mana colors.
type Color uint8

const (
	White Color = iota
	Blue
	Black
	Red
	Green
	NumColors
)

var colorSymbols = [NumColors]string{"W", "U", "B", "R", "G"}

func (c Color) String() string {
	if c < NumColors {
		return colorSymbols[c]
	}
	return "?"
}

// ColorSet is a bitset over the five colors. Membership and containment
// checks are bit math so they stay O(1) on the hot path.
type ColorSet uint8

// NewColorSet builds a set from individual colors.
func NewColorSet(colors ...Color) ColorSet {
	var s ColorSet
	for _, c := range colors {
		s = s.Add(c)
	}
	return s
}

func (s ColorSet) Add(c Color) ColorSet      { return s | 1<<c }
func (s ColorSet) Has(c Color) bool          { return s&(1<<c) != 0 }
func (s ColorSet) Union(o ColorSet) ColorSet { return s | o }

// Contains reports whether every color in req is present in s.
func (s ColorSet) Contains(req ColorSet) bool { return s&req == req }

// Missing returns the colors of req absent from s.
func (s ColorSet) Missing(req ColorSet) ColorSet { return req &^ s }

// Count returns the number of colors in the set.
func (s ColorSet) Count() int {
	n := 0
	for c := Color(0); c < NumColors; c++ {
		if s.Has(c) {
			n++
		}
	}
	return n
}

func (s ColorSet) String() string {
	var b strings.Builder
	for c := Color(0); c < NumColors; c++ {
		if s.Has(c) {
			b.WriteString(colorSymbols[c])
		}
	}
	if b.Len() == 0 {
		return "C"
	}
	return b.String()
}

// ManaCost is a fixed-width record of required pips per color plus a
// generic amount payable by any mana.
type ManaCost struct {
	Pips    [NumColors]uint8
	Generic uint8
}

// Cost is a convenience constructor: generic amount plus colored pips.
func Cost(generic int, pips ...Color) ManaCost {
	mc := ManaCost{Generic: uint8(generic)}
	for _, c := range pips {
		mc.Pips[c]++
	}
	return mc
}

// Value returns the converted mana cost.
func (mc ManaCost) Value() int {
	v := int(mc.Generic)
	for _, p := range mc.Pips {
		v += int(p)
	}
	return v
}

// Colors returns the set of colors appearing in the cost.
func (mc ManaCost) Colors() ColorSet {
	var s ColorSet
	for c := Color(0); c < NumColors; c++ {
		if mc.Pips[c] > 0 {
			s = s.Add(c)
		}
	}
	return s
}

type poolSource struct {
	colors ColorSet
}

// Pool is the mana available on a given turn. Each untapped source is
// tracked with the set of colors it can produce, so a dual land counts
// once toward the total but toward multiple colors.
type Pool struct {
	sources []poolSource
}

// AddSource records one untapped source and the colors it can produce.
// A source with an empty ColorSet produces colorless only.
func (p *Pool) AddSource(colors ColorSet) {
	p.sources = append(p.sources, poolSource{colors: colors})
}

// Total returns the number of sources, i.e. the maximum mana available.
func (p *Pool) Total() int { return len(p.sources) }

// Colors returns the union of colors producible by any source.
func (p *Pool) Colors() ColorSet {
	var s ColorSet
	for _, src := range p.sources {
		s = s.Union(src.colors)
	}
	return s
}

// CanPay reports whether the pool can cover cost, assigning each source
// to at most one pip. Colored pips are matched to sources by augmenting
// paths, so no valid assignment is missed regardless of which duals
// were claimed first; generic takes whatever remains.
func (p *Pool) CanPay(cost ManaCost) bool {
	if p.Total() < cost.Value() {
		return false
	}

	pips := make([]Color, 0, 8)
	for c := Color(0); c < NumColors; c++ {
		for n := cost.Pips[c]; n > 0; n-- {
			pips = append(pips, c)
		}
	}
	if len(pips) == 0 {
		return true
	}

	// assigned[i] holds pip index + 1 for the pip source i pays, 0 when
	// the source is free for generic.
	assigned := make([]int, len(p.sources))
	var assign func(pip int, seen []bool) bool
	assign = func(pip int, seen []bool) bool {
		for i, src := range p.sources {
			if seen[i] || !src.colors.Has(pips[pip]) {
				continue
			}
			seen[i] = true
			if assigned[i] == 0 || assign(assigned[i]-1, seen) {
				assigned[i] = pip + 1
				return true
			}
		}
		return false
	}
	for pip := range pips {
		if !assign(pip, make([]bool, len(p.sources))) {
			return false
		}
	}
	return true
}
