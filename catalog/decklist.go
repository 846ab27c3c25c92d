package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/deckforge/manasim/engine"
)

// ErrBadDeckList marks malformed deck-list input.
var ErrBadDeckList = errors.New("malformed deck list")

// ParseDeckList reads a deck list of "<count> <card name>" lines.
// Blank lines and lines starting with # or // are skipped. Any
// malformed line or unknown card name fails the whole load with the
// line number and offending token; no partial deck is returned.
func ParseDeckList(r io.Reader, cat *Catalog) ([]engine.Card, error) {
	var deck []engine.Card

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		countStr, name, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("line %d: %w: %q", lineNo, ErrBadDeckList, line)
		}
		count, err := strconv.Atoi(countStr)
		if err != nil || count < 1 {
			return nil, fmt.Errorf("line %d: %w: bad count %q", lineNo, ErrBadDeckList, countStr)
		}

		name = strings.TrimSpace(name)
		card, err := cat.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		for i := 0; i < count; i++ {
			deck = append(deck, card)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read deck list: %w", err)
	}
	return deck, nil
}

// SplitLands partitions a deck into its land configuration and the
// fixed non-land portion. The optimizer holds the fixed portion
// constant while searching over land counts.
func SplitLands(deck []engine.Card) (lands map[string]int, fixed []engine.Card) {
	lands = make(map[string]int)
	for _, c := range deck {
		if c.IsLand() {
			lands[c.Name]++
		} else {
			fixed = append(fixed, c)
		}
	}
	return lands, fixed
}
