package phh

import (
	"strings"

	"github.com/lox/holdem-sim/internal/deck"
)

var suitLetters = map[deck.Suit]byte{
	deck.Spades:   's',
	deck.Hearts:   'h',
	deck.Diamonds: 'd',
	deck.Clubs:    'c',
}

// Card returns c in PHH notation, e.g. "Th".
func Card(c deck.Card) string {
	suit, ok := suitLetters[c.Suit]
	if !ok {
		return "??"
	}
	return c.Rank.String() + string(suit)
}

// Cards concatenates cards without separators, e.g. "AsKh".
func Cards(cards []deck.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(Card(c))
	}
	return b.String()
}
