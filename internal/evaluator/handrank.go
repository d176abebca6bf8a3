package evaluator

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-sim/internal/deck"
)

// Category is a poker hand category. Higher values are stronger hands.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPairs
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the readable name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPairs:
		return "Two Pairs"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandRank is the result of classifying a candidate set of cards.
type HandRank struct {
	Category Category
	Name     string

	// WinningCards is the subset constituting the category, ascending by
	// rank except for a full house (trips, then pair). A wheel straight
	// carries a synthetic low ace here.
	WinningCards []deck.Card

	// HighCard carries the category's defining rank: the quads, trips or
	// pair rank, the higher pair of two pairs, or the top card of a
	// straight, flush or high card hand.
	HighCard deck.Card

	// Kicker is the highest card of the candidate set whose rank label
	// differs from HighCard's.
	Kicker deck.Card
}

// Compare orders two hand ranks by category, then by high card value.
// It returns 1 if h is stronger, -1 if weaker and 0 if equal.
func (h HandRank) Compare(other HandRank) int {
	switch {
	case h.Category > other.Category:
		return 1
	case h.Category < other.Category:
		return -1
	case h.HighCard.Value() > other.HighCard.Value():
		return 1
	case h.HighCard.Value() < other.HighCard.Value():
		return -1
	}
	return 0
}

// String renders e.g. "One Pair [5♠ 5♦] high 5♠ kicker A♥"
func (h HandRank) String() string {
	cards := make([]string, len(h.WinningCards))
	for i, c := range h.WinningCards {
		cards[i] = c.String()
	}
	return fmt.Sprintf("%s [%s] high %s kicker %s", h.Name, strings.Join(cards, " "), h.HighCard, h.Kicker)
}
