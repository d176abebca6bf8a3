// Package evaluator classifies a set of up to seven cards into a poker hand
// category with the supporting cards, high card and kicker.
//
// Categories are checked strongest first and the first match wins:
// Royal Flush, Straight Flush, Four of a Kind, Full House, Flush, Straight,
// Three of a Kind, Two Pairs, One Pair, High Card. The detection rules are
// tunable through Rules; the zero value reproduces the house rules,
// including flushes over the whole candidate set and lowest-rank-first
// selection when several ranks share a multiplicity.
package evaluator

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/lox/holdem-sim/internal/deck"
)

// ErrEvaluationGap is returned when a candidate set has no card that can
// serve as high card or kicker. With five or more cards of at least two
// ranks this cannot happen.
var ErrEvaluationGap = errors.New("no high card or kicker in candidate set")

// wheelRanks is the only rank set recognised as an ace-low straight.
var wheelRanks = []int{2, 3, 4, 5, 14}

var royalRanks = []int{10, 11, 12, 13, 14}

// Evaluate classifies cards using DefaultRules.
func Evaluate(cards []deck.Card) (HandRank, error) {
	return DefaultRules.Evaluate(cards)
}

// Evaluate classifies cards into a HandRank. It never mutates cards.
func (r Rules) Evaluate(cards []deck.Card) (HandRank, error) {
	if len(cards) == 0 {
		return HandRank{}, fmt.Errorf("%w: empty candidate set", ErrEvaluationGap)
	}

	h := newHand(cards)
	category, m := r.classify(h)

	kicker, ok := Kicker(cards, m.high.Label())
	if !ok {
		return HandRank{}, fmt.Errorf("%w: every card is a %s in %v", ErrEvaluationGap, m.high.Label(), cards)
	}

	return HandRank{
		Category:     category,
		Name:         category.String(),
		WinningCards: m.cards,
		HighCard:     m.high,
		Kicker:       kicker,
	}, nil
}

// Kicker returns the highest-ranked card whose rank label differs from
// exclude. It reports false when every card carries that label.
func Kicker(cards []deck.Card, exclude string) (deck.Card, bool) {
	var best deck.Card
	found := false
	for _, c := range cards {
		if c.Label() == exclude {
			continue
		}
		if !found || c.Value() > best.Value() {
			best = c
			found = true
		}
	}
	return best, found
}

// HighestCard returns the highest-ranked card of cards.
func HighestCard(cards []deck.Card) (deck.Card, bool) {
	return Kicker(cards, "")
}

// match is a detector's result: the winning subset and the card carrying
// the category's defining rank.
type match struct {
	cards []deck.Card
	high  deck.Card
}

func (r Rules) classify(h *hand) (Category, match) {
	detectors := []struct {
		category Category
		detect   func(*hand) (match, bool)
	}{
		{RoyalFlush, r.royalFlush},
		{StraightFlush, r.straightFlush},
		{FourOfAKind, r.fourOfAKind},
		{FullHouse, r.fullHouse},
		{Flush, r.flush},
		{Straight, r.straight},
		{ThreeOfAKind, r.threeOfAKind},
		{TwoPairs, r.twoPairs},
		{OnePair, r.onePair},
	}
	for _, d := range detectors {
		if m, ok := d.detect(h); ok {
			return d.category, m
		}
	}

	top := h.sorted[len(h.sorted)-1]
	return HighCard, match{cards: []deck.Card{top}, high: top}
}

// hand is the pre-sorted view of a candidate set shared by all detectors.
type hand struct {
	sorted []deck.Card // ascending by rank value, stable
	counts [15]int     // rank value -> number of cards
}

func newHand(cards []deck.Card) *hand {
	h := &hand{sorted: sortAscending(cards)}
	for _, c := range h.sorted {
		h.counts[c.Value()]++
	}
	return h
}

func sortAscending(cards []deck.Card) []deck.Card {
	out := slices.Clone(cards)
	slices.SortStableFunc(out, func(a, b deck.Card) int {
		return cmp.Compare(a.Value(), b.Value())
	})
	return out
}

// ofRank returns the cards of the given rank value, in sorted order.
func (h *hand) ofRank(value int) []deck.Card {
	var out []deck.Card
	for _, c := range h.sorted {
		if c.Value() == value {
			out = append(out, c)
		}
	}
	return out
}

// pick returns the rank value whose count equals n, honouring the
// multiplicity mode, or -1.
func (r Rules) pick(h *hand, n int) int {
	if r.Multiplicity == MultiplicityHighest {
		for v := len(h.counts) - 1; v >= 0; v-- {
			if h.counts[v] == n {
				return v
			}
		}
		return -1
	}
	for v := 0; v < len(h.counts); v++ {
		if h.counts[v] == n {
			return v
		}
	}
	return -1
}

func (r Rules) ofAKind(h *hand, n int) (match, bool) {
	v := r.pick(h, n)
	if v < 0 {
		return match{}, false
	}
	cards := h.ofRank(v)
	return match{cards: cards, high: cards[len(cards)-1]}, true
}

func (r Rules) fourOfAKind(h *hand) (match, bool) {
	return r.ofAKind(h, 4)
}

func (r Rules) threeOfAKind(h *hand) (match, bool) {
	return r.ofAKind(h, 3)
}

func (r Rules) onePair(h *hand) (match, bool) {
	return r.ofAKind(h, 2)
}

// fullHouse needs a rank with exactly three cards and a different rank
// with exactly two; the winning cards are the trips followed by the pair.
func (r Rules) fullHouse(h *hand) (match, bool) {
	trips, ok := r.ofAKind(h, 3)
	if !ok {
		return match{}, false
	}
	pair, ok := r.ofAKind(h, 2)
	if !ok {
		return match{}, false
	}
	cards := append(slices.Clone(trips.cards), pair.cards...)
	return match{cards: cards, high: trips.high}, true
}

// twoPairs collects every rank with exactly two cards and succeeds when
// there are at least two such ranks.
func (r Rules) twoPairs(h *hand) (match, bool) {
	var cards []deck.Card
	for v := 2; v < len(h.counts); v++ {
		if h.counts[v] == 2 {
			cards = append(cards, h.ofRank(v)...)
		}
	}
	if len(cards) < 4 {
		return match{}, false
	}
	return match{cards: cards, high: cards[len(cards)-1]}, true
}

// suited returns the cards that make the flush: the whole set under
// FlushAllCards, or every card of the most common suit (when it holds at
// least five) under FlushBestFive.
func (r Rules) suited(h *hand) ([]deck.Card, bool) {
	if len(h.sorted) < 5 {
		return nil, false
	}
	if r.Flush == FlushAllCards {
		suit := h.sorted[0].Suit
		for _, c := range h.sorted {
			if c.Suit != suit {
				return nil, false
			}
		}
		return h.sorted, true
	}

	var best []deck.Card
	for _, suit := range deck.Suits {
		var cards []deck.Card
		for _, c := range h.sorted {
			if c.Suit == suit {
				cards = append(cards, c)
			}
		}
		if len(cards) >= 5 && len(cards) > len(best) {
			best = cards
		}
	}
	return best, best != nil
}

func (r Rules) flush(h *hand) (match, bool) {
	cards, ok := r.suited(h)
	if !ok {
		return match{}, false
	}
	if r.Flush == FlushBestFive {
		cards = cards[len(cards)-5:]
	}
	return match{cards: slices.Clone(cards), high: cards[len(cards)-1]}, true
}

func (r Rules) straight(h *hand) (match, bool) {
	return findStraight(h.sorted)
}

// straightFlush requires the straight and the flush to hold on the same
// candidate set: the whole hand under FlushAllCards, the suited cards under
// FlushBestFive.
func (r Rules) straightFlush(h *hand) (match, bool) {
	suited, ok := r.suited(h)
	if !ok {
		return match{}, false
	}
	if r.Flush == FlushAllCards {
		return findStraight(h.sorted)
	}
	return findStraight(suited)
}

func (r Rules) royalFlush(h *hand) (match, bool) {
	suited, ok := r.suited(h)
	if !ok {
		return match{}, false
	}
	values, reps := distinct(suited)
	if r.Flush == FlushAllCards {
		if !slices.Equal(values, royalRanks) {
			return match{}, false
		}
		cards := slices.Clone(suited)
		return match{cards: cards, high: cards[len(cards)-1]}, true
	}
	cards := make([]deck.Card, 0, len(royalRanks))
	for _, v := range royalRanks {
		c, ok := reps[v]
		if !ok {
			return match{}, false
		}
		cards = append(cards, c)
	}
	return match{cards: cards, high: cards[len(cards)-1]}, true
}

// findStraight looks for five consecutive distinct ranks in ascending-sorted
// cards, preferring the highest run. The only ace-low straight recognised is
// a set whose distinct ranks are exactly 2,3,4,5,A; its ace is replaced by a
// synthetic low ace of the suit of the lowest remaining card.
func findStraight(sorted []deck.Card) (match, bool) {
	if len(sorted) < 5 {
		return match{}, false
	}
	values, reps := distinct(sorted)

	for i := len(values) - 5; i >= 0; i-- {
		if values[i+4]-values[i] != 4 {
			continue
		}
		cards := make([]deck.Card, 0, 5)
		for _, v := range values[i : i+5] {
			cards = append(cards, reps[v])
		}
		return match{cards: cards, high: cards[4]}, true
	}

	if slices.Equal(values, wheelRanks) {
		low := deck.NewCard(deck.LowAce, reps[2].Suit)
		cards := []deck.Card{low, reps[2], reps[3], reps[4], reps[5]}
		return match{cards: cards, high: reps[5]}, true
	}
	return match{}, false
}

// distinct returns the ascending distinct rank values of sorted cards and
// the first card seen for each value.
func distinct(sorted []deck.Card) ([]int, map[int]deck.Card) {
	var values []int
	reps := make(map[int]deck.Card)
	for _, c := range sorted {
		v := c.Value()
		if _, seen := reps[v]; seen {
			continue
		}
		reps[v] = c
		values = append(values, v)
	}
	return values, reps
}
