package evaluator

import (
	"fmt"

	"github.com/paulhankin/poker"

	"github.com/lox/holdem-sim/internal/deck"
)

// Reference is the standard-rules reading of a five to seven card set:
// best five cards, flushes and straights found anywhere, highest ranks
// winning ties. It sits beside the configurable evaluator so deviations in
// the house rules are visible.
type Reference struct {
	Description string
	Score       int16
}

// Beats reports whether r is a strictly stronger standard hand than other.
func (r Reference) Beats(other Reference) bool {
	return r.Score > other.Score
}

// StandardReading evaluates cards under standard poker rules.
func StandardReading(cards []deck.Card) (Reference, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return Reference{}, fmt.Errorf("standard reading needs 5 to 7 cards, got %d", len(cards))
	}
	pcs := make([]poker.Card, len(cards))
	for i, c := range cards {
		pc, err := toStandard(c)
		if err != nil {
			return Reference{}, err
		}
		pcs[i] = pc
	}

	switch len(pcs) {
	case 7:
		var a7 [7]poker.Card
		copy(a7[:], pcs)
		desc, err := poker.Describe(a7[:])
		if err != nil {
			return Reference{}, fmt.Errorf("describe hand: %w", err)
		}
		return Reference{Description: desc, Score: poker.Eval7(&a7)}, nil
	case 5:
		var a5 [5]poker.Card
		copy(a5[:], pcs)
		return describeFive(a5)
	default:
		best, _ := bestFive(pcs)
		return describeFive(best)
	}
}

func describeFive(a5 [5]poker.Card) (Reference, error) {
	desc, err := poker.Describe(a5[:])
	if err != nil {
		return Reference{}, fmt.Errorf("describe hand: %w", err)
	}
	return Reference{Description: desc, Score: poker.Eval5(&a5)}, nil
}

// bestFive picks the strongest five-card subset of six cards.
func bestFive(pcs []poker.Card) ([5]poker.Card, int16) {
	var best [5]poker.Card
	bestScore := int16(-1 << 15)
	for skip := range pcs {
		var five [5]poker.Card
		n := 0
		for i, c := range pcs {
			if i == skip {
				continue
			}
			five[n] = c
			n++
		}
		if score := poker.Eval5(&five); score > bestScore {
			best, bestScore = five, score
		}
	}
	return best, bestScore
}

func toStandard(c deck.Card) (poker.Card, error) {
	var zero poker.Card
	var s poker.Suit
	switch c.Suit {
	case deck.Clubs:
		s = poker.Club
	case deck.Diamonds:
		s = poker.Diamond
	case deck.Hearts:
		s = poker.Heart
	case deck.Spades:
		s = poker.Spade
	default:
		return zero, fmt.Errorf("unknown suit in %v", c)
	}
	// The library numbers ranks 1..13 with the ace as 1.
	r := poker.Rank(c.Value())
	if c.Rank == deck.Ace || c.Rank == deck.LowAce {
		r = poker.Rank(1)
	}
	card, err := poker.MakeCard(s, r)
	if err != nil {
		return zero, fmt.Errorf("convert %v: %w", c, err)
	}
	return card, nil
}
