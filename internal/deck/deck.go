package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrEmpty is returned when cards are drawn from an exhausted deck.
var ErrEmpty = errors.New("deck is empty")

// Deck is an ordered multiset of cards. The top of the deck is the end of
// the slice; Pop removes from there.
type Deck struct {
	cards []Card
}

// New builds an unshuffled deck holding numDecks standard 52-card packs,
// suit by suit, rank ascending.
func New(numDecks int) *Deck {
	if numDecks < 1 {
		numDecks = 1
	}
	d := &Deck{cards: make([]Card, 0, numDecks*len(Suits)*len(Ranks))}
	for n := 0; n < numDecks; n++ {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				d.cards = append(d.cards, NewCard(rank, suit))
			}
		}
	}
	return d
}

// FromCards creates a deck whose top card is the last element of cards.
// Used to stack a deck for deterministic hands.
func FromCards(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Shuffle applies a uniform random permutation using rng.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Pop removes and returns the top card.
func (d *Deck) Pop() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// PopN removes n cards from the top. It fails without removing anything
// when fewer than n cards remain.
func (d *Deck) PopN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("draw %d cards: %w (%d remaining)", n, ErrEmpty, len(d.cards))
	}
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		card, _ := d.Pop()
		cards = append(cards, card)
	}
	return cards, nil
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards, bottom first.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
