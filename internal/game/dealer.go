package game

import (
	"errors"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/evaluator"
	"github.com/lox/holdem-sim/internal/gameid"
)

// Dealer owns the deck and the capability used to move players' funds and
// cards on behalf of the game.
type Dealer struct {
	id     string
	deckID string
	deck   *deck.Deck
	cap    Capability
	rng    *rand.Rand
	ids    *gameid.Generator
	logger *log.Logger
}

// NewDealer creates a dealer without a deck.
func NewDealer(rng *rand.Rand, ids *gameid.Generator, logger *log.Logger) *Dealer {
	if rng == nil {
		panic("rng is required for dealer creation")
	}
	if ids == nil {
		ids = gameid.NewGenerator(nil)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	id := ids.New(gameid.Dealer)
	return &Dealer{
		id:     id,
		cap:    Capability{key: &capabilityKey{dealerID: id}},
		rng:    rng,
		ids:    ids,
		logger: logger,
	}
}

func (d *Dealer) ID() string     { return d.id }
func (d *Dealer) DeckID() string { return d.deckID }
func (d *Dealer) HasDeck() bool  { return d.deck != nil }

// DeckSize is the number of undealt cards, zero without a deck.
func (d *Dealer) DeckSize() int {
	if d.deck == nil {
		return 0
	}
	return d.deck.Len()
}

// Seat binds p to this dealer so it accepts the dealer's capability.
func (d *Dealer) Seat(p *Player) {
	p.authority = d.cap
}

// GenerateDeck builds numDecks packs. It reports false, leaving the existing
// deck alone, when the dealer already has one.
func (d *Dealer) GenerateDeck(numDecks int) bool {
	if d.deck != nil {
		d.logger.Debug("Deck already generated", "deck", d.deckID)
		return false
	}
	if numDecks < 1 {
		numDecks = 1
	}
	d.deck = deck.New(numDecks)
	d.deckID = d.ids.New(gameid.Deck)
	d.logger.Debug("Generated deck", "deck", d.deckID, "packs", numDecks, "cards", d.deck.Len())
	return true
}

// Shuffle permutes the deck uniformly.
func (d *Dealer) Shuffle() error {
	if d.deck == nil {
		return stateError("shuffle", "dealer has no deck yet")
	}
	d.deck.Shuffle(d.rng)
	return nil
}

// DealTwo pops two cards from the top of the deck into p's hand.
func (d *Dealer) DealTwo(p *Player) error {
	cards, err := d.draw("deal", 2)
	if err != nil {
		return err
	}
	for _, c := range cards {
		if err := p.ReceiveCard(d.cap, c); err != nil {
			return err
		}
	}
	return nil
}

// OpenCards pops n community cards.
func (d *Dealer) OpenCards(n int) ([]deck.Card, error) {
	return d.draw("open cards", n)
}

func (d *Dealer) draw(op string, n int) ([]deck.Card, error) {
	if d.deck == nil {
		return nil, stateError(op, "dealer has no deck yet")
	}
	cards, err := d.deck.PopN(n)
	if err != nil {
		return nil, &Error{Kind: KindState, Op: op, Err: err}
	}
	return cards, nil
}

// RequestFunds takes amount from p for purpose. Failures return zero and
// the cause.
func (d *Dealer) RequestFunds(p *Player, amount uint, purpose FundsPurpose) (uint, error) {
	got, err := p.RequestFunds(d.cap, amount, purpose)
	if err != nil {
		d.logger.Debug("Funds request refused", "player", p.Name, "purpose", purpose, "amount", amount, "err", err)
	}
	return got, err
}

// RequestHandCards returns p's hole cards.
func (d *Dealer) RequestHandCards(p *Player) ([]deck.Card, error) {
	return p.RequestHandCards(d.cap)
}

// Award credits p with amount.
func (d *Dealer) Award(p *Player, amount uint) error {
	return p.Credit(d.cap, amount)
}

func (d *Dealer) fold(p *Player) error {
	return p.Fold(d.cap)
}

// Rank evaluates p's hole cards with the community cards and records the
// result on p.
func (d *Dealer) Rank(p *Player, community []deck.Card, rules evaluator.Rules) (evaluator.HandRank, error) {
	hole, err := d.RequestHandCards(p)
	if err != nil {
		return evaluator.HandRank{}, err
	}
	cards := append(hole, community...)
	rank, err := rules.Evaluate(cards)
	if err != nil {
		if errors.Is(err, evaluator.ErrEvaluationGap) {
			return evaluator.HandRank{}, &Error{Kind: KindEvaluationGap, Op: "rank " + p.Name, Err: err}
		}
		return evaluator.HandRank{}, err
	}
	if err := p.AssignHandRank(d.cap, rank); err != nil {
		return evaluator.HandRank{}, err
	}
	return rank, nil
}
