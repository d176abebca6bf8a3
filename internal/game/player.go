package game

import (
	"slices"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/evaluator"
)

// Capability authorizes mutations of a player's funds and cards. Only a
// Dealer can issue one, and a player accepts only the capability of the
// dealer that seated it. The zero value authorizes nothing.
type Capability struct {
	key *capabilityKey
}

type capabilityKey struct {
	dealerID string
}

func (c Capability) valid() bool { return c.key != nil }

// Player is a seat's ledger: stack, bets, hole cards and showdown rank.
type Player struct {
	ID     int
	Name   string
	Policy Policy

	stack    uint
	roundBet uint
	paidIn   uint
	folded   bool
	hole     []deck.Card
	rank     *evaluator.HandRank

	authority Capability
}

// NewPlayer creates a player with a starting stack.
func NewPlayer(id int, name string, stack uint, policy Policy) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		Policy: policy,
		stack:  stack,
	}
}

func (p *Player) Stack() uint    { return p.stack }
func (p *Player) RoundBet() uint { return p.roundBet }
func (p *Player) PaidIn() uint   { return p.paidIn }
func (p *Player) Folded() bool   { return p.folded }

// HoleCards returns a copy of the player's private cards.
func (p *Player) HoleCards() []deck.Card {
	return slices.Clone(p.hole)
}

// HandRank returns the rank assigned at showdown, if any.
func (p *Player) HandRank() (evaluator.HandRank, bool) {
	if p.rank == nil {
		return evaluator.HandRank{}, false
	}
	return *p.rank, true
}

func (p *Player) authorize(c Capability, op string) error {
	if !c.valid() || c != p.authority {
		return authorizationError(op)
	}
	return nil
}

// RequestFunds moves amount out of the stack. Every purpose adds to the
// current-round bet. It returns the amount moved, or zero and the reason.
func (p *Player) RequestFunds(c Capability, amount uint, purpose FundsPurpose) (uint, error) {
	if err := p.authorize(c, "request funds"); err != nil {
		return 0, err
	}
	if amount > p.stack {
		return 0, validationError("request funds", "%s of %d exceeds %s's stack of %d", purpose, amount, p.Name, p.stack)
	}
	p.stack -= amount
	p.paidIn += amount
	p.roundBet += amount
	return amount, nil
}

// Credit adds amount to the stack, e.g. a pot award.
func (p *Player) Credit(c Capability, amount uint) error {
	if err := p.authorize(c, "credit"); err != nil {
		return err
	}
	p.stack += amount
	return nil
}

// ReceiveCard adds a hole card. A player holds at most two.
func (p *Player) ReceiveCard(c Capability, card deck.Card) error {
	if err := p.authorize(c, "receive card"); err != nil {
		return err
	}
	if len(p.hole) >= 2 {
		return stateError("receive card", "%s already holds two cards", p.Name)
	}
	p.hole = append(p.hole, card)
	return nil
}

// RequestHandCards reveals the hole cards to the capability holder.
func (p *Player) RequestHandCards(c Capability) ([]deck.Card, error) {
	if err := p.authorize(c, "request hand cards"); err != nil {
		return nil, err
	}
	return slices.Clone(p.hole), nil
}

// Fold marks the player out of the hand.
func (p *Player) Fold(c Capability) error {
	if err := p.authorize(c, "fold"); err != nil {
		return err
	}
	p.folded = true
	return nil
}

// AssignHandRank records the player's showdown rank.
func (p *Player) AssignHandRank(c Capability, rank evaluator.HandRank) error {
	if err := p.authorize(c, "assign hand rank"); err != nil {
		return err
	}
	p.rank = &rank
	return nil
}

func (p *Player) resetRoundBet() {
	p.roundBet = 0
}

// View returns the read-only state handed to decision policies.
func (p *Player) View() PlayerView {
	return PlayerView{
		ID:        p.ID,
		Name:      p.Name,
		Stack:     p.stack,
		RoundBet:  p.roundBet,
		PaidIn:    p.paidIn,
		Folded:    p.folded,
		HoleCards: p.HoleCards(),
	}
}

// PlayerView is a snapshot of a player's ledger.
type PlayerView struct {
	ID        int
	Name      string
	Stack     uint
	RoundBet  uint
	PaidIn    uint
	Folded    bool
	HoleCards []deck.Card
}
