package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/randutil"
)

func seatedPlayer(t *testing.T, stack uint) (*Dealer, *Player) {
	t.Helper()
	d := NewDealer(randutil.New(1), nil, nil)
	p := NewPlayer(1, "Alice", stack, PassivePolicy{})
	d.Seat(p)
	return d, p
}

func TestRequestFunds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		purpose FundsPurpose
	}{
		{"blinds", PurposeBlinds},
		{"bet", PurposeBet},
		{"raise", PurposeRaise},
		{"call", PurposeCall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, p := seatedPlayer(t, 100)

			got, err := d.RequestFunds(p, 30, tt.purpose)
			require.NoError(t, err)
			assert.Equal(t, uint(30), got)
			assert.Equal(t, uint(70), p.Stack())
			assert.Equal(t, uint(30), p.RoundBet())
			assert.Equal(t, uint(30), p.PaidIn())
		})
	}
}

func TestRequestFundsInsufficient(t *testing.T) {
	t.Parallel()

	d, p := seatedPlayer(t, 20)
	got, err := d.RequestFunds(p, 21, PurposeBet)
	assert.Equal(t, uint(0), got)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, uint(20), p.Stack())
	assert.Equal(t, uint(0), p.RoundBet())

	got, err = d.RequestFunds(p, 20, PurposeBet)
	require.NoError(t, err, "a player may bet the whole stack")
	assert.Equal(t, uint(20), got)
	assert.Equal(t, uint(0), p.Stack())
}

func TestUnauthorizedRequests(t *testing.T) {
	t.Parallel()

	_, p := seatedPlayer(t, 100)
	other := NewDealer(randutil.New(2), nil, nil)

	tests := []struct {
		name string
		cap  Capability
	}{
		{"zero capability", Capability{}},
		{"other dealer", other.cap},
		{"forged key", Capability{key: &capabilityKey{dealerID: "dlr-forged"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.RequestFunds(tt.cap, 10, PurposeBet)
			assert.Equal(t, uint(0), got)
			require.ErrorIs(t, err, ErrAuthorization)

			cards, err := p.RequestHandCards(tt.cap)
			assert.Nil(t, cards)
			require.ErrorIs(t, err, ErrAuthorization)

			assert.ErrorIs(t, p.Credit(tt.cap, 10), ErrAuthorization)
			assert.ErrorIs(t, p.Fold(tt.cap), ErrAuthorization)
			assert.ErrorIs(t, p.ReceiveCard(tt.cap, deck.NewCard(deck.Ace, deck.Spades)), ErrAuthorization)
		})
	}

	assert.Equal(t, uint(100), p.Stack())
	assert.False(t, p.Folded())
	assert.Empty(t, p.HoleCards())

	got, err := other.RequestFunds(p, 10, PurposeBet)
	assert.Equal(t, uint(0), got)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindAuthorization, kind)
}

func TestDealTwo(t *testing.T) {
	t.Parallel()

	d, p := seatedPlayer(t, 100)
	require.ErrorIs(t, d.DealTwo(p), ErrState, "no deck yet")

	require.True(t, d.GenerateDeck(1))
	require.NoError(t, d.DealTwo(p))
	assert.Len(t, p.HoleCards(), 2)
	assert.Equal(t, 50, d.DeckSize())

	cards, err := d.RequestHandCards(p)
	require.NoError(t, err)
	assert.Equal(t, p.HoleCards(), cards)

	err = d.DealTwo(p)
	require.ErrorIs(t, err, ErrState, "a player holds at most two cards")
}

func TestOpenCardsExhaustsDeck(t *testing.T) {
	t.Parallel()

	d, _ := seatedPlayer(t, 100)
	d.deck = deck.FromCards(deck.MustParseCards("2c3c"))

	_, err := d.OpenCards(3)
	require.ErrorIs(t, err, ErrState)
	assert.True(t, errors.Is(err, deck.ErrEmpty))
	assert.Equal(t, 2, d.DeckSize())
}

func TestHoleCardsAreCopies(t *testing.T) {
	t.Parallel()

	d, p := seatedPlayer(t, 100)
	d.GenerateDeck(1)
	require.NoError(t, d.DealTwo(p))

	cards := p.HoleCards()
	cards[0] = deck.Card{}
	assert.NotEqual(t, cards[0], p.HoleCards()[0])
}
