package game

import (
	"slices"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/randutil"
)

// newTestGame seats one player per policy with the given stack.
func newTestGame(t *testing.T, stack uint, policies []Policy, opts ...Option) (*Game, *quartz.Mock) {
	t.Helper()

	names := []string{"Alice", "Bob", "Charlie", "Dave", "Eve"}
	players := make([]*Player, len(policies))
	for i, p := range policies {
		players[i] = NewPlayer(i+1, names[i%len(names)], stack, p)
	}

	clock := quartz.NewMock(t)
	base := []Option{WithRNG(randutil.New(42)), WithClock(clock)}
	g, err := NewGame(players, append(base, opts...)...)
	require.NoError(t, err)
	return g, clock
}

func passive(n int) []Policy {
	out := make([]Policy, n)
	for i := range out {
		out[i] = PassivePolicy{}
	}
	return out
}

// stackDeck gives the dealer a deck that deals cards in the given order:
// hole cards seat by seat, then flop, turn and river.
func stackDeck(t *testing.T, g *Game, order string) {
	t.Helper()
	cards := deck.MustParseCards(order)
	slices.Reverse(cards)
	g.dealer.deck = deck.FromCards(cards)
	g.dealer.deckID = "deck-test"
}

// readyWithoutBlinds prepares a game for play with no blinds.
func readyWithoutBlinds(t *testing.T, g *Game) {
	t.Helper()
	g.GenerateDeck(1)
	require.NoError(t, g.Shuffle())
	require.NoError(t, g.PlayWithBlinds(false, 0))
}

func totalStacks(g *Game) uint {
	var sum uint
	for _, p := range g.players {
		sum += p.Stack()
	}
	return sum
}

func totalPaidIn(g *Game) uint {
	var sum uint
	for _, p := range g.players {
		sum += p.PaidIn()
	}
	return sum
}
