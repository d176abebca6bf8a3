package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/evaluator"
)

func standing(t *testing.T, name, cards string) Standing {
	t.Helper()
	rank, err := evaluator.Evaluate(deck.MustParseCards(cards))
	require.NoError(t, err)
	return Standing{Player: NewPlayer(0, name, 0, PassivePolicy{}), Rank: rank}
}

func TestDetermineWinner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		hands  [][2]string
		mode   TieBreakMode
		winner string
		ties   []string
	}{
		{
			name:   "higher category wins",
			hands:  [][2]string{{"A", "2d5s2c7d9hJsKc"}, {"B", "7h9c2c7d9hJsKc"}},
			winner: "B",
		},
		{
			name:   "numeric high card breaks the tie",
			hands:  [][2]string{{"A", "5s5d2c7d9hJsKc"}, {"B", "8s8d2c7d9hJsKc"}},
			winner: "B",
		},
		{
			name:  "equal numeric high cards tie",
			hands: [][2]string{{"A", "8s8d2c7d9hJsKc"}, {"B", "8h8c2c7d9hJsKc"}},
			ties:  []string{"A", "B"},
		},
		{
			name:   "face card labels keep the earlier player",
			hands:  [][2]string{{"A", "8s8d2c7d9hJsKc"}, {"B", "AsAd2c7d9hJsKc"}},
			winner: "A",
		},
		{
			name:   "value mode compares face cards",
			hands:  [][2]string{{"A", "8s8d2c7d9hJsKc"}, {"B", "AsAd2c7d9hJsKc"}},
			mode:   TieBreakValue,
			winner: "B",
		},
		{
			name:   "stronger hand clears an earlier tie",
			hands:  [][2]string{{"A", "8s8d2c7d9hJsKc"}, {"B", "8h8c2c7d9hJsKc"}, {"C", "7h7s2c7d9hJsKc"}},
			winner: "C",
		},
		{
			name:  "third player joins the tie",
			hands: [][2]string{{"A", "8s8d2c7d9hJsKc"}, {"B", "8h8c2c7d9hJsKc"}, {"C", "3s4d8c8d9hJsKc"}},
			ties:  []string{"A", "B", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			standings := make([]Standing, len(tt.hands))
			for i, h := range tt.hands {
				standings[i] = standing(t, h[0], h[1])
			}

			winner, ties := DetermineWinner(standings, tt.mode)
			if tt.winner == "" {
				assert.Nil(t, winner)
			} else {
				require.NotNil(t, winner)
				assert.Equal(t, tt.winner, winner.Player.Name)
				assert.Empty(t, ties)
			}

			names := make([]string, len(ties))
			for i, p := range ties {
				names[i] = p.Name
			}
			if len(tt.ties) == 0 {
				assert.Empty(t, names)
			} else {
				assert.Equal(t, tt.ties, names)
			}
		})
	}
}

func TestDetermineWinnerEmpty(t *testing.T) {
	t.Parallel()

	winner, ties := DetermineWinner(nil, TieBreakLabel)
	assert.Nil(t, winner)
	assert.Nil(t, ties)
}

func TestParseTieBreakMode(t *testing.T) {
	t.Parallel()

	m, err := ParseTieBreakMode("value")
	require.NoError(t, err)
	assert.Equal(t, TieBreakValue, m)

	m, err = ParseTieBreakMode("")
	require.NoError(t, err)
	assert.Equal(t, TieBreakLabel, m)

	_, err = ParseTieBreakMode("coin")
	assert.Error(t, err)
}
