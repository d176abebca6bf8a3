package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/randutil"
)

func TestRandomPolicyFolded(t *testing.T) {
	t.Parallel()

	p := NewRandomPolicy(randutil.New(1))
	_, err := p.Decide(context.Background(), DecisionRequest{Player: PlayerView{Name: "Alice", Folded: true, Stack: 50}})
	require.ErrorIs(t, err, ErrNoDecision)
}

func TestRandomPolicyEmptyStack(t *testing.T) {
	t.Parallel()

	p := NewRandomPolicy(randutil.New(1))
	seen := map[ActionKind]bool{}
	for range 200 {
		d, err := p.Decide(context.Background(), DecisionRequest{Player: PlayerView{Stack: 0}})
		require.NoError(t, err)
		require.Contains(t, []ActionKind{Check, Fold}, d.Action)
		seen[d.Action] = true
	}
	assert.Len(t, seen, 2)
}

func TestRandomPolicyAmounts(t *testing.T) {
	t.Parallel()

	p := NewRandomPolicy(randutil.New(7))
	seen := map[ActionKind]bool{}
	for range 2000 {
		req := DecisionRequest{MinimumBet: 10, Player: PlayerView{Stack: 250}}
		d, err := p.Decide(context.Background(), req)
		require.NoError(t, err)
		seen[d.Action] = true

		switch d.Action {
		case Bet:
			assert.GreaterOrEqual(t, d.Amount, uint(1))
			assert.LessOrEqual(t, d.Amount, uint(250))
		case Raise:
			assert.GreaterOrEqual(t, d.Amount, uint(1))
			assert.LessOrEqual(t, d.Amount, uint(100), "raises are capped at 100")
		default:
			assert.Zero(t, d.Amount)
		}
	}
	assert.Len(t, seen, len(AllActions))
}

func TestRandomPolicyShovesBelowMinimum(t *testing.T) {
	t.Parallel()

	p := NewRandomPolicy(randutil.New(3))
	for range 500 {
		d, err := p.Decide(context.Background(), DecisionRequest{MinimumBet: 50, Player: PlayerView{Stack: 30}})
		require.NoError(t, err)
		if d.Action == Bet {
			assert.Equal(t, uint(30), d.Amount)
		}
		if d.Action == Raise {
			assert.LessOrEqual(t, d.Amount, uint(30))
		}
	}
}

func TestPassivePolicy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d, err := PassivePolicy{}.Decide(ctx, DecisionRequest{HighestBet: 10, Player: PlayerView{RoundBet: 5, Stack: 100}})
	require.NoError(t, err)
	assert.Equal(t, Call, d.Action)

	d, err = PassivePolicy{}.Decide(ctx, DecisionRequest{HighestBet: 10, Player: PlayerView{RoundBet: 10, Stack: 100}})
	require.NoError(t, err)
	assert.Equal(t, Check, d.Action)
}

func TestChartPolicy(t *testing.T) {
	t.Parallel()

	req := func(phase Phase, hole string, highest, stack uint) DecisionRequest {
		return DecisionRequest{
			Phase:      phase,
			MinimumBet: 10,
			HighestBet: highest,
			Player:     PlayerView{Name: "Alice", Stack: stack, HoleCards: deck.MustParseCards(hole)},
		}
	}

	tests := []struct {
		name string
		req  DecisionRequest
		want Decision
	}{
		{"premium opens", req(PhasePreFlop, "AsAd", 0, 100), Decision{Action: Bet, Amount: 10}},
		{"premium raises", req(PhasePreFlop, "KsKd", 10, 100), Decision{Action: Raise, Amount: 30}},
		{"premium short stack calls", req(PhasePreFlop, "KsKd", 10, 25), Decision{Action: Call}},
		{"weak folds to a bet", req(PhasePreFlop, "7h2c", 10, 100), Decision{Action: Fold}},
		{"weak checks for free", req(PhasePreFlop, "7h2c", 0, 100), Decision{Action: Check}},
		{"middling calls", req(PhasePreFlop, "Ts9s", 10, 100), Decision{Action: Call}},
		{"postflop calls with anything", req(PhaseFlop, "7h2c", 10, 100), Decision{Action: Call}},
		{"cannot cover folds", req(PhaseTurn, "AsAd", 50, 20), Decision{Action: Fold}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewChartPolicy().Decide(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	folded := req(PhaseFlop, "AsAd", 0, 100)
	folded.Player.Folded = true
	_, err := NewChartPolicy().Decide(context.Background(), folded)
	assert.ErrorIs(t, err, ErrNoDecision)
}

func TestScriptedPolicy(t *testing.T) {
	t.Parallel()

	p := NewScriptedPolicy(Decision{Action: Bet, Amount: 10}, Decision{Action: Fold})
	ctx := context.Background()

	d, err := p.Decide(ctx, DecisionRequest{})
	require.NoError(t, err)
	assert.Equal(t, Decision{Action: Bet, Amount: 10}, d)
	assert.Equal(t, 1, p.Remaining())

	d, err = p.Decide(ctx, DecisionRequest{})
	require.NoError(t, err)
	assert.Equal(t, Fold, d.Action)

	_, err = p.Decide(ctx, DecisionRequest{})
	require.ErrorIs(t, err, ErrNoDecision)
}

func TestParseActionKind(t *testing.T) {
	t.Parallel()

	for _, a := range AllActions {
		got, err := ParseActionKind(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	got, err := ParseActionKind(" R ")
	require.NoError(t, err)
	assert.Equal(t, Raise, got)

	_, err = ParseActionKind("shove")
	assert.Error(t, err)
}
