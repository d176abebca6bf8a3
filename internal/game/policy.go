package game

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/holdem-sim/internal/deck"
)

// DecisionRequest is the read-only state a policy sees on its turn.
type DecisionRequest struct {
	Phase      Phase
	MinimumBet uint
	HighestBet uint
	Pot        uint
	Community  []deck.Card
	Player     PlayerView
}

// ToCall is the amount the player must add to match the highest bet.
func (r DecisionRequest) ToCall() uint {
	if r.Player.RoundBet >= r.HighestBet {
		return 0
	}
	return r.HighestBet - r.Player.RoundBet
}

// Policy chooses a player's action. Returning an error stops the betting
// round at this seat.
type Policy interface {
	Decide(ctx context.Context, req DecisionRequest) (Decision, error)
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(ctx context.Context, req DecisionRequest) (Decision, error)

func (f PolicyFunc) Decide(ctx context.Context, req DecisionRequest) (Decision, error) {
	return f(ctx, req)
}

// RandomPolicy picks uniformly among the actions open to the player. It is
// not expected to choose legal amounts.
type RandomPolicy struct {
	rng *rand.Rand
}

func NewRandomPolicy(rng *rand.Rand) *RandomPolicy {
	if rng == nil {
		panic("rng is required for a random policy")
	}
	return &RandomPolicy{rng: rng}
}

func (p *RandomPolicy) Decide(_ context.Context, req DecisionRequest) (Decision, error) {
	if req.Player.Folded {
		return Decision{Action: Fold}, fmt.Errorf("%s has folded: %w", req.Player.Name, ErrNoDecision)
	}

	stack := req.Player.Stack
	if stack == 0 {
		return Decision{Action: []ActionKind{Check, Fold}[p.rng.IntN(2)]}, nil
	}

	action := AllActions[p.rng.IntN(len(AllActions))]
	switch action {
	case Bet:
		return Decision{Action: Bet, Amount: p.betAmount(stack, req.MinimumBet)}, nil
	case Raise:
		return Decision{Action: Raise, Amount: p.uniform(min(stack, 100))}, nil
	}
	return Decision{Action: action}, nil
}

// betAmount shoves when the minimum is out of reach, otherwise picks a
// size in [1, stack].
func (p *RandomPolicy) betAmount(stack, minimum uint) uint {
	if minimum > stack {
		return stack
	}
	return p.uniform(stack)
}

// uniform returns a value in [1, n].
func (p *RandomPolicy) uniform(n uint) uint {
	return uint(p.rng.Uint64N(uint64(n))) + 1
}

// PassivePolicy calls any outstanding bet and checks otherwise. A table of
// passive players always finishes its rounds.
type PassivePolicy struct{}

func (PassivePolicy) Decide(_ context.Context, req DecisionRequest) (Decision, error) {
	if req.Player.Folded {
		return Decision{Action: Fold}, fmt.Errorf("%s has folded: %w", req.Player.Name, ErrNoDecision)
	}
	if req.ToCall() > 0 {
		return Decision{Action: Call}, nil
	}
	return Decision{Action: Check}, nil
}

// ChartPolicy plays from a preflop starting-hand chart: it folds hands
// ranked below Threshold when facing a bet, raises hands ranked at or above
// Premium, and checks or calls everything else.
type ChartPolicy struct {
	Threshold float64
	Premium   float64
}

// NewChartPolicy returns a chart policy that plays the top half of hands
// and raises the top tenth.
func NewChartPolicy() ChartPolicy {
	return ChartPolicy{Threshold: 0.5, Premium: 0.9}
}

func (p ChartPolicy) Decide(_ context.Context, req DecisionRequest) (Decision, error) {
	if req.Player.Folded {
		return Decision{Action: Fold}, fmt.Errorf("%s has folded: %w", req.Player.Name, ErrNoDecision)
	}

	owed := req.ToCall()
	if req.Phase == PhasePreFlop {
		strength, _ := deck.StartingHandPercentile(req.Player.HoleCards)
		if strength >= p.Premium {
			if d, ok := p.aggress(req); ok {
				return d, nil
			}
		} else if owed > 0 && strength < p.Threshold {
			return Decision{Action: Fold}, nil
		}
	}

	switch {
	case owed == 0:
		return Decision{Action: Check}, nil
	case owed <= req.Player.Stack:
		return Decision{Action: Call}, nil
	default:
		return Decision{Action: Fold}, nil
	}
}

// aggress opens for the minimum or makes the smallest legal raise, if the
// stack covers it.
func (p ChartPolicy) aggress(req DecisionRequest) (Decision, bool) {
	stack := req.Player.Stack
	if req.HighestBet == 0 {
		if req.MinimumBet > 0 && req.MinimumBet <= stack {
			return Decision{Action: Bet, Amount: req.MinimumBet}, true
		}
		return Decision{}, false
	}
	raise := 2*req.HighestBet + max(req.MinimumBet, 1)
	if raise > stack {
		return Decision{}, false
	}
	return Decision{Action: Raise, Amount: raise}, true
}

// ScriptedPolicy replays a fixed list of decisions and fails once it runs
// out.
type ScriptedPolicy struct {
	decisions []Decision
	next      int
}

func NewScriptedPolicy(decisions ...Decision) *ScriptedPolicy {
	return &ScriptedPolicy{decisions: decisions}
}

func (p *ScriptedPolicy) Decide(_ context.Context, req DecisionRequest) (Decision, error) {
	if p.next >= len(p.decisions) {
		return Decision{}, fmt.Errorf("script for %s exhausted after %d decisions: %w", req.Player.Name, len(p.decisions), ErrNoDecision)
	}
	d := p.decisions[p.next]
	p.next++
	return d, nil
}

// Remaining is the number of unplayed decisions.
func (p *ScriptedPolicy) Remaining() int {
	return len(p.decisions) - p.next
}
