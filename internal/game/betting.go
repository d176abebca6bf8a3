package game

import (
	"context"
	"fmt"
)

// RoundState is the outcome of a betting round attempt.
type RoundState int

const (
	// RoundOngoing means the step cap was reached before the round ended.
	RoundOngoing RoundState = iota
	// RoundOver means one player is left or every active bet is matched.
	RoundOver
	// RoundAborted means a policy failed or an action was rejected.
	RoundAborted
)

func (s RoundState) String() string {
	switch s {
	case RoundOngoing:
		return "ongoing"
	case RoundOver:
		return "over"
	case RoundAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// RoundError reports a betting round that did not finish.
type RoundError struct {
	Phase Phase
	State RoundState
	Seat  int
	Err   error
}

func (e *RoundError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s round %s at seat %d", e.Phase, e.State, e.Seat)
	}
	return fmt.Sprintf("%s round %s at seat %d: %v", e.Phase, e.State, e.Seat, e.Err)
}

func (e *RoundError) Unwrap() error { return e.Err }

// runRound takes turns from the resume seat until the round is over, an
// action fails or the step cap is reached. Folded seats are skipped without
// using a step.
func (g *Game) runRound(ctx context.Context) (RoundState, error) {
	n := len(g.players)
	seat := g.resumeSeat
	steps := 0
	finish := func(state RoundState, err error) (RoundState, error) {
		g.resumeSeat = seat
		g.bus.Publish(RoundEndEvent{Phase: g.phase, State: state, Steps: steps, Err: err, timestamp: g.clock.Now()})
		return state, err
	}

	for steps < g.maxRoundSteps {
		if err := ctx.Err(); err != nil {
			return finish(RoundAborted, err)
		}
		p := g.players[seat]
		if p.folded {
			seat = (seat + 1) % n
			continue
		}
		steps++

		decision, err := p.Policy.Decide(ctx, g.request(p))
		if err != nil {
			g.logger.Debug("Failed to get action from player", "player", p.Name, "err", err)
			return finish(RoundAborted, err)
		}
		if _, err := g.Apply(seat, decision); err != nil {
			g.logger.Debug("Action rejected, try a different action", "player", p.Name, "action", decision, "err", err)
			return finish(RoundAborted, err)
		}

		seat = (seat + 1) % n
		if g.RoundOver() {
			return finish(RoundOver, nil)
		}
	}
	g.logger.Warn("Betting round hit the step cap", "phase", g.phase, "steps", steps)
	return finish(RoundOngoing, nil)
}

func (g *Game) request(p *Player) DecisionRequest {
	return DecisionRequest{
		Phase:      g.phase,
		MinimumBet: g.minimumBet,
		HighestBet: g.highestBet,
		Pot:        g.pot,
		Community:  g.Community(),
		Player:     p.View(),
	}
}

// Apply validates the decision for the player at seat and applies it. It
// returns the amount moved into the pot. A rejected action changes nothing.
func (g *Game) Apply(seat int, d Decision) (uint, error) {
	if seat < 0 || seat >= len(g.players) {
		return 0, validationError("apply", "seat %d out of range", seat)
	}
	p := g.players[seat]
	if p.folded {
		return 0, stateError("apply", "%s has folded", p.Name)
	}

	var moved uint
	switch d.Action {
	case Check:

	case Bet:
		if d.Amount < g.minimumBet {
			return 0, validationError("bet", "bet of %d is below the minimum of %d", d.Amount, g.minimumBet)
		}
		got, err := g.dealer.RequestFunds(p, d.Amount, PurposeBet)
		if err != nil {
			return 0, err
		}
		moved = got
		g.highestBet += got

	case Raise:
		if d.Amount <= 2*g.highestBet {
			return 0, validationError("raise", "raise of %d must exceed %d", d.Amount, 2*g.highestBet)
		}
		got, err := g.dealer.RequestFunds(p, d.Amount, PurposeRaise)
		if err != nil {
			return 0, err
		}
		moved = got
		g.highestBet += got

	case Call:
		owed := g.request(p).ToCall()
		if owed > p.stack {
			return 0, validationError("call", "%s needs %d to call but holds %d", p.Name, owed, p.stack)
		}
		if owed > 0 {
			got, err := g.dealer.RequestFunds(p, owed, PurposeCall)
			if err != nil {
				return 0, err
			}
			moved = got
		}

	case Fold:
		if g.activeCount() <= 1 {
			return 0, validationError("fold", "%s is the last active player", p.Name)
		}
		if err := g.dealer.fold(p); err != nil {
			return 0, err
		}

	default:
		return 0, validationError("apply", "unknown action %v", d.Action)
	}

	g.pot += moved
	g.bus.Publish(PlayerActionEvent{
		Player:     p,
		Phase:      g.phase,
		Decision:   d,
		Moved:      moved,
		HighestBet: g.highestBet,
		PotAfter:   g.pot,
		timestamp:  g.clock.Now(),
	})
	return moved, nil
}

// RoundOver reports whether a single active player remains or every active
// player's round bet equals the highest bet.
func (g *Game) RoundOver() bool {
	active := 0
	matched := true
	for _, p := range g.players {
		if p.folded {
			continue
		}
		active++
		if p.roundBet == g.highestBet {
			continue
		}
		if g.rules.AllInMatches && p.stack == 0 {
			continue
		}
		matched = false
	}
	return active == 1 || matched
}

func (g *Game) activeCount() int {
	n := 0
	for _, p := range g.players {
		if !p.folded {
			n++
		}
	}
	return n
}
